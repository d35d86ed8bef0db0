// Package runtime provides the execution context for actionpin commands.
//
// It encapsulates shared dependencies and configuration needed by actions,
// such as the logger, the repository root, the GitHub client and the
// reference resolver.
package runtime
