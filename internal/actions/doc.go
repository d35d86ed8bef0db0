// Package actions provides high-level business logic for CLI commands.
//
// Each action corresponds to an actionpin command (pin, check, resolve)
// and orchestrates file discovery, the manifest rewriter and the resolver.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Splog, Config and Resolver
//   - Files are processed one at a time; an I/O failure aborts only that file
//   - A manifest is written only after its whole rewrite pass completed
package actions
