// Package git locates the repository a command runs in.
//
// It uses go-git, so no git executable is required.
package git
