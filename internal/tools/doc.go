// Package tools provides process helpers shared by the compiler boundary
// and the bragictl commands.
//
// Ownership boundary:
// - command execution helpers
//
// - working directory and output path utilities
package tools
