// Package main provides the entry point for the decruft CLI.
//
// Decruft finds cruft directories (dependency trees, caches, build
// output, temp and venv dirs) under a directory tree and lets you
// inspect and delete them interactively, or lists them in plain mode.
//
// Usage:
//
//	decruft [dir]
//	decruft --plain --json [dir]
//
// See --help for all available options.
package main

func main() {
	Execute()
}
