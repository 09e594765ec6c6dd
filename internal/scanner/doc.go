// Package scanner walks a directory tree, classifies cruft directories
// (dependency trees, caches, build output, temp dirs), and collects them
// in a registry shared between the walking goroutine and the UI.
package scanner
