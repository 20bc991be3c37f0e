// Package main provides the entry point for the logpuzzle CLI.
//
// logpuzzle reassembles a picture from an Apache access log: it extracts
// the "puzzle" image requests, orders them, and either prints their URLs
// or downloads them and writes an HTML page showing the pieces in order.
//
// Usage:
//
//	logpuzzle animal_code.google.com
//	logpuzzle --todir out place_code.google.com
//
// See --help for all available options.
package main

// main is the entry point for logpuzzle.
func main() {
	Execute()
}
