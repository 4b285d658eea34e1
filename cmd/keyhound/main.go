// Package main provides the entry point for the KeyHound CLI.
//
// KeyHound discovers, classifies, and validates cryptocurrency
// artifacts (private keys, seed phrases, wallet files, addresses) in
// filesystem trees, keeping discovered secrets encrypted in memory and
// masked in all output.
//
// Usage:
//
//	keyhound scan <path> [<path>...]
//	keyhound history
//
// See --help for all available options.
package main

// main is the entry point for KeyHound.
func main() {
	Execute()
}
