// Package config provides configuration structures and utilities for
// KeyHound. It defines the main options for filesystem scanning,
// artifact validation, secure handling, and report generation.
package config
