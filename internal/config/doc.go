// Package config provides configuration structures and utilities for logpuzzle.
// It defines the run options built from CLI flags, the optional YAML
// configuration file, and the ordering policy table derived from both.
package config
