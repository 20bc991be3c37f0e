package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Package-level sentinels let callers use errors.Is() while keeping
// the human-readable messages in one place.
var (
	// ErrNoLogFile is returned when no access log path was given.
	ErrNoLogFile = errors.New("no log file specified")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// Zero disables the timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidIndexFileName is returned when the index file name is not a
	// plain file name (it must not contain path separators).
	ErrInvalidIndexFileName = errors.New("invalid index file name: must be a plain file name")

	// ErrReportWithoutDownload is returned when a download report is
	// requested in print mode, where nothing is downloaded.
	ErrReportWithoutDownload = errors.New("report options require --todir")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
