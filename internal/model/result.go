package model

import (
	"fmt"
	"strings"
)

// FailureKind classifies why a puzzle image could not be downloaded.
type FailureKind int

const (
	// FailureNone indicates the fetch succeeded.
	FailureNone FailureKind = iota

	// FailureTransport indicates no response was received
	// (unreachable host, DNS failure, connection reset, timeout).
	FailureTransport

	// FailureStatus indicates a response was received with a non-success status.
	FailureStatus

	// FailureWrite indicates the response could not be written to disk.
	FailureWrite
)

// String returns the lowercase name of the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureTransport:
		return "transport"
	case FailureStatus:
		return "status"
	case FailureWrite:
		return "write"
	default:
		return "unknown"
	}
}

// ParseFailureKind converts a string into a FailureKind.
// The comparison is case-insensitive.
func ParseFailureKind(s string) (FailureKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return FailureNone, nil
	case "transport":
		return FailureTransport, nil
	case "status":
		return FailureStatus, nil
	case "write":
		return FailureWrite, nil
	default:
		return FailureNone, fmt.Errorf("unknown failure kind: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so kinds appear as names in JSON.
func (k FailureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *FailureKind) UnmarshalText(text []byte) error {
	parsed, err := ParseFailureKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// FetchResult is the outcome of downloading one URL of the ordered list.
// Exactly one of File or Failure is meaningful: a successful fetch has
// Failure == FailureNone and a non-empty File.
type FetchResult struct {
	// Index is the position of the URL in the ordered list.
	// The local file name is derived from it.
	Index int `json:"index"`

	// URL is the fully-qualified URL that was requested.
	URL string `json:"url"`

	// File is the local file name (relative to the destination directory).
	File string `json:"file,omitempty"`

	// Bytes is the number of bytes written.
	Bytes int64 `json:"bytes,omitempty"`

	// Failure is the failure kind, FailureNone on success.
	Failure FailureKind `json:"failure"`

	// StatusCode is the HTTP status when a response was received.
	StatusCode int `json:"status_code,omitempty"`

	// Message is a human-readable failure description.
	Message string `json:"message,omitempty"`
}

// OK reports whether the fetch succeeded.
func (r FetchResult) OK() bool {
	return r.Failure == FailureNone
}
