package puzzle

import "errors"

var (
	// ErrNoHostname is returned when the source identifier does not encode
	// a hostname. Without it no well-formed URL can be assembled, so the
	// log is rejected before it is scanned.
	ErrNoHostname = errors.New("source identifier has no hostname: expected <name>_<hostname>")

	// ErrUnknownPolicy is returned when a policy name cannot be parsed.
	ErrUnknownPolicy = errors.New("unknown ordering policy")
)
