package fetch

import (
	"errors"
	"fmt"

	"github.com/nao1215/logpuzzle/internal/model"
)

// ErrInvalidProxyAddress is returned when the proxy address format is invalid.
// Expected format is "host:port".
var ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

// Error describes a failed fetch of a single URL.
type Error struct {
	// Kind classifies the failure.
	Kind model.FailureKind

	// URL is the requested URL.
	URL string

	// StatusCode is set for FailureStatus.
	StatusCode int

	// Err is the underlying error, nil for FailureStatus.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case model.FailureStatus:
		return fmt.Sprintf("%s failure fetching %s: HTTP %d", e.Kind, e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("%s failure fetching %s: %v", e.Kind, e.URL, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err. Errors that are not *Error are
// reported as transport failures since no response was obtained for them.
func KindOf(err error) model.FailureKind {
	if err == nil {
		return model.FailureNone
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return model.FailureTransport
}
