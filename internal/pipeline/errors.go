package pipeline

import "errors"

// ErrNoTargetDir is returned by steps that write to the target directory
// when the report has none.
var ErrNoTargetDir = errors.New("no target directory")
