package asynclog

import (
	"errors"
	"fmt"
)

// Sentinel errors, grounded on the teacher's api/errors.go pattern of
// package-level errors.New values for conditions callers may check for.
var (
	ErrClosed       = errors.New("asynclog: logger is destroyed")
	ErrLineTooLarge = errors.New("asynclog: rendered line exceeds buffer capacity")
	ErrNoSink       = errors.New("asynclog: log directory unusable")
)

// WriteError wraps a failure encountered while writing a record, carrying
// the operation name the way api.Error carries a Code and Context.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("asynclog: %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
