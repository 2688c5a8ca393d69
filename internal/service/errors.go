package service

import (
	"errors"
	"fmt"
)

// ErrNoTargets is returned when an operator command resolves zero target
// identifiers; the handler reports it as a usage error
var ErrNoTargets = errors.New("no resolvable targets")

// StoreError wraps a persistent-store failure. The failed operation left
// no partial mutation behind; the caller reports failure and continues.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// CollaboratorError wraps a failed or timed-out platform call. It is a
// degraded but non-fatal outcome; stored state already reflects the
// decision that triggered the call.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator %s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
