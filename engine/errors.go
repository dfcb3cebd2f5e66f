package engine

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an import failed.
type ErrorKind int

const (
	// KindMissingFile means a required input file is absent.
	KindMissingFile ErrorKind = iota + 1
	// KindMalformedInput means an input file exists but cannot be used.
	KindMalformedInput
	// KindNoValidContainer means no container carries the baked UV channels.
	KindNoValidContainer
	// KindPersistenceFailure means the outputs could not be written to the asset store.
	KindPersistenceFailure
)

var (
	ErrMissingFile        = errors.New("missing file")
	ErrMalformedInput     = errors.New("malformed input")
	ErrNoValidContainer   = errors.New("no valid container")
	ErrPersistenceFailure = errors.New("persistence failure")
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingFile:
		return "MissingFile"
	case KindMalformedInput:
		return "MalformedInput"
	case KindNoValidContainer:
		return "NoValidContainer"
	case KindPersistenceFailure:
		return "PersistenceFailure"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindMissingFile:
		return ErrMissingFile
	case KindMalformedInput:
		return ErrMalformedInput
	case KindNoValidContainer:
		return ErrNoValidContainer
	case KindPersistenceFailure:
		return ErrPersistenceFailure
	}
	return nil
}

// ImportError is the error of a failed run. Its message is the text shown to the user.
// It matches its kind's sentinel with errors.Is and unwraps to the underlying cause.
type ImportError struct {
	Kind ErrorKind
	// Stage is the stage that was active when the run failed.
	Stage   Stage
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	return e.Message
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func (e *ImportError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}
