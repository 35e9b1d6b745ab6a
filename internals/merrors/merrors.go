package merrors

import (
	"errors"
	"fmt"
)

// CliError is a error that might get displayed to the user
type CliError struct {
	Err  string
	Code string
	Help string
}

func (e *CliError) Error() string {
	str := fmt.Sprintf("%s\n", e.Err)
	if e.Help != "" {
		str += "\n  Help: " + e.Help
	}
	return str
}

// Kind classifies what went wrong
type Kind uint8

const (
	// KindUnknown is used for errors that were not created by this package
	KindUnknown Kind = iota
	// KindNetwork is a transport failure or unexpected http status
	KindNetwork
	// KindParse is a malformed json document or a document with the wrong shape
	KindParse
	// KindNotFound is returned if a version or loader is absent from an index
	KindNotFound
	// KindIo is a filesystem read/write/create failure
	KindIo
	// KindUnsupportedPlatform is returned on operating systems we know nothing about
	KindUnsupportedPlatform
	// KindProcess is a spawn or termination failure
	KindProcess
	// KindMissingDependency means something has to be fetched first.
	// It triggers a remediation instead of aborting.
	KindMissingDependency
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network error"
	case KindParse:
		return "parse error"
	case KindNotFound:
		return "not found"
	case KindIo:
		return "io error"
	case KindUnsupportedPlatform:
		return "unsupported platform"
	case KindProcess:
		return "process error"
	case KindMissingDependency:
		return "missing dependency"
	default:
		return "unknown error"
	}
}

// Error is an error with a Kind and the operation that failed
type Error struct {
	Kind Kind
	// Op is a short description like "fetch version index"
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind. err may be nil
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Network(op string, err error) *Error  { return New(KindNetwork, op, err) }
func Parse(op string, err error) *Error    { return New(KindParse, op, err) }
func NotFound(op string, err error) *Error { return New(KindNotFound, op, err) }
func Io(op string, err error) *Error       { return New(KindIo, op, err) }
func Process(op string, err error) *Error  { return New(KindProcess, op, err) }

// UnsupportedPlatform is returned when goos has no mapping for an operation
func UnsupportedPlatform(op string, goos string) *Error {
	return New(KindUnsupportedPlatform, op, fmt.Errorf("operating system %q is not supported", goos))
}

// MissingDependency wraps err (or a description) as a remediable error
func MissingDependency(op string, err error) *Error {
	return New(KindMissingDependency, op, err)
}

// KindOf returns the Kind of the first *Error in the chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
