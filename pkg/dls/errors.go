package dls

import (
	"errors"
	"fmt"
)

// ErrorKind separates "printer host unreachable" from "printer host returned garbage".
type ErrorKind int

const (
	// KindRequest covers transport failures, non-2xx statuses and a
	// StatusConnected body that is not a JSON boolean.
	KindRequest ErrorKind = iota + 1
	// KindDeserialization covers a GetPrinters body that is not the expected XML.
	KindDeserialization
)

func (k ErrorKind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindDeserialization:
		return "deserialization"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels for errors.Is.
var (
	ErrRequest         = errors.New("dls: request failed")
	ErrDeserialization = errors.New("dls: deserialization failed")
)

// Error is returned by every Client operation.
type Error struct {
	Kind ErrorKind
	// Op is the endpoint that failed, e.g. "GetPrinters".
	Op  string
	Err error
}

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("dls %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches ErrRequest or ErrDeserialization according to Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrRequest:
		return e.Kind == KindRequest
	case ErrDeserialization:
		return e.Kind == KindDeserialization
	}
	return false
}
