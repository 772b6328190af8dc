package api

import (
	"errors"
	"fmt"
)

// ErrBadRequest classifies errors caused by the request itself.
var ErrBadRequest = errors.New("bad request")

var errMaskedKey = errors.New("api key is masked; send the full key")

// opError tags an error with the handler operation that produced it.
type opError struct {
	op   string
	kind error
	err  error
}

func (e *opError) Error() string {
	switch {
	case e.err == nil:
		return e.kind.Error()
	case e.kind == nil:
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.kind, e.err)
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *opError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.kind != nil {
		out = append(out, e.kind)
	}
	if e.err != nil {
		out = append(out, e.err)
	}
	return out
}

// WrapKind returns err classified as kind and raised by op.
func WrapKind(op string, kind, err error) error {
	return &opError{op: op, kind: kind, err: err}
}

// Wrap returns err raised by op without reclassifying it.
func Wrap(op string, err error) error {
	return &opError{op: op, err: err}
}
