// Package vmerrors defines the fatal-condition error taxonomy for the
// segmented universal machine. Every condition here is unrecoverable: the
// engine never attempts to continue past one.
package vmerrors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind classifies a FatalCondition so callers can report or count it
// without string-matching the message.
type Kind int

const (
	Invocation Kind = iota
	Decode
	Register
	Memory
	Unmap
	Arithmetic
	IO
)

func (k Kind) String() string {
	switch k {
	case Invocation:
		return "invocation"
	case Decode:
		return "decode"
	case Register:
		return "register"
	case Memory:
		return "memory"
	case Unmap:
		return "unmap"
	case Arithmetic:
		return "arithmetic"
	case IO:
		return "io"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FatalCondition is the wrapped error type surfaced by every abnormal
// termination path in this module. It carries a Kind for programmatic
// dispatch and a cockroachdb/errors-produced cause chain with a stack
// trace attached at the point of first occurrence.
type FatalCondition struct {
	Kind  Kind
	cause error
}

func (f *FatalCondition) Error() string {
	return fmt.Sprintf("%s: %v", f.Kind, f.cause)
}

func (f *FatalCondition) Unwrap() error {
	return f.cause
}

// New builds a FatalCondition of the given kind with a formatted message,
// capturing a stack trace via cockroachdb/errors.
func New(kind Kind, format string, args ...interface{}) *FatalCondition {
	return &FatalCondition{Kind: kind, cause: errors.Newf(format, args...)}
}

// Wrap attaches a Kind and stack trace to an existing error.
func Wrap(kind Kind, err error, message string) *FatalCondition {
	return &FatalCondition{Kind: kind, cause: errors.Wrap(err, message)}
}

// As reports whether err is a *FatalCondition, unwrapping via errors.As.
func As(err error) (*FatalCondition, bool) {
	var fc *FatalCondition
	if errors.As(err, &fc) {
		return fc, true
	}
	return nil, false
}
