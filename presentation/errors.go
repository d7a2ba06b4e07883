package presentation

import (
	"errors"
	"fmt"
)

var (
	// ErrNoUniverse is returned when a presentation is constructed without a
	// "U" relation.
	ErrNoUniverse = errors.New("presentation: no universe relation supplied")

	// ErrReservedName is returned when a caller tries to Update the
	// reserved universe key "U" with anything but a fresh universe DFA.
	ErrReservedName = errors.New("presentation: \"U\" is reserved for the universe relation")

	// ErrUnknownRelation is returned when a lookup names a relation that has
	// not been installed.
	ErrUnknownRelation = errors.New("presentation: unknown relation")

	// ErrBadValue is returned when Update is given a value that is neither
	// a *automaton.DFA, a formula.Formula, nor a formula source string.
	ErrBadValue = errors.New("presentation: value must be a *automaton.DFA, formula.Formula, or formula string")
)

// Error wraps a sentinel with additional context.
type Error struct {
	msg   string
	cause error
}

func wrapf(cause error, format string, args ...any) error {
	return &Error{msg: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error {
	return e.cause
}
