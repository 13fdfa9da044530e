package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"

	"github.com/RednibCoding/FlatBasic/types"
	"github.com/ztrue/tracerr"
)

// LexicalError is raised for a character the lexer does not recognise.
type LexicalError struct {
	Location types.Position
	Message  string
}

func (e LexicalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// StaticError covers grammar violations found by the parser and type or
// scope violations found by the analyzer.
type StaticError struct {
	Location types.Position
	Message  string
	// Incomplete is set when the parser ran into the end of input while a
	// construct was still open.
	Incomplete bool
}

func (e StaticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

func Static(pos types.Position, format string, args ...interface{}) StaticError {
	return StaticError{
		Location: pos,
		Message:  fmt.Sprintf(format, args...),
	}
}

func Lexical(pos types.Position, format string, args ...interface{}) LexicalError {
	return LexicalError{
		Location: pos,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Location returns the source position carried by err, looking through any
// tracerr wrapping.
func Location(err error) (types.Position, bool) {
	err = tracerr.Unwrap(err)

	var serr StaticError
	if stderrors.As(err, &serr) {
		return serr.Location, true
	}
	var lerr LexicalError
	if stderrors.As(err, &lerr) {
		return lerr.Location, true
	}
	return types.Position{}, false
}

// Message returns the bare message of a front end error, without position.
func Message(err error) string {
	err = tracerr.Unwrap(err)

	var serr StaticError
	if stderrors.As(err, &serr) {
		return serr.Message
	}
	var lerr LexicalError
	if stderrors.As(err, &lerr) {
		return lerr.Message
	}
	return err.Error()
}

func IsLexical(err error) bool {
	var lerr LexicalError
	return stderrors.As(tracerr.Unwrap(err), &lerr)
}

func IsIncomplete(err error) bool {
	var serr StaticError
	if stderrors.As(tracerr.Unwrap(err), &serr) {
		return serr.Incomplete
	}
	return false
}

// Format renders err the way the command line driver reports it.
func Format(err error) string {
	pos, ok := Location(err)
	if !ok {
		return fmt.Sprintf("[error] %s", err)
	}
	return fmt.Sprintf("[error] %s:%d:%d:\n\t-> %s", pos.Filename, pos.Line, pos.Column, Message(err))
}

// Recover converts a panicking front end error into a returned one. Panics
// that are not errors are re-raised.
func Recover(err *error) {
	if r := recover(); r != nil {
		rerr, ok := r.(error)
		if !ok {
			panic(r)
		}
		if _, isRuntime := rerr.(runtime.Error); isRuntime {
			panic(r)
		}
		*err = tracerr.Wrap(rerr)
	}
}
