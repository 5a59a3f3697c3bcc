// Package errors provides standardized error handling for the tedit
// application. It defines the error kinds raised by buffer, file and command
// operations and helper functions for consistent error creation, wrapping,
// and classification. Every kind is recoverable: errors surface as status
// messages and never terminate the editor.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	IOError
	FileNotFound
	NoFileAssociated
	NotADirectory
	AlreadyExists
	// Command error kinds
	UnsupportedExtension
	UnsavedChanges
	UnknownCommand
)

// EditorError is the base error type for all application errors
type EditorError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *EditorError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *EditorError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *EditorError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file and directory operations
type FileError struct {
	EditorError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		EditorError: EditorError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.EditorError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// CommandError represents errors raised while executing a colon command
type CommandError struct {
	EditorError
	verb string
}

// NewCommandError creates a new command error
func NewCommandError(msg string, verb string, kind ErrorKind, err error) *CommandError {
	return &CommandError{
		EditorError: EditorError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		verb: verb,
	}
}

// Error returns the command error message
func (e *CommandError) Error() string {
	if e.verb != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.verb, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.verb)
	}
	return e.EditorError.Error()
}

// Verb returns the command verb associated with the error
func (e *CommandError) Verb() string {
	return e.verb
}

// New creates a new error with a message
func New(msg string) error {
	return &EditorError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &EditorError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// NewKind creates a new error with a message and an explicit kind
func NewKind(msg string, kind ErrorKind) error {
	return &EditorError{
		msg:  msg,
		kind: kind,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &EditorError{
		msg:  msg,
		err:  err,
		kind: KindOf(err),
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &EditorError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: KindOf(err),
	}
}

// KindOf returns the kind of the first classified error in err's chain,
// or Unknown when the chain carries no kind.
func KindOf(err error) ErrorKind {
	var kinder interface{ Kind() ErrorKind }
	if errors.As(err, &kinder) {
		return kinder.Kind()
	}
	return Unknown
}

// IsKind checks whether any error in err's chain carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	return IsKind(err, FileNotFound)
}

// IsNoFileAssociated checks if the error reports a buffer with no file path
func IsNoFileAssociated(err error) bool {
	return IsKind(err, NoFileAssociated)
}

// IsNotADirectory checks if the error reports a missing or non-directory path
func IsNotADirectory(err error) bool {
	return IsKind(err, NotADirectory)
}

// IsUnsavedChanges checks if the error reports a dirty buffer blocking a quit
func IsUnsavedChanges(err error) bool {
	return IsKind(err, UnsavedChanges)
}

// IsUnsupportedExtension checks if the error reports a file type with no run rule
func IsUnsupportedExtension(err error) bool {
	return IsKind(err, UnsupportedExtension)
}

// IsUnknownCommand checks if the error reports an unrecognized colon command
func IsUnknownCommand(err error) bool {
	return IsKind(err, UnknownCommand)
}
