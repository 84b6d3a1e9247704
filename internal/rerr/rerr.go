// Package rerr implements rif's structured error type.
//
// The original rif distinguished AddFail, CommitFail, RenameFail,
// UpdateError, GetFail, InvalidFormat, CheckerError, CliError,
// ConfigError, RifIoError, IoError and SerdeError as separate enum
// variants. rif collapses all of these into one tagged struct, carrying
// the variant name forward as Tag so callers that care can still switch
// on it.
package rerr

import (
	"errors"
	"fmt"
	"strings"
)

// Tag identifies which of the original error categories produced an Error.
type Tag string

const (
	TagAddFail       Tag = "AddFail"
	TagCommitFail    Tag = "CommitFail"
	TagRenameFail    Tag = "RenameFail"
	TagUpdateError   Tag = "UpdateError"
	TagGetFail       Tag = "GetFail"
	TagInvalidFormat Tag = "InvalidFormat"
	TagCheckerError  Tag = "CheckerError"
	TagCliError      Tag = "CliError"
	TagConfigError   Tag = "ConfigError"
	TagRifIoError    Tag = "RifIoError"
	TagIoError       Tag = "IoError"
	TagSerdeError    Tag = "SerdeError"
)

// Error is rif's single structured error type. It carries a Tag (one of
// the original error categories), a short Title, an optional Message with
// more detail, optional Suggestions the CLI can print, and an optional
// wrapped underlying error.
type Error struct {
	Tag         Tag
	Title       string
	Message     string
	Suggestions []string
	Err         error
}

func (e *Error) Error() string {
	if e.Title != "" {
		return e.Title
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Tag)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Format renders the error with message and suggestions, the way the CLI
// prints a failed command to stderr.
func (e *Error) Format() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("error: %s\n", e.Error()))
	if e.Message != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", e.Message))
	}
	for _, s := range e.Suggestions {
		sb.WriteString(fmt.Sprintf("  try: %s\n", s))
	}
	return sb.String()
}

// New creates an Error with the given tag and title.
func New(tag Tag, title string) *Error {
	return &Error{Tag: tag, Title: title}
}

func (e *Error) WithMessage(msg string) *Error {
	e.Message = msg
	return e
}

func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestions = append(e.Suggestions, s)
	return e
}

func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// Wrapf builds an Error from a tag, a wrapped error and a formatted title.
func Wrapf(tag Tag, err error, format string, args ...interface{}) *Error {
	return &Error{Tag: tag, Title: fmt.Sprintf(format, args...), Err: err}
}

// As reports whether err is (or wraps) an *Error, extracting it into target
// the same way errors.As would.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Common sentinel errors checked with errors.Is across packages.
var (
	ErrNotARepository     = errors.New("not a rif repository (or any parent up to mount point)")
	ErrAlreadyInitialized = errors.New("rif repository already exists here")
	ErrNotTracked         = errors.New("path is not tracked")
	ErrAlreadyTracked     = errors.New("path is already tracked")
	ErrSelfReference      = errors.New("a file cannot reference itself")
	ErrCyclicReference    = errors.New("reference would create a cycle")
	ErrNothingStaged      = errors.New("nothing staged")
	ErrOutsideRepo        = errors.New("path is outside the repository")
)
