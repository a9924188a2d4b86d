package schema

import (
	"errors"
	"fmt"
)

// ErrNotSQLite is returned when a file does not start with the SQLite header
var ErrNotSQLite = errors.New("not a SQLite database")

// ErrorKind classifies a per-item failure in a batch run
type ErrorKind string

const (
	KindInvalidFile ErrorKind = "invalid_file"
	KindOpen        ErrorKind = "open"
	KindListTables  ErrorKind = "list_tables"
	KindIntrospect  ErrorKind = "introspect"
	KindDuplicateID ErrorKind = "duplicate_id"
	KindDDL         ErrorKind = "ddl"
	KindExport      ErrorKind = "export"
)

// Error is a failure tied to one file, database or table
type Error struct {
	Kind    ErrorKind
	Subject string
	Err     error
}

// NewError builds an Error
func NewError(kind ErrorKind, subject string, err error) *Error {
	return &Error{Kind: kind, Subject: subject, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Subject)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Subject, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
