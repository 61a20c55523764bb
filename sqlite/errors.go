package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// ErrClosed is wrapped by the UsageError returned when a Connection or
// Statement is used after Close.
var ErrClosed = errors.New("handle is closed")

// EngineError is a failure reported by the engine that has no more specific
// classification. The classified errors (ConcurrencyError, ConstraintError,
// UsageError) embed it.
type EngineError struct {
	Op           string // operation that failed, e.g. "prepare" or "step"
	Code         int    // primary result code, 0 when the failure did not come from the engine
	ExtendedCode int    // extended result code
	Msg          string // engine diagnostic text
	SQL          string // statement text, when known

	err error
}

func (e *EngineError) Error() string {
	b := new(strings.Builder)
	b.WriteString("sqlite")
	if e.Op != "" {
		b.WriteByte('.')
		b.WriteString(e.Op)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Code != 0 {
		fmt.Fprintf(b, " (code %d", e.Code)
		if e.ExtendedCode != 0 && e.ExtendedCode != e.Code {
			fmt.Fprintf(b, ", extended %d", e.ExtendedCode)
		}
		b.WriteByte(')')
	}
	if e.SQL != "" {
		fmt.Fprintf(b, " [%s]", e.SQL)
	}
	return b.String()
}

func (e *EngineError) Unwrap() error { return e.err }

// ConcurrencyError reports that the database was busy or a table was locked.
// The operation may be retried by the caller.
type ConcurrencyError struct{ *EngineError }

func (e *ConcurrencyError) Unwrap() error { return e.EngineError }

// ConstraintError reports a constraint violation (UNIQUE, NOT NULL, CHECK,
// FOREIGN KEY, ...).
type ConstraintError struct{ *EngineError }

func (e *ConstraintError) Unwrap() error { return e.EngineError }

// UsageError reports a programming defect: operating on a closed handle,
// calling an operation in the wrong state, or engine API misuse. Engine is
// nil when the defect was detected before reaching the engine.
type UsageError struct {
	Op     string
	Reason string
	Engine *EngineError

	err error
}

func (e *UsageError) Error() string {
	if e.Engine != nil {
		return fmt.Sprintf("sqlite: misuse in %s: %s", e.Op, e.Engine.Msg)
	}
	return fmt.Sprintf("sqlite: misuse in %s: %s", e.Op, e.Reason)
}

func (e *UsageError) Unwrap() error {
	if e.Engine != nil {
		return e.Engine
	}
	return e.err
}

func usageError(op, format string, args ...any) *UsageError {
	return &UsageError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

func closedError(op, what string) *UsageError {
	return &UsageError{Op: op, Reason: what + " is closed", err: ErrClosed}
}

// ConnectionError reports that a database could not be opened.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("sqlite: open %q: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// StatementError reports that a statement could not be compiled or that a
// one-shot execution failed.
type StatementError struct {
	SQL string
	Err error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("sqlite: statement %q: %v", e.SQL, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// BindError reports a failed parameter binding. Position is 1-based and Count
// is the number of parameters the statement declares.
type BindError struct {
	Position int
	Count    int
	Err      error
}

func (e *BindError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sqlite: bind parameter %d of %d: %v", e.Position, e.Count, e.Err)
	}
	return fmt.Sprintf("sqlite: bind parameter %d out of range (statement has %d)", e.Position, e.Count)
}

func (e *BindError) Unwrap() error { return e.Err }

// TypeMismatchError reports a conversion outside the codec's coercion table.
// Column is the 0-based result column, or -1 for bind-side conversions.
type TypeMismatchError struct {
	Column int
	From   string
	To     string
	Reason string
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("sqlite: cannot convert %s to %s", e.From, e.To)
	if e.Column >= 0 {
		msg = fmt.Sprintf("sqlite: column %d: cannot convert %s to %s", e.Column, e.From, e.To)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// NullConversionError reports a NULL read into a non-nullable target while
// strict null handling is enabled.
type NullConversionError struct {
	Column int
	To     string
}

func (e *NullConversionError) Error() string {
	return fmt.Sprintf("sqlite: column %d: NULL cannot be stored in %s", e.Column, e.To)
}

// IsRetryable reports whether err was caused by a busy or locked database.
func IsRetryable(err error) bool {
	var ce *ConcurrencyError
	return errors.As(err, &ce)
}

// translate maps an error returned by the engine driver into the error
// taxonomy of this package. It returns nil for a nil err.
func translate(op, query string, err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return &EngineError{Op: op, Msg: err.Error(), SQL: query, err: err}
	}
	ee := &EngineError{
		Op:           op,
		Code:         int(se.Code),
		ExtendedCode: int(se.ExtendedCode),
		Msg:          se.Error(),
		SQL:          query,
		err:          se,
	}
	switch se.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return &ConcurrencyError{ee}
	case sqlite3.ErrConstraint:
		return &ConstraintError{ee}
	case sqlite3.ErrMisuse:
		return &UsageError{Op: op, Engine: ee}
	}
	return ee
}
