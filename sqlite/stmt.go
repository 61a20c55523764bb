package sqlite

import (
	"context"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// State is the cursor state of a Statement.
type State int

const (
	// StateUnbound: prepared, nothing bound yet.
	StateUnbound State = iota
	// StateBound: at least one parameter bound, no iteration in progress.
	StateBound
	// StateExecuting: a Rows cursor is open.
	StateExecuting
	// StateError: the last operation failed; only Reset and Close are valid.
	StateError
	// StateClosed: finalized.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateBound:
		return "bound"
	case StateExecuting:
		return "executing"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result describes the effect of the last Exec.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// Statement is a compiled statement owned by a Connection. Parameters are
// bound by 1-based position and persist across executions until rebound or
// cleared, so the usual pattern is bind, Exec, bind, Exec.
//
// Bind and BindAt return the Statement so calls can be chained. The first
// failure in a chain is kept and returned by Err, Exec and the row
// iteration functions; after any failure the Statement must be Reset before
// it is used again.
type Statement struct {
	id     string
	conn   *Connection
	stmt   *sqlite3.SQLiteStmt
	sql    string
	slots  []Value
	bound  bool
	state  State
	err    error
	result Result
	cols   []string
}

func newStatement(c *Connection, st *sqlite3.SQLiteStmt, query string) *Statement {
	return &Statement{
		conn:  c,
		stmt:  st,
		sql:   query,
		slots: make([]Value, st.NumInput()),
	}
}

// SQL returns the text the statement was prepared from.
func (s *Statement) SQL() string { return s.sql }

// ParamCount returns the number of parameter slots.
func (s *Statement) ParamCount() int { return len(s.slots) }

// State returns the current cursor state.
func (s *Statement) State() State { return s.state }

// Err returns the failure recorded by the last chained call, if any.
func (s *Statement) Err() error { return s.err }

// Result returns the outcome of the last successful Exec.
func (s *Statement) Result() Result { return s.result }

// Columns returns the result column names. They are known once the
// statement has been iterated at least once.
func (s *Statement) Columns() []string { return s.cols }

// usable reports why op cannot run in the current state.
func (s *Statement) usable(op string) error {
	switch s.state {
	case StateClosed:
		return closedError(op, "statement")
	case StateError:
		return s.err
	case StateExecuting:
		return usageError(op, "row iteration in progress on %q", s.sql)
	}
	if s.conn.isClosed() {
		return closedError(op, "connection")
	}
	return nil
}

// fail records err as the sticky failure and moves to StateError.
func (s *Statement) fail(err error) error {
	s.err = err
	if s.state != StateClosed {
		s.state = StateError
	}
	return err
}

// idle returns the statement to the state it had before the last cursor or
// execution.
func (s *Statement) idle() {
	if s.bound {
		s.state = StateBound
	} else {
		s.state = StateUnbound
	}
}

// BindAt binds v to the 1-based parameter position. Binding outside
// 1..ParamCount fails with BindError and leaves existing bindings unchanged.
func (s *Statement) BindAt(position int, v any) *Statement {
	if err := s.usable("bind"); err != nil {
		s.fail(err)
		return s
	}
	if position < 1 || position > len(s.slots) {
		s.fail(&BindError{Position: position, Count: len(s.slots)})
		return s
	}
	val, err := Encode(v)
	if err != nil {
		s.fail(&BindError{Position: position, Count: len(s.slots), Err: err})
		return s
	}
	s.slots[position-1] = val
	s.bound = true
	s.state = StateBound
	return s
}

// Bind binds vs to positions 1..len(vs) in order. If position k fails,
// positions before k remain bound.
func (s *Statement) Bind(vs ...any) *Statement {
	for i, v := range vs {
		if s.BindAt(i+1, v).state == StateError {
			break
		}
	}
	return s
}

// ClearBindings sets every parameter back to NULL.
func (s *Statement) ClearBindings() *Statement {
	if err := s.usable("clear bindings"); err != nil {
		s.fail(err)
		return s
	}
	for i := range s.slots {
		s.slots[i] = Value{}
	}
	s.bound = false
	s.state = StateUnbound
	return s
}

// Exec runs the statement once with the current bindings and resets it.
// Rows produced by the statement are discarded; use the ForEach functions to
// read results. Bindings are kept for the next execution.
func (s *Statement) Exec() error {
	if err := s.usable("exec"); err != nil {
		return s.fail(err)
	}
	res, err := s.stmt.ExecContext(context.Background(), driverValues(s.slots))
	if err != nil {
		return s.fail(translate("exec", s.sql, err))
	}
	s.result = Result{}
	if n, err := res.RowsAffected(); err == nil {
		s.result.RowsAffected = n
	}
	if id, err := res.LastInsertId(); err == nil {
		s.result.LastInsertID = id
	}
	// A row-producing statement is left positioned on its first row.
	if err := s.rewind(); err != nil {
		return s.fail(translate("exec", s.sql, err))
	}
	s.idle()
	return nil
}

// rewind resets the native statement without stepping it. Opening a cursor
// rebinds the current slots and closing it resets the statement.
func (s *Statement) rewind() error {
	rows, err := s.stmt.QueryContext(context.Background(), driverValues(s.slots))
	if err != nil {
		return err
	}
	return rows.Close()
}

// Reset clears the cursor and any recorded failure. Bindings are kept.
func (s *Statement) Reset() error {
	if s.state == StateClosed {
		return closedError("reset", "statement")
	}
	if s.conn.isClosed() {
		return closedError("reset", "connection")
	}
	s.err = nil
	s.state = StateBound
	if err := s.rewind(); err != nil {
		return s.fail(translate("reset", s.sql, err))
	}
	s.idle()
	return nil
}

// Close finalizes the statement and removes it from its Connection. It is
// safe to call more than once.
func (s *Statement) Close() error {
	if s.state == StateClosed {
		return nil
	}
	s.conn.unregister(s)
	return s.finalize()
}

func (s *Statement) finalize() error {
	s.state = StateClosed
	if err := s.stmt.Close(); err != nil {
		err = translate("finalize", s.sql, err)
		s.conn.logger.Error("Failed to finalize statement", "id", s.id, "error", err)
		return err
	}
	return nil
}

func (s *Statement) strictNulls() bool {
	return s.conn.cfg.StrictNulls
}
