package sqlite

import (
	"context"
	"database/sql/driver"
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Row is the current result row of a cursor. It is only valid until the
// cursor advances.
type Row struct {
	values  []Value
	columns []string
	strict  bool
}

// Len returns the number of columns in the row.
func (r *Row) Len() int { return len(r.values) }

// Columns returns the column names.
func (r *Row) Columns() []string { return r.columns }

// Value returns column i (0-based).
func (r *Row) Value(i int) Value { return r.values[i] }

// Values returns a copy of every column in the row.
func (r *Row) Values() []Value {
	out := make([]Value, len(r.values))
	copy(out, r.values)
	return out
}

// Scan stores successive columns into the pointers in dst. Nil entries are
// skipped. Supported targets are *int, *int64, *float64, *bool, *string,
// *[]byte, *time.Time, *Value and *any.
func (r *Row) Scan(dst ...any) error {
	if len(dst) > len(r.values) {
		return usageError("scan", "%d targets for %d columns", len(dst), len(r.values))
	}
	for i, d := range dst {
		if d == nil {
			continue
		}
		if err := r.scanOne(i, d); err != nil {
			return err
		}
	}
	return nil
}

func (r *Row) scanOne(i int, d any) error {
	v := r.values[i]
	var err error
	switch p := d.(type) {
	case *Value:
		*p = v
	case *any:
		*p = v.Interface()
	case *int:
		*p, err = decoderFor[int](i, r.strict)(v)
	case *int64:
		*p, err = decoderFor[int64](i, r.strict)(v)
	case *float64:
		*p, err = decoderFor[float64](i, r.strict)(v)
	case *bool:
		*p, err = decoderFor[bool](i, r.strict)(v)
	case *string:
		*p, err = decoderFor[string](i, r.strict)(v)
	case *[]byte:
		*p, err = decoderFor[[]byte](i, r.strict)(v)
	case *time.Time:
		*p, err = decoderFor[time.Time](i, r.strict)(v)
	default:
		return &TypeMismatchError{Column: i, From: v.Kind().String(), To: fmt.Sprintf("%T", d)}
	}
	return err
}

// Rows is a forward-only cursor over a Statement's result set. While it is
// open the Statement is in StateExecuting.
type Rows struct {
	stmt *Statement
	rows *sqlite3.SQLiteRows
	decl []string
	dest []driver.Value
	row  Row
	done bool
	err  error
}

// Rows opens a cursor with the current bindings. Nothing is stepped until
// Next is called. The caller must Close the cursor or drain it.
func (s *Statement) Rows() (*Rows, error) {
	if err := s.usable("query"); err != nil {
		return nil, s.fail(err)
	}
	dr, err := s.stmt.QueryContext(context.Background(), driverValues(s.slots))
	if err != nil {
		return nil, s.fail(translate("query", s.sql, err))
	}
	sr := dr.(*sqlite3.SQLiteRows)
	cols := sr.Columns()
	s.cols = cols
	s.state = StateExecuting
	return &Rows{
		stmt: s,
		rows: sr,
		decl: sr.DeclTypes(),
		dest: make([]driver.Value, len(cols)),
		row: Row{
			values:  make([]Value, len(cols)),
			columns: cols,
			strict:  s.strictNulls(),
		},
	}, nil
}

// Next steps the cursor. It returns false when the result set is exhausted
// or the engine reported an error; Err distinguishes the two.
func (r *Rows) Next() bool {
	if r.done {
		return false
	}
	err := r.rows.Next(r.dest)
	if err == io.EOF {
		r.finish(nil)
		return false
	}
	if err != nil {
		r.finish(translate("step", r.stmt.sql, err))
		return false
	}
	for i, dv := range r.dest {
		v, err := fromDriver(i, r.decl[i], dv)
		if err != nil {
			// Conversion failures leave the statement usable.
			r.finish(nil)
			r.err = err
			return false
		}
		r.row.values[i] = v
	}
	return true
}

// Row returns the current row.
func (r *Rows) Row() *Row { return &r.row }

// Columns returns the result column names.
func (r *Rows) Columns() []string { return r.row.columns }

// Err returns the engine error that stopped iteration, if any.
func (r *Rows) Err() error { return r.err }

// Close resets the statement so it can be rebound and executed again. It is
// safe to call more than once.
func (r *Rows) Close() error {
	if !r.done {
		r.finish(nil)
	}
	return r.err
}

// finish resets the native cursor. A reset failure is only reported when no
// earlier error is pending; otherwise it is logged.
func (r *Rows) finish(err error) {
	r.done = true
	r.err = err
	if r.stmt.state == StateClosed {
		return
	}
	if cerr := r.rows.Close(); cerr != nil {
		cerr = translate("reset", r.stmt.sql, cerr)
		if r.err == nil {
			r.err = cerr
		} else {
			r.stmt.conn.logger.Error("Failed to reset statement after error",
				"id", r.stmt.id, "error", cerr, "cause", r.err)
		}
	}
	if r.err != nil {
		r.stmt.fail(r.err)
		return
	}
	if r.stmt.state == StateExecuting {
		r.stmt.idle()
	}
}

// ForEachRow calls fn for every result row. Iteration stops at the first
// non-nil error from fn, which is returned unchanged.
func (s *Statement) ForEachRow(fn func(*Row) error) error {
	return s.dispatch(0, fn)
}

// dispatch drives the cursor and hands each row to each. arity is the number
// of leading columns each expects to be present.
func (s *Statement) dispatch(arity int, each func(*Row) error) error {
	rows, err := s.Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	if n := len(rows.row.columns); n < arity {
		rows.Close()
		return usageError("foreach", "handler takes %d columns but %q yields %d", arity, s.sql, n)
	}
	for rows.Next() {
		if err := each(&rows.row); err != nil {
			if cerr := rows.Close(); cerr != nil {
				s.conn.logger.Error("Failed to reset statement after handler error",
					"id", s.id, "error", cerr, "cause", err)
			}
			return err
		}
	}
	return rows.Err()
}

// Query is a convenience wrapper: it prepares query, binds args, runs fn for
// every row and closes the statement.
func (c *Connection) Query(query string, fn func(*Row) error, args ...any) (err error) {
	s, err := c.Prepare(query)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := s.Bind(args...).Err(); err != nil {
		return err
	}
	return s.ForEachRow(fn)
}
