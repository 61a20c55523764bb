package driver

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/shaunharker/SQLambda/sqlite"
)

const driverName = "sqlambda"

func init() {
	sql.Register(driverName, &Driver{})
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// --- Driver implementation ---

// Driver opens connections backed by sqlite.Connection. The data source name
// is the database path.
type Driver struct{}

// Open returns a new connection to the database at name.
func (d *Driver) Open(name string) (driver.Conn, error) {
	return open(name, nil)
}

// OpenConnector returns a Connector for name, used by sql.OpenDB.
func (d *Driver) OpenConnector(name string) (driver.Connector, error) {
	return &Connector{path: name}, nil
}

func open(path string, opts []sqlite.Option) (driver.Conn, error) {
	db, err := sqlite.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	return &Conn{db: db}, nil
}

// Connector opens connections with a fixed set of sqlite.Options.
type Connector struct {
	path string
	opts []sqlite.Option
}

// NewConnector returns a Connector that opens path with opts.
func NewConnector(path string, opts ...sqlite.Option) *Connector {
	return &Connector{path: path, opts: opts}
}

// Connect opens a new connection.
func (c *Connector) Connect(context.Context) (driver.Conn, error) {
	return open(c.path, c.opts)
}

// Driver returns the underlying Driver.
func (c *Connector) Driver() driver.Driver {
	return &Driver{}
}

// --- Connection implementation ---

// Conn implements driver.Conn on top of a sqlite.Connection.
type Conn struct {
	db *sqlite.Connection
	tx *Tx
}

// Prepare returns a prepared statement.
func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	s, err := c.db.Prepare(query)
	if err != nil {
		return nil, err
	}
	return &Stmt{stmt: s}, nil
}

// ExecContext runs parameterless scripts directly so that schema files with
// several statements work through sql.DB.Exec. Anything with arguments goes
// through Prepare.
func (c *Conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if len(args) > 0 {
		return nil, driver.ErrSkip
	}
	if err := c.db.Execute(query); err != nil {
		return nil, err
	}
	return result{}, nil
}

// Close finalizes any statements still open and closes the connection.
func (c *Conn) Close() error {
	return c.db.Close()
}

// Begin starts a transaction.
func (c *Conn) Begin() (driver.Tx, error) {
	if c.tx != nil {
		return nil, fmt.Errorf("sqlambda: transaction already active on this connection")
	}
	if err := c.db.Begin(); err != nil {
		return nil, err
	}
	c.tx = &Tx{conn: c}
	return c.tx, nil
}

// --- Statement implementation ---

// Stmt implements driver.Stmt on top of a sqlite.Statement.
type Stmt struct {
	stmt *sqlite.Statement
}

// Close finalizes the statement.
func (s *Stmt) Close() error {
	return s.stmt.Close()
}

// NumInput returns the number of placeholder parameters.
func (s *Stmt) NumInput() int {
	return s.stmt.ParamCount()
}

// bind replaces every binding with args. A statement left failed by an
// earlier call is reset first; database/sql has no way to do that itself.
func (s *Stmt) bind(args []driver.Value) error {
	if s.stmt.State() == sqlite.StateError {
		if err := s.stmt.Reset(); err != nil {
			return err
		}
	}
	vs := make([]any, len(args))
	for i, v := range args {
		vs[i] = v
	}
	return s.stmt.ClearBindings().Bind(vs...).Err()
}

// Exec executes the statement with the given arguments.
func (s *Stmt) Exec(args []driver.Value) (driver.Result, error) {
	if err := s.bind(args); err != nil {
		return nil, err
	}
	if err := s.stmt.Exec(); err != nil {
		return nil, err
	}
	return result{res: s.stmt.Result()}, nil
}

// Query executes the statement with the given arguments and returns a cursor.
func (s *Stmt) Query(args []driver.Value) (driver.Rows, error) {
	if err := s.bind(args); err != nil {
		return nil, err
	}
	rows, err := s.stmt.Rows()
	if err != nil {
		return nil, err
	}
	return &Rows{rows: rows}, nil
}

// --- Transaction implementation ---

// Tx implements driver.Tx.
type Tx struct {
	conn *Conn
}

// Commit commits the transaction.
func (t *Tx) Commit() error {
	t.conn.tx = nil
	return t.conn.db.Commit()
}

// Rollback aborts the transaction. The engine may already have rolled back
// after an error, in which case there is nothing left to do.
func (t *Tx) Rollback() error {
	t.conn.tx = nil
	if !t.conn.db.InTransaction() {
		return nil
	}
	return t.conn.db.Rollback()
}

// --- Result implementation ---

type result struct {
	res sqlite.Result
}

func (r result) LastInsertId() (int64, error) {
	return r.res.LastInsertID, nil
}

func (r result) RowsAffected() (int64, error) {
	return r.res.RowsAffected, nil
}

// --- Rows implementation ---

// Rows implements driver.Rows over a sqlite.Rows cursor.
type Rows struct {
	rows *sqlite.Rows
}

// Columns returns the result column names.
func (r *Rows) Columns() []string {
	return r.rows.Columns()
}

// Close resets the underlying statement.
func (r *Rows) Close() error {
	return r.rows.Close()
}

// Next populates dest with the next row and returns io.EOF when the result
// set is exhausted.
func (r *Rows) Next(dest []driver.Value) error {
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return err
		}
		return io.EOF
	}
	row := r.rows.Row()
	for i := range dest {
		dest[i] = row.Value(i).Interface()
	}
	return nil
}
