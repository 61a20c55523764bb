package sqlite

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

// Connection is an open database session. It is not safe for concurrent use.
// Statements prepared from a Connection are finalized when it is closed.
type Connection struct {
	conn   *sqlite3.SQLiteConn
	path   string
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	stmts  map[string]*Statement // live statements keyed by id
	closed bool
}

// Open opens the database at path, or a private in-memory database for
// ":memory:". The file is created when missing unless
// WithCreateIfMissing(false) is given.
func Open(path string, opts ...Option) (*Connection, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger()

	drv := &sqlite3.SQLiteDriver{}
	raw, err := drv.Open(cfg.dsn(path))
	if err != nil {
		return nil, &ConnectionError{Path: path, Err: translate("open", "", err)}
	}
	sc := raw.(*sqlite3.SQLiteConn)

	// The engine defers reading the file until first use; touch the header
	// so an unreadable or foreign file fails here rather than later.
	if _, err := sc.ExecContext(context.Background(), "PRAGMA schema_version", nil); err != nil {
		cerr := sc.Close()
		if cerr != nil {
			logger.Error("Failed to close rejected database", "path", path, "error", cerr)
		}
		return nil, &ConnectionError{Path: path, Err: translate("open", "", err)}
	}

	logger.Debug("Opened database", "path", path, "read_only", cfg.ReadOnly)
	return &Connection{
		conn:   sc,
		path:   path,
		cfg:    cfg,
		logger: logger,
		stmts:  make(map[string]*Statement),
	}, nil
}

// Path returns the path the Connection was opened with.
func (c *Connection) Path() string { return c.path }

func (c *Connection) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Execute runs sql, which may hold several statements separated by
// semicolons, without parameters and discarding any rows.
func (c *Connection) Execute(sql string) error {
	if c.isClosed() {
		return &StatementError{SQL: sql, Err: closedError("execute", "connection")}
	}
	if _, err := c.conn.ExecContext(context.Background(), sql, nil); err != nil {
		return &StatementError{SQL: sql, Err: translate("execute", sql, err)}
	}
	return nil
}

// Prepare compiles sql into a reusable Statement. The Statement must be
// closed by the caller; any left open are finalized by Close.
func (c *Connection) Prepare(sql string) (*Statement, error) {
	if c.isClosed() {
		return nil, &StatementError{SQL: sql, Err: closedError("prepare", "connection")}
	}
	if strings.TrimSpace(sql) == "" {
		return nil, &StatementError{SQL: sql, Err: usageError("prepare", "empty statement")}
	}
	ds, err := c.conn.Prepare(sql)
	if err != nil {
		return nil, &StatementError{SQL: sql, Err: translate("prepare", sql, err)}
	}
	s := newStatement(c, ds.(*sqlite3.SQLiteStmt), sql)
	c.register(s)
	c.logger.Debug("Prepared statement", "id", s.id, "params", len(s.slots))
	return s, nil
}

func (c *Connection) register(s *Statement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s.id = uuid.NewString()
	c.stmts[s.id] = s
}

func (c *Connection) unregister(s *Statement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.stmts, s.id)
}

// Begin starts a deferred transaction.
func (c *Connection) Begin() error { return c.Execute("BEGIN") }

// Commit commits the current transaction.
func (c *Connection) Commit() error { return c.Execute("COMMIT") }

// Rollback abandons the current transaction.
func (c *Connection) Rollback() error { return c.Execute("ROLLBACK") }

// InTransaction reports whether a transaction is open.
func (c *Connection) InTransaction() bool {
	if c.isClosed() {
		return false
	}
	return !c.conn.AutoCommit()
}

// WithTx runs fn inside a transaction. It commits when fn returns nil and
// rolls back when fn returns an error or panics.
func (c *Connection) WithTx(fn func() error) (err error) {
	if err := c.Begin(); err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			c.rollbackQuietly()
			panic(p)
		}
		if err != nil {
			c.rollbackQuietly()
		}
	}()
	if err = fn(); err != nil {
		return err
	}
	return c.Commit()
}

func (c *Connection) rollbackQuietly() {
	if !c.InTransaction() {
		return
	}
	if err := c.Rollback(); err != nil {
		c.logger.Error("Failed to roll back transaction", "path", c.path, "error", err)
	}
}

// Close finalizes every statement still open, then closes the session. It is
// safe to call more than once and after failed operations. Release failures
// are logged and joined into the returned error.
func (c *Connection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	leaked := make([]*Statement, 0, len(c.stmts))
	for _, s := range c.stmts {
		leaked = append(leaked, s)
	}
	c.stmts = nil
	c.closed = true
	c.mu.Unlock()

	var errs []error
	for _, s := range leaked {
		c.logger.Warn("Finalizing statement left open at close", "id", s.id, "sql", s.sql)
		if err := s.finalize(); err != nil {
			errs = append(errs, err)
		}
	}
	if !c.conn.AutoCommit() {
		c.logger.Warn("Closing with an open transaction, uncommitted work is rolled back", "path", c.path)
	}

	if err := c.conn.Close(); err != nil {
		err = translate("close", "", err)
		c.logger.Error("Failed to close database", "path", c.path, "error", err)
		errs = append(errs, err)
	}
	c.logger.Debug("Closed database", "path", c.path)
	return errors.Join(errs...)
}
