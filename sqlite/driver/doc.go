// Package driver implements database/sql/driver on top of the sqlite package,
// so code written against database/sql or sqlx shares the same engine
// binding, error types and value codec as code using sqlite directly.
//
// Usage:
//
//  1. Import the driver package. This registers the driver with the name
//     "sqlambda" and tells sqlx it uses "?" placeholders.
//     import _ "github.com/shaunharker/SQLambda/sqlite/driver"
//
//  2. Open a database. The DSN is the database path, or ":memory:".
//     db, err := sql.Open("sqlambda", "/var/lib/app/app.db")
//
//     Or, with options and sqlx:
//     db, err := driver.Connect(path, sqlite.WithForeignKeys())
//
//  3. Use the *sql.DB or *sqlx.DB as usual.
//
// Errors:
//
// Errors are the ones returned by the sqlite package, so errors.As with
// *sqlite.ConstraintError or *sqlite.ConcurrencyError works through
// database/sql.
//
// Implemented Interfaces:
//
// - driver.Driver, driver.DriverContext and driver.Connector
// - driver.Conn and driver.ExecerContext (parameterless scripts only)
// - driver.Stmt
// - driver.Tx
// - driver.Result
// - driver.Rows
//
// Limitations:
//
//   - Context cancellation is not forwarded to the engine; a running statement
//     completes or fails on its own.
//   - Only the default isolation level is supported.
//   - Result columns declared DATE, DATETIME, TIMESTAMP or BOOLEAN cannot be
//     read directly and fail with *sqlite.TypeMismatchError. Select an
//     expression such as col+0 or col||'' instead.
package driver
