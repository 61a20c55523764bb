package sqlite

import (
	"errors"
	"testing"
)

func TestInsertRows(t *testing.T) {
	db, dbPath := setupTestDB(t)

	s, err := db.Prepare("insert into test (name, data) values (?, ?);")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	defer s.Close()

	if s.ParamCount() != 2 {
		t.Errorf("ParamCount() = %d, want 2", s.ParamCount())
	}
	if s.State() != StateUnbound {
		t.Errorf("State() = %v, want unbound", s.State())
	}
	if err := s.Bind(0, 0.0).Exec(); err != nil {
		t.Fatalf("first Exec failed: %v", err)
	}
	if s.State() != StateBound {
		t.Errorf("State() after Exec = %v, want bound", s.State())
	}
	if err := s.Bind(1, 1.0).Exec(); err != nil {
		t.Fatalf("second Exec failed: %v", err)
	}
	if r := s.Result(); r.RowsAffected != 1 || r.LastInsertID != 2 {
		t.Errorf("Result() = %+v, want 1 row at id 2", r)
	}

	type row struct {
		Name int64   `db:"name"`
		Data float64 `db:"data"`
	}
	var got []row
	if err := oracle(t, dbPath).Select(&got, "SELECT name, data FROM test ORDER BY rowid"); err != nil {
		t.Fatalf("oracle select failed: %v", err)
	}
	want := []row{{0, 0.0}, {1, 1.0}}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestExecKeepsBindings(t *testing.T) {
	db, dbPath := setupTestDB(t)

	s, err := db.Prepare("insert into test (name, data) values (?, ?)")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	defer s.Close()

	s.Bind(7, 7.5)
	for i := 0; i < 3; i++ {
		if err := s.Exec(); err != nil {
			t.Fatalf("Exec %d failed: %v", i, err)
		}
	}

	var count int
	if err := oracle(t, dbPath).Get(&count, "SELECT COUNT(*) FROM test WHERE name = 7 AND data = 7.5"); err != nil {
		t.Fatalf("oracle count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	s.ClearBindings()
	if s.State() != StateUnbound {
		t.Errorf("State() after ClearBindings = %v, want unbound", s.State())
	}
	if err := s.Exec(); err != nil {
		t.Fatalf("Exec with cleared bindings failed: %v", err)
	}
	var nulls int
	if err := oracle(t, dbPath).Get(&nulls, "SELECT COUNT(*) FROM test WHERE name IS NULL AND data IS NULL"); err != nil {
		t.Fatalf("oracle count failed: %v", err)
	}
	if nulls != 1 {
		t.Errorf("null rows = %d, want 1", nulls)
	}
}

func TestExecResetsRowStatement(t *testing.T) {
	db, _ := setupTestDB(t)
	fillTestTable(t, db, 3)

	s, err := db.Prepare("select * from test")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	defer s.Close()

	if err := s.Exec(); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if s.State() != StateUnbound {
		t.Errorf("State() after Exec = %v, want unbound", s.State())
	}
	// A cursor left open by Exec would hold a lock on the table.
	if err := db.Execute("drop table test;"); err != nil {
		t.Fatalf("drop table after Exec failed: %v", err)
	}
}

func TestBindOutOfRange(t *testing.T) {
	db, _ := setupTestDB(t)

	s, err := db.Prepare("insert into test (name, data) values (?, ?)")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	defer s.Close()

	err = s.Bind(1, 1.0, "extra").Exec()
	var be *BindError
	if !errors.As(err, &be) {
		t.Fatalf("Exec error = %v, want *BindError", err)
	}
	if be.Position != 3 || be.Count != 2 {
		t.Errorf("BindError = %+v, want position 3 of 2", be)
	}
	if s.State() != StateError {
		t.Errorf("State() = %v, want error", s.State())
	}
	if !errors.As(s.Err(), &be) {
		t.Errorf("Err() = %v, want the recorded BindError", s.Err())
	}

	// Every operation keeps failing until Reset.
	if err := s.BindAt(1, 5).Exec(); !errors.As(err, &be) {
		t.Errorf("Exec before Reset = %v, want the recorded BindError", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if s.State() != StateBound {
		t.Errorf("State() after Reset = %v, want bound", s.State())
	}
	if err := s.Exec(); err != nil {
		t.Fatalf("Exec after Reset failed: %v", err)
	}

	calls := 0
	q, err := db.Prepare("select name, data from test")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	defer q.Close()
	err = ForEach2(q, func(name int64, data float64) {
		calls++
		if name != 1 || data != 1.0 {
			t.Errorf("row = (%d, %v), want the bindings kept from before the failure", name, data)
		}
	})
	if err != nil {
		t.Fatalf("ForEach2 failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBindPositionZero(t *testing.T) {
	db, _ := setupTestDB(t)

	s, err := db.Prepare("select * from test where name = ?")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	defer s.Close()

	var be *BindError
	if err := s.BindAt(0, 1).Err(); !errors.As(err, &be) || be.Position != 0 {
		t.Errorf("BindAt(0) error = %v, want *BindError at 0", err)
	}
}

func TestBindUnsupportedType(t *testing.T) {
	db, _ := setupTestDB(t)

	s, err := db.Prepare("insert into test (name, data) values (?, ?)")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	defer s.Close()

	err = s.Bind(1, struct{ X int }{1}).Err()
	var be *BindError
	var tm *TypeMismatchError
	if !errors.As(err, &be) || !errors.As(err, &tm) {
		t.Fatalf("Bind error = %v, want *BindError wrapping *TypeMismatchError", err)
	}
	if be.Position != 2 {
		t.Errorf("BindError.Position = %d, want 2", be.Position)
	}
}

func TestExecConstraintViolation(t *testing.T) {
	db, _ := setupTestDB(t)
	if err := db.Execute("create table people (id integer primary key, email text not null unique);"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	s, err := db.Prepare("insert into people (email) values (?)")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	defer s.Close()

	if err := s.Bind("a@example.com").Exec(); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	err = s.Exec()
	var ce *ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("duplicate insert error = %v, want *ConstraintError", err)
	}
	if ce.Op != "exec" {
		t.Errorf("ConstraintError.Op = %q, want exec", ce.Op)
	}
	if s.State() != StateError {
		t.Errorf("State() = %v, want error", s.State())
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if err := s.Bind("b@example.com").Exec(); err != nil {
		t.Fatalf("insert after Reset failed: %v", err)
	}

	err = s.Bind(nil).Exec()
	if !errors.As(err, &ce) {
		t.Errorf("null insert error = %v, want *ConstraintError", err)
	}
}

func TestStatementClose(t *testing.T) {
	db, _ := setupTestDB(t)

	s, err := db.Prepare("select name from test")
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if s.State() != StateClosed {
		t.Errorf("State() = %v, want closed", s.State())
	}

	var ue *UsageError
	if err := s.Exec(); !errors.As(err, &ue) || !errors.Is(err, ErrClosed) {
		t.Errorf("Exec after Close = %v, want closed *UsageError", err)
	}
	if err := ForEach1(s, func(int) {}); !errors.Is(err, ErrClosed) {
		t.Errorf("ForEach1 after Close = %v, want ErrClosed", err)
	}
	if err := s.Reset(); !errors.Is(err, ErrClosed) {
		t.Errorf("Reset after Close = %v, want ErrClosed", err)
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateUnbound:   "unbound",
		StateBound:     "bound",
		StateExecuting: "executing",
		StateError:     "error",
		StateClosed:    "closed",
		State(42):      "State(42)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
