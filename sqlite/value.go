package sqlite

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strings"
	"time"
)

// Kind identifies the storage class of a Value.
type Kind uint8

const (
	Null Kind = iota
	Integer
	Real
	Text
	Blob
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "NULL"
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case Text:
		return "TEXT"
	case Blob:
		return "BLOB"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// TimestampFormat is the layout used when a time.Time is bound as Text. It
// matches the first layout the engine driver recognizes when reading
// timestamps back.
const TimestampFormat = "2006-01-02 15:04:05.999999999-07:00"

// timestampFormats are tried in order when decoding Text into a time.Time.
var timestampFormats = []string{
	TimestampFormat,
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Value is a single engine value: one of Null, Integer, Real, Text or Blob.
// The zero Value is Null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    []byte
}

// NullValue returns the Null value.
func NullValue() Value { return Value{} }

// IntegerValue returns an Integer value.
func IntegerValue(v int64) Value { return Value{kind: Integer, i: v} }

// RealValue returns a Real value.
func RealValue(v float64) Value { return Value{kind: Real, f: v} }

// TextValue returns a Text value.
func TextValue(v string) Value { return Value{kind: Text, s: v} }

// BlobValue returns a Blob value. A nil slice yields Null.
func BlobValue(v []byte) Value {
	if v == nil {
		return Value{}
	}
	return Value{kind: Blob, b: v}
}

// Kind returns the storage class of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == Null }

// Int64 returns the payload of an Integer value and 0 otherwise.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the payload of a Real value and 0 otherwise.
func (v Value) Float64() float64 { return v.f }

// Text returns the payload of a Text value and "" otherwise.
func (v Value) Text() string { return v.s }

// Blob returns the payload of a Blob value and nil otherwise.
func (v Value) Blob() []byte { return v.b }

// Interface returns the payload as one of nil, int64, float64, string or
// []byte. The result is always a valid driver.Value.
func (v Value) Interface() driver.Value {
	switch v.kind {
	case Integer:
		return v.i
	case Real:
		return v.f
	case Text:
		return v.s
	case Blob:
		return v.b
	}
	return nil
}

// Equal reports whether v and o hold the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Integer:
		return v.i == o.i
	case Real:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case Text:
		return v.s == o.s
	case Blob:
		return string(v.b) == string(o.b)
	}
	return true
}

func (v Value) String() string {
	switch v.kind {
	case Integer:
		return fmt.Sprintf("INTEGER(%d)", v.i)
	case Real:
		return fmt.Sprintf("REAL(%g)", v.f)
	case Text:
		return fmt.Sprintf("TEXT(%q)", v.s)
	case Blob:
		return fmt.Sprintf("BLOB(%d bytes)", len(v.b))
	}
	return "NULL"
}

// Encode converts a Go value into a Value for binding. Supported inputs are
// nil, every integer and float kind, bool, string, []byte, time.Time, Value,
// pointers to any of these and driver.Valuer implementations.
func Encode(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return v, nil
	case int:
		return IntegerValue(int64(v)), nil
	case int8:
		return IntegerValue(int64(v)), nil
	case int16:
		return IntegerValue(int64(v)), nil
	case int32:
		return IntegerValue(int64(v)), nil
	case int64:
		return IntegerValue(v), nil
	case uint:
		return encodeUint(uint64(v), x)
	case uint8:
		return IntegerValue(int64(v)), nil
	case uint16:
		return IntegerValue(int64(v)), nil
	case uint32:
		return IntegerValue(int64(v)), nil
	case uint64:
		return encodeUint(v, x)
	case float32:
		return RealValue(float64(v)), nil
	case float64:
		return RealValue(v), nil
	case bool:
		if v {
			return IntegerValue(1), nil
		}
		return IntegerValue(0), nil
	case string:
		return TextValue(v), nil
	case []byte:
		return BlobValue(v), nil
	case time.Time:
		return TextValue(v.Format(TimestampFormat)), nil
	case *int:
		if v == nil {
			return Value{}, nil
		}
		return IntegerValue(int64(*v)), nil
	case *int64:
		if v == nil {
			return Value{}, nil
		}
		return IntegerValue(*v), nil
	case *float64:
		if v == nil {
			return Value{}, nil
		}
		return RealValue(*v), nil
	case *string:
		if v == nil {
			return Value{}, nil
		}
		return TextValue(*v), nil
	case *bool:
		if v == nil {
			return Value{}, nil
		}
		return Encode(*v)
	case *time.Time:
		if v == nil {
			return Value{}, nil
		}
		return Encode(*v)
	case driver.Valuer:
		dv, err := v.Value()
		if err != nil {
			return Value{}, fmt.Errorf("sqlite: %T.Value: %w", x, err)
		}
		if _, again := dv.(driver.Valuer); again {
			return Value{}, &TypeMismatchError{Column: -1, From: fmt.Sprintf("%T", x), To: "value"}
		}
		return Encode(dv)
	}
	return Value{}, &TypeMismatchError{Column: -1, From: fmt.Sprintf("%T", x), To: "value"}
}

func encodeUint(u uint64, x any) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, &TypeMismatchError{Column: -1, From: fmt.Sprintf("%T", x), To: Integer.String(), Reason: "overflows int64"}
	}
	return IntegerValue(int64(u)), nil
}

// fromDriver classifies a value produced by the engine driver. The driver
// rewrites Integer and Text values read from columns declared DATE, DATETIME,
// TIMESTAMP or BOOLEAN into time.Time and bool, and the original value cannot
// be recovered from either. Those are reported as a TypeMismatchError naming
// the declared type.
func fromDriver(col int, decl string, dv driver.Value) (Value, error) {
	switch v := dv.(type) {
	case nil:
		return Value{}, nil
	case int64:
		return IntegerValue(v), nil
	case float64:
		return RealValue(v), nil
	case string:
		return TextValue(v), nil
	case []byte:
		if v == nil {
			return Value{kind: Blob, b: []byte{}}, nil
		}
		return Value{kind: Blob, b: v}, nil
	case bool, time.Time:
		return Value{}, &TypeMismatchError{
			Column: col,
			From:   strings.ToUpper(decl),
			To:     "Value",
			Reason: "the driver rewrites values of this declared type; select an expression such as col+0 or col||'' instead",
		}
	}
	return Value{}, &TypeMismatchError{Column: col, From: fmt.Sprintf("%T", dv), To: "Value"}
}

// driverValues converts bound slots into the argument list the engine driver
// expects. Ordinals are 1-based.
func driverValues(slots []Value) []driver.NamedValue {
	args := make([]driver.NamedValue, len(slots))
	for i, v := range slots {
		args[i] = driver.NamedValue{Ordinal: i + 1, Value: v.Interface()}
	}
	return args
}
