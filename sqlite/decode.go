package sqlite

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column is the set of Go types a row handler may declare for a result
// column. Pointer and sql.Null* targets are nullable: NULL decodes to nil or
// an invalid Null* value. Value and []byte are nullable as well. Every other
// target receives its zero value for NULL, or a NullConversionError when the
// connection was opened with strict nulls.
type Column interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | bool | string | []byte | time.Time | Value |
		*int64 | *float64 | *string | *bool | *time.Time |
		sql.NullInt64 | sql.NullInt32 | sql.NullFloat64 | sql.NullString | sql.NullBool | sql.NullTime
}

// Decode converts v into T following the codec's coercion table. NULL into a
// non-nullable T yields the zero value.
func Decode[T Column](v Value) (T, error) {
	return decoderFor[T](-1, false)(v)
}

// decoderFor selects the conversion for T once; the returned func is then
// applied to every row. col is only used for error reporting.
func decoderFor[T Column](col int, strict bool) func(Value) (T, error) {
	var zero T
	var dec any
	switch any(zero).(type) {
	case int:
		dec = scalar(col, strict, "int", func(v Value) (int, error) {
			n, err := asInt(v, col, "int", math.MinInt, math.MaxInt)
			return int(n), err
		})
	case int8:
		dec = scalar(col, strict, "int8", func(v Value) (int8, error) {
			n, err := asInt(v, col, "int8", math.MinInt8, math.MaxInt8)
			return int8(n), err
		})
	case int16:
		dec = scalar(col, strict, "int16", func(v Value) (int16, error) {
			n, err := asInt(v, col, "int16", math.MinInt16, math.MaxInt16)
			return int16(n), err
		})
	case int32:
		dec = scalar(col, strict, "int32", func(v Value) (int32, error) {
			n, err := asInt(v, col, "int32", math.MinInt32, math.MaxInt32)
			return int32(n), err
		})
	case int64:
		dec = scalar(col, strict, "int64", func(v Value) (int64, error) {
			return asInt(v, col, "int64", math.MinInt64, math.MaxInt64)
		})
	case uint:
		dec = scalar(col, strict, "uint", func(v Value) (uint, error) {
			n, err := asUint(v, col, "uint", math.MaxUint)
			return uint(n), err
		})
	case uint8:
		dec = scalar(col, strict, "uint8", func(v Value) (uint8, error) {
			n, err := asUint(v, col, "uint8", math.MaxUint8)
			return uint8(n), err
		})
	case uint16:
		dec = scalar(col, strict, "uint16", func(v Value) (uint16, error) {
			n, err := asUint(v, col, "uint16", math.MaxUint16)
			return uint16(n), err
		})
	case uint32:
		dec = scalar(col, strict, "uint32", func(v Value) (uint32, error) {
			n, err := asUint(v, col, "uint32", math.MaxUint32)
			return uint32(n), err
		})
	case uint64:
		dec = scalar(col, strict, "uint64", func(v Value) (uint64, error) {
			return asUint(v, col, "uint64", math.MaxUint64)
		})
	case float32:
		dec = scalar(col, strict, "float32", func(v Value) (float32, error) {
			f, err := asFloat(v, col, "float32")
			return float32(f), err
		})
	case float64:
		dec = scalar(col, strict, "float64", func(v Value) (float64, error) {
			return asFloat(v, col, "float64")
		})
	case bool:
		dec = scalar(col, strict, "bool", func(v Value) (bool, error) {
			return asBool(v, col, "bool")
		})
	case string:
		dec = scalar(col, strict, "string", func(v Value) (string, error) {
			return asString(v, col, "string")
		})
	case time.Time:
		dec = scalar(col, strict, "time.Time", func(v Value) (time.Time, error) {
			return asTime(v, col, "time.Time")
		})
	case []byte:
		dec = func(v Value) ([]byte, error) {
			if v.kind == Null {
				return nil, nil
			}
			return asBytes(v, col, "[]byte")
		}
	case Value:
		dec = func(v Value) (Value, error) { return v, nil }
	case *int64:
		dec = nullable(func(v Value) (int64, error) {
			return asInt(v, col, "*int64", math.MinInt64, math.MaxInt64)
		})
	case *float64:
		dec = nullable(func(v Value) (float64, error) { return asFloat(v, col, "*float64") })
	case *string:
		dec = nullable(func(v Value) (string, error) { return asString(v, col, "*string") })
	case *bool:
		dec = nullable(func(v Value) (bool, error) { return asBool(v, col, "*bool") })
	case *time.Time:
		dec = nullable(func(v Value) (time.Time, error) { return asTime(v, col, "*time.Time") })
	case sql.NullInt64:
		dec = func(v Value) (sql.NullInt64, error) {
			if v.kind == Null {
				return sql.NullInt64{}, nil
			}
			n, err := asInt(v, col, "sql.NullInt64", math.MinInt64, math.MaxInt64)
			return sql.NullInt64{Int64: n, Valid: err == nil}, err
		}
	case sql.NullInt32:
		dec = func(v Value) (sql.NullInt32, error) {
			if v.kind == Null {
				return sql.NullInt32{}, nil
			}
			n, err := asInt(v, col, "sql.NullInt32", math.MinInt32, math.MaxInt32)
			return sql.NullInt32{Int32: int32(n), Valid: err == nil}, err
		}
	case sql.NullFloat64:
		dec = func(v Value) (sql.NullFloat64, error) {
			if v.kind == Null {
				return sql.NullFloat64{}, nil
			}
			f, err := asFloat(v, col, "sql.NullFloat64")
			return sql.NullFloat64{Float64: f, Valid: err == nil}, err
		}
	case sql.NullString:
		dec = func(v Value) (sql.NullString, error) {
			if v.kind == Null {
				return sql.NullString{}, nil
			}
			s, err := asString(v, col, "sql.NullString")
			return sql.NullString{String: s, Valid: err == nil}, err
		}
	case sql.NullBool:
		dec = func(v Value) (sql.NullBool, error) {
			if v.kind == Null {
				return sql.NullBool{}, nil
			}
			b, err := asBool(v, col, "sql.NullBool")
			return sql.NullBool{Bool: b, Valid: err == nil}, err
		}
	case sql.NullTime:
		dec = func(v Value) (sql.NullTime, error) {
			if v.kind == Null {
				return sql.NullTime{}, nil
			}
			t, err := asTime(v, col, "sql.NullTime")
			return sql.NullTime{Time: t, Valid: err == nil}, err
		}
	}
	return dec.(func(Value) (T, error))
}

// scalar wraps conv with the null policy for a non-nullable target.
func scalar[T any](col int, strict bool, to string, conv func(Value) (T, error)) func(Value) (T, error) {
	return func(v Value) (T, error) {
		if v.kind == Null {
			var zero T
			if strict {
				return zero, &NullConversionError{Column: col, To: to}
			}
			return zero, nil
		}
		return conv(v)
	}
}

// nullable lifts conv to a pointer target that is nil for NULL.
func nullable[T any](conv func(Value) (T, error)) func(Value) (*T, error) {
	return func(v Value) (*T, error) {
		if v.kind == Null {
			return nil, nil
		}
		x, err := conv(v)
		if err != nil {
			return nil, err
		}
		return &x, nil
	}
}

func mismatch(col int, from Kind, to, reason string) error {
	return &TypeMismatchError{Column: col, From: from.String(), To: to, Reason: reason}
}

// asInt converts Integer, and Real truncated toward zero, to an integer within
// [lo, hi]. Text is never parsed.
func asInt(v Value, col int, to string, lo, hi int64) (int64, error) {
	switch v.kind {
	case Integer:
		if v.i < lo || v.i > hi {
			return 0, mismatch(col, v.kind, to, "value "+strconv.FormatInt(v.i, 10)+" out of range")
		}
		return v.i, nil
	case Real:
		return truncInt(v.f, v.kind, col, to, lo, hi)
	}
	return 0, mismatch(col, v.kind, to, "")
}

func truncInt(f float64, from Kind, col int, to string, lo, hi int64) (int64, error) {
	f = math.Trunc(f)
	if math.IsNaN(f) || f < float64(lo) || f >= float64(hi)+1 {
		return 0, mismatch(col, from, to, "value "+strconv.FormatFloat(f, 'g', -1, 64)+" out of range")
	}
	return int64(f), nil
}

func asUint(v Value, col int, to string, hi uint64) (uint64, error) {
	switch v.kind {
	case Integer:
		if v.i < 0 || uint64(v.i) > hi {
			return 0, mismatch(col, v.kind, to, "value "+strconv.FormatInt(v.i, 10)+" out of range")
		}
		return uint64(v.i), nil
	case Real:
		return truncUint(v.f, v.kind, col, to, hi)
	}
	return 0, mismatch(col, v.kind, to, "")
}

func truncUint(f float64, from Kind, col int, to string, hi uint64) (uint64, error) {
	f = math.Trunc(f)
	if math.IsNaN(f) || f < 0 || f >= float64(hi)+1 {
		return 0, mismatch(col, from, to, "value "+strconv.FormatFloat(f, 'g', -1, 64)+" out of range")
	}
	return uint64(f), nil
}

func asFloat(v Value, col int, to string) (float64, error) {
	switch v.kind {
	case Integer:
		return float64(v.i), nil
	case Real:
		return v.f, nil
	}
	return 0, mismatch(col, v.kind, to, "")
}

func asBool(v Value, col int, to string) (bool, error) {
	switch v.kind {
	case Integer:
		return v.i != 0, nil
	}
	return false, mismatch(col, v.kind, to, "")
}

func asString(v Value, col int, to string) (string, error) {
	switch v.kind {
	case Text:
		return v.s, nil
	case Blob:
		return string(v.b), nil
	}
	return "", mismatch(col, v.kind, to, "")
}

func asBytes(v Value, col int, to string) ([]byte, error) {
	switch v.kind {
	case Blob:
		return v.b, nil
	case Text:
		return []byte(v.s), nil
	}
	return nil, mismatch(col, v.kind, to, "")
}

// asTime parses Text in the engine's timestamp layouts and reads Integer as
// Unix seconds.
func asTime(v Value, col int, to string) (time.Time, error) {
	switch v.kind {
	case Integer:
		return time.Unix(v.i, 0).UTC(), nil
	case Text:
		s := strings.TrimSuffix(strings.TrimSpace(v.s), "Z")
		for _, layout := range timestampFormats {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, nil
			}
		}
		return time.Time{}, mismatch(col, v.kind, to, "text is not a timestamp")
	}
	return time.Time{}, mismatch(col, v.kind, to, "")
}
