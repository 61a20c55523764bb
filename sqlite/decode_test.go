package sqlite

import (
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"
)

func TestDecodeIntegers(t *testing.T) {
	tests := []struct {
		name    string
		in      Value
		want    int64
		wantErr bool
	}{
		{"integer", IntegerValue(-12), -12, false},
		{"real truncates toward zero", RealValue(-2.9), -2, false},
		{"real positive", RealValue(7.99), 7, false},
		{"text", TextValue("12"), 0, true},
		{"text non numeric", TextValue("abc"), 0, true},
		{"blob", BlobValue([]byte{1}), 0, true},
		{"real out of range", RealValue(1e19), 0, true},
		{"nan", RealValue(math.NaN()), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[int64](tt.in)
			if tt.wantErr {
				var tm *TypeMismatchError
				if !errors.As(err, &tm) {
					t.Fatalf("Decode[int64](%v) error = %v, want *TypeMismatchError", tt.in, err)
				}
				if tm.From != tt.in.Kind().String() || tm.To != "int64" {
					t.Errorf("TypeMismatchError = %+v", tm)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode[int64](%v) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Decode[int64](%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeRanges(t *testing.T) {
	if _, err := Decode[int8](IntegerValue(128)); err == nil {
		t.Error("Decode[int8](128) succeeded")
	}
	if got, err := Decode[int8](IntegerValue(-128)); err != nil || got != -128 {
		t.Errorf("Decode[int8](-128) = %d, %v", got, err)
	}
	if _, err := Decode[uint16](IntegerValue(-1)); err == nil {
		t.Error("Decode[uint16](-1) succeeded")
	}
	if got, err := Decode[uint64](IntegerValue(math.MaxInt64)); err != nil || got != math.MaxInt64 {
		t.Errorf("Decode[uint64](MaxInt64) = %d, %v", got, err)
	}
	if _, err := Decode[int32](RealValue(3e9)); err == nil {
		t.Error("Decode[int32](3e9) succeeded")
	}
	if got, err := Decode[uint8](RealValue(255.5)); err != nil || got != 255 {
		t.Errorf("Decode[uint8](255.5) = %d, %v", got, err)
	}
}

func TestDecodeFloats(t *testing.T) {
	if got, err := Decode[float64](IntegerValue(3)); err != nil || got != 3 {
		t.Errorf("Decode[float64](3) = %v, %v", got, err)
	}
	if got, err := Decode[float32](RealValue(0.5)); err != nil || got != 0.5 {
		t.Errorf("Decode[float32](0.5) = %v, %v", got, err)
	}
	if _, err := Decode[float64](TextValue("1.5")); err == nil {
		t.Error("Decode[float64](text) succeeded")
	}
}

func TestDecodeTextAndBlob(t *testing.T) {
	if got, err := Decode[string](TextValue("x")); err != nil || got != "x" {
		t.Errorf("Decode[string](text) = %q, %v", got, err)
	}
	if got, err := Decode[string](BlobValue([]byte("raw"))); err != nil || got != "raw" {
		t.Errorf("Decode[string](blob) = %q, %v", got, err)
	}
	if _, err := Decode[string](IntegerValue(1)); err == nil {
		t.Error("Decode[string](integer) succeeded")
	}
	if got, err := Decode[[]byte](TextValue("ab")); err != nil || string(got) != "ab" {
		t.Errorf("Decode[[]byte](text) = %q, %v", got, err)
	}
	if _, err := Decode[[]byte](RealValue(1)); err == nil {
		t.Error("Decode[[]byte](real) succeeded")
	}
	if got, err := Decode[bool](IntegerValue(2)); err != nil || !got {
		t.Errorf("Decode[bool](2) = %v, %v", got, err)
	}
	if _, err := Decode[bool](TextValue("true")); err == nil {
		t.Error("Decode[bool](text) succeeded")
	}
}

func TestDecodeTime(t *testing.T) {
	want := time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, in := range []Value{
		TextValue("2022-01-02 03:04:05"),
		TextValue("2022-01-02T03:04:05Z"),
		TextValue("2022-01-02 03:04:05+00:00"),
		IntegerValue(want.Unix()),
	} {
		got, err := Decode[time.Time](in)
		if err != nil {
			t.Errorf("Decode[time.Time](%v) failed: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("Decode[time.Time](%v) = %v, want %v", in, got, want)
		}
	}
	if _, err := Decode[time.Time](TextValue("last tuesday")); err == nil {
		t.Error("Decode[time.Time](last tuesday) succeeded")
	}
}

func TestDecodeNull(t *testing.T) {
	null := NullValue()

	if got, err := Decode[int](null); err != nil || got != 0 {
		t.Errorf("Decode[int](NULL) = %d, %v", got, err)
	}
	if got, err := Decode[string](null); err != nil || got != "" {
		t.Errorf("Decode[string](NULL) = %q, %v", got, err)
	}
	if got, err := Decode[[]byte](null); err != nil || got != nil {
		t.Errorf("Decode[[]byte](NULL) = %v, %v", got, err)
	}
	if got, err := Decode[*int64](null); err != nil || got != nil {
		t.Errorf("Decode[*int64](NULL) = %v, %v", got, err)
	}
	if got, err := Decode[sql.NullString](null); err != nil || got.Valid {
		t.Errorf("Decode[sql.NullString](NULL) = %+v, %v", got, err)
	}
	if got, err := Decode[Value](null); err != nil || !got.IsNull() {
		t.Errorf("Decode[Value](NULL) = %v, %v", got, err)
	}

	strict := decoderFor[float64](2, true)
	_, err := strict(null)
	var nc *NullConversionError
	if !errors.As(err, &nc) {
		t.Fatalf("strict decode of NULL error = %v, want *NullConversionError", err)
	}
	if nc.Column != 2 || nc.To != "float64" {
		t.Errorf("NullConversionError = %+v", nc)
	}
	if got, err := decoderFor[*float64](2, true)(null); err != nil || got != nil {
		t.Errorf("strict decode of NULL into *float64 = %v, %v", got, err)
	}
}

func TestDecodeNullable(t *testing.T) {
	p, err := Decode[*int64](IntegerValue(5))
	if err != nil || p == nil || *p != 5 {
		t.Errorf("Decode[*int64](5) = %v, %v", p, err)
	}
	ni, err := Decode[sql.NullInt32](IntegerValue(9))
	if err != nil || !ni.Valid || ni.Int32 != 9 {
		t.Errorf("Decode[sql.NullInt32](9) = %+v, %v", ni, err)
	}
	nf, err := Decode[sql.NullFloat64](IntegerValue(2))
	if err != nil || !nf.Valid || nf.Float64 != 2 {
		t.Errorf("Decode[sql.NullFloat64](2) = %+v, %v", nf, err)
	}
	if _, err := Decode[*bool](TextValue("x")); err == nil {
		t.Error("Decode[*bool](text) succeeded")
	}
	if _, err := Decode[sql.NullInt64](TextValue("x")); err == nil {
		t.Error("Decode[sql.NullInt64](text) succeeded")
	}
}
