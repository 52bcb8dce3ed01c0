package calc

import (
	"math"
	"strconv"
)

// Kind is the numeric kind of a Value.
type Kind int8

const (
	// Integer values are signed 64-bit integers.
	Integer Kind = iota
	// Float values are IEEE-754 double precision numbers.
	Float
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the result of evaluating an expression. The zero Value is the
// integer 0.
type Value struct {
	i    int64
	f    float64
	kind Kind
}

// Int returns an integer Value.
func Int(i int64) Value {
	return Value{i: i, kind: Integer}
}

// Real returns a floating-point Value.
func Real(f float64) Value {
	return Value{f: f, kind: Float}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// Int64 returns v as an integer. The second result is false if v is a Float.
func (v Value) Int64() (int64, bool) {
	return v.i, v.kind == Integer
}

// Float64 returns v as a float, converting integers.
func (v Value) Float64() float64 {
	if v.kind == Integer {
		return float64(v.i)
	}
	return v.f
}

// Equal reports whether v and w have the same kind and the same number. Unlike
// ==, it treats NaN as equal to itself.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	if v.kind == Integer {
		return v.i == w.i
	}
	if math.IsNaN(v.f) {
		return math.IsNaN(w.f)
	}
	return v.f == w.f
}

// String formats integers in decimal and floats in the shortest form that
// parses back to the same float.
func (v Value) String() string {
	if v.kind == Integer {
		return strconv.FormatInt(v.i, 10)
	}
	return strconv.FormatFloat(v.f, 'g', -1, 64)
}

// MarshalText implements encoding.TextMarshaler using the String format.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
