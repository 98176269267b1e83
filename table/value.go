// Package table holds the column-oriented dataset snapshot consumed by the
// matching engine: typed cell values, columns, and an immutable table with
// column selection.
package table

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null cell.
	KindNull
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
	// KindLabels represents a set of label values (multilabel cells).
	KindLabels
)

// Value is a small typed cell value.
//
// The representation is designed to make matching fast and predictable:
// no reflection and no fmt-based stringification. Null cells never compare
// equal to anything, including other null cells.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	S    string
	B    bool
	L    []Value
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// Int wraps an int64.
func Int(i int64) Value { return Value{Kind: KindInt, I64: i} }

// Float wraps a float64.
func Float(f float64) Value { return Value{Kind: KindFloat, F64: f} }

// String wraps a string.
func String(s string) Value { return Value{Kind: KindString, S: s} }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{Kind: KindBool, B: b} }

// Labels wraps a set of label values. Duplicates are removed, first
// occurrence wins; order of the remaining labels is preserved.
func Labels(labels ...Value) Value {
	seen := make(map[string]struct{}, len(labels))
	out := make([]Value, 0, len(labels))
	for _, l := range labels {
		k := l.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, l)
	}
	return Value{Kind: KindLabels, L: out}
}

// IsNull reports whether the value is the null cell.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Key returns a stable string representation for use in maps.
//
// It is intended for internal indexing (reverse indices, composite pair
// keys) and is unambiguous across kinds.
func (v Value) Key() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return "i:" + strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return "f:" + strconv.FormatUint(math.Float64bits(v.F64), 16)
	case KindString:
		return "s:" + v.S
	case KindBool:
		if v.B {
			return "b:1"
		}
		return "b:0"
	case KindLabels:
		if len(v.L) == 0 {
			return "l:"
		}
		parts := make([]string, len(v.L))
		for i := range v.L {
			parts[i] = v.L[i].Key()
		}
		return "l:" + strings.Join(parts, "\x1f")
	default:
		return "invalid"
	}
}

// String renders the value for logs and flattened output.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindString:
		return v.S
	case KindBool:
		return strconv.FormatBool(v.B)
	case KindLabels:
		parts := make([]string, len(v.L))
		for i := range v.L {
			parts[i] = v.L[i].String()
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return "invalid"
	}
}

// Equal reports whether two cells hold the same non-null value.
//
// Null never equals anything, mirroring the matching semantics where a null
// cell imposes no sameby constraint.
func Equal(a, b Value) bool {
	if a.Kind == KindNull || b.Kind == KindNull {
		return false
	}
	if a.Kind != b.Kind {
		if isNumber(a) && isNumber(b) {
			return asFloat(a) == asFloat(b)
		}
		return false
	}
	switch a.Kind {
	case KindInt:
		return a.I64 == b.I64
	case KindFloat:
		return a.F64 == b.F64
	case KindString:
		return a.S == b.S
	case KindBool:
		return a.B == b.B
	case KindLabels:
		return a.Key() == b.Key()
	default:
		return false
	}
}

func isNumber(v Value) bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

func asFloat(v Value) float64 {
	if v.Kind == KindInt {
		return float64(v.I64)
	}
	return v.F64
}
