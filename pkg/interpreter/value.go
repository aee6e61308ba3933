package interpreter

import (
	"strconv"
	"unicode/utf8"
)

type ValueKind int

const (
	KindNil ValueKind = iota // declared but never assigned
	KindInt
	KindBool
	KindString
)

// String returns the type name used by the TYPE instruction and in diagnostics.
func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return "nil"
	}
}

// Value is a scalar held in a variable or on the data stack. Values are
// always passed by copy.
type Value struct {
	Kind ValueKind
	I64  int64
	Bool bool
	Str  string
}

// String renders the value the way WRITE prints it.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindString:
		return v.Str
	default:
		return ""
	}
}

// IsNil reports whether v is the uninitialized value.
func (v Value) IsNil() bool {
	return v.Kind == KindNil
}

// Equal compares two values. Values of different kinds are never equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.I64 == o.I64
	case KindBool:
		return v.Bool == o.Bool
	case KindString:
		return v.Str == o.Str
	default:
		return true
	}
}

// Less orders two values of the same kind. Strings compare by code point,
// booleans order false before true.
func (v Value) Less(o Value) bool {
	switch v.Kind {
	case KindInt:
		return v.I64 < o.I64
	case KindBool:
		return !v.Bool && o.Bool
	case KindString:
		// byte order of valid UTF-8 matches code point order
		return v.Str < o.Str
	default:
		return false
	}
}

// Len returns the number of code points of a string value.
func (v Value) Len() int {
	return utf8.RuneCountInString(v.Str)
}

// NewInt creates a new integer Value.
func NewInt(i int64) Value {
	return Value{Kind: KindInt, I64: i}
}

// NewBool creates a new boolean Value.
func NewBool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// NewString creates a new string Value.
func NewString(s string) Value {
	return Value{Kind: KindString, Str: s}
}
