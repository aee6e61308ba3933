package interpreter_test

import (
	"testing"

	"ippvm/pkg/interpreter"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		v    interpreter.Value
		want string
	}{
		{interpreter.NewInt(-12), "-12"},
		{interpreter.NewBool(true), "true"},
		{interpreter.NewBool(false), "false"},
		{interpreter.NewString("a b"), "a b"},
		{interpreter.Value{}, ""},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestValueEqual(t *testing.T) {
	if !interpreter.NewInt(3).Equal(interpreter.NewInt(3)) {
		t.Error("equal ints compare unequal")
	}
	if interpreter.NewInt(1).Equal(interpreter.NewString("1")) {
		t.Error("values of different kinds must not be equal")
	}
	if interpreter.NewBool(false).Equal(interpreter.NewBool(true)) {
		t.Error("false equals true")
	}
	if !interpreter.NewString("ž").Equal(interpreter.NewString("ž")) {
		t.Error("equal strings compare unequal")
	}
}

func TestValueLess(t *testing.T) {
	tests := []struct {
		name string
		a, b interpreter.Value
		want bool
	}{
		{"int", interpreter.NewInt(-5), interpreter.NewInt(2), true},
		{"int equal", interpreter.NewInt(2), interpreter.NewInt(2), false},
		{"string", interpreter.NewString("abc"), interpreter.NewString("abd"), true},
		{"string prefix", interpreter.NewString("ab"), interpreter.NewString("abc"), true},
		{"string code point", interpreter.NewString("z"), interpreter.NewString("ž"), true},
		{"bool", interpreter.NewBool(false), interpreter.NewBool(true), true},
		{"bool reversed", interpreter.NewBool(true), interpreter.NewBool(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("%v < %v: expected %v, got %v", tt.a, tt.b, tt.want, got)
			}
		})
	}
}

func TestValueLen(t *testing.T) {
	if got := interpreter.NewString("žluť").Len(); got != 4 {
		t.Errorf("expected 4 code points, got %d", got)
	}
	if !(interpreter.Value{}).IsNil() {
		t.Error("zero value should be nil")
	}
}
