package interpreter_test

import (
	"errors"
	"fmt"
	"testing"

	"ippvm/pkg/interpreter"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		kind interpreter.Kind
		code int
	}{
		{interpreter.KindArgumentUsage, 10},
		{interpreter.KindSourceInput, 11},
		{interpreter.KindSourceFormat, 31},
		{interpreter.KindLexical, 32},
		{interpreter.KindSemantic, 52},
		{interpreter.KindOperandType, 53},
		{interpreter.KindBadVariable, 54},
		{interpreter.KindFrame, 55},
		{interpreter.KindMissingValue, 56},
		{interpreter.KindZeroDivide, 57},
		{interpreter.KindStringOperation, 58},
		{interpreter.KindInternal, 99},
	}

	for _, tt := range tests {
		err := interpreter.Errorf(tt.kind, "boom")
		if got := interpreter.ExitCode(err); got != tt.code {
			t.Errorf("%s: expected %d, got %d", tt.kind, tt.code, got)
		}
	}
}

func TestKindOf(t *testing.T) {
	if interpreter.ExitCode(nil) != 0 {
		t.Error("nil error must exit 0")
	}

	wrapped := fmt.Errorf("prog.xml: %w", interpreter.Errorf(interpreter.KindFrame, "no frame"))
	if interpreter.KindOf(wrapped) != interpreter.KindFrame {
		t.Errorf("wrapping must keep the kind, got %s", interpreter.KindOf(wrapped))
	}
	if interpreter.KindOf(errors.New("foreign")) != interpreter.KindInternal {
		t.Error("foreign errors are internal")
	}
}
