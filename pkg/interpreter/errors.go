package interpreter

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the interpreter can report. The set is closed
// and each kind maps to a fixed process exit code.
type Kind int

const (
	KindInternal Kind = iota
	KindArgumentUsage
	KindSourceInput
	KindSourceFormat
	KindLexical
	KindSemantic
	KindOperandType
	KindBadVariable
	KindFrame
	KindMissingValue
	KindZeroDivide
	KindStringOperation
)

var kindInfo = [...]struct {
	name string
	code int
}{
	KindInternal:        {"internal error", 99},
	KindArgumentUsage:   {"invalid arguments", 10},
	KindSourceInput:     {"cannot read input", 11},
	KindSourceFormat:    {"malformed source", 31},
	KindLexical:         {"lexical error", 32},
	KindSemantic:        {"semantic error", 52},
	KindOperandType:     {"operand type error", 53},
	KindBadVariable:     {"undefined variable", 54},
	KindFrame:           {"frame error", 55},
	KindMissingValue:    {"missing value", 56},
	KindZeroDivide:      {"division by zero", 57},
	KindStringOperation: {"string operation error", 58},
}

// String returns a short human readable name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return kindInfo[KindInternal].name
	}
	return kindInfo[k].name
}

// ExitCode returns the process exit code associated with the kind.
func (k Kind) ExitCode() int {
	if k < 0 || int(k) >= len(kindInfo) {
		return kindInfo[KindInternal].code
	}
	return kindInfo[k].code
}

// Error is the error type returned by every core operation.
type Error struct {
	Kind    Kind
	Msg     string
	Operand int // offending source operand (1 or 2) of an operand type error, 0 otherwise
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Msg
}

// Errorf builds an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// typeError reports that source operand n of op resolved to the wrong type.
// n is 0 for the destination variable of SETCHAR, which is also read.
func typeError(op Opcode, n int, got, want string) *Error {
	what := fmt.Sprintf("operand %d", n)
	if n == 0 {
		what = "destination"
	}
	return &Error{
		Kind:    KindOperandType,
		Msg:     fmt.Sprintf("%s of %s must be %s, got %s", what, op, want, got),
		Operand: n,
	}
}

// KindOf extracts the kind of err. Errors that did not originate in the core
// are reported as internal errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ExitCode maps err to a process exit code; a nil error is success.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}
