package interpreter

import "strings"

// Opcode identifies one instruction of the closed instruction set.
type Opcode uint8

// List of instructions
const (
	OpMove Opcode = iota
	OpCreateFrame
	OpPushFrame
	OpPopFrame
	OpDefVar
	OpCall
	OpReturn
	OpPushs
	OpPops
	OpAdd
	OpSub
	OpMul
	OpIDiv
	OpLt
	OpGt
	OpEq
	OpAnd
	OpOr
	OpNot
	OpInt2Char
	OpStri2Int
	OpRead
	OpWrite
	OpConcat
	OpStrlen
	OpGetChar
	OpSetChar
	OpType
	OpLabel
	OpJump
	OpJumpIfEq
	OpJumpIfNeq
	OpDPrint
	OpBreak
)

// routine is the semantic action of one opcode.
type routine func(i *Interpreter, in *Instruction) error

type signature struct {
	name   string
	groups []Group
	exec   routine
}

// signatures is indexed by Opcode and never modified after initialization.
var signatures = [...]signature{
	OpMove:        {"MOVE", []Group{GroupVar, GroupSymbol}, execMove},
	OpCreateFrame: {"CREATEFRAME", nil, execCreateFrame},
	OpPushFrame:   {"PUSHFRAME", nil, execPushFrame},
	OpPopFrame:    {"POPFRAME", nil, execPopFrame},
	OpDefVar:      {"DEFVAR", []Group{GroupVar}, execDefVar},
	OpCall:        {"CALL", []Group{GroupLabel}, execCall},
	OpReturn:      {"RETURN", nil, execReturn},
	OpPushs:       {"PUSHS", []Group{GroupSymbol}, execPushs},
	OpPops:        {"POPS", []Group{GroupVar}, execPops},
	OpAdd:         {"ADD", []Group{GroupVar, GroupSymbol, GroupSymbol}, execArithmetic},
	OpSub:         {"SUB", []Group{GroupVar, GroupSymbol, GroupSymbol}, execArithmetic},
	OpMul:         {"MUL", []Group{GroupVar, GroupSymbol, GroupSymbol}, execArithmetic},
	OpIDiv:        {"IDIV", []Group{GroupVar, GroupSymbol, GroupSymbol}, execArithmetic},
	OpLt:          {"LT", []Group{GroupVar, GroupSymbol, GroupSymbol}, execRelational},
	OpGt:          {"GT", []Group{GroupVar, GroupSymbol, GroupSymbol}, execRelational},
	OpEq:          {"EQ", []Group{GroupVar, GroupSymbol, GroupSymbol}, execRelational},
	OpAnd:         {"AND", []Group{GroupVar, GroupSymbol, GroupSymbol}, execLogical},
	OpOr:          {"OR", []Group{GroupVar, GroupSymbol, GroupSymbol}, execLogical},
	OpNot:         {"NOT", []Group{GroupVar, GroupSymbol}, execNot},
	OpInt2Char:    {"INT2CHAR", []Group{GroupVar, GroupSymbol}, execInt2Char},
	OpStri2Int:    {"STRI2INT", []Group{GroupVar, GroupSymbol, GroupSymbol}, execStri2Int},
	OpRead:        {"READ", []Group{GroupVar, GroupType}, execRead},
	OpWrite:       {"WRITE", []Group{GroupSymbol}, execWrite},
	OpConcat:      {"CONCAT", []Group{GroupVar, GroupSymbol, GroupSymbol}, execConcat},
	OpStrlen:      {"STRLEN", []Group{GroupVar, GroupSymbol}, execStrlen},
	OpGetChar:     {"GETCHAR", []Group{GroupVar, GroupSymbol, GroupSymbol}, execGetChar},
	OpSetChar:     {"SETCHAR", []Group{GroupVar, GroupSymbol, GroupSymbol}, execSetChar},
	OpType:        {"TYPE", []Group{GroupVar, GroupSymbol}, execType},
	OpLabel:       {"LABEL", []Group{GroupLabel}, execNop},
	OpJump:        {"JUMP", []Group{GroupLabel}, execJump},
	OpJumpIfEq:    {"JUMPIFEQ", []Group{GroupLabel, GroupSymbol, GroupSymbol}, execCondJump},
	OpJumpIfNeq:   {"JUMPIFNEQ", []Group{GroupLabel, GroupSymbol, GroupSymbol}, execCondJump},
	OpDPrint:      {"DPRINT", []Group{GroupSymbol}, execDPrint},
	OpBreak:       {"BREAK", nil, execBreak},
}

// opcodeNames maps canonical opcode names to opcodes.
var opcodeNames = func() map[string]Opcode {
	m := make(map[string]Opcode, len(signatures))
	for op, sig := range signatures {
		m[sig.name] = Opcode(op)
	}
	return m
}()

// LookupOpcode resolves an opcode name, ignoring case.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodeNames[strings.ToUpper(name)]
	return op, ok
}

// String returns the canonical opcode name
func (op Opcode) String() string {
	if int(op) < len(signatures) {
		return signatures[op].name
	}
	return "UNKNOWN"
}

// Groups returns the operand groups the opcode requires, in position order.
func (op Opcode) Groups() []Group {
	if int(op) < len(signatures) {
		return append([]Group(nil), signatures[op].groups...)
	}
	return nil
}

// Arity returns the number of operands the opcode takes.
func (op Opcode) Arity() int {
	if int(op) < len(signatures) {
		return len(signatures[op].groups)
	}
	return 0
}
