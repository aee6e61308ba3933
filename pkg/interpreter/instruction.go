package interpreter

import (
	"fmt"
	"slices"
	"strings"
)

// Instruction is one validated program statement.
type Instruction struct {
	Op    Opcode
	Order int       // declared order, used only for sorting
	Args  []Operand // sorted by position, positions are 1..len(Args)
}

// NewInstruction validates an instruction against the opcode table: the
// opcode must exist, operand positions must form 1..N and every operand must
// satisfy the group its position requires.
func NewInstruction(opcode string, order int, args []Operand) (*Instruction, error) {
	if order < 1 {
		return nil, Errorf(KindSourceFormat, "instruction %s: order must be positive, got %d", opcode, order)
	}

	sorted := slices.Clone(args)
	slices.SortStableFunc(sorted, func(a, b Operand) int { return a.Pos - b.Pos })
	for n := 1; n <= len(sorted); n++ {
		switch pos := sorted[n-1].Pos; {
		case pos < 1:
			return nil, Errorf(KindSourceFormat, "instruction %s order %d: argument positions must start from 1, got %d",
				opcode, order, pos)
		case pos < n:
			return nil, Errorf(KindSourceFormat, "instruction %s order %d: duplicate argument %d", opcode, order, pos)
		case pos > n:
			return nil, Errorf(KindSourceFormat, "instruction %s order %d: missing argument %d", opcode, order, n)
		}
	}

	op, ok := LookupOpcode(opcode)
	if !ok {
		return nil, Errorf(KindSourceFormat, "instruction order %d: unknown opcode %q", order, opcode)
	}

	sig := signatures[op]
	if len(sorted) != len(sig.groups) {
		return nil, Errorf(KindSourceFormat, "instruction %s order %d: expected %d arguments, got %d",
			sig.name, order, len(sig.groups), len(sorted))
	}
	for n, g := range sig.groups {
		if !sorted[n].Kind.In(g) {
			return nil, Errorf(KindSourceFormat, "instruction %s order %d: argument %d must be %s, is %s",
				sig.name, order, n+1, g, sorted[n].Kind)
		}
	}

	return &Instruction{Op: op, Order: order, Args: sorted}, nil
}

// String returns a string representation of the instruction
func (in *Instruction) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d: %s", in.Order, in.Op)
	for _, a := range in.Args {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	return b.String()
}

// Program is a validated instruction sequence together with the metadata of
// the document it was loaded from.
type Program struct {
	Language     string
	Name         string
	Description  string
	Instructions []*Instruction // sorted by Order
}

// LanguageName is the only language a program document may declare.
const LanguageName = "IPPcode18"

// NewProgram sorts instructions by their declared order. Instructions sharing
// an order keep the order they were given in.
func NewProgram(name, description string, instrs []*Instruction) *Program {
	sorted := slices.Clone(instrs)
	slices.SortStableFunc(sorted, func(a, b *Instruction) int { return a.Order - b.Order })
	return &Program{
		Language:     LanguageName,
		Name:         name,
		Description:  description,
		Instructions: sorted,
	}
}
