package interpreter

import "github.com/charmbracelet/log"

func execNop(*Interpreter, *Instruction) error {
	return nil
}

func execMove(i *Interpreter, in *Instruction) error {
	val, err := i.symbol(in.Args[1])
	if err != nil {
		return err
	}
	return i.assign(in.Args[0], val)
}

func execCreateFrame(i *Interpreter, _ *Instruction) error {
	i.frames.Create()
	return nil
}

func execPushFrame(i *Interpreter, _ *Instruction) error {
	return i.frames.Push()
}

func execPopFrame(i *Interpreter, _ *Instruction) error {
	return i.frames.Pop()
}

func execDefVar(i *Interpreter, in *Instruction) error {
	return i.frames.Declare(in.Args[0].ref)
}

func execCall(i *Interpreter, in *Instruction) error {
	i.calls.Push(i.pc + 1)
	return i.jumpTo(in.Args[0].Name())
}

func execReturn(i *Interpreter, _ *Instruction) error {
	ret, ok := i.calls.Pop()
	if !ok {
		return Errorf(KindMissingValue, "RETURN with an empty call stack")
	}
	i.pc = ret - 1
	return nil
}

func execPushs(i *Interpreter, in *Instruction) error {
	val, err := i.symbol(in.Args[0])
	if err != nil {
		return err
	}
	i.data.Push(val)
	return nil
}

func execPops(i *Interpreter, in *Instruction) error {
	val, ok := i.data.Pop()
	if !ok {
		return Errorf(KindMissingValue, "POPS with an empty data stack")
	}
	return i.assign(in.Args[0], val)
}

func execJump(i *Interpreter, in *Instruction) error {
	return i.jumpTo(in.Args[0].Name())
}

// execCondJump implements JUMPIFEQ and JUMPIFNEQ. The label is resolved
// only when the branch is taken.
func execCondJump(i *Interpreter, in *Instruction) error {
	a, b, err := i.sameTypeOperands(in)
	if err != nil {
		return err
	}

	if a.Equal(b) == (in.Op == OpJumpIfEq) {
		return i.jumpTo(in.Args[0].Name())
	}
	return nil
}

// execBreak dumps the interpreter state to the debug log.
func execBreak(i *Interpreter, in *Instruction) error {
	temp := -1
	if i.frames.temp != nil {
		temp = len(i.frames.temp.Vars)
	}
	log.Debug("BREAK",
		"order", in.Order,
		"pc", i.pc,
		"steps", i.steps,
		"globals", len(i.frames.global.Vars),
		"locals", i.frames.Depth(),
		"temporary", temp,
		"data", i.data.Size(),
		"calls", i.calls.Size(),
	)
	return nil
}

// sameTypeOperands resolves the two source operands (positions 2 and 3) and
// checks that they share a type.
func (i *Interpreter) sameTypeOperands(in *Instruction) (Value, Value, error) {
	a, b, err := i.sources(in)
	if err != nil {
		return a, b, err
	}
	if a.Kind != b.Kind {
		return a, b, typeError(in.Op, 2, b.Kind.String(), a.Kind.String())
	}
	return a, b, nil
}

// sources resolves the two source operands of a three-operand instruction.
func (i *Interpreter) sources(in *Instruction) (Value, Value, error) {
	a, err := i.symbol(in.Args[1])
	if err != nil {
		return Value{}, Value{}, err
	}
	b, err := i.symbol(in.Args[2])
	if err != nil {
		return Value{}, Value{}, err
	}
	return a, b, nil
}
