package interpreter

// execArithmetic implements ADD, SUB, MUL and IDIV.
func execArithmetic(i *Interpreter, in *Instruction) error {
	a, b, err := i.sources(in)
	if err != nil {
		return err
	}
	if a.Kind != KindInt {
		return typeError(in.Op, 1, a.Kind.String(), "int")
	}
	if b.Kind != KindInt {
		return typeError(in.Op, 2, b.Kind.String(), "int")
	}

	var res int64
	switch in.Op {
	case OpAdd:
		res = a.I64 + b.I64
	case OpSub:
		res = a.I64 - b.I64
	case OpMul:
		res = a.I64 * b.I64
	case OpIDiv:
		if b.I64 == 0 {
			return Errorf(KindZeroDivide, "IDIV by zero")
		}
		res = floorDiv(a.I64, b.I64)
	default:
		return Errorf(KindInternal, "%s is not arithmetic", in.Op)
	}
	return i.assign(in.Args[0], NewInt(res))
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// execRelational implements LT, GT and EQ.
func execRelational(i *Interpreter, in *Instruction) error {
	a, b, err := i.sameTypeOperands(in)
	if err != nil {
		return err
	}

	var res bool
	switch in.Op {
	case OpLt:
		res = a.Less(b)
	case OpGt:
		res = b.Less(a)
	case OpEq:
		res = a.Equal(b)
	default:
		return Errorf(KindInternal, "%s is not relational", in.Op)
	}
	return i.assign(in.Args[0], NewBool(res))
}

// execLogical implements AND and OR.
func execLogical(i *Interpreter, in *Instruction) error {
	a, b, err := i.sources(in)
	if err != nil {
		return err
	}
	if a.Kind != KindBool {
		return typeError(in.Op, 1, a.Kind.String(), "bool")
	}
	if b.Kind != KindBool {
		return typeError(in.Op, 2, b.Kind.String(), "bool")
	}

	res := a.Bool && b.Bool
	if in.Op == OpOr {
		res = a.Bool || b.Bool
	}
	return i.assign(in.Args[0], NewBool(res))
}

func execNot(i *Interpreter, in *Instruction) error {
	a, err := i.symbol(in.Args[1])
	if err != nil {
		return err
	}
	if a.Kind != KindBool {
		return typeError(in.Op, 1, a.Kind.String(), "bool")
	}
	return i.assign(in.Args[0], NewBool(!a.Bool))
}
