package interpreter

import (
	"fmt"
	"strconv"
	"strings"
)

func execRead(i *Interpreter, in *Instruction) error {
	line, err := i.readLine()
	if err != nil {
		return err
	}

	var val Value
	switch in.Args[1].Name() {
	case "int":
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			n = 0
		}
		val = NewInt(n)
	case "bool":
		val = NewBool(strings.EqualFold(line, "true"))
	default:
		val = NewString(line)
	}
	return i.assign(in.Args[0], val)
}

func execWrite(i *Interpreter, in *Instruction) error {
	val, err := i.symbol(in.Args[0])
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(i.out, val); err != nil {
		return Errorf(KindInternal, "write: %v", err)
	}
	return nil
}

func execDPrint(i *Interpreter, in *Instruction) error {
	val, err := i.symbol(in.Args[0])
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(i.errOut, val); err != nil {
		return Errorf(KindInternal, "dprint: %v", err)
	}
	return nil
}

// execType stores the type name of a symbol. An uninitialized variable has
// the empty type name; every other failure propagates.
func execType(i *Interpreter, in *Instruction) error {
	name := ""
	val, err := i.symbol(in.Args[1])
	switch {
	case err == nil:
		name = val.Kind.String()
	case KindOf(err) != KindMissingValue:
		return err
	}
	return i.assign(in.Args[0], NewString(name))
}
