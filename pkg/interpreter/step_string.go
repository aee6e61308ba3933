package interpreter

import (
	"unicode/utf8"

	"fortio.org/safecast"
)

func execConcat(i *Interpreter, in *Instruction) error {
	a, b, err := i.sources(in)
	if err != nil {
		return err
	}
	if a.Kind != KindString {
		return typeError(in.Op, 1, a.Kind.String(), "string")
	}
	if b.Kind != KindString {
		return typeError(in.Op, 2, b.Kind.String(), "string")
	}
	return i.assign(in.Args[0], NewString(a.Str+b.Str))
}

func execStrlen(i *Interpreter, in *Instruction) error {
	a, err := i.symbol(in.Args[1])
	if err != nil {
		return err
	}
	if a.Kind != KindString {
		return typeError(in.Op, 1, a.Kind.String(), "string")
	}
	return i.assign(in.Args[0], NewInt(int64(a.Len())))
}

// indexedRunes resolves the (string, int) source pair of GETCHAR and
// STRI2INT and checks that the index addresses a character.
func (i *Interpreter) indexedRunes(in *Instruction) ([]rune, int, error) {
	a, b, err := i.sources(in)
	if err != nil {
		return nil, 0, err
	}
	if a.Kind != KindString {
		return nil, 0, typeError(in.Op, 1, a.Kind.String(), "string")
	}
	if b.Kind != KindInt {
		return nil, 0, typeError(in.Op, 2, b.Kind.String(), "int")
	}
	runes := []rune(a.Str)
	if b.I64 < 0 || b.I64 >= int64(len(runes)) {
		return nil, 0, Errorf(KindStringOperation, "%s: index %d out of range [0, %d)", in.Op, b.I64, len(runes))
	}
	return runes, int(b.I64), nil
}

func execGetChar(i *Interpreter, in *Instruction) error {
	runes, idx, err := i.indexedRunes(in)
	if err != nil {
		return err
	}
	return i.assign(in.Args[0], NewString(string(runes[idx])))
}

func execStri2Int(i *Interpreter, in *Instruction) error {
	runes, idx, err := i.indexedRunes(in)
	if err != nil {
		return err
	}
	return i.assign(in.Args[0], NewInt(int64(runes[idx])))
}

// execSetChar replaces one character of the destination string with the
// first character of the replacement, producing a new string.
func execSetChar(i *Interpreter, in *Instruction) error {
	dst, err := i.symbol(in.Args[0])
	if err != nil {
		return err
	}
	idx, repl, err := i.sources(in)
	if err != nil {
		return err
	}
	if dst.Kind != KindString {
		return typeError(in.Op, 0, dst.Kind.String(), "string")
	}
	if idx.Kind != KindInt {
		return typeError(in.Op, 1, idx.Kind.String(), "int")
	}
	if repl.Kind != KindString {
		return typeError(in.Op, 2, repl.Kind.String(), "string")
	}

	r, size := utf8.DecodeRuneInString(repl.Str)
	if size == 0 {
		return Errorf(KindStringOperation, "SETCHAR: replacement string is empty")
	}
	runes := []rune(dst.Str)
	if idx.I64 < 0 || idx.I64 >= int64(len(runes)) {
		return Errorf(KindStringOperation, "SETCHAR: index %d out of range [0, %d)", idx.I64, len(runes))
	}

	out := make([]rune, len(runes))
	copy(out, runes)
	out[idx.I64] = r
	return i.assign(in.Args[0], NewString(string(out)))
}

func execInt2Char(i *Interpreter, in *Instruction) error {
	a, err := i.symbol(in.Args[1])
	if err != nil {
		return err
	}
	if a.Kind != KindInt {
		return typeError(in.Op, 1, a.Kind.String(), "int")
	}
	r, err := safecast.Convert[rune](a.I64)
	if err != nil || !utf8.ValidRune(r) {
		return Errorf(KindStringOperation, "INT2CHAR: %d is not a Unicode code point", a.I64)
	}
	return i.assign(in.Args[0], NewString(string(r)))
}
