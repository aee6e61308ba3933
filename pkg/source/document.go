// Package source holds the program document model and its serialized forms:
// the XML document, and a compact CBOR program image.
package source

import (
	"bytes"

	"ippvm/pkg/interpreter"
)

// Document is a program as read from a source file, before validation.
type Document struct {
	Language     string   `cbor:"1,keyasint"`
	Name         string   `cbor:"2,keyasint,omitempty"`
	Description  string   `cbor:"3,keyasint,omitempty"`
	Instructions []Record `cbor:"4,keyasint"`
}

// Record is one instruction element.
type Record struct {
	Opcode string `cbor:"1,keyasint"`
	Order  int    `cbor:"2,keyasint"`
	Args   []Arg  `cbor:"3,keyasint,omitempty"`
}

// Arg is one operand element, its text kept exactly as written.
type Arg struct {
	Pos  int    `cbor:"1,keyasint"`
	Type string `cbor:"2,keyasint"`
	Text string `cbor:"3,keyasint"`
}

// Program validates the document and converts it to an executable program.
// Operand text is checked lexically, instructions structurally, and the
// instruction list is sorted by order.
func (d *Document) Program() (*interpreter.Program, error) {
	if d.Language != interpreter.LanguageName {
		return nil, interpreter.Errorf(interpreter.KindSourceFormat,
			"language must be %q, got %q", interpreter.LanguageName, d.Language)
	}

	instrs := make([]*interpreter.Instruction, 0, len(d.Instructions))
	for _, rec := range d.Instructions {
		ops := make([]interpreter.Operand, 0, len(rec.Args))
		for _, a := range rec.Args {
			kind, ok := interpreter.ParseArgKind(a.Type)
			if !ok {
				return nil, interpreter.Errorf(interpreter.KindSourceFormat,
					"instruction %s order %d: unknown argument type %q", rec.Opcode, rec.Order, a.Type)
			}
			op, err := interpreter.NewOperand(a.Pos, kind, a.Text)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}

		in, err := interpreter.NewInstruction(rec.Opcode, rec.Order, ops)
		if err != nil {
			return nil, err
		}
		instrs = append(instrs, in)
	}

	return interpreter.NewProgram(d.Name, d.Description, instrs), nil
}

// Format is a serialized program representation.
type Format int

const (
	FormatText Format = iota
	FormatXML
	FormatImage
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatImage:
		return "image"
	default:
		return "text"
	}
}

// Sniff guesses the format of a source file from its leading bytes.
func Sniff(data []byte) Format {
	if isImage(data) {
		return FormatImage
	}
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '<' {
		return FormatXML
	}
	return FormatText
}
