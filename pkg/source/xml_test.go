package source_test

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"ippvm/pkg/interpreter"
	"ippvm/pkg/source"
)

const demoXML = `<?xml version="1.0" encoding="UTF-8"?>
<program language="IPPcode18" name="demo" description="prints a&lt;b">
 <instruction order="2" opcode="WRITE">
  <arg1 type="string">a&lt;b</arg1>
 </instruction>
 <instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
 <instruction order="3" opcode="MOVE">
  <arg2 type="string"/>
  <arg1 type="var">GF@x</arg1>
 </instruction>
</program>
`

func TestDecodeXML(t *testing.T) {
	doc, err := source.DecodeXML(strings.NewReader(demoXML))
	if err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}
	if doc.Name != "demo" || doc.Description != "prints a<b" {
		t.Errorf("unexpected metadata %q %q", doc.Name, doc.Description)
	}
	if len(doc.Instructions) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(doc.Instructions))
	}

	write := doc.Instructions[0]
	if write.Opcode != "WRITE" || write.Order != 2 {
		t.Errorf("unexpected record %+v", write)
	}
	if write.Args[0] != (source.Arg{Pos: 1, Type: "string", Text: "a<b"}) {
		t.Errorf("unexpected argument %+v", write.Args[0])
	}
	if move := doc.Instructions[2]; move.Args[0] != (source.Arg{Pos: 2, Type: "string", Text: ""}) {
		t.Errorf("empty element must give empty text, got %+v", move.Args[0])
	}

	prog, err := doc.Program()
	if err != nil {
		t.Fatalf("Program: %v", err)
	}
	var ops []string
	for _, in := range prog.Instructions {
		ops = append(ops, in.Op.String())
	}
	if strings.Join(ops, " ") != "DEFVAR WRITE MOVE" {
		t.Errorf("instructions not sorted by order: %v", ops)
	}
	if prog.Instructions[2].Args[0].Pos != 1 {
		t.Error("operands must be sorted by position")
	}
}

func TestDecodeXMLErrors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"not well formed", `<program language="IPPcode18"><instruction`},
		{"unclosed", `<program language="IPPcode18">`},
		{"empty", ``},
		{"wrong root", `<code language="IPPcode18"/>`},
		{"missing language", `<program/>`},
		{"wrong language", `<program language="IPPcode17"/>`},
		{"program attribute", `<program language="IPPcode18" version="2"/>`},
		{"program text", `<program language="IPPcode18">hello</program>`},
		{"wrong child", `<program language="IPPcode18"><instr order="1" opcode="BREAK"/></program>`},
		{"missing order", `<program language="IPPcode18"><instruction opcode="BREAK"/></program>`},
		{"missing opcode", `<program language="IPPcode18"><instruction order="1"/></program>`},
		{"bad order", `<program language="IPPcode18"><instruction order="one" opcode="BREAK"/></program>`},
		{"instruction attribute", `<program language="IPPcode18"><instruction order="1" opcode="BREAK" x="1"/></program>`},
		{"bad arg element", `<program language="IPPcode18"><instruction order="1" opcode="WRITE"><arg type="int">1</arg></instruction></program>`},
		{"arg without type", `<program language="IPPcode18"><instruction order="1" opcode="WRITE"><arg1>1</arg1></instruction></program>`},
		{"arg attribute", `<program language="IPPcode18"><instruction order="1" opcode="WRITE"><arg1 type="int" x="y">1</arg1></instruction></program>`},
		{"nested arg", `<program language="IPPcode18"><instruction order="1" opcode="WRITE"><arg1 type="int"><b/></arg1></instruction></program>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := source.DecodeXML(strings.NewReader(tt.xml))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := interpreter.ExitCode(err); got != 31 {
				t.Errorf("expected exit code 31, got %d (%v)", got, err)
			}
		})
	}
}

func TestProgramErrors(t *testing.T) {
	tests := []struct {
		name string
		rec  source.Record
		kind interpreter.Kind
	}{
		{"unknown type", source.Record{Opcode: "WRITE", Order: 1, Args: []source.Arg{{Pos: 1, Type: "float", Text: "1.5"}}}, interpreter.KindSourceFormat},
		{"lexical", source.Record{Opcode: "WRITE", Order: 1, Args: []source.Arg{{Pos: 1, Type: "int", Text: "x"}}}, interpreter.KindLexical},
		{"unknown opcode", source.Record{Opcode: "NOP", Order: 1}, interpreter.KindSourceFormat},
		{"extra argument", source.Record{Opcode: "BREAK", Order: 1, Args: []source.Arg{{Pos: 1, Type: "int", Text: "1"}}}, interpreter.KindSourceFormat},
		{"negative order", source.Record{Opcode: "BREAK", Order: -1}, interpreter.KindSourceFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &source.Document{Language: interpreter.LanguageName, Instructions: []source.Record{tt.rec}}
			_, err := doc.Program()
			if got := interpreter.KindOf(err); got != tt.kind {
				t.Errorf("expected %s, got %v", tt.kind, err)
			}
		})
	}

	doc := &source.Document{Language: "ippcode18"}
	if _, err := doc.Program(); interpreter.KindOf(err) != interpreter.KindSourceFormat {
		t.Errorf("language is case sensitive, got %v", err)
	}
}

func sampleDocument() *source.Document {
	return &source.Document{
		Language:    interpreter.LanguageName,
		Name:        "sample",
		Description: "quotes \" and <tags> & more",
		Instructions: []source.Record{
			{Opcode: "DEFVAR", Order: 1, Args: []source.Arg{{Pos: 1, Type: "var", Text: "GF@x"}}},
			{Opcode: "MOVE", Order: 2, Args: []source.Arg{
				{Pos: 1, Type: "var", Text: "GF@x"},
				{Pos: 2, Type: "string", Text: `a\032<b>&c`},
			}},
			{Opcode: "WRITE", Order: 3, Args: []source.Arg{{Pos: 1, Type: "string", Text: ""}}},
			{Opcode: "BREAK", Order: 4},
		},
	}
}

func TestEncodeXMLRoundTrip(t *testing.T) {
	doc := sampleDocument()

	var buf bytes.Buffer
	if err := source.EncodeXML(&buf, doc); err != nil {
		t.Fatalf("EncodeXML: %v", err)
	}
	if !strings.HasPrefix(buf.String(), `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("missing XML header: %q", buf.String())
	}

	got, err := source.DecodeXML(&buf)
	if err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip changed the document:\nexpected %+v\ngot      %+v", doc, got)
	}
}

func TestDecodeXMLEncodings(t *testing.T) {
	// \xb9 is š, \xbe is ž and \xbb is ť in ISO-8859-2
	latin2 := "<?xml version=\"1.0\" encoding=\"ISO-8859-2\"?>\n" +
		"<program language=\"IPPcode18\" name=\"\xb9\">" +
		"<instruction order=\"1\" opcode=\"WRITE\"><arg1 type=\"string\">\xbelu\xbb</arg1></instruction>" +
		"</program>"

	doc, err := source.DecodeXML(strings.NewReader(latin2))
	if err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}
	if doc.Name != "š" {
		t.Errorf("expected name %q, got %q", "š", doc.Name)
	}
	if got := doc.Instructions[0].Args[0].Text; got != "žluť" {
		t.Errorf("expected text %q, got %q", "žluť", got)
	}

	unknown := `<?xml version="1.0" encoding="x-klingon"?><program language="IPPcode18"/>`
	_, err = source.DecodeXML(strings.NewReader(unknown))
	if got := interpreter.ExitCode(err); got != 31 {
		t.Errorf("unsupported encoding: expected exit 31, got %d (%v)", got, err)
	}
}

func TestDecodeXMLReadError(t *testing.T) {
	r := io.MultiReader(
		strings.NewReader(`<program language="IPPcode18"><instruction order="1" opcode="BREAK">`),
		iotest.ErrReader(errors.New("disk failure")),
	)
	_, err := source.DecodeXML(r)
	if got := interpreter.ExitCode(err); got != 11 {
		t.Errorf("expected exit 11, got %d (%v)", got, err)
	}
	if err != nil && !strings.Contains(err.Error(), "disk failure") {
		t.Errorf("expected the read error in %q", err.Error())
	}
}
