package source

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"ippvm/pkg/interpreter"
)

func formatError(format string, args ...any) error {
	return interpreter.Errorf(interpreter.KindSourceFormat, format, args...)
}

// DecodeXML reads a program document. The decoder is strict: unknown
// elements, unknown attributes and stray text are rejected. Documents may
// declare any encoding known to the WHATWG encoding index.
func DecodeXML(r io.Reader) (*Document, error) {
	src := &readRecorder{r: r}
	dec := xml.NewDecoder(src)
	dec.CharsetReader = charset.NewReaderLabel
	d := &xmlDecoder{dec: dec, src: src}

	root, err := d.nextElement()
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, formatError("document has no root element")
	}
	doc, err := d.program(*root)
	if err != nil {
		return nil, err
	}

	trailing, err := d.nextElement()
	if err != nil {
		return nil, err
	}
	if trailing != nil {
		return nil, formatError("unexpected element <%s> after <program>", trailing.Name.Local)
	}
	return doc, nil
}

// readRecorder remembers the first read failure of the underlying reader,
// so decoder errors can be told apart from I/O errors.
type readRecorder struct {
	r   io.Reader
	err error
}

func (rr *readRecorder) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if err != nil && err != io.EOF && rr.err == nil {
		rr.err = err
	}
	return n, err
}

type xmlDecoder struct {
	dec *xml.Decoder
	src *readRecorder
}

// token returns the next token, classifying failures.
func (d *xmlDecoder) token() (xml.Token, error) {
	tok, err := d.dec.Token()
	if err == nil || err == io.EOF {
		return tok, err
	}
	if d.src.err != nil {
		return nil, interpreter.Errorf(interpreter.KindSourceInput, "reading XML: %v", d.src.err)
	}
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return nil, formatError("malformed XML at line %d: %s", syn.Line, syn.Msg)
	}
	return nil, formatError("malformed XML: %v", err)
}

// nextElement skips prolog items and whitespace and returns the next start
// element, or nil at end of input.
func (d *xmlDecoder) nextElement() (*xml.StartElement, error) {
	for {
		tok, err := d.token()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return &t, nil
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, formatError("unexpected text %q", strings.TrimSpace(string(t)))
			}
		case xml.EndElement:
			return nil, formatError("unexpected </%s>", t.Name.Local)
		}
	}
}

// children iterates over the child elements of the element just opened,
// calling fn for each one, until its end tag.
func (d *xmlDecoder) children(parent string, fn func(xml.StartElement) error) error {
	for {
		tok, err := d.token()
		if err == io.EOF {
			return formatError("unexpected end of document inside <%s>", parent)
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return formatError("unexpected text %q inside <%s>", strings.TrimSpace(string(t)), parent)
			}
		}
	}
}

func (d *xmlDecoder) program(el xml.StartElement) (*Document, error) {
	if el.Name.Local != "program" {
		return nil, formatError("root element must be <program>, got <%s>", el.Name.Local)
	}

	doc := &Document{}
	for _, a := range el.Attr {
		switch a.Name.Local {
		case "language":
			doc.Language = a.Value
		case "name":
			doc.Name = a.Value
		case "description":
			doc.Description = a.Value
		default:
			return nil, formatError("invalid <program> attribute %q", a.Name.Local)
		}
	}
	if doc.Language != interpreter.LanguageName {
		return nil, formatError("invalid or missing language attribute %q", doc.Language)
	}

	err := d.children("program", func(child xml.StartElement) error {
		rec, err := d.instruction(child)
		if err != nil {
			return err
		}
		doc.Instructions = append(doc.Instructions, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *xmlDecoder) instruction(el xml.StartElement) (Record, error) {
	if el.Name.Local != "instruction" {
		return Record{}, formatError("expected <instruction>, got <%s>", el.Name.Local)
	}

	var rec Record
	var hasOrder bool
	for _, a := range el.Attr {
		switch a.Name.Local {
		case "opcode":
			rec.Opcode = a.Value
		case "order":
			n, err := strconv.Atoi(strings.TrimSpace(a.Value))
			if err != nil {
				return Record{}, formatError("instruction order %q is not a number", a.Value)
			}
			rec.Order = n
			hasOrder = true
		default:
			return Record{}, formatError("invalid <instruction> attribute %q", a.Name.Local)
		}
	}
	if rec.Opcode == "" {
		return Record{}, formatError("instruction opcode missing")
	}
	if !hasOrder {
		return Record{}, formatError("instruction %s: order missing", rec.Opcode)
	}

	err := d.children("instruction", func(child xml.StartElement) error {
		arg, err := d.arg(child)
		if err != nil {
			return fmt.Errorf("instruction %s order %d: %w", rec.Opcode, rec.Order, err)
		}
		rec.Args = append(rec.Args, arg)
		return nil
	})
	return rec, err
}

func (d *xmlDecoder) arg(el xml.StartElement) (Arg, error) {
	num, ok := strings.CutPrefix(el.Name.Local, "arg")
	pos, err := strconv.Atoi(num)
	if !ok || err != nil {
		return Arg{}, formatError("argument elements must be <arg1>..<arg3>, got <%s>", el.Name.Local)
	}

	a := Arg{Pos: pos}
	hasType := false
	for _, at := range el.Attr {
		if at.Name.Local != "type" {
			return Arg{}, formatError("invalid <%s> attribute %q", el.Name.Local, at.Name.Local)
		}
		a.Type = at.Value
		hasType = true
	}
	if !hasType {
		return Arg{}, formatError("<%s> has no type", el.Name.Local)
	}

	var text strings.Builder
	for {
		tok, err := d.token()
		if err == io.EOF {
			return Arg{}, formatError("unexpected end of document inside <%s>", el.Name.Local)
		}
		if err != nil {
			return Arg{}, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			return Arg{}, formatError("unexpected <%s> inside <%s>", t.Name.Local, el.Name.Local)
		case xml.EndElement:
			a.Text = text.String()
			return a, nil
		}
	}
}

// EncodeXML writes doc as an indented program document.
func EncodeXML(w io.Writer, doc *Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", " ")

	root := xml.StartElement{Name: xml.Name{Local: "program"}}
	root.Attr = append(root.Attr, xml.Attr{Name: xml.Name{Local: "language"}, Value: doc.Language})
	if doc.Name != "" {
		root.Attr = append(root.Attr, xml.Attr{Name: xml.Name{Local: "name"}, Value: doc.Name})
	}
	if doc.Description != "" {
		root.Attr = append(root.Attr, xml.Attr{Name: xml.Name{Local: "description"}, Value: doc.Description})
	}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	for _, rec := range doc.Instructions {
		in := xml.StartElement{
			Name: xml.Name{Local: "instruction"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "order"}, Value: strconv.Itoa(rec.Order)},
				{Name: xml.Name{Local: "opcode"}, Value: rec.Opcode},
			},
		}
		if err := enc.EncodeToken(in); err != nil {
			return err
		}
		for _, a := range rec.Args {
			el := xml.StartElement{
				Name: xml.Name{Local: "arg" + strconv.Itoa(a.Pos)},
				Attr: []xml.Attr{{Name: xml.Name{Local: "type"}, Value: a.Type}},
			}
			if err := enc.EncodeElement(a.Text, el); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(in.End()); err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
