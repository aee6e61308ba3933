package runner

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"ippvm/pkg/color"
	"ippvm/pkg/interpreter"
	"ippvm/pkg/lexer"
	"ippvm/pkg/parser"
	"ippvm/pkg/source"
)

// Emit formats accepted by Options.Emit. An empty Emit runs the program.
const (
	EmitXML   = "xml"
	EmitImage = "image"
)

type Options struct {
	Source  string // Path to the program, in text, XML or image form
	Input   string // Path to the file READ consumes; stdin when empty
	Emit    string // Convert instead of running (xml, image)
	Output  string // Where Emit writes; stdout when empty
	Trace   bool   // Log every executed instruction
	Verbose bool   // Print the instruction listing before running
	NoColor bool   // Disable colored output

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (opts *Options) streams() (io.Reader, io.Writer, io.Writer) {
	in, out, diag := opts.Stdin, opts.Stdout, opts.Stderr
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if diag == nil {
		diag = os.Stderr
	}
	return in, out, diag
}

// Run loads the source file and either converts it or executes it.
func (opts *Options) Run() error {
	if opts.NoColor {
		color.EnableColor(false)
	}

	switch opts.Emit {
	case "", EmitXML, EmitImage:
	default:
		return interpreter.Errorf(interpreter.KindArgumentUsage, "unknown emit format %q (want %s or %s)",
			opts.Emit, EmitXML, EmitImage)
	}

	if opts.Source == "" {
		return interpreter.Errorf(interpreter.KindArgumentUsage, "no source file given, see ippvm -h")
	}

	doc, err := Load(opts.Source)
	if err != nil {
		return err
	}

	// a program converts only after it validates
	prog, err := doc.Program()
	if err != nil {
		return fmt.Errorf("%s: %w", opts.Source, err)
	}
	log.Debug("Program loaded", "instructions", len(prog.Instructions))

	if opts.Emit != "" {
		return opts.emit(doc)
	}

	stdin, stdout, stderr := opts.streams()
	if opts.Verbose {
		printListing(stderr, prog)
	}

	if opts.Input != "" {
		f, err := os.Open(opts.Input)
		if err != nil {
			return interpreter.Errorf(interpreter.KindSourceInput, "cannot open input: %v", err)
		}
		defer f.Close()
		stdin = f
	}

	out := bufio.NewWriter(stdout)
	intr := interpreter.NewInterpreter(prog,
		interpreter.WithInput(stdin),
		interpreter.WithWriter(out),
		interpreter.WithDiagWriter(stderr),
		interpreter.WithTrace(opts.Trace),
	)

	runErr := intr.Run()
	if err := out.Flush(); err != nil && runErr == nil {
		runErr = interpreter.Errorf(interpreter.KindInternal, "write: %v", err)
	}
	return runErr
}

// Load reads a program file and decodes it according to its detected format.
func Load(path string) (*source.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, interpreter.Errorf(interpreter.KindSourceInput, "cannot read source: %v", err)
	}

	format := source.Sniff(data)
	log.Debug("Processing file", "file", path, "format", format, "bytes", len(data))

	var doc *source.Document
	switch format {
	case source.FormatImage:
		doc, err = source.DecodeImage(bytes.NewReader(data))
	case source.FormatXML:
		doc, err = source.DecodeXML(bytes.NewReader(data))
	default:
		text := strings.TrimPrefix(string(data), "\uFEFF")
		doc, err = parser.NewParser(lexer.NewLexer(text)).Parse()
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (opts *Options) emit(doc *source.Document) error {
	_, w, _ := opts.streams()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return interpreter.Errorf(interpreter.KindInternal, "cannot create output: %v", err)
		}
		defer f.Close()
		w = f
	}

	var err error
	switch opts.Emit {
	case EmitImage:
		err = source.EncodeImage(w, doc)
	default:
		err = source.EncodeXML(w, doc)
	}
	if err != nil {
		return interpreter.Errorf(interpreter.KindInternal, "emit %s: %v", opts.Emit, err)
	}
	return nil
}

func printListing(w io.Writer, prog *interpreter.Program) {
	header := interpreter.LanguageName
	if prog.Name != "" {
		header += " " + prog.Name
	}
	fmt.Fprintln(w, color.GreenText("=== "+header+" ==="))
	if len(prog.Instructions) == 0 {
		fmt.Fprintln(w, color.GrayText("No instructions."))
		return
	}

	for _, in := range prog.Instructions {
		args := make([]string, len(in.Args))
		for n, a := range in.Args {
			args[n] = color.BlueText(a.String())
		}
		fmt.Fprintf(w, "%s  %s %s\n", color.Order(in.Order), color.YellowText(in.Op.String()), strings.Join(args, " "))
	}
}
