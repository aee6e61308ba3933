package interpreter

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"ippvm/pkg/stack"
)

// State is the lifecycle state of an Interpreter.
type State int

const (
	StateLoaded  State = iota // program validated, labels not mapped
	StateRunning              // labels mapped, runtime state reset
	StateHalted               // ran past the last instruction
	StateFaulted              // an instruction failed
)

func (s State) String() string {
	return [...]string{"loaded", "running", "halted", "faulted"}[s]
}

// Interpreter executes a validated Program
type Interpreter struct {
	prog *Program
	pc   int // index of the instruction being executed

	labels map[string]int // label name -> instruction index
	frames *Frames
	data   *stack.Stack[Value] // operand stack (PUSHS/POPS)
	calls  *stack.Stack[int]   // return addresses (CALL/RETURN)

	in     *bufio.Reader // READ source
	out    io.Writer     // WRITE
	errOut io.Writer     // DPRINT

	state State
	steps int  // instructions executed in the current run
	trace bool // log every step at debug level
}

type Option func(*Interpreter)

// WithWriter sets the writer used by WRITE
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithDiagWriter sets the writer used by DPRINT
func WithDiagWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.errOut = w }
}

// WithInput sets the line source consumed by READ
func WithInput(r io.Reader) Option {
	return func(i *Interpreter) { i.in = bufio.NewReader(r) }
}

// WithTrace enables per-instruction debug logging
func WithTrace(on bool) Option {
	return func(i *Interpreter) { i.trace = on }
}

// NewInterpreter creates a new Interpreter instance in the loaded state
func NewInterpreter(prog *Program, opts ...Option) *Interpreter {
	it := &Interpreter{
		prog:   prog,
		labels: make(map[string]int),
		frames: NewFrames(),
		data:   stack.New[Value](),
		calls:  stack.New[int](),
		state:  StateLoaded,
	}

	for _, o := range opts {
		o(it)
	}

	if it.in == nil {
		it.in = bufio.NewReader(os.Stdin)
	}
	if it.out == nil {
		it.out = os.Stdout
	}
	if it.errOut == nil {
		it.errOut = os.Stderr
	}

	return it
}

// Reset clears frames, both stacks and the program counter and rebuilds the
// label table. The instruction list is kept.
func (i *Interpreter) Reset() error {
	i.pc = 0
	i.steps = 0
	i.frames = NewFrames()
	i.data.Clear()
	i.calls.Clear()

	if err := i.mapLabels(); err != nil {
		i.state = StateFaulted
		return err
	}

	i.state = StateRunning
	if len(i.prog.Instructions) == 0 {
		i.state = StateHalted
	}
	return nil
}

// mapLabels builds the label table; a label declared twice is a semantic error
func (i *Interpreter) mapLabels() error {
	i.labels = make(map[string]int)
	for idx, in := range i.prog.Instructions {
		if in.Op != OpLabel {
			continue
		}
		name := in.Args[0].Name()
		if prev, ok := i.labels[name]; ok {
			return Errorf(KindSemantic, "label %s declared twice (orders %d and %d)",
				name, i.prog.Instructions[prev].Order, in.Order)
		}
		i.labels[name] = idx
	}

	log.Debug("Label table built", "labels", len(i.labels))
	return nil
}

// Step executes a single instruction, returning (halted, error)
func (i *Interpreter) Step() (bool, error) {
	switch i.state {
	case StateHalted:
		return true, nil
	case StateRunning:
	default:
		return false, Errorf(KindInternal, "interpreter is %s", i.state)
	}

	in := i.prog.Instructions[i.pc]
	if i.trace {
		log.Debug("Step", "pc", i.pc, "instr", in)
	}

	if err := signatures[in.Op].exec(i, in); err != nil {
		i.state = StateFaulted
		return false, err
	}
	i.steps++
	i.pc++

	if i.pc >= len(i.prog.Instructions) {
		i.state = StateHalted
		return true, nil
	}
	return false, nil
}

// Run resets the runtime state and executes until halt or error
func (i *Interpreter) Run() error {
	if err := i.Reset(); err != nil {
		return err
	}

	for {
		halted, err := i.Step()
		if err != nil {
			if in, ok := i.Current(); ok {
				log.Debug("Execution failed", "pc", i.pc, "instr", in, "error", err)
			}
			return err
		}

		if halted {
			log.Debug("Execution finished", "steps", i.steps)
			return nil
		}
	}
}

// State returns the lifecycle state
func (i *Interpreter) State() State {
	return i.state
}

// PC returns the index of the next instruction to execute
func (i *Interpreter) PC() int {
	return i.pc
}

// Steps returns the number of instructions executed since the last reset
func (i *Interpreter) Steps() int {
	return i.steps
}

// Current returns the instruction at the program counter, if any
func (i *Interpreter) Current() (*Instruction, bool) {
	if i.pc < 0 || i.pc >= len(i.prog.Instructions) {
		return nil, false
	}
	return i.prog.Instructions[i.pc], true
}

// Program returns the loaded program
func (i *Interpreter) Program() *Program {
	return i.prog
}

// Frames exposes the frame model of the current run
func (i *Interpreter) Frames() *Frames {
	return i.frames
}

// StackDepth returns the data stack and call stack depths
func (i *Interpreter) StackDepth() (data, calls int) {
	return i.data.Size(), i.calls.Size()
}

// jumpTo makes label the next instruction; the increment after the routine
// lands exactly on it.
func (i *Interpreter) jumpTo(label string) error {
	idx, ok := i.labels[label]
	if !ok {
		return Errorf(KindSemantic, "label %s does not exist", label)
	}
	i.pc = idx - 1
	return nil
}

// symbol resolves a symbol operand to its value
func (i *Interpreter) symbol(o Operand) (Value, error) {
	if o.Kind == ArgVar {
		return i.frames.Read(o.ref)
	}
	if v, ok := o.Literal(); ok {
		return v, nil
	}
	return Value{}, Errorf(KindInternal, "operand %d (%s) is not a symbol", o.Pos, o.Kind)
}

// assign writes v to the variable named by a var operand
func (i *Interpreter) assign(o Operand, v Value) error {
	return i.frames.Write(o.ref, v)
}

// readLine consumes one input line without its line terminator. End of
// input yields an empty line.
func (i *Interpreter) readLine() (string, error) {
	line, err := i.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", Errorf(KindSourceInput, "read: %v", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
