package interpreter

import "ippvm/pkg/stack"

// Frame holds named variable slots. A slot holding the nil Value is declared
// but uninitialized.
type Frame struct {
	Vars map[string]Value
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{Vars: make(map[string]Value)}
}

// Frames is the frame model: one global frame, a stack of local frames and
// an optional temporary frame.
type Frames struct {
	global *Frame
	locals *stack.Stack[*Frame]
	temp   *Frame // nil when absent
}

// NewFrames returns a frame model holding only an empty global frame.
func NewFrames() *Frames {
	return &Frames{
		global: NewFrame(),
		locals: stack.New[*Frame](),
	}
}

// Create replaces the temporary frame with a fresh one.
func (f *Frames) Create() {
	f.temp = NewFrame()
}

// Push moves the temporary frame onto the local frame stack.
func (f *Frames) Push() error {
	if f.temp == nil {
		return Errorf(KindFrame, "temporary frame does not exist")
	}
	f.locals.Push(f.temp)
	f.temp = nil
	return nil
}

// Pop moves the top local frame into the temporary frame slot.
func (f *Frames) Pop() error {
	top, ok := f.locals.Pop()
	if !ok {
		return Errorf(KindFrame, "local frame stack is empty")
	}
	f.temp = top
	return nil
}

// Depth returns the number of local frames.
func (f *Frames) Depth() int {
	return f.locals.Size()
}

// HasTemporary reports whether a temporary frame exists.
func (f *Frames) HasTemporary() bool {
	return f.temp != nil
}

// resolve returns the frame addressed by tag.
func (f *Frames) resolve(tag FrameTag) (*Frame, error) {
	switch tag {
	case GlobalFrame:
		return f.global, nil
	case LocalFrame:
		top, ok := f.locals.Peek()
		if !ok {
			return nil, Errorf(KindFrame, "local frame does not exist")
		}
		return top, nil
	case TemporaryFrame:
		if f.temp == nil {
			return nil, Errorf(KindFrame, "temporary frame does not exist")
		}
		return f.temp, nil
	}
	return nil, Errorf(KindInternal, "unknown frame %q", tag)
}

// Declare adds an uninitialized variable. Redeclaring a name resets it.
func (f *Frames) Declare(ref VarRef) error {
	fr, err := f.resolve(ref.Frame)
	if err != nil {
		return err
	}
	fr.Vars[ref.Name] = Value{}
	return nil
}

// Read returns the value of a declared, initialized variable.
func (f *Frames) Read(ref VarRef) (Value, error) {
	fr, err := f.resolve(ref.Frame)
	if err != nil {
		return Value{}, err
	}
	v, ok := fr.Vars[ref.Name]
	if !ok {
		return Value{}, Errorf(KindBadVariable, "variable %s is not defined", ref)
	}
	if v.IsNil() {
		return Value{}, Errorf(KindMissingValue, "variable %s is uninitialized", ref)
	}
	return v, nil
}

// Write stores v into an already declared variable.
func (f *Frames) Write(ref VarRef, v Value) error {
	fr, err := f.resolve(ref.Frame)
	if err != nil {
		return err
	}
	if _, ok := fr.Vars[ref.Name]; !ok {
		return Errorf(KindBadVariable, "variable %s is not defined", ref)
	}
	fr.Vars[ref.Name] = v
	return nil
}
