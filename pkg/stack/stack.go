package stack

// Stack is a LIFO of values of type T.
type Stack[T any] struct {
	a []T
}

// New creates a new stack instance
func New[T any](elm ...T) *Stack[T] {
	return &Stack[T]{a: append(make([]T, 0, len(elm)), elm...)}
}

// Push adds an element to the top of the stack
func (s *Stack[T]) Push(elm T) {
	s.a = append(s.a, elm)
}

// Pop removes and returns the top element of the stack. ok is false when the
// stack is empty.
func (s *Stack[T]) Pop() (elm T, ok bool) {
	if len(s.a) == 0 {
		return elm, false
	}

	elm = s.a[len(s.a)-1]
	var zero T
	s.a[len(s.a)-1] = zero
	s.a = s.a[:len(s.a)-1]

	return elm, true
}

// Peek returns the top element of the stack without removing it
func (s *Stack[T]) Peek() (elm T, ok bool) {
	if len(s.a) == 0 {
		return elm, false
	}

	return s.a[len(s.a)-1], true
}

// Size returns the number of elements on the stack
func (s *Stack[T]) Size() int {
	return len(s.a)
}

// Clear removes every element
func (s *Stack[T]) Clear() {
	clear(s.a)
	s.a = s.a[:0]
}

// Array returns the elements bottom to top
func (s *Stack[T]) Array() []T {
	return s.a
}
