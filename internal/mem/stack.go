package mem

import "errors"

// StackCapacity is the number of values a Stack can hold.
const StackCapacity = 32

var (
	// ErrOverflow indicates a push onto a full Stack.
	ErrOverflow = errors.New("stack overflow")

	// ErrUnderflow indicates a pop from an empty Stack.
	ErrUnderflow = errors.New("stack underflow")
)

// Stack implements a fixed capacity LIFO of 32-bit values.
// It never grows: a push past StackCapacity fails, leaving the stack as it
// was. The zero value is an empty stack.
type Stack struct {
	n      int
	values [StackCapacity]uint32
}

// SP returns the index of the top value, or -1 when the stack is empty.
func (st *Stack) SP() int32 { return int32(st.n - 1) }

// Len returns the number of values on the stack.
func (st *Stack) Len() int { return st.n }

// Push stores val above the current top.
// Returns ErrOverflow if the stack is full; no store is done.
func (st *Stack) Push(val uint32) error {
	if st.n >= StackCapacity {
		return ErrOverflow
	}
	st.values[st.n] = val
	st.n++
	return nil
}

// Pop removes and returns the top value.
// Returns 0 and ErrUnderflow if the stack is empty; SP is left unchanged.
func (st *Stack) Pop() (uint32, error) {
	if st.n == 0 {
		return 0, ErrUnderflow
	}
	st.n--
	return st.values[st.n], nil
}

// Values returns a copy of the live values, bottom first.
func (st *Stack) Values() []uint32 {
	vals := make([]uint32, st.n)
	copy(vals, st.values[:st.n])
	return vals
}

// TopDown returns a copy of the live values, top first.
func (st *Stack) TopDown() []uint32 {
	vals := make([]uint32, st.n)
	for i := range vals {
		vals[i] = st.values[st.n-1-i]
	}
	return vals
}
