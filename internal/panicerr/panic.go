package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Error is a recovered panic. Value is whatever was passed to panic, and
// Stack is the trace of the panicking goroutine at the point of recovery.
type Error struct {
	Name  string
	Value interface{}
	Stack []byte
}

func recoverPanicError(name string, errp *error) {
	if e := recover(); e != nil {
		*errp = Error{Name: name, Value: e, Stack: debug.Stack()}
	}
}

func (pe Error) Error() string { return fmt.Sprint(pe) }

// Format writes "name paniced: value"; the %+v verb appends the stack.
func (pe Error) Format(f fmt.State, c rune) {
	if pe.Name != "" {
		fmt.Fprintf(f, "%v ", pe.Name)
	}
	fmt.Fprintf(f, "paniced: %v", pe.Value)
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.Stack)
	}
}

// Unwrap returns the panic value when it is an error, so that errors.Is and
// errors.As see through recovered panics.
func (pe Error) Unwrap() error {
	err, _ := pe.Value.(error)
	return err
}

// IsPanic returns true if err indicates a recovered panic.
func IsPanic(err error) bool {
	_, ok := asError(err)
	return ok
}

// PanicStack returns the stack trace of a recovered panic in err, or "".
func PanicStack(err error) string {
	if pe, ok := asError(err); ok {
		return string(pe.Stack)
	}
	return ""
}

func asError(err error) (pe Error, ok bool) {
	ok = errors.As(err, &pe)
	return pe, ok
}
