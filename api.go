package main

import (
	"fmt"
	"io"

	"github.com/AnastasiaShevchenko/interpreters-comparison/internal/panicerr"
)

// New creates a VM ready to run prog from its first word, with an empty
// stack. The VM only ever reads prog.
func New(prog *Program, opts ...VMOption) *VM {
	vm := VM{prog: prog}
	VMOptions(defaults...).apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Run executes instructions until the machine halts, breaks, or has run as
// many steps as its limit allows. Running out of steps is not an error: the
// machine simply stays Running.
//
// A machine that ends in Break returns a BreakError naming the first fault.
// Output is flushed before returning, and the first output error, if any, is
// returned when the machine itself did not fail.
func (vm *VM) Run() error {
	err := panicerr.Recover("VM", func() error {
		switch vm.dispatch {
		case Threaded:
			vm.runThreaded()
		default:
			vm.runSwitched()
		}
		return nil
	})
	if ferr := vm.out.Flush(); vm.outErr == nil {
		vm.outErr = ferr
	}
	if err != nil {
		return err
	}
	if vm.state == Break {
		return BreakError{PC: vm.causePC, Steps: vm.steps, Err: vm.cause}
	}
	return vm.outErr
}

// Snapshot captures the externally visible machine state.
func (vm *VM) Snapshot() Snapshot {
	return Snapshot{
		State: vm.state,
		PC:    vm.pc,
		SP:    vm.stack.SP(),
		Steps: vm.steps,
		Stack: vm.stack.TopDown(),
	}
}

// Dispatch selects how a VM transfers control from a decoded instruction to
// its effect. Both strategies have identical observable behavior.
type Dispatch int

// Dispatch strategies.
const (
	// Switched runs a single loop that branches on each decoded opcode.
	Switched Dispatch = iota

	// Threaded has each instruction handler select the next handler from an
	// opcode indexed table.
	Threaded
)

var dispatchNames = [...]string{"switched", "threaded"}

func (d Dispatch) String() string {
	if d >= 0 && int(d) < len(dispatchNames) {
		return dispatchNames[d]
	}
	return fmt.Sprintf("Dispatch(%d)", int(d))
}

// Set parses a strategy name, so that Dispatch can be a flag.Value.
func (d *Dispatch) Set(s string) error {
	for i, name := range dispatchNames {
		if s == name {
			*d = Dispatch(i)
			return nil
		}
	}
	return fmt.Errorf("unknown dispatch strategy %q", s)
}

func WithOutput(w io.Writer) VMOption      { return withOutput(w) }
func WithTee(w io.Writer) VMOption         { return withTee(w) }
func WithStepLimit(limit uint64) VMOption  { return withStepLimit(limit) }
func WithDispatch(d Dispatch) VMOption     { return withDispatch(d) }
func WithSeed(seed int64) VMOption         { return withSeed(seed) }
func WithLogPrefix(prefix string) VMOption { return withLogPrefix(prefix) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption     { return withLogfn(logfn) }
func WithTracef(tracefn func(mess string, args ...interface{})) VMOption { return withTracefn(tracefn) }
