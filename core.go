package main

import (
	"fmt"

	"github.com/AnastasiaShevchenko/interpreters-comparison/internal/flushio"
	"github.com/AnastasiaShevchenko/interpreters-comparison/internal/mem"
)

// VM is a stack machine: a program counter walking a read-only Program, an
// operand stack of 32-bit values, and a small state machine deciding when to
// stop.
type VM struct {
	logging

	prog  *Program // not owned; never written
	pc    uint32
	stack mem.Stack
	state State
	steps uint64

	limit    uint64
	dispatch Dispatch
	rand     func() uint32

	cur decoded // instruction in flight, for threaded dispatch

	out    flushio.WriteFlusher
	outBuf []byte
	outErr error

	cause   error // first fault reported during the run
	causePC uint32
}

// State is the run state of a VM.
type State uint8

// A VM starts Running, and moves at most once into Halted or Break, where it
// stays.
const (
	Running State = iota
	Halted
	Break
)

func (st State) String() string {
	switch st {
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Break:
		return "Break"
	}
	return fmt.Sprintf("State(%d)", uint8(st))
}

type logging struct {
	logfn   func(mess string, args ...interface{})
	tracefn func(mess string, args ...interface{})
}

func (log *logging) withLogPrefix(prefix string) {
	if logfn := log.logfn; logfn != nil {
		log.logfn = func(mess string, args ...interface{}) {
			logfn(prefix+mess, args...)
		}
	}
	if tracefn := log.tracefn; tracefn != nil {
		log.tracefn = func(mess string, args ...interface{}) {
			tracefn(prefix+mess, args...)
		}
	}
}

func (log logging) logf(mess string, args ...interface{}) {
	if log.logfn != nil {
		log.logfn(mess, args...)
	}
}

func (vm *VM) trace(d decoded) {
	if vm.tracefn != nil {
		vm.tracefn("exec @%v %v -- s:%v", vm.pc, d, vm.stack.Values())
	}
}
