package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/AnastasiaShevchenko/interpreters-comparison/internal/mem"
)

// fetch reads the word at the program counter; the caller must ensure that
// pc is within the program store.
func (vm *VM) fetch() Word {
	if vm.pc >= ProgramSize {
		panic(fmt.Errorf("unchecked fetch @%v: %w", vm.pc, pcError(vm.pc)))
	}
	return vm.prog[vm.pc]
}

// fetchChecked is fetch, except that a program counter past the end of the
// store breaks the machine instead; Break is returned without reading memory.
func (vm *VM) fetchChecked() Word {
	if vm.pc >= ProgramSize {
		vm.breakWith(pcError(vm.pc))
		return opBreak
	}
	return vm.fetch()
}

// decode maps a fetched word to an instruction. A 2-word opcode without room
// for its immediate, or an undefined opcode, is reported and decodes as a
// 1-word Break.
func (vm *VM) decode(raw Word) decoded {
	d := decoded{op: raw, length: 1}
	switch raw {
	case opNop, opHalt, opPrint, opSwap, opDup, opInc, opAdd,
		opSub, opMul, opRand, opDec, opDrop, opOver, opMod:

	case opPush, opJNE, opJE, opJump:
		if vm.pc+1 >= ProgramSize {
			vm.report(immError(vm.pc))
			d.op = opBreak
			break
		}
		d.length = 2
		d.imm = int32(vm.prog[vm.pc+1])

	case opBreak:

	default:
		vm.report(codeError(raw))
		d.op = opBreak
	}
	return d
}

// fetchDecode fetches and decodes the next instruction; ok is false if the
// machine broke on fetch.
func (vm *VM) fetchDecode() (d decoded, ok bool) {
	raw := vm.fetchChecked()
	if vm.state != Running {
		return d, false
	}
	return vm.decode(raw), true
}

func (vm *VM) push(val uint32) {
	if err := vm.stack.Push(val); err != nil {
		vm.breakWith(err)
	}
}

func (vm *VM) pop() uint32 {
	val, err := vm.stack.Pop()
	if err != nil {
		vm.breakWith(err)
	}
	return val
}

// pop2 pops the top value a, then the value b below it. If either pop fails
// ok is false, and b is not popped after a failed a.
func (vm *VM) pop2() (a, b uint32, ok bool) {
	if a = vm.pop(); vm.state != Running {
		return a, 0, false
	}
	b = vm.pop()
	return a, b, vm.state == Running
}

// emit writes val as one decimal line of output, shown as a signed value.
// Only the first write error is kept; output never affects the machine.
func (vm *VM) emit(val uint32) {
	vm.outBuf = strconv.AppendInt(vm.outBuf[:0], int64(int32(val)), 10)
	vm.outBuf = append(vm.outBuf, '\n')
	if _, err := vm.out.Write(vm.outBuf); err != nil && vm.outErr == nil {
		vm.outErr = err
	}
}

// report logs a fault, retaining the first one of the run as its cause.
func (vm *VM) report(err error) {
	vm.logf("%v @%v", err, vm.pc)
	if vm.cause == nil {
		vm.cause = err
		vm.causePC = vm.pc
	}
}

// breakWith reports a fault, then moves the machine into Break.
func (vm *VM) breakWith(err error) {
	vm.report(err)
	vm.state = Break
}

var (
	errStackOverflow  = mem.ErrOverflow
	errStackUnderflow = mem.ErrUnderflow
	errDivZero        = errors.New("modulo by zero")
	errBreak          = errors.New("break instruction")
)

type pcError uint32
type immError uint32
type codeError Word

// The faulting pc is logged and reported alongside these, so their messages
// leave it out.
func (pcError) Error() string      { return "pc out of bounds" }
func (immError) Error() string     { return "immediate out of bounds" }
func (op codeError) Error() string { return fmt.Sprintf("undefined opcode %v", Word(op)) }

// BreakError is returned by VM.Run when the machine stopped in Break. Err is
// the first fault reported by the run; PC is where it was reported.
type BreakError struct {
	PC    uint32
	Steps uint64
	Err   error
}

func (be BreakError) Error() string {
	return fmt.Sprintf("break @%v after %v steps: %v", be.PC, be.Steps, be.Err)
}

func (be BreakError) Unwrap() error { return be.Err }
