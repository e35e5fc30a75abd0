package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Snapshot is the externally visible state of a VM.
type Snapshot struct {
	State State
	PC    uint32
	SP    int32
	Steps uint64
	Stack []uint32 // top first
}

// Succeeded returns true if the machine halted, or was still running when it
// used up exactly limit steps.
func (snap Snapshot) Succeeded(limit uint64) bool {
	switch snap.State {
	case Halted:
		return true
	case Running:
		return snap.Steps == limit
	}
	return false
}

// WriteTo writes the end of run report: a summary line, the registers, and
// the stack from top to bottom.
func (snap Snapshot) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Machine executed %v steps. End state %q.\n", snap.Steps, snap.State.String())
	fmt.Fprintf(&sb, "PC = %#x, SP = %v\n", snap.PC, snap.SP)
	sb.WriteString("Stack:")
	for _, val := range snap.Stack {
		fmt.Fprintf(&sb, " %#10x", val)
	}
	if len(snap.Stack) == 0 {
		sb.WriteString(" (empty)")
	}
	sb.WriteByte('\n')
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

type fmtBuf interface {
	Len() int
	WriteByte(c byte) error
	WriteString(s string) (n int, err error)
}

// progDumper writes a listing of a program store, one instruction per line.
// Trailing Break words are elided.
type progDumper struct {
	prog *Program
	out  io.Writer

	addrWidth int
}

func (dump progDumper) dump() {
	end := uint32(ProgramSize)
	for end > 0 && dump.prog[end-1] == opBreak {
		end--
	}
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(int(end)))
	}

	fmt.Fprintf(dump.out, "# Program (%v of %v words)\n", end, ProgramSize)
	var sb strings.Builder
	for addr := uint32(0); addr < end; {
		sb.Reset()
		fmt.Fprintf(&sb, "  @%*v ", dump.addrWidth, addr)
		addr = dump.formatCode(&sb, addr)
		sb.WriteByte('\n')
		io.WriteString(dump.out, sb.String())
	}
	if end < ProgramSize {
		fmt.Fprintf(dump.out, "  @%*v break...\n", dump.addrWidth, end)
	}
}

func (dump progDumper) formatCode(buf fmtBuf, addr uint32) uint32 {
	op := dump.prog[addr]
	addr++

	name := opName(op)
	if name == "" {
		buf.WriteString("undefined(")
		buf.WriteString(strconv.Itoa(int(op)))
		buf.WriteByte(')')
		return addr
	}
	buf.WriteString(name)

	if !hasImmediate(op) {
		return addr
	}
	if addr >= ProgramSize {
		buf.WriteString("(truncated)")
		return addr
	}

	imm := int32(dump.prog[addr])
	addr++
	buf.WriteByte('(')
	buf.WriteString(strconv.Itoa(int(imm)))
	buf.WriteByte(')')
	if op != opPush {
		buf.WriteString(" -> @")
		buf.WriteString(strconv.FormatUint(uint64(addr+uint32(imm)), 10))
	}
	return addr
}
