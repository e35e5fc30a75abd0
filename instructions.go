package main

import (
	"strconv"
	"strings"
)

// ProgramSize is the number of word slots in a Program.
const ProgramSize = 512

// Word is one encoded slot of a Program: either an opcode, or the signed
// 32-bit immediate that follows a 2-word opcode.
type Word int32

// Program is the fixed capacity store of encoded words that a VM executes.
// Interpretation is purely positional: there is no header or length, and any
// unused trailing slots hold 0, which encodes Break.
type Program [ProgramSize]Word

//// Instruction set

// Every opcode is exactly one word. Push, JNE, JE and Jump are followed by an
// immediate word; all others stand alone. Any value not listed here is an
// undefined instruction, which executes as Break.
const (
	opBreak Word = iota // break  stop running, with a fault
	opNop               // nop    do nothing
	opHalt              // halt   stop running, successfully
	opPush              // push   push the immediate
	opPrint             // print  pop and emit as a decimal line
	opJNE               // jne    pop, branch by the immediate if not zero
	opSwap              // swap   exchange the top two values
	opDup               // dup    copy the top value
	opJE                // je     pop, branch by the immediate if zero
	opInc               // inc    add 1 to the top value
	opAdd               // add    pop two, push their sum
	opSub               // sub    pop two, push top minus second
	opMul               // mul    pop two, push their product
	opRand              // rand   push a random value
	opDec               // dec    subtract 1 from the top value
	opDrop              // drop   discard the top value
	opOver              // over   copy the second value above the top
	opMod               // mod    pop two, push top modulo second
	opJump              // jump   branch by the immediate

	opMax
)

var opNames = [opMax]string{
	"break",
	"nop",
	"halt",
	"push",
	"print",
	"jne",
	"swap",
	"dup",
	"je",
	"inc",
	"add",
	"sub",
	"mul",
	"rand",
	"dec",
	"drop",
	"over",
	"mod",
	"jump",
}

// hasImmediate returns true for the 2-word opcodes.
func hasImmediate(op Word) bool {
	switch op {
	case opPush, opJNE, opJE, opJump:
		return true
	}
	return false
}

func opName(op Word) string {
	if op >= 0 && op < opMax {
		return opNames[op]
	}
	return ""
}

// decoded is the ephemeral result of decoding the word at the program counter.
type decoded struct {
	op     Word
	length uint32
	imm    int32
}

func (d decoded) String() string {
	var sb strings.Builder
	sb.WriteString(opName(d.op))
	if d.length == 2 {
		sb.WriteByte('(')
		sb.WriteString(strconv.Itoa(int(d.imm)))
		sb.WriteByte(')')
	}
	return sb.String()
}
