/* Package main: a small stack machine, run two ways.

The machine executes a Program: a fixed store of 512 signed 32-bit words,
holding opcodes and the immediates that follow Push, JE, JNE and Jump. Its
state is a program counter, an operand stack of at most 32 unsigned 32-bit
values, a step counter, and a run state that starts Running and ends either
Halted (success) or Break (any fault).

Each step fetches the word at pc, decodes it into an instruction of one or
two words, applies its effect, then advances pc by the instruction length and
counts one step; jumps therefore land relative to the word after their
immediate. A step that faults still counts. A run ends on Halt, on Break, or
once the caller's step limit is used up, which is not a failure.

The same semantics are implemented by two dispatch strategies:

  - switched: one loop that decodes and branches on the opcode (switched.go)
  - threaded: each instruction's handler fetches the next instruction and
    hands back its handler, looked up in an opcode indexed table (threaded.go)

Both must agree on every observable: final state, pc, stack, step count, and
output. Running with "-dispatch compare" runs both side by side and fails on
any difference.

Programs come from the built-in samples (primes, factorial, smoke) or from a
YAML image:

	name: factorial
	words: [3, 12, 3, 1, 6, 6, 16, 12, 6, 14, 7, 5, -8, 6, 4, 2]

Usage:

	interpreters-comparison [-program name | -load image.yaml] [-dispatch how] [steplimit]

Print output, and a final report of the machine state, go to stdout; faults,
and with -trace every executed instruction, are logged to stderr. The exit
code is 0 when the machine halted or used up its step limit, 1 on a fault,
and 2 for a bad command line.
*/
package main
