package main

import "sort"

// Jump displacements below count from the word after the jump's immediate:
// a "jne -8" at @11 continues at @11 + 2 - 8 = @5 when taken.

// primes prints every prime below 100000 by trial division.
var primes = Program{
	opPush, 100000, // nmax (largest number to test, exclusive)
	opPush, 2,      // nmax c
	/* @4 back: */
	opOver,        // nmax c nmax
	opOver,        // nmax c nmax c
	opSub,         // nmax c c-nmax
	opJE, +23,     // nmax c            -> @32 end
	opPush, 2,     // nmax c d
	/* @11 back2: */
	opOver,        // nmax c d c
	opOver,        // nmax c d c d
	opSwap,        // nmax c d d c
	opSub,         // nmax c d c-d
	opJE, +9,      // nmax c d          -> @26 print_prime
	opOver,        // nmax c d c
	opOver,        // nmax c d c d
	opSwap,        // nmax c d d c
	opMod,         // nmax c d c%d
	opJE, +5,      // nmax c d          -> @28 not_prime
	opInc,         // nmax c d+1
	opJump, -15,   // nmax c d+1        -> @11 back2
	/* @26 print_prime: */
	opOver,        // nmax c d c
	opPrint,       // nmax c d
	/* @28 not_prime: */
	opDrop,        // nmax c
	opInc,         // nmax c+1
	opJump, -28,   // nmax c+1          -> @4 back
	/* @32 end: */
	opHalt,        // nmax c
}

// factorial prints 12!, the largest factorial that fits in 32 bits.
var factorial = Program{
	opPush, 12, // n
	opPush, 1,  // n a
	opSwap,     // a n
	/* @5 back: */
	opSwap,     // n a
	opOver,     // n a n
	opMul,      // n a*n
	opSwap,     // a n
	opDec,      // a n-1
	opDup,      // a n n
	opJNE, -8,  // a n              -> @5 back
	opSwap,     // n a
	opPrint,    // n
	opHalt,
}

// smoke runs every stack and arithmetic instruction once.
var smoke = Program{
	opNop,
	opPush, 0x11112222,
	opPush, 0xf00d,
	opPrint,
	opPush, 0x1,
	opPush, 0x2,
	opPush, 0x3,
	opPush, 0x4,
	opSwap,
	opDup,
	opInc,
	opAdd,
	opSub,
	opMul,
	opRand,
	opDec,
	opDrop,
	opOver,
	opHalt,
	opBreak,
}

type sample struct {
	prog        *Program
	description string
}

var samples = map[string]sample{
	"primes":    {&primes, "print every prime below 100000"},
	"factorial": {&factorial, "print 12!"},
	"smoke":     {&smoke, "run each stack and arithmetic instruction once"},
}

func sampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
