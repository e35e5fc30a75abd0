package main

//// Instruction effects
//
// Stack effects are written ( before -- after ), top of stack rightmost. A
// failed pop ends the effect on the spot: the machine is already in Break, so
// nothing more is pushed. Jumps move pc relative to the start of their own
// instruction; the engine then still adds the instruction length, so a taken
// branch lands at pc + 2 + immediate.

//// Control

// Name    Stack        Function
// nop     ( -- )       do nothing
func (vm *VM) nop(decoded) {}

// Name    Stack        Function
// halt    ( -- )       stop the machine successfully
func (vm *VM) halt(decoded) { vm.state = Halted }

// Name    Stack        Function
// break   ( -- )       stop the machine with a fault; also what any undefined
//                      or truncated instruction decodes to
func (vm *VM) brk(decoded) { vm.breakWith(errBreak) }

// Name    Stack        Function
// jump    ( -- )       add the immediate to pc
func (vm *VM) jump(d decoded) { vm.pc += uint32(d.imm) }

// Name    Stack        Function
// je      ( v -- )     add the immediate to pc if v is zero
func (vm *VM) je(d decoded) {
	if v := vm.pop(); vm.state == Running && v == 0 {
		vm.pc += uint32(d.imm)
	}
}

// Name    Stack        Function
// jne     ( v -- )     add the immediate to pc if v is not zero
func (vm *VM) jne(d decoded) {
	if v := vm.pop(); vm.state == Running && v != 0 {
		vm.pc += uint32(d.imm)
	}
}

//// Stack

// Name    Stack          Function
// push    ( -- imm )     push the immediate
func (vm *VM) pushImm(d decoded) { vm.push(uint32(d.imm)) }

// Name    Stack          Function
// drop    ( a -- )       discard the top value
func (vm *VM) drop(decoded) { vm.pop() }

// Name    Stack          Function
// dup     ( a -- a a )   copy the top value
func (vm *VM) dup(decoded) {
	if a := vm.pop(); vm.state == Running {
		vm.push(a)
		vm.push(a)
	}
}

// Name    Stack              Function
// swap    ( b a -- a b )     exchange the top two values
func (vm *VM) swap(decoded) {
	if a, b, ok := vm.pop2(); ok {
		vm.push(a)
		vm.push(b)
	}
}

// Name    Stack              Function
// over    ( b a -- b a b )   copy the second value above the top
func (vm *VM) over(decoded) {
	if a, b, ok := vm.pop2(); ok {
		vm.push(b)
		vm.push(a)
		vm.push(b)
	}
}

//// Arithmetic
//
// All arithmetic wraps around at 32 bits; dec of 0 is 0xffffffff.

// Name    Stack          Function
// inc     ( a -- a+1 )
func (vm *VM) inc(decoded) {
	if a := vm.pop(); vm.state == Running {
		vm.push(a + 1)
	}
}

// Name    Stack          Function
// dec     ( a -- a-1 )
func (vm *VM) dec(decoded) {
	if a := vm.pop(); vm.state == Running {
		vm.push(a - 1)
	}
}

// Name    Stack            Function
// add     ( b a -- a+b )
func (vm *VM) add(decoded) {
	if a, b, ok := vm.pop2(); ok {
		vm.push(a + b)
	}
}

// Name    Stack            Function
// sub     ( b a -- a-b )   note the order: top minus second
func (vm *VM) sub(decoded) {
	if a, b, ok := vm.pop2(); ok {
		vm.push(a - b)
	}
}

// Name    Stack            Function
// mul     ( b a -- a*b )
func (vm *VM) mul(decoded) {
	if a, b, ok := vm.pop2(); ok {
		vm.push(a * b)
	}
}

// Name    Stack            Function
// mod     ( b a -- a%b )   top modulo second; breaks when the second is 0
func (vm *VM) mod(decoded) {
	if a, b, ok := vm.pop2(); !ok {
		return
	} else if b == 0 {
		vm.breakWith(errDivZero)
	} else {
		vm.push(a % b)
	}
}

// Name    Stack          Function
// rand    ( -- r )       push a pseudo random value; the stack is not read
func (vm *VM) random(decoded) { vm.push(vm.rand()) }

//// Output

// Name    Stack          Function
// print   ( v -- )       emit v as a decimal line
func (vm *VM) print(decoded) {
	if v := vm.pop(); vm.state == Running {
		vm.emit(v)
	}
}

// opEffects maps every opcode to its effect; it is the handler table used by
// threaded dispatch.
var opEffects = [opMax]func(vm *VM, d decoded){
	opBreak: (*VM).brk,
	opNop:   (*VM).nop,
	opHalt:  (*VM).halt,
	opPush:  (*VM).pushImm,
	opPrint: (*VM).print,
	opJNE:   (*VM).jne,
	opSwap:  (*VM).swap,
	opDup:   (*VM).dup,
	opJE:    (*VM).je,
	opInc:   (*VM).inc,
	opAdd:   (*VM).add,
	opSub:   (*VM).sub,
	opMul:   (*VM).mul,
	opRand:  (*VM).random,
	opDec:   (*VM).dec,
	opDrop:  (*VM).drop,
	opOver:  (*VM).over,
	opMod:   (*VM).mod,
	opJump:  (*VM).jump,
}
