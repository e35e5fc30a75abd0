package main

// runSwitched is the central dispatcher: one loop that fetches, decodes, and
// then branches on the opcode to an inline effect. Effects here must stay in
// step with the ones in ops.go, which threaded dispatch runs.
func (vm *VM) runSwitched() {
	for vm.state == Running && vm.steps < vm.limit {
		raw := vm.fetchChecked()
		if vm.state != Running {
			break
		}
		d := vm.decode(raw)
		vm.trace(d)

		switch d.op {
		case opNop:

		case opHalt:
			vm.state = Halted

		case opPush:
			vm.push(uint32(d.imm))

		case opPrint:
			if v := vm.pop(); vm.state == Running {
				vm.emit(v)
			}

		case opSwap:
			if a, b, ok := vm.pop2(); ok {
				vm.push(a)
				vm.push(b)
			}

		case opDup:
			if a := vm.pop(); vm.state == Running {
				vm.push(a)
				vm.push(a)
			}

		case opOver:
			if a, b, ok := vm.pop2(); ok {
				vm.push(b)
				vm.push(a)
				vm.push(b)
			}

		case opInc:
			if a := vm.pop(); vm.state == Running {
				vm.push(a + 1)
			}

		case opDec:
			if a := vm.pop(); vm.state == Running {
				vm.push(a - 1)
			}

		case opAdd:
			if a, b, ok := vm.pop2(); ok {
				vm.push(a + b)
			}

		case opSub:
			if a, b, ok := vm.pop2(); ok {
				vm.push(a - b)
			}

		case opMul:
			if a, b, ok := vm.pop2(); ok {
				vm.push(a * b)
			}

		case opMod:
			a, b, ok := vm.pop2()
			if !ok {
				break
			}
			if b == 0 {
				vm.breakWith(errDivZero)
				break
			}
			vm.push(a % b)

		case opRand:
			vm.push(vm.rand())

		case opDrop:
			vm.pop()

		case opJE:
			if v := vm.pop(); vm.state == Running && v == 0 {
				vm.pc += uint32(d.imm)
			}

		case opJNE:
			if v := vm.pop(); vm.state == Running && v != 0 {
				vm.pc += uint32(d.imm)
			}

		case opJump:
			vm.pc += uint32(d.imm)

		case opBreak:
			vm.breakWith(errBreak)

		default:
			panic(codeError(d.op))
		}

		vm.pc += d.length
		vm.steps++
	}
}
