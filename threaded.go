package main

// handler runs one instruction, then picks the handler for the next one,
// returning nil once the machine should stop. There is no central dispatcher
// deciding what runs next: runThreaded merely calls whatever the previous
// handler handed back.
type handler func(vm *VM) handler

var threadedTable [opMax]handler

func init() {
	for op, effect := range opEffects {
		effect := effect
		threadedTable[op] = func(vm *VM) handler {
			effect(vm, vm.cur)
			return vm.next()
		}
	}
}

// next retires the instruction in flight, then fetches and decodes the
// following one, returning its handler.
func (vm *VM) next() handler {
	vm.pc += vm.cur.length
	vm.steps++
	return vm.dispatchNext()
}

func (vm *VM) dispatchNext() handler {
	if vm.state != Running || vm.steps >= vm.limit {
		return nil
	}
	d, ok := vm.fetchDecode()
	if !ok {
		return nil
	}
	vm.cur = d
	vm.trace(d)
	return threadedTable[d.op]
}

func (vm *VM) runThreaded() {
	for h := vm.dispatchNext(); h != nil; {
		h = h(vm)
	}
}
