package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AnastasiaShevchenko/interpreters-comparison/internal/logio"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		if !t.Run(vmt.name, vmt.run) {
			return
		}
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name    string
	prog    Program
	opts    []interface{}
	expect  []func(t *testing.T, run vmRun)
	wantErr error

	exclusive bool
}

// vmRun is a VM after Run returned, along with what it printed.
type vmRun struct {
	*VM
	output string
	err    error
}

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) withProgram(words ...Word) vmTestCase {
	return vmt.withWordAt(0, words...)
}

func (vmt vmTestCase) withWordAt(addr uint32, words ...Word) vmTestCase {
	copy(vmt.prog[addr:], words)
	return vmt
}

func (vmt vmTestCase) withStack(values ...uint32) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		for _, val := range values {
			if err := vm.stack.Push(val); err != nil {
				panic(err)
			}
		}
	}))
	return vmt
}

func (vmt vmTestCase) withPC(pc uint32) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.pc = pc
	}))
	return vmt
}

func (vmt vmTestCase) withStepLimit(limit uint64) vmTestCase {
	vmt.opts = append(vmt.opts, withStepLimit(limit))
	return vmt
}

func (vmt vmTestCase) withSeed(seed int64) vmTestCase {
	vmt.opts = append(vmt.opts, withSeed(seed))
	return vmt
}

func (vmt vmTestCase) withTestTrace() vmTestCase {
	vmt.opts = append(vmt.opts, func(t *testing.T) VMOption {
		return withTracefn(t.Logf)
	})
	return vmt
}

func (vmt vmTestCase) withTestOutput() vmTestCase {
	vmt.opts = append(vmt.opts, func(t *testing.T) VMOption {
		return WithTee(&logio.Writer{Logf: t.Logf, Prefix: "out: "})
	})
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectState(state State) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, run vmRun) {
		assert.Equal(t, state, run.state, "expected machine state")
	})
	return vmt
}

func (vmt vmTestCase) expectPC(pc uint32) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, run vmRun) {
		assert.Equal(t, pc, run.pc, "expected program counter")
	})
	return vmt
}

func (vmt vmTestCase) expectSP(sp int32) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, run vmRun) {
		assert.Equal(t, sp, run.stack.SP(), "expected stack pointer")
	})
	return vmt
}

func (vmt vmTestCase) expectSteps(steps uint64) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, run vmRun) {
		assert.Equal(t, steps, run.steps, "expected step count")
	})
	return vmt
}

func (vmt vmTestCase) expectStack(values ...uint32) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, run vmRun) {
		if values == nil {
			values = []uint32{}
		}
		assert.Equal(t, values, run.stack.Values(), "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, run vmRun) {
		assert.Equal(t, output, run.output, "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectHalted(steps uint64) vmTestCase {
	return vmt.expectState(Halted).expectSteps(steps)
}

func (vmt vmTestCase) expectBreak(err error) vmTestCase {
	return vmt.expectState(Break).expectError(err)
}

// run runs the case under each dispatch strategy, then requires that both
// left the same machine behind.
func (vmt vmTestCase) run(t *testing.T) {
	defer func(then time.Time) {
		label := "PASS"
		if t.Failed() {
			label = "FAIL"
		}
		t.Logf("%v\t%v\t%v", label, t.Name(), time.Since(then))
	}(time.Now())

	var runs [2]vmRun
	for i, d := range [2]Dispatch{Switched, Threaded} {
		i, d := i, d
		t.Run(d.String(), func(t *testing.T) {
			runs[i] = vmt.runVMTest(t, d)
		})
	}
	if runs[0].VM != nil && runs[1].VM != nil {
		assert.Equal(t, runs[0].Snapshot(), runs[1].Snapshot(), "expected same snapshot from both dispatch strategies")
		assert.Equal(t, runs[0].output, runs[1].output, "expected same output from both dispatch strategies")
	}
}

func (vmt vmTestCase) runVMTest(t *testing.T, d Dispatch) (run vmRun) {
	var out strings.Builder
	run.VM = vmt.buildVM(t, withDispatch(d), withOutput(&out), withLogfn(t.Logf))

	defer func() {
		if t.Failed() {
			vmt.dumpToTest(t, run.VM)
		}
	}()

	run.err = run.Run()
	run.output = out.String()
	if vmt.wantErr != nil {
		assert.True(t, errors.Is(run.err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, run.err)
	} else {
		assert.NoError(t, run.err, "unexpected VM run error")
	}
	for _, expect := range vmt.expect {
		expect(t, run)
	}
	return run
}

func (vmt vmTestCase) buildVM(t *testing.T, base ...VMOption) *VM {
	prog := vmt.prog
	opt := VMOptions(base...)
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(t *testing.T) VMOption:
			opt = VMOptions(opt, impl(t))
		case VMOption:
			opt = VMOptions(opt, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(&prog, opt)
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vm.Snapshot().WriteTo(&lw)
	progDumper{prog: vm.prog, out: &lw}.dump()
}

//// utilities

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

// repeatWords returns n copies of the given instruction words.
func repeatWords(n int, words ...Word) []Word {
	all := make([]Word, 0, n*len(words))
	for i := 0; i < n; i++ {
		all = append(all, words...)
	}
	return all
}
