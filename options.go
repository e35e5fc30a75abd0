package main

import (
	"io"
	"math"
	"math/rand"

	"github.com/AnastasiaShevchenko/interpreters-comparison/internal/flushio"
)

// VMOption configures a VM under construction.
type VMOption interface{ apply(vm *VM) }

// DefaultSeed seeds Rand when no other seed is given, so that runs are
// repeatable by default.
const DefaultSeed = 1

var defaults = []VMOption{
	withOutput(nil),
	withStepLimit(math.MaxUint64),
	withSeed(DefaultSeed),
}

// VMOptions combines any number of options into one, applied in order.
func VMOptions(opts ...VMOption) VMOption {
	var all options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})
type withTracefn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM)     { vm.logfn = logfn }
func (tracefn withTracefn) apply(vm *VM) { vm.tracefn = tracefn }

type logPrefixOption string
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type stepLimitOption uint64
type dispatchOption Dispatch
type seedOption int64

func withLogPrefix(prefix string) logPrefixOption { return logPrefixOption(prefix) }
func withOutput(w io.Writer) outputOption         { return outputOption{w} }
func withTee(w io.Writer) teeOption               { return teeOption{w} }
func withStepLimit(limit uint64) stepLimitOption  { return stepLimitOption(limit) }
func withDispatch(d Dispatch) dispatchOption      { return dispatchOption(d) }
func withSeed(seed int64) seedOption              { return seedOption(seed) }

func (prefix logPrefixOption) apply(vm *VM) { vm.withLogPrefix(string(prefix)) }
func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}
func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
}
func (limit stepLimitOption) apply(vm *VM) { vm.limit = uint64(limit) }
func (d dispatchOption) apply(vm *VM)      { vm.dispatch = Dispatch(d) }

// Each VM gets its own source, so that machines may run side by side.
func (seed seedOption) apply(vm *VM) { vm.rand = rand.New(rand.NewSource(int64(seed))).Uint32 }
