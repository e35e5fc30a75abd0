package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/AnastasiaShevchenko/interpreters-comparison/internal/panicerr"
)

// runResult is everything observable about one finished run.
type runResult struct {
	Snapshot
	Output []byte
	Err    error
}

// runDispatch runs prog to completion under one dispatch strategy, collecting
// its output in memory. Log lines are prefixed with the strategy name.
func runDispatch(prog *Program, d Dispatch, opts ...VMOption) runResult {
	var out bytes.Buffer
	vm := New(prog,
		VMOptions(opts...),
		withDispatch(d),
		withOutput(&out),
		withLogPrefix(d.String()+": "),
	)
	err := vm.Run()
	return runResult{
		Snapshot: vm.Snapshot(),
		Output:   out.Bytes(),
		Err:      err,
	}
}

// compareDispatch runs prog under both strategies side by side, each machine
// on its own goroutine with its own output. The switched result is returned
// when both agree; otherwise the error is a mismatchError describing the
// first difference. A machine that panics fails the comparison with its panic
// error. Machines are not interruptible, so ctx is only consulted before they
// start.
func compareDispatch(ctx context.Context, prog *Program, opts ...VMOption) (runResult, error) {
	if err := ctx.Err(); err != nil {
		return runResult{}, err
	}

	var results [2]runResult
	var eg errgroup.Group
	for i, d := range [2]Dispatch{Switched, Threaded} {
		i, d := i, d
		eg.Go(func() error {
			results[i] = runDispatch(prog, d, opts...)
			if err := results[i].Err; panicerr.IsPanic(err) {
				return err
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return runResult{}, err
	}

	sw, th := results[0], results[1]
	if err := sw.diff(th); err != nil {
		return sw, err
	}
	return sw, nil
}

func (res runResult) diff(other runResult) error {
	if !snapshotsEqual(res.Snapshot, other.Snapshot) {
		return mismatchError{"snapshot", res.Snapshot.String(), other.Snapshot.String()}
	}
	if !bytes.Equal(res.Output, other.Output) {
		return mismatchError{"output", quoteTail(res.Output), quoteTail(other.Output)}
	}
	if a, b := errString(res.Err), errString(other.Err); a != b {
		return mismatchError{"error", a, b}
	}
	return nil
}

func snapshotsEqual(a, b Snapshot) bool {
	if a.State != b.State || a.PC != b.PC || a.SP != b.SP || a.Steps != b.Steps {
		return false
	}
	if len(a.Stack) != len(b.Stack) {
		return false
	}
	for i := range a.Stack {
		if a.Stack[i] != b.Stack[i] {
			return false
		}
	}
	return true
}

// String renders snap on one line, for comparisons and test failures.
func (snap Snapshot) String() string {
	return fmt.Sprintf("%v pc:%v sp:%v steps:%v s:%v",
		snap.State, snap.PC, snap.SP, snap.Steps, snap.Stack)
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

// quoteTail quotes at most the last few lines of an output, which is where
// two diverging runs usually differ.
func quoteTail(out []byte) string {
	const maxLines = 4
	s := string(out)
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > maxLines+1 {
		s = "..." + strings.Join(lines[len(lines)-maxLines-1:], "")
	}
	return fmt.Sprintf("%q", s)
}

// mismatchError reports that switched and threaded runs of the same program
// disagreed.
type mismatchError struct {
	what               string
	switched, threaded string
}

func (me mismatchError) Error() string {
	return fmt.Sprintf("dispatch %v mismatch:\n  switched: %v\n  threaded: %v", me.what, me.switched, me.threaded)
}
