package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AnastasiaShevchenko/interpreters-comparison/internal/flushio"
	"github.com/AnastasiaShevchenko/interpreters-comparison/internal/logio"
)

func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

const programName = "interpreters-comparison"

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

// runMain is the whole command: it parses args, runs the chosen program, and
// returns the process exit code. Print output and the final report go to
// stdout; logs go to stderr.
func runMain(args []string, stdout, stderr io.Writer) int {
	var log logio.Logger
	log.SetOutput(stderr)

	var (
		progName = "primes"
		load     string
		dispatch dispatchFlag
		seed     int64 = DefaultSeed
		trace    bool
		list     bool
		export   bool
	)
	flags := flag.NewFlagSet(programName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&progName, "program", progName, "built-in program to run: "+strings.Join(sampleNames(), ", "))
	flags.StringVar(&load, "load", "", "load the program from a YAML image file instead")
	flags.Var(&dispatch, "dispatch", "dispatch strategy: switched, threaded, or compare to run both")
	flags.Int64Var(&seed, "seed", seed, "seed for the rand instruction")
	flags.BoolVar(&trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&list, "list", false, "list the program instead of running it")
	flags.BoolVar(&export, "export", false, "write the program as a YAML image instead of running it")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [steplimit]\n", programName)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	limit, err := parseStepLimit(flags.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		flags.Usage()
		return exitUsage
	}

	img, err := loadProgram(progName, load)
	if err != nil {
		log.Errorf("%v", err)
		return exitUsage
	}
	prog := img.Program()

	out := flushio.NewWriteFlusher(stdout)
	flush := func() {
		if err := out.Flush(); err != nil {
			log.Errorf("output failed: %v", err)
		}
	}

	switch {
	case list:
		progDumper{prog: prog, out: out}.dump()
		flush()
		return log.ExitCode()
	case export:
		if err := WriteImage(out, img); err != nil {
			log.Errorf("export failed: %v", err)
		}
		flush()
		return log.ExitCode()
	}

	opts := []VMOption{
		withStepLimit(limit),
		withSeed(seed),
		WithLogf(log.Leveledf("fault")),
	}
	if trace {
		opts = append(opts, WithTracef(log.Leveledf("TRACE")))
	}

	var res runResult
	if dispatch.compare {
		if res, err = compareDispatch(context.Background(), prog, opts...); err != nil {
			log.Errorf("%+v", err)
			return exitFailed
		}
		if _, err := out.Write(res.Output); err != nil {
			log.Errorf("output failed: %v", err)
		}
	} else {
		vm := New(prog, VMOptions(opts...), withDispatch(dispatch.Dispatch), withOutput(out))
		res.Err = vm.Run()
		res.Snapshot = vm.Snapshot()
	}

	if _, err := res.Snapshot.WriteTo(out); err != nil {
		log.Errorf("output failed: %v", err)
	}
	flush()
	if !res.Succeeded(limit) {
		log.Errorf("%+v", res.Err)
		return exitFailed
	}
	log.ErrorIf(res.Err)
	return log.ExitCode()
}

// usageError is a bad command line, reported before any machine exists.
type usageError struct{ error }

// parseStepLimit reads the optional step limit argument; no argument leaves
// the machine effectively unbounded.
func parseStepLimit(args []string) (uint64, error) {
	switch len(args) {
	case 0:
		return math.MaxUint64, nil
	case 1:
	default:
		return 0, usageError{fmt.Errorf("unexpected arguments %q", args[1:])}
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, usageError{fmt.Errorf("invalid step limit: %w", err)}
	}
	if n < 0 {
		return 0, usageError{fmt.Errorf("invalid step limit %v: must not be negative", n)}
	}
	return uint64(n), nil
}

// loadProgram resolves the program to run: an image file when one is named,
// otherwise a built-in sample.
func loadProgram(sampleName, imagePath string) (*Image, error) {
	if imagePath != "" {
		img, err := LoadImageFile(imagePath)
		if err != nil {
			return nil, err
		}
		if img.Name == "" {
			img.Name = strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
		}
		return img, nil
	}
	s, ok := samples[sampleName]
	if !ok {
		return nil, fmt.Errorf("unknown program %q, have: %v", sampleName, strings.Join(sampleNames(), ", "))
	}
	return imageOf(sampleName, s.description, s.prog), nil
}

// dispatchFlag is a Dispatch, or the comparison of both strategies.
type dispatchFlag struct {
	Dispatch
	compare bool
}

func (df dispatchFlag) String() string {
	if df.compare {
		return "compare"
	}
	return df.Dispatch.String()
}

func (df *dispatchFlag) Set(s string) error {
	if s == "compare" {
		df.compare = true
		return nil
	}
	df.compare = false
	return df.Dispatch.Set(s)
}
