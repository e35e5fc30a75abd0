package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"io"
	"io/ioutil"
	"log"
	"os"
	"regexp"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

type namedReader interface {
	io.ReadCloser
	Name() string
}

var (
	in  namedReader    = os.Stdin
	out io.WriteCloser = os.Stdout
)

func parseFlags() {
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		name := args[0]
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed to open %v: %v", name, err)
		}
		args = args[1:]
		in = f
	}

	if len(args) > 0 {
		name := args[0]
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("failed to create %v: %v", name, err)
		}
		args = args[1:]
		out = f
	}
}

// main scans a vmTestCase builder source for with* and expect* methods, and
// writes a top level wrapper for each one, usable with vmTestCase.apply.
// Generation and formatting run as a pipeline.
func main() {
	ctx := context.Background()
	parseFlags()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	pr, pw := io.Pipe()

	eg.Go(func() (rerr error) {
		defer func() {
			pw.CloseWithError(rerr)
			if cerr := in.Close(); rerr == nil {
				rerr = cerr
			}
		}()
		return generate(ctx, pw)
	})

	eg.Go(func() (rerr error) {
		defer func() {
			if cerr := out.Close(); rerr == nil {
				rerr = cerr
			}
		}()
		src, err := ioutil.ReadAll(pr)
		if err != nil {
			return err
		}
		formatted, err := format.Source(src)
		if err != nil {
			return fmt.Errorf("gofmt failed: %w", err)
		}
		_, err = out.Write(formatted)
		return err
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

var builderMethod = regexp.MustCompile(`func \(vmt vmTestCase\) (expect|with)(.+?)\((.+?)\) vmTestCase`)

func generate(ctx context.Context, w io.Writer) error {
	var buf bytes.Buffer
	buf.Grow(1024)
	buf.WriteString("package main\n\n")

	buf.WriteString("// @generated from ")
	buf.WriteString(in.Name())
	buf.WriteString("\n\n")

	if args := flag.Args(); len(args) >= 2 {
		buf.WriteString("//go:generate go run scripts/gen_vm_expects.go --")
		for _, arg := range args {
			buf.WriteByte(' ')
			buf.WriteString(arg)
		}
		buf.WriteString("\n\n")
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := builderMethod.FindSubmatch(sc.Bytes()); len(match) > 0 {
			writeWrapper(&buf, match[1], match[2], match[3])
		}
		if buf.Len() > 0 {
			if _, err := buf.WriteTo(w); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}

// writeWrapper writes, for a method like expectPC(pc uint32), the function:
//
//	func expectVMPC(pc uint32) func(vmTestCase) vmTestCase
func writeWrapper(buf *bytes.Buffer, baseName, whatName, args []byte) {
	buf.WriteString("func ")
	buf.Write(baseName)
	buf.WriteString("VM")
	buf.Write(whatName)
	buf.WriteString("(")
	buf.Write(args)
	buf.WriteString(") func(vmTestCase) vmTestCase {\n")
	buf.WriteString("\treturn func(vmt vmTestCase) vmTestCase {\n")
	buf.WriteString("\t\treturn vmt.")
	buf.Write(baseName)
	buf.Write(whatName)
	buf.WriteString("(")

	for i, part := range bytes.Split(args, []byte(",")) {
		if i > 0 {
			buf.WriteString(", ")
		}
		fields := bytes.Fields(part)
		buf.Write(fields[0])
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			buf.WriteString("...")
		}
	}

	buf.WriteString(")\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")
}
