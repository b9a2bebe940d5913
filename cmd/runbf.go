package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MarcinKonowalczyk/runbf/bf"

	"github.com/containerd/log"
	"github.com/tebeka/atexit"
	"golang.org/x/term"
)

const (
	exitOK = iota
	exitParse
	exitUsage
)

type options struct {
	filename string
	format   string
	color    string
	debug    bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	atexit.Register(cancel)

	// "check" only validates the source
	check, args := isCheckArg(os.Args[1:])

	opts, err := parseFlags(args)
	if err != nil {
		atexit.Exit(flagsExitCode(err, os.Stderr))
	}

	atexit.Exit(run(ctx, opts, check, os.Stdout, os.Stderr))
}

func isCheckArg(args []string) (bool, []string) {
	for i, arg := range args {
		if arg == "check" {
			return true, append(args[:i:i], args[i+1:]...)
		}
	}
	return false, args
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	my_flagset := flag.NewFlagSet("runbf", flag.ContinueOnError)
	my_flagset.StringVar(&opts.filename, "file", "", "brainfuck source file")
	my_flagset.StringVar(&opts.format, "format", "text", "output format: text or json")
	my_flagset.StringVar(&opts.color, "color", "auto", "colour diagnostics: auto, always or never")
	my_flagset.BoolVar(&opts.debug, "debug", bf.Debug(), "enable debug logging")
	if err := my_flagset.Parse(args); err != nil {
		return nil, err
	}

	if opts.filename == "" {
		return nil, fmt.Errorf("invalid argument: -file is required")
	}
	switch opts.format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid argument: unknown format %q", opts.format)
	}
	switch opts.color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("invalid argument: unknown color mode %q", opts.color)
	}
	return opts, nil
}

// flagsExitCode reports a flag parsing error. -h is not a failure: the flag
// set has already printed the usage.
func flagsExitCode(err error, stderr io.Writer) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitUsage
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// run parses the file and reports the result. Returns the exit code.
func run(ctx context.Context, opts *options, check bool, stdout, stderr io.Writer) int {
	if opts.debug {
		if err := log.SetLevel("debug"); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return exitUsage
		}
	}
	ctx = log.WithLogger(ctx, log.G(ctx).WithField("file", opts.filename))

	source, err := os.ReadFile(opts.filename)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}

	insts, err := bf.ParseContext(ctx, string(source))
	if err != nil {
		var perr *bf.ParseError
		if errors.As(err, &perr) {
			d := bf.NewDiagnostic(perr, string(source))
			d.Color = useColor(opts.color, stderr)
			if _, werr := d.WriteTo(stderr); werr != nil {
				log.G(ctx).WithError(werr).Error("failed to write diagnostic")
			}
		} else {
			fmt.Fprintln(stderr, "Error:", err)
		}
		return exitParse
	}

	if check {
		log.G(ctx).WithField("instructions", len(insts)).Debug("source is valid")
		return exitOK
	}

	switch opts.format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(insts)
	default:
		err = bf.Dump(stringWriter{stdout}, insts)
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}
	return exitOK
}

type stringWriter struct {
	io.Writer
}

func (w stringWriter) WriteString(s string) (int, error) {
	return io.WriteString(w.Writer, s)
}
