package bf

import (
	"context"
	"fmt"
	"io"

	"github.com/containerd/log"
)

// comptime override for debug flag
// set with `-ldflags="-X 'github.com/MarcinKonowalczyk/runbf/bf.debug=true'"`
var debug string

// Debug reports whether the binary was built with the debug override.
func Debug() bool {
	return debug != ""
}

// Parse the source into a resolved instruction sequence. Either all of the
// instructions are returned or the first error found.
func Parse(source string) ([]Instruction, error) {
	return ParseContext(context.Background(), source)
}

// ParseContext is Parse with logging through the logger carried by ctx.
func ParseContext(ctx context.Context, source string) ([]Instruction, error) {
	logger := log.G(ctx)

	source = PreLex(source)
	logger.WithField("commands", len(source)).Debug("filtered source")

	insts, err := NewLexer(source).Encode()
	if err != nil {
		logger.WithError(err).Debug("encoding failed")
		return nil, err
	}
	logger.WithField("instructions", len(insts)).Debug("encoded source")

	if err := Resolve(insts); err != nil {
		logger.WithError(err).Debug("resolving jumps failed")
		return nil, err
	}
	logger.Debug("resolved jumps")

	return insts, nil
}

// Count the commands behind the instructions, per kind.
func Count(insts []Instruction) map[Kind]int {
	counts := make(map[Kind]int)
	for _, inst := range insts {
		counts[inst.Kind] += inst.Times
	}
	return counts
}

// Dump writes one instruction per line.
func Dump(w io.StringWriter, insts []Instruction) error {
	for _, inst := range insts {
		if _, err := w.WriteString(inst.String() + "\n"); err != nil {
			return fmt.Errorf("writing instruction %d: %w", inst.Index, err)
		}
	}
	return nil
}
