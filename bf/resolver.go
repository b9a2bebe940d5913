package bf

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// Resolve links every loop instruction to its counterpart, in place.
//
// A LoopStart jumps to the last instruction of its body and a LoopEnd to the
// first one. Merged brackets are counted with their repeat count, so `[[`
// folded into a single LoopStart opens two loops at once.
//
// The sequence must come out of a successful Encode: bracket depth is assumed
// to be balanced.
func Resolve(insts []Instruction) error {
	for i := range insts {
		if insts[i].Kind != LoopStart {
			continue
		}
		j, err := findLoopEnd(insts, i)
		if err != nil {
			return err
		}
		insts[i].setJump(j - 1)
	}

	for i := range insts {
		if insts[i].Kind != LoopEnd {
			continue
		}
		j, err := findLoopStart(insts, i)
		if err != nil {
			return err
		}
		if i == j+1 {
			return &ParseError{
				Kind:        InfiniteLoop,
				Offset:      offsetOf(insts, i),
				Instruction: i,
			}
		}
		insts[i].setJump(j + 1)
	}

	return nil
}

// Find the instruction which balances the LoopStart at i
func findLoopEnd(insts []Instruction, i int) (int, error) {
	depth := insts[i].Times
	for j := i + 1; j < len(insts); j++ {
		switch insts[j].Kind {
		case LoopStart:
			depth += insts[j].Times
		case LoopEnd:
			depth = saturatingSub(depth, insts[j].Times)
			if depth == 0 {
				return j, nil
			}
		}
	}
	return -1, fmt.Errorf("no loop end balances instruction %d: %w", i, errdefs.ErrInternal)
}

// Find the instruction which balances the LoopEnd at i
func findLoopStart(insts []Instruction, i int) (int, error) {
	depth := 1
	for j := i - 1; j >= 0; j-- {
		switch insts[j].Kind {
		case LoopEnd:
			depth += insts[j].Times
		case LoopStart:
			depth = saturatingSub(depth, insts[j].Times)
			if depth == 0 {
				return j, nil
			}
		}
	}
	return -1, fmt.Errorf("no loop start balances instruction %d: %w", i, errdefs.ErrInternal)
}

func saturatingSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

// offsetOf the first command folded into insts[i], in the filtered source.
func offsetOf(insts []Instruction, i int) int {
	offset := 0
	for _, inst := range insts[:i] {
		offset += inst.Times
	}
	return offset
}
