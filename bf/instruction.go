package bf

import (
	"fmt"
)

// Kind of an encoded instruction. The order matches the alphabet.
type Kind uint8

const (
	IncPtr Kind = iota
	DecPtr
	IncByte
	DecByte
	WriteByte
	ReadByte
	LoopStart
	LoopEnd
	RegUp
	RegDown
	EnvOpen
	EnvClose
	CopyFn
	IfStatem
)

var kindNames = [...]string{
	IncPtr:    "IncPtr",
	DecPtr:    "DecPtr",
	IncByte:   "IncByte",
	DecByte:   "DecByte",
	WriteByte: "WriteByte",
	ReadByte:  "ReadByte",
	LoopStart: "LoopStart",
	LoopEnd:   "LoopEnd",
	RegUp:     "RegUp",
	RegDown:   "RegDown",
	EnvOpen:   "EnvOpen",
	EnvClose:  "EnvClose",
	CopyFn:    "CopyFn",
	IfStatem:  "IfStatem",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Command the kind is encoded from.
func (k Kind) Command() Command {
	if int(k) < len(alphabet) {
		return alphabet[k]
	}
	return Ignore
}

func (k Kind) IsLoop() bool {
	return k == LoopStart || k == LoopEnd
}

// Instruction is one run-length encoded command.
//
// Jump is only meaningful for loops: for LoopStart it is the index of the last
// instruction of the body, for LoopEnd the index of the first. It is 0 until
// the sequence has been resolved.
type Instruction struct {
	Index int  `json:"index"`
	Kind  Kind `json:"kind"`
	Times int  `json:"times"`
	Jump  int  `json:"jump,omitempty"`
}

func NewInstruction(index int, c Command) Instruction {
	kind, ok := c.Kind()
	if !ok {
		panic(fmt.Sprintf("unrecognized command: %q", rune(c)))
	}
	return Instruction{
		Index: index,
		Kind:  kind,
		Times: 1,
	}
}

func (i *Instruction) AddRepeat() {
	i.Times++
}

// EndIndex of a LoopStart.
func (i Instruction) EndIndex() (int, bool) {
	return i.Jump, i.Kind == LoopStart
}

// StartIndex of a LoopEnd.
func (i Instruction) StartIndex() (int, bool) {
	return i.Jump, i.Kind == LoopEnd
}

func (i *Instruction) setJump(index int) {
	if !i.Kind.IsLoop() {
		panic(fmt.Sprintf("trying to set jump index %d on %v", index, i.Kind))
	}
	i.Jump = index
}

func (i Instruction) String() string {
	s := fmt.Sprintf("%d: %vx%d", i.Index, i.Kind.Command(), i.Times)
	switch i.Kind {
	case LoopStart:
		s += fmt.Sprintf(" ->%d", i.Jump)
	case LoopEnd:
		s += fmt.Sprintf(" <-%d", i.Jump)
	}
	return s
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
