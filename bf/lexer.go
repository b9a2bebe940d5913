package bf

type Command rune

const (
	Right        Command = '>'
	Left         Command = '<'
	Increment    Command = '+'
	Decrement    Command = '-'
	Output       Command = '.'
	Input        Command = ','
	OpenBracket  Command = '['
	CloseBracket Command = ']'
	Caret        Command = '^'
	Vee          Command = 'v'
	OpenParen    Command = '('
	CloseParen   Command = ')'
	Ampersand    Command = '&'
	Question     Command = '?'
	Ignore       Command = ' '
)

// Fixed instruction alphabet, in canonical order. Never mutated.
var alphabet = [...]Command{
	Right, Left, Increment, Decrement, Output, Input, OpenBracket, CloseBracket,
	Caret, Vee, OpenParen, CloseParen, Ampersand, Question,
}

// Alphabet returns a copy of the recognised commands.
func Alphabet() []Command {
	out := make([]Command, len(alphabet))
	copy(out, alphabet[:])
	return out
}

func parse(c rune) Command {
	switch Command(c) {
	case Right, Left, Increment, Decrement, Output, Input, OpenBracket, CloseBracket,
		Caret, Vee, OpenParen, CloseParen, Ampersand, Question:
		return Command(c)
	default:
		return Ignore
	}
}

func (c Command) String() string {
	if parse(rune(c)) == Ignore {
		return " "
	}
	return string(rune(c))
}

// Kind of the instruction this command encodes to. Ignore has no kind.
func (c Command) Kind() (Kind, bool) {
	for i, a := range alphabet {
		if a == c {
			return Kind(i), true
		}
	}
	return 0, false
}

// PreLex drops every character outside the alphabet.
func PreLex(input string) string {
	var result []rune
	for _, c := range input {
		if parse(c) != Ignore {
			result = append(result, c)
		}
	}
	return string(result)
}

type Lexer struct {
	chars string
}

func NewLexer(input string) *Lexer {
	return &Lexer{
		chars: input,
	}
}

func (l *Lexer) Lex() []Command {
	commands := []Command{}
	for _, c := range l.chars {
		cmd := parse(c)
		if cmd != Ignore {
			commands = append(commands, cmd)
		}
	}
	return commands
}

// Encode run-length encodes the commands into instructions. A command is
// merged into the last emitted instruction only; nothing further back is
// looked at. Bracket depth is checked on the way so an unmatched ']' fails
// as soon as it is seen and an unmatched '[' fails at the end.
func (l *Lexer) Encode() ([]Instruction, error) {
	commands := l.Lex()
	insts := []Instruction{}

	// offsets of the currently open '[' characters
	open := []int{}

	for offset, cmd := range commands {
		switch cmd {
		case CloseBracket:
			if len(open) == 0 {
				return nil, &ParseError{
					Kind:        NonClosedBrackets,
					Offset:      offset,
					Instruction: instructionAt(commands, offset),
					Unexpected:  true,
				}
			}
			open = open[:len(open)-1]
		case OpenBracket:
			open = append(open, offset)
		}

		curr := NewInstruction(len(insts), cmd)
		if n := len(insts); n > 0 && insts[n-1].Kind == curr.Kind {
			insts[n-1].AddRepeat()
		} else {
			insts = append(insts, curr)
		}
	}

	if len(open) > 0 {
		return nil, &ParseError{
			Kind:        NonClosedBrackets,
			Offset:      open[0],
			Instruction: instructionAt(commands, open[0]),
			Unexpected:  false,
		}
	}

	return insts, nil
}

// instructionAt maps an offset in the filtered command stream to the index of
// the instruction it was folded into.
func instructionAt(commands []Command, offset int) int {
	index := 0
	for i := 1; i <= offset && i < len(commands); i++ {
		if commands[i] != commands[i-1] {
			index++
		}
	}
	return index
}

func Lex(input string) []Command {
	lexer := NewLexer(input)
	return lexer.Lex()
}

func Encode(input string) ([]Instruction, error) {
	lexer := NewLexer(input)
	return lexer.Encode()
}
