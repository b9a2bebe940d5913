package bf_test

import (
	"errors"
	"math/rand"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/MarcinKonowalczyk/runbf/bf"
)

const noise = " \nabc#{}"

// randomSource mixes commands, comments and a bias towards loops so that a
// fair share of the programs are well formed.
func randomSource(r *rand.Rand, n int) string {
	commands := bf.Alphabet()
	var b strings.Builder
	depth := 0
	for i := 0; i < n; i++ {
		switch k := r.Intn(10); {
		case k == 0:
			b.WriteByte(noise[r.Intn(len(noise))])
		case k == 1:
			b.WriteRune('[')
			depth++
		case k == 2 && depth > 0:
			b.WriteRune(']')
			depth--
		default:
			c := commands[r.Intn(len(commands))]
			if c == bf.OpenBracket || c == bf.CloseBracket {
				c = bf.Increment
			}
			b.WriteRune(rune(c))
		}
	}
	if r.Intn(4) != 0 {
		b.WriteString("+")
		b.WriteString(strings.Repeat("]", depth))
	}
	return b.String()
}

var _ = Describe("Parse", func() {
	var r *rand.Rand

	BeforeEach(func() {
		r = rand.New(rand.NewSource(GinkgoRandomSeed()))
	})

	It("keeps the command counts of the filtered source", func() {
		for n := 0; n < 200; n++ {
			source := randomSource(r, 1+r.Intn(60))
			filtered := bf.PreLex(source)

			insts, err := bf.NewLexer(filtered).Encode()
			if err != nil {
				Expect(errors.Is(err, bf.NonClosedBrackets)).To(BeTrue())
				continue
			}

			Expect(len(insts)).To(BeNumerically("<=", len(filtered)))
			expected := map[bf.Kind]int{}
			for _, c := range filtered {
				kind, ok := bf.Command(c).Kind()
				Expect(ok).To(BeTrue())
				expected[kind]++
			}
			Expect(bf.Count(insts)).To(Equal(expected))
		}
	})

	It("never merges neighbouring instructions of the same kind", func() {
		for n := 0; n < 200; n++ {
			insts, err := bf.Encode(randomSource(r, 1+r.Intn(60)))
			if err != nil {
				continue
			}
			for i := range insts {
				Expect(insts[i].Index).To(Equal(i))
				Expect(insts[i].Times).To(BeNumerically(">=", 1))
				if i > 0 {
					Expect(insts[i].Kind).NotTo(Equal(insts[i-1].Kind))
				}
			}
		}
	})

	It("resolves jumps inside the sequence, idempotently", func() {
		resolved := 0
		for n := 0; n < 300; n++ {
			insts, err := bf.Parse(randomSource(r, 1+r.Intn(60)))
			if err != nil {
				Expect(errors.Is(err, bf.NonClosedBrackets) || errors.Is(err, bf.InfiniteLoop)).To(BeTrue())
				Expect(insts).To(BeNil())
				continue
			}
			resolved++

			for _, inst := range insts {
				if !inst.Kind.IsLoop() {
					Expect(inst.Jump).To(Equal(0))
					continue
				}
				Expect(inst.Jump).To(BeNumerically(">=", 0))
				Expect(inst.Jump).To(BeNumerically("<", len(insts)))
				if inst.Kind == bf.LoopStart {
					Expect(inst.Jump).NotTo(Equal(inst.Index))
				}
			}

			again := make([]bf.Instruction, len(insts))
			copy(again, insts)
			Expect(bf.Resolve(again)).To(Succeed())
			Expect(again).To(Equal(insts))
		}
		Expect(resolved).To(BeNumerically(">", 0))
	})

	DescribeTable("examples",
		func(source string, expected []bf.Instruction) {
			Expect(bf.Parse(source)).To(Equal(expected))
		},
		Entry("single command", "+", []bf.Instruction{
			{Index: 0, Kind: bf.IncByte, Times: 1},
		}),
		Entry("clear loop", "++++[-]", []bf.Instruction{
			{Index: 0, Kind: bf.IncByte, Times: 4},
			{Index: 1, Kind: bf.LoopStart, Times: 1, Jump: 2},
			{Index: 2, Kind: bf.DecByte, Times: 1},
			{Index: 3, Kind: bf.LoopEnd, Times: 1, Jump: 2},
		}),
		Entry("only comments", "hello", []bf.Instruction{}),
	)

	DescribeTable("failures",
		func(source string, expected bf.Error) {
			_, err := bf.Parse(source)
			Expect(err).To(MatchError(expected))
		},
		Entry("unclosed open", "[", bf.NonClosedBrackets),
		Entry("unexpected close", "]", bf.NonClosedBrackets),
		Entry("empty loop", "[]", bf.InfiniteLoop),
		Entry("empty stacked loops", "[[]]", bf.InfiniteLoop),
	)
})
