// Package knights encodes "knights and knaves" puzzles as propositional logic knowledge bases.
//
// Each character is either a knight, who always tells the truth, or a knave, who always lies.
// Every statement S made by character X is encoded as (X is a Knight => S) and (X is a Knave => ¬S).
package knights

import (
	"github.com/janpfeifer/classicai/internal/logic"
)

// Character of a puzzle, with its two symbols.
type Character struct {
	Name          string
	Knight, Knave logic.Symbol
}

// NewCharacter returns a character with symbols "<name> is a Knight" and "<name> is a Knave".
func NewCharacter(name string) Character {
	return Character{
		Name:   name,
		Knight: logic.Symbol(name + " is a Knight"),
		Knave:  logic.Symbol(name + " is a Knave"),
	}
}

// Rules returns the sentences every character obeys: it is either a knight or a knave, but not both.
func (c Character) Rules() []logic.Sentence {
	return []logic.Sentence{
		logic.Or(c.Knight, c.Knave),
		logic.Not(logic.And(c.Knight, c.Knave)),
	}
}

// Says returns the sentences implied by the character stating statement.
func (c Character) Says(statement logic.Sentence) []logic.Sentence {
	return []logic.Sentence{
		logic.Implication(c.Knight, statement),
		logic.Implication(c.Knave, logic.Not(statement)),
	}
}

// Puzzle is a knowledge base about its characters.
type Puzzle struct {
	Name       string
	Statements []string
	Characters []Character
	Knowledge  *logic.Conjunction
}

// Symbols returns the symbols of the characters, in order.
func (p *Puzzle) Symbols() []logic.Symbol {
	symbols := make([]logic.Symbol, 0, 2*len(p.Characters))
	for _, c := range p.Characters {
		symbols = append(symbols, c.Knight, c.Knave)
	}
	return symbols
}

// Solve returns the symbols entailed by the puzzle's knowledge, in the order of Puzzle.Symbols.
func Solve(p *Puzzle) []logic.Symbol {
	var entailed []logic.Symbol
	for _, symbol := range p.Symbols() {
		if logic.ModelCheck(p.Knowledge, symbol) {
			entailed = append(entailed, symbol)
		}
	}
	return entailed
}

// newPuzzle creates a puzzle whose knowledge starts with the rules of each character.
func newPuzzle(name string, statements []string, characters ...Character) *Puzzle {
	p := &Puzzle{Name: name, Statements: statements, Characters: characters, Knowledge: logic.And()}
	for _, c := range characters {
		p.Knowledge.Add(c.Rules()...)
	}
	return p
}

// Puzzles returns the four classic puzzles.
func Puzzles() []*Puzzle {
	a, b, c := NewCharacter("A"), NewCharacter("B"), NewCharacter("C")

	p0 := newPuzzle("Puzzle 0", []string{`A says "I am both a knight and a knave."`}, a)
	p0.Knowledge.Add(a.Says(logic.And(a.Knight, a.Knave))...)

	p1 := newPuzzle("Puzzle 1", []string{`A says "We are both knaves."`, `B says nothing.`}, a, b)
	p1.Knowledge.Add(a.Says(logic.And(a.Knave, b.Knave))...)

	p2 := newPuzzle("Puzzle 2", []string{`A says "We are the same kind."`, `B says "We are of different kinds."`}, a, b)
	sameKind := logic.Or(logic.And(a.Knight, b.Knight), logic.And(a.Knave, b.Knave))
	p2.Knowledge.Add(a.Says(sameKind)...)
	p2.Knowledge.Add(b.Says(logic.Not(sameKind))...)

	p3 := newPuzzle("Puzzle 3", []string{
		`A says either "I am a knight." or "I am a knave.", but you don't know which.`,
		`B says "A said 'I am a knave'."`,
		`B says "C is a knave."`,
		`C says "A is a knight."`,
	}, a, b, c)
	// A made one of the two statements, but we don't know which.
	saidKnight := logic.And(a.Says(a.Knight)...)
	saidKnave := logic.And(a.Says(a.Knave)...)
	p3.Knowledge.Add(logic.Or(saidKnight, saidKnave))
	p3.Knowledge.Add(b.Says(saidKnave)...)
	p3.Knowledge.Add(b.Says(c.Knave)...)
	p3.Knowledge.Add(c.Says(a.Knight)...)
	return []*Puzzle{p0, p1, p2, p3}
}
