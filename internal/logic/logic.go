// Package logic implements propositional logic sentences and inference by model checking.
//
// Sentences are built with Symbol, Not, And, Or, Implication and Biconditional, and are immutable, except
// for conjunctions and disjunctions that can be extended with Add, which is convenient to build knowledge bases.
package logic

import (
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/classicai/internal/generics"
)

// Model assigns a truth value to each symbol.
type Model map[string]bool

// Sentence of propositional logic.
type Sentence interface {
	// Evaluate the sentence in the model. It panics if a symbol of the sentence is not in the model.
	Evaluate(model Model) bool

	// Formula returns a human-readable representation of the sentence.
	Formula() string

	// Symbols returns the set of symbol names used by the sentence.
	Symbols() generics.Set[string]
}

// Symbol is an atomic proposition, identified by its name.
type Symbol string

var _ Sentence = Symbol("")

// Evaluate implements Sentence.
func (s Symbol) Evaluate(model Model) bool {
	value, found := model[string(s)]
	if !found {
		exceptions.Panicf("logic: symbol %q not in model", string(s))
	}
	return value
}

// Formula implements Sentence.
func (s Symbol) Formula() string { return string(s) }

// Symbols implements Sentence.
func (s Symbol) Symbols() generics.Set[string] { return generics.SetWith(string(s)) }

// String implements fmt.Stringer.
func (s Symbol) String() string { return string(s) }

// parenthesize the formula of compound sentences.
func parenthesize(s Sentence) string {
	if symbol, ok := s.(Symbol); ok {
		return string(symbol)
	}
	if _, ok := s.(*negation); ok {
		return s.Formula()
	}
	return "(" + s.Formula() + ")"
}

// unionSymbols of all the sentences.
func unionSymbols(sentences ...Sentence) generics.Set[string] {
	symbols := generics.MakeSet[string]()
	for _, s := range sentences {
		symbols = symbols.Union(s.Symbols())
	}
	return symbols
}

type negation struct {
	operand Sentence
}

// Not returns the negation of the operand.
func Not(operand Sentence) Sentence {
	return &negation{operand: operand}
}

func (n *negation) Evaluate(model Model) bool     { return !n.operand.Evaluate(model) }
func (n *negation) Formula() string               { return "¬" + parenthesize(n.operand) }
func (n *negation) Symbols() generics.Set[string] { return n.operand.Symbols() }

// Conjunction is true if all its conjuncts are true. The empty conjunction is true.
type Conjunction struct {
	conjuncts []Sentence
}

// And returns the conjunction of the sentences.
func And(conjuncts ...Sentence) *Conjunction {
	return &Conjunction{conjuncts: append([]Sentence(nil), conjuncts...)}
}

// Add conjuncts to the conjunction. It returns the conjunction itself.
func (c *Conjunction) Add(conjuncts ...Sentence) *Conjunction {
	c.conjuncts = append(c.conjuncts, conjuncts...)
	return c
}

// Len returns the number of conjuncts.
func (c *Conjunction) Len() int { return len(c.conjuncts) }

// Evaluate implements Sentence.
func (c *Conjunction) Evaluate(model Model) bool {
	for _, s := range c.conjuncts {
		if !s.Evaluate(model) {
			return false
		}
	}
	return true
}

// Formula implements Sentence.
func (c *Conjunction) Formula() string {
	if len(c.conjuncts) == 1 {
		return c.conjuncts[0].Formula()
	}
	return strings.Join(generics.SliceMap(c.conjuncts, parenthesize), " ∧ ")
}

// Symbols implements Sentence.
func (c *Conjunction) Symbols() generics.Set[string] { return unionSymbols(c.conjuncts...) }

// Disjunction is true if any of its disjuncts is true. The empty disjunction is false.
type Disjunction struct {
	disjuncts []Sentence
}

// Or returns the disjunction of the sentences.
func Or(disjuncts ...Sentence) *Disjunction {
	return &Disjunction{disjuncts: append([]Sentence(nil), disjuncts...)}
}

// Add disjuncts to the disjunction. It returns the disjunction itself.
func (d *Disjunction) Add(disjuncts ...Sentence) *Disjunction {
	d.disjuncts = append(d.disjuncts, disjuncts...)
	return d
}

// Evaluate implements Sentence.
func (d *Disjunction) Evaluate(model Model) bool {
	for _, s := range d.disjuncts {
		if s.Evaluate(model) {
			return true
		}
	}
	return false
}

// Formula implements Sentence.
func (d *Disjunction) Formula() string {
	if len(d.disjuncts) == 1 {
		return d.disjuncts[0].Formula()
	}
	return strings.Join(generics.SliceMap(d.disjuncts, parenthesize), " ∨ ")
}

// Symbols implements Sentence.
func (d *Disjunction) Symbols() generics.Set[string] { return unionSymbols(d.disjuncts...) }

type implication struct {
	antecedent, consequent Sentence
}

// Implication returns "antecedent => consequent".
func Implication(antecedent, consequent Sentence) Sentence {
	return &implication{antecedent: antecedent, consequent: consequent}
}

func (i *implication) Evaluate(model Model) bool {
	return !i.antecedent.Evaluate(model) || i.consequent.Evaluate(model)
}
func (i *implication) Formula() string {
	return parenthesize(i.antecedent) + " => " + parenthesize(i.consequent)
}
func (i *implication) Symbols() generics.Set[string] { return unionSymbols(i.antecedent, i.consequent) }

type biconditional struct {
	left, right Sentence
}

// Biconditional returns "left <=> right".
func Biconditional(left, right Sentence) Sentence {
	return &biconditional{left: left, right: right}
}

func (b *biconditional) Evaluate(model Model) bool {
	return b.left.Evaluate(model) == b.right.Evaluate(model)
}
func (b *biconditional) Formula() string {
	return parenthesize(b.left) + " <=> " + parenthesize(b.right)
}
func (b *biconditional) Symbols() generics.Set[string] { return unionSymbols(b.left, b.right) }

// ModelCheck returns whether knowledge entails query: that is, if query is true in every model where
// knowledge is true. It enumerates all 2^n models of the n symbols used.
func ModelCheck(knowledge, query Sentence) bool {
	symbols := generics.Sorted(unionSymbols(knowledge, query))
	return checkAll(knowledge, query, symbols, make(Model, len(symbols)))
}

func checkAll(knowledge, query Sentence, symbols []string, model Model) bool {
	if len(symbols) == 0 {
		if knowledge.Evaluate(model) {
			return query.Evaluate(model)
		}
		// Entailment only matters where knowledge is true.
		return true
	}
	symbol, rest := symbols[0], symbols[1:]
	for _, value := range []bool{true, false} {
		model[symbol] = value
		if !checkAll(knowledge, query, rest, model) {
			delete(model, symbol)
			return false
		}
	}
	delete(model, symbol)
	return true
}
