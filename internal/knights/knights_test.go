package knights

import (
	"testing"

	"github.com/janpfeifer/classicai/internal/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPuzzles(t *testing.T) {
	puzzles := Puzzles()
	require.Len(t, puzzles, 4)
	want := [][]logic.Symbol{
		{"A is a Knave"},
		{"A is a Knave", "B is a Knight"},
		{"A is a Knave", "B is a Knight"},
		{"A is a Knight", "B is a Knave", "C is a Knight"},
	}
	for ii, p := range puzzles {
		assert.Equal(t, want[ii], Solve(p), "%s", p.Name)
		assert.NotEmpty(t, p.Statements)
	}
}

func TestCharacter(t *testing.T) {
	a := NewCharacter("A")
	assert.Equal(t, logic.Symbol("A is a Knight"), a.Knight)
	rules := logic.And(a.Rules()...)
	assert.False(t, rules.Evaluate(logic.Model{"A is a Knight": true, "A is a Knave": true}))
	assert.False(t, rules.Evaluate(logic.Model{"A is a Knight": false, "A is a Knave": false}))
	assert.True(t, rules.Evaluate(logic.Model{"A is a Knight": false, "A is a Knave": true}))

	// A knight can't claim to be a knave, and nor can a knave.
	kb := logic.And(a.Rules()...).Add(a.Says(a.Knave)...)
	assert.True(t, logic.ModelCheck(kb, a.Knight))
	assert.True(t, logic.ModelCheck(kb, a.Knave))
}
