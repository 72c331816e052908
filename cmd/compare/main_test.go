package main

import (
	"testing"

	"github.com/janpfeifer/classicai/internal/nim"
	"github.com/stretchr/testify/assert"
)

func TestNimAIConfig(t *testing.T) {
	piles := nim.Piles{2, 4}
	assert.Equal(t, "qlearning:piles=2;4", nimAIConfig("", piles))
	assert.Equal(t, "qlearning:piles=2;4", nimAIConfig("qlearning", piles))
	assert.Equal(t, "qlearning:episodes=10,piles=2;4", nimAIConfig("qlearning:episodes=10", piles))
	assert.Equal(t, "qlearning:piles=1;1", nimAIConfig("qlearning:piles=1;1", piles))
	assert.Equal(t, "random", nimAIConfig("random", piles))
}
