package parameters_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/janpfeifer/classicai/internal/parameters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfigString(t *testing.T) {
	params := parameters.NewFromConfigString("qlearning,alpha=0.25,expr=a=b")
	assert.Equal(t, parameters.Params{"qlearning": "", "alpha": "0.25", "expr": "a=b"}, params)
	assert.Empty(t, parameters.NewFromConfigString(""))
}

func TestPopParamOr(t *testing.T) {
	params := parameters.NewFromConfigString("minimax,randomness=0.5,seed=7,watch,name=bob,verbose=false")

	randomness, err := parameters.PopParamOr(params, "randomness", float32(0))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, randomness, 1e-6)

	seed, err := parameters.PopParamOr(params, "seed", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, seed)

	watch, err := parameters.PopParamOr(params, "watch", false)
	require.NoError(t, err)
	assert.True(t, watch)

	verbose, err := parameters.PopParamOr(params, "verbose", true)
	require.NoError(t, err)
	assert.False(t, verbose)

	name, err := parameters.PopParamOr(params, "name", "")
	require.NoError(t, err)
	assert.Equal(t, "bob", name)

	missing, err := parameters.PopParamOr(params, "missing", 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.1, missing)

	// Only the module name is left.
	assert.Equal(t, parameters.Params{"minimax": ""}, params)
}

func TestParseErrors(t *testing.T) {
	params := parameters.NewFromConfigString("episodes=many,explore=maybe")
	_, err := parameters.GetParamOr(params, "episodes", 0)
	assert.Error(t, err)
	_, err = parameters.GetParamOr(params, "explore", false)
	assert.Error(t, err)
	// Failed pops don't remove the key.
	_, err = parameters.PopParamOr(params, "episodes", 0)
	assert.Error(t, err)
	assert.Contains(t, params, "episodes")
}

func TestPopIntsOr(t *testing.T) {
	params := parameters.NewFromConfigString("piles=2;4; 6")
	piles, err := parameters.PopIntsOr(params, "piles", []int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, piles)
	assert.NotContains(t, params, "piles")

	piles, err = parameters.PopIntsOr(params, "piles", []int{1, 3, 5, 7})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5, 7}, piles)

	params["piles"] = "1;x"
	_, err = parameters.PopIntsOr(params, "piles", nil)
	assert.Error(t, err)
}

func TestLoadYAMLAndMerge(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "config.yaml")
	contents := "episodes: 20000\nalpha: 0.3\nexplore: true\npiles: [2, 2, 3]\nname: nim\n"
	require.NoError(t, os.WriteFile(filePath, []byte(contents), 0o644))

	fromFile, err := parameters.LoadYAML(filePath)
	require.NoError(t, err)
	assert.Equal(t, parameters.Params{
		"episodes": "20000",
		"alpha":    "0.3",
		"explore":  "true",
		"piles":    "2;2;3",
		"name":     "nim",
	}, fromFile)

	merged := parameters.Merge(fromFile, parameters.NewFromConfigString("alpha=0.7"))
	alpha, err := parameters.PopParamOr(merged, "alpha", 0.0)
	require.NoError(t, err)
	assert.Equal(t, 0.7, alpha)
	piles, err := parameters.PopIntsOr(merged, "piles", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 3}, piles)
	// Merge doesn't change its inputs.
	assert.Equal(t, "0.3", fromFile["alpha"])

	_, err = parameters.LoadYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
