package profilers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnQuit(t *testing.T) {
	dir := t.TempDir()
	cpuPath, memPath := filepath.Join(dir, "cpu.prof"), filepath.Join(dir, "mem.prof")
	*flagCPUProfile, *flagMemProfile = cpuPath, memPath
	defer func() { *flagCPUProfile, *flagMemProfile = "", "" }()

	onQuit, err := Setup()
	require.NoError(t, err)
	onQuit()
	memInfo, err := os.Stat(memPath)
	require.NoError(t, err)
	assert.Greater(t, memInfo.Size(), int64(0))
	_, err = os.Stat(cpuPath)
	require.NoError(t, err)

	// Calling it again, e.g. from a deferred call after an explicit one, doesn't rewrite the profiles.
	require.NoError(t, os.Remove(memPath))
	onQuit()
	_, err = os.Stat(memPath)
	assert.True(t, os.IsNotExist(err))
}
