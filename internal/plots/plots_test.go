package plots

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLines(&buf, "Win rates", []string{"1", "2", "3"},
		Series{Name: "AI-1", Values: []float32{1, 0.5, 0.66}},
		Series{Name: "AI-2", Values: []float32{0, 0.5, 0.33}})
	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Win rates")
	assert.Contains(t, html, "AI-1")
	assert.Contains(t, html, "AI-2")

	err = WriteLines(&buf, "Bad", []string{"1", "2"}, Series{Name: "short", Values: []float32{1}})
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "chart.html")
	require.NoError(t, WriteFile(filePath, "Ranks", []string{"a"}, Series{Name: "rank", Values: []float32{0.3}}))
	contents, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "Ranks")

	assert.Error(t, WriteFile(filepath.Join(t.TempDir(), "missing", "chart.html"), "x", nil))
}
