package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	stats := ReportStats{Total: 2, Completed: 1, Overdue: 0, CompletionRate: 50}

	require.NoError(t, WritePDF(exportFixture(), stats, path, time.Now()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF-"), "not a PDF file")
}

func TestWritePDFEmptyTaskList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, WritePDF(nil, ReportStats{}, path, time.Now()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcd...", clip("abcdefgh", 5))
}
