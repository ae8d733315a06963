package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskman/internal/model"
)

func exportFixture() []model.Task {
	due := time.Date(2026, 3, 14, 15, 9, 0, 0, time.Local)
	return []model.Task{
		{ID: 2, Title: "plain title", Category: model.CategoryWork, Priority: model.PriorityHigh, DueTime: due},
		{ID: 1, Title: "commas, everywhere", Category: model.CategoryLife, Priority: model.PriorityLow,
			DueTime: due, Status: model.StatusCompleted, Description: "a, b, c"},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	require.NoError(t, WriteCSV(exportFixture(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	bom := []byte{0xEF, 0xBB, 0xBF}
	require.True(t, bytes.HasPrefix(raw, bom), "missing UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(raw[len(bom):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"1", "plain title", "work", "high", "2026-03-14 15:09:00", "incomplete", ""}, records[1])
	assert.Equal(t, []string{"2", "commas, everywhere", "life", "low", "2026-03-14 15:09:00", "completed", "a, b, c"}, records[2])
}

func TestWriteCSVQuotesCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	require.NoError(t, WriteCSV(exportFixture(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"commas, everywhere"`)
}

func TestWriteCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV(nil, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, csvHeader, records[0])
}
