// Package export writes task reports in external formats. Exporters take
// an explicit task slice; which tasks go into a report is the caller's
// decision.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"taskman/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

var csvHeader = []string{"seq", "title", "category", "priority", "due_time", "status", "description"}

// WriteCSV writes tasks to path as UTF-8 CSV with a byte-order mark so
// spreadsheet tools detect the encoding. Fields containing commas are
// quoted by the csv writer.
func WriteCSV(tasks []model.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, t := range tasks {
		record := []string{
			strconv.Itoa(i + 1),
			t.Title,
			string(t.Category),
			string(t.Priority),
			t.DueTime.Format(timeLayout),
			t.Status.Label(),
			t.Description,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
