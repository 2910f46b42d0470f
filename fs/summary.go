package fs

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fwojciec/schemadoc"
)

// Ensure SummaryFile implements schemadoc.SummaryLog at compile time.
var _ schemadoc.SummaryLog = (*SummaryFile)(nil)

// SummaryHeader is the header row of the summary log.
var SummaryHeader = []string{"Letter", "Table_Name", "Column_Count", "Status", "Error", "Processing_Time"}

// SummaryFile is an append-only CSV log with one row per processed item.
type SummaryFile struct {
	path string
}

// NewSummaryFile creates a SummaryFile at path.
func NewSummaryFile(path string) *SummaryFile {
	return &SummaryFile{path: path}
}

// Path returns the file location.
func (s *SummaryFile) Path() string {
	return s.path
}

// Append writes one row, first writing the header if the file is absent or empty.
func (s *SummaryFile) Append(ctx context.Context, entry schemadoc.OutcomeEntry) error {
	if err := s.append(entry); err != nil {
		return schemadoc.Errorf(schemadoc.EPERSIST, "appending to summary %s: %v", s.path, err)
	}
	return nil
}

func (s *SummaryFile) append(entry schemadoc.OutcomeEntry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(SummaryHeader); err != nil {
			return err
		}
	}
	if err := w.Write(formatEntry(entry)); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

// ProcessedItems returns the table names of every logged row.
func (s *SummaryFile) ProcessedItems(ctx context.Context) (map[string]bool, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	items := make(map[string]bool, len(entries))
	for _, e := range entries {
		items[e.ItemName] = true
	}
	return items, nil
}

// Entries returns every logged row in file order.
func (s *SummaryFile) Entries(ctx context.Context) ([]schemadoc.OutcomeEntry, error) {
	rows, err := readCSV(s.path)
	if err != nil {
		return nil, schemadoc.Errorf(schemadoc.EPERSIST, "reading summary %s: %v", s.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var entries []schemadoc.OutcomeEntry
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		entries = append(entries, parseEntry(row))
	}
	return entries, nil
}

func formatEntry(e schemadoc.OutcomeEntry) []string {
	return []string{
		string(e.Partition),
		e.ItemName,
		strconv.Itoa(e.RecordCount),
		string(e.Status),
		e.ErrorMessage,
		strconv.FormatFloat(e.Duration.Seconds(), 'f', -1, 64),
	}
}

// parseEntry is lenient: malformed counts and durations read as zero.
func parseEntry(row []string) schemadoc.OutcomeEntry {
	field := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	count, _ := strconv.Atoi(field(2))
	seconds, _ := strconv.ParseFloat(field(5), 64)
	return schemadoc.OutcomeEntry{
		Partition:    schemadoc.Partition(field(0)),
		ItemName:     field(1),
		RecordCount:  count,
		Status:       schemadoc.Status(field(3)),
		ErrorMessage: field(4),
		Duration:     time.Duration(seconds * float64(time.Second)),
	}
}
