package fs

import (
	"context"

	"github.com/fwojciec/schemadoc"
)

// Ensure CheckpointFile implements schemadoc.CheckpointStore at compile time.
var _ schemadoc.CheckpointStore = (*CheckpointFile)(nil)

// Progress state file columns.
const (
	letterColumn        = "letter"
	currentLetterColumn = "current_letter"
)

// CheckpointFile stores a ProgressState as CSV with columns
// letter,current_letter: one row per processed partition, with the in-flight
// partition carried in the first row's current_letter.
type CheckpointFile struct {
	path string
}

// NewCheckpointFile creates a CheckpointFile at path.
func NewCheckpointFile(path string) *CheckpointFile {
	return &CheckpointFile{path: path}
}

// Path returns the file location.
func (s *CheckpointFile) Path() string {
	return s.path
}

// Load reads the stored state. A missing file yields the zero state.
// Unknown partitions are dropped.
func (s *CheckpointFile) Load(ctx context.Context) (schemadoc.ProgressState, error) {
	state := schemadoc.ProgressState{Processed: make(map[schemadoc.Partition]bool)}

	rows, err := readCSV(s.path)
	if err != nil {
		return state, schemadoc.Errorf(schemadoc.EPERSIST, "reading progress state %s: %v", s.path, err)
	}
	if len(rows) == 0 {
		return state, nil
	}

	letterIdx, currentIdx := -1, -1
	for i, name := range rows[0] {
		switch name {
		case letterColumn:
			letterIdx = i
		case currentLetterColumn:
			currentIdx = i
		}
	}
	if letterIdx < 0 {
		return state, schemadoc.Errorf(schemadoc.EINVALID, "progress state %s: missing %q column", s.path, letterColumn)
	}

	for _, row := range rows[1:] {
		if letterIdx < len(row) && row[letterIdx] != "" {
			state.Processed[schemadoc.Partition(row[letterIdx])] = true
		}
		if state.Current == "" && currentIdx >= 0 && currentIdx < len(row) {
			state.Current = schemadoc.Partition(row[currentIdx])
		}
	}
	return state.Normalize(), nil
}

// Save replaces the stored state in one rename.
func (s *CheckpointFile) Save(ctx context.Context, state schemadoc.ProgressState) error {
	processed := state.ProcessedList()
	rows := [][]string{{letterColumn, currentLetterColumn}}
	if len(processed) == 0 {
		rows = append(rows, []string{"", string(state.Current)})
	}
	for i, p := range processed {
		current := ""
		if i == 0 {
			current = string(state.Current)
		}
		rows = append(rows, []string{string(p), current})
	}

	if err := writeCSVAtomic(s.path, rows); err != nil {
		return schemadoc.Errorf(schemadoc.EPERSIST, "writing progress state %s: %v", s.path, err)
	}
	return nil
}
