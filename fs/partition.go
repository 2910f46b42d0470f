package fs

import (
	"context"
	"path/filepath"

	"github.com/fwojciec/schemadoc"
)

// Ensure PartitionFiles implements schemadoc.PartitionWriter at compile time.
var _ schemadoc.PartitionWriter = (*PartitionFiles)(nil)

// PartitionFiles writes one CSV file per partition, named
// <prefix><partition>.csv inside dir.
//
// In replace mode each write produces a fresh file. In merge mode the
// existing file's rows are kept, new rows appended, and the result
// deduplicated by table and column name with the first occurrence winning.
type PartitionFiles struct {
	dir    string
	prefix string
	header []string
	merge  bool
}

// NewPartitionFiles creates a replace-mode PartitionFiles.
func NewPartitionFiles(dir, prefix string, header []string) *PartitionFiles {
	return &PartitionFiles{dir: dir, prefix: prefix, header: header}
}

// NewMergingPartitionFiles creates a merge-mode PartitionFiles.
func NewMergingPartitionFiles(dir, prefix string, header []string) *PartitionFiles {
	return &PartitionFiles{dir: dir, prefix: prefix, header: header, merge: true}
}

// Path returns the output file for p.
func (s *PartitionFiles) Path(p schemadoc.Partition) string {
	return filepath.Join(s.dir, s.prefix+string(p)+".csv")
}

// WritePartition writes records for p. Nothing is written when records is empty.
func (s *PartitionFiles) WritePartition(ctx context.Context, p schemadoc.Partition, records []schemadoc.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	path := s.Path(p)

	var rows [][]string
	if s.merge {
		existing, err := readCSV(path)
		if err != nil {
			return 0, schemadoc.Errorf(schemadoc.EPERSIST, "reading partition file %s: %v", path, err)
		}
		if len(existing) > 0 {
			rows = append(rows, existing[1:]...)
		}
	}
	for _, r := range records {
		rows = append(rows, r.Fields())
	}
	if s.merge {
		rows = dedupRows(rows)
	}

	if err := writeCSVAtomic(path, append([][]string{s.header}, rows...)); err != nil {
		return 0, schemadoc.Errorf(schemadoc.EPERSIST, "writing partition file %s: %v", path, err)
	}
	return len(rows), nil
}

// dedupRows keeps the first row for each (table_name, column_name) pair.
func dedupRows(rows [][]string) [][]string {
	seen := make(map[schemadoc.RecordKey]bool, len(rows))
	out := rows[:0]
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		k := schemadoc.RecordKey{TableName: row[0], ColumnName: row[1]}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, row)
	}
	return out
}
