// Package fs provides file-based storage for progress checkpoints, the
// summary log, partition output files, and page snapshots.
package fs

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
)

// writeCSVAtomic writes rows to path with writeAtomic.
func writeCSVAtomic(path string, rows [][]string) error {
	return writeAtomic(path, func(w io.Writer) error {
		return csv.NewWriter(w).WriteAll(rows)
	})
}

// writeAtomic writes to a temporary file beside path and renames it into
// place, so readers see either the old file or the complete new one.
func writeAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	// Remove the temp file on any failure path; after a successful rename
	// this is a no-op.
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// readCSV returns all rows of the file at path. A missing file yields no rows.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
