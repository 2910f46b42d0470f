package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/schemadoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ schemadoc.ItemSink      = (*CatalogStore)(nil)
	_ schemadoc.ColumnService = (*CatalogStore)(nil)
)

// CatalogStore mirrors item outcomes and extracted records into SQLite and
// answers queries over them. Records are upserted by table and column name,
// so the latest extraction of a column wins.
type CatalogStore struct {
	db    *DB
	runID string
	now   func() time.Time
}

// NewCatalogStore creates a new CatalogStore.
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db, now: time.Now}
}

// BeginRun records a new run in the given mode and returns its ID.
// Outcomes observed afterwards are attributed to this run.
func (s *CatalogStore) BeginRun(ctx context.Context, mode string) (string, error) {
	if mode == "" {
		return "", schemadoc.Errorf(schemadoc.EINVALID, "run mode required")
	}

	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, mode, started_at)
		VALUES (?, ?, ?)
	`, id, mode, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", schemadoc.Errorf(schemadoc.EPERSIST, "recording run: %v", err)
	}

	s.runID = id
	return id, nil
}

// RunID returns the ID of the current run, or "" before BeginRun.
func (s *CatalogStore) RunID() string {
	return s.runID
}

// Observe stores one item outcome and upserts its records in a single
// transaction.
func (s *CatalogStore) Observe(ctx context.Context, entry schemadoc.OutcomeEntry, records []schemadoc.Record) error {
	if s.runID == "" {
		return schemadoc.Errorf(schemadoc.EINVALID, "no run started")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return schemadoc.Errorf(schemadoc.EPERSIST, "beginning transaction: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now().UTC().Format(time.RFC3339)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO outcomes (run_id, letter, item_name, record_count, status, error, duration_ms, page_hash, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.runID, string(entry.Partition), entry.ItemName, entry.RecordCount, string(entry.Status),
		entry.ErrorMessage, entry.Duration.Milliseconds(), entry.PageHash, now); err != nil {
		return schemadoc.Errorf(schemadoc.EPERSIST, "recording outcome for %s: %v", entry.ItemName, err)
	}

	for _, rec := range records {
		if err := s.upsert(ctx, tx, rec, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return schemadoc.Errorf(schemadoc.EPERSIST, "committing outcome for %s: %v", entry.ItemName, err)
	}
	return nil
}

func (s *CatalogStore) upsert(ctx context.Context, tx *sql.Tx, rec schemadoc.Record, now string) error {
	var err error
	switch r := rec.(type) {
	case *schemadoc.ColumnRecord:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO columns (table_name, column_name, primary_key, ordinal_position, type, discontinued, description, run_id, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (table_name, column_name) DO UPDATE SET
				primary_key = excluded.primary_key,
				ordinal_position = excluded.ordinal_position,
				type = excluded.type,
				discontinued = excluded.discontinued,
				description = excluded.description,
				run_id = excluded.run_id,
				updated_at = excluded.updated_at
		`, r.TableName, r.ColumnName, boolToInt(r.PrimaryKey), r.OrdinalPosition, r.Type,
			r.Discontinued, r.Description, s.runID, now)
	case *schemadoc.PrimaryKeyRecord:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO primary_keys (table_name, column_name, is_primary_key, ordinal_position, run_id, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (table_name, column_name) DO UPDATE SET
				is_primary_key = excluded.is_primary_key,
				ordinal_position = excluded.ordinal_position,
				run_id = excluded.run_id,
				updated_at = excluded.updated_at
		`, r.TableName, r.ColumnName, boolToInt(r.IsPrimaryKey), r.OrdinalPosition, s.runID, now)
	default:
		return schemadoc.Errorf(schemadoc.EINVALID, "unsupported record type %T", rec)
	}
	if err != nil {
		key := rec.Key()
		return schemadoc.Errorf(schemadoc.EPERSIST, "storing %s.%s: %v", key.TableName, key.ColumnName, err)
	}
	return nil
}

// FindColumns retrieves columns matching the filter, ordered by table name
// and ordinal position.
func (s *CatalogStore) FindColumns(ctx context.Context, filter schemadoc.ColumnFilter) ([]*schemadoc.ColumnRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT table_name, column_name, primary_key, ordinal_position, type, discontinued, description
		FROM columns WHERE 1=1`)

	if filter.TableName != nil {
		query.WriteString(" AND table_name = ?")
		args = append(args, *filter.TableName)
	}
	if filter.PrimaryKey != nil {
		query.WriteString(" AND primary_key = ?")
		args = append(args, boolToInt(*filter.PrimaryKey))
	}

	query.WriteString(" ORDER BY table_name, ordinal_position, column_name")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	var columns []*schemadoc.ColumnRecord
	for rows.Next() {
		var c schemadoc.ColumnRecord
		var pk int
		if err := rows.Scan(&c.TableName, &c.ColumnName, &pk, &c.OrdinalPosition, &c.Type,
			&c.Discontinued, &c.Description); err != nil {
			return nil, err
		}
		c.PrimaryKey = pk != 0
		columns = append(columns, &c)
	}

	return columns, rows.Err()
}

// FindPrimaryKeys retrieves the primary-key records stored for tableName,
// ordered by column name.
func (s *CatalogStore) FindPrimaryKeys(ctx context.Context, tableName string) ([]*schemadoc.PrimaryKeyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT table_name, column_name, is_primary_key, ordinal_position
		FROM primary_keys
		WHERE table_name = ?
		ORDER BY column_name
	`, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying primary keys: %w", err)
	}
	defer rows.Close()

	var keys []*schemadoc.PrimaryKeyRecord
	for rows.Next() {
		var k schemadoc.PrimaryKeyRecord
		var isKey int
		if err := rows.Scan(&k.TableName, &k.ColumnName, &isKey, &k.OrdinalPosition); err != nil {
			return nil, err
		}
		k.IsPrimaryKey = isKey != 0
		keys = append(keys, &k)
	}

	return keys, rows.Err()
}
