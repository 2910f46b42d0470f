package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/schemadoc"
	"github.com/fwojciec/schemadoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func beginRun(t *testing.T, store *sqlite.CatalogStore, mode string) string {
	t.Helper()
	id, err := store.BeginRun(context.Background(), mode)
	require.NoError(t, err)
	return id
}

func patientColumns() []schemadoc.Record {
	return []schemadoc.Record{
		&schemadoc.ColumnRecord{TableName: "PATIENT", ColumnName: "PAT_ID", PrimaryKey: true, OrdinalPosition: 1, Type: "VARCHAR", Description: "The unique ID of the patient."},
		&schemadoc.ColumnRecord{TableName: "PATIENT", ColumnName: "PAT_NAME", OrdinalPosition: 2, Type: "VARCHAR", Description: "The patient's name."},
		&schemadoc.ColumnRecord{TableName: "PATIENT", ColumnName: "BIRTH_DATE", OrdinalPosition: 3, Type: "DATETIME", Discontinued: "Y"},
	}
}

func TestCatalogStore_BeginRun(t *testing.T) {
	t.Parallel()

	t.Run("records a run with a generated ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewCatalogStore(db)

		id := beginRun(t, store, "keys")

		assert.NotEmpty(t, id)
		assert.Equal(t, id, store.RunID())

		var mode string
		err := db.QueryRowContext(context.Background(), "SELECT mode FROM runs WHERE id = ?", id).Scan(&mode)
		require.NoError(t, err)
		assert.Equal(t, "keys", mode)
	})

	t.Run("returns error for empty mode", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewCatalogStore(setupTestDB(t))

		_, err := store.BeginRun(context.Background(), "")

		require.Error(t, err)
		assert.Equal(t, schemadoc.EINVALID, schemadoc.ErrorCode(err))
	})
}

func TestCatalogStore_Observe(t *testing.T) {
	t.Parallel()

	t.Run("returns error before a run is started", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewCatalogStore(setupTestDB(t))

		err := store.Observe(context.Background(), schemadoc.OutcomeEntry{ItemName: "PATIENT"}, nil)

		require.Error(t, err)
		assert.Equal(t, schemadoc.EINVALID, schemadoc.ErrorCode(err))
	})

	t.Run("stores the outcome and its columns", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewCatalogStore(db)
		runID := beginRun(t, store, "columns")
		ctx := context.Background()

		entry := schemadoc.OutcomeEntry{
			Partition:   "P",
			ItemName:    "PATIENT",
			RecordCount: 3,
			Status:      schemadoc.StatusSuccess,
			Duration:    1500 * time.Millisecond,
			PageHash:    "abc123",
		}
		require.NoError(t, store.Observe(ctx, entry, patientColumns()))

		var letter, status, hash, gotRun string
		var count, durationMS int
		err := db.QueryRowContext(ctx, `
			SELECT run_id, letter, status, record_count, duration_ms, page_hash FROM outcomes WHERE item_name = ?
		`, "PATIENT").Scan(&gotRun, &letter, &status, &count, &durationMS, &hash)
		require.NoError(t, err)
		assert.Equal(t, runID, gotRun)
		assert.Equal(t, "P", letter)
		assert.Equal(t, "Success", status)
		assert.Equal(t, 3, count)
		assert.Equal(t, 1500, durationMS)
		assert.Equal(t, "abc123", hash)

		name := "PATIENT"
		columns, err := store.FindColumns(ctx, schemadoc.ColumnFilter{TableName: &name})
		require.NoError(t, err)
		require.Len(t, columns, 3)
		assert.Equal(t, []string{"PAT_ID", "PAT_NAME", "BIRTH_DATE"},
			[]string{columns[0].ColumnName, columns[1].ColumnName, columns[2].ColumnName})
		assert.True(t, columns[0].PrimaryKey)
		assert.Equal(t, "Y", columns[2].Discontinued)
	})

	t.Run("stores error outcomes without records", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewCatalogStore(db)
		beginRun(t, store, "columns")
		ctx := context.Background()

		entry := schemadoc.OutcomeEntry{Partition: "Z", ItemName: "ZC_STATE", Status: schemadoc.StatusError, ErrorMessage: "timeout"}
		require.NoError(t, store.Observe(ctx, entry, nil))

		var msg string
		err := db.QueryRowContext(ctx, "SELECT error FROM outcomes WHERE item_name = 'ZC_STATE'").Scan(&msg)
		require.NoError(t, err)
		assert.Equal(t, "timeout", msg)
	})

	t.Run("upserts columns seen again", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewCatalogStore(setupTestDB(t))
		beginRun(t, store, "columns")
		ctx := context.Background()

		require.NoError(t, store.Observe(ctx, schemadoc.OutcomeEntry{ItemName: "PATIENT"}, patientColumns()))
		updated := []schemadoc.Record{
			&schemadoc.ColumnRecord{TableName: "PATIENT", ColumnName: "PAT_NAME", OrdinalPosition: 2, Type: "VARCHAR", Description: "Updated."},
		}
		require.NoError(t, store.Observe(ctx, schemadoc.OutcomeEntry{ItemName: "PATIENT"}, updated))

		columns, err := store.FindColumns(ctx, schemadoc.ColumnFilter{})
		require.NoError(t, err)
		require.Len(t, columns, 3)
		assert.Equal(t, "Updated.", columns[1].Description)
	})

	t.Run("stores primary-key records", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewCatalogStore(setupTestDB(t))
		beginRun(t, store, "keys")
		ctx := context.Background()

		records := []schemadoc.Record{
			&schemadoc.PrimaryKeyRecord{TableName: "PAT_ENC", ColumnName: "PAT_ID", IsPrimaryKey: true, OrdinalPosition: "1"},
			&schemadoc.PrimaryKeyRecord{TableName: "PAT_ENC", ColumnName: "CONTACT_DATE_REAL", IsPrimaryKey: true},
		}
		require.NoError(t, store.Observe(ctx, schemadoc.OutcomeEntry{ItemName: "PAT_ENC"}, records))

		keys, err := store.FindPrimaryKeys(ctx, "PAT_ENC")
		require.NoError(t, err)
		require.Len(t, keys, 2)
		assert.Equal(t, "CONTACT_DATE_REAL", keys[0].ColumnName)
		assert.Empty(t, keys[0].OrdinalPosition)
		assert.Equal(t, "PAT_ID", keys[1].ColumnName)
		assert.Equal(t, "1", keys[1].OrdinalPosition)
		assert.True(t, keys[1].IsPrimaryKey)
	})
}

func TestCatalogStore_FindColumns(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) *sqlite.CatalogStore {
		t.Helper()
		store := sqlite.NewCatalogStore(setupTestDB(t))
		beginRun(t, store, "columns")
		ctx := context.Background()
		require.NoError(t, store.Observe(ctx, schemadoc.OutcomeEntry{ItemName: "PATIENT"}, patientColumns()))
		require.NoError(t, store.Observe(ctx, schemadoc.OutcomeEntry{ItemName: "ACCOUNT"}, []schemadoc.Record{
			&schemadoc.ColumnRecord{TableName: "ACCOUNT", ColumnName: "ACCOUNT_ID", PrimaryKey: true, OrdinalPosition: 1},
		}))
		return store
	}

	t.Run("orders by table and ordinal position", func(t *testing.T) {
		t.Parallel()

		columns, err := setup(t).FindColumns(context.Background(), schemadoc.ColumnFilter{})

		require.NoError(t, err)
		require.Len(t, columns, 4)
		assert.Equal(t, "ACCOUNT", columns[0].TableName)
		assert.Equal(t, "PAT_ID", columns[1].ColumnName)
	})

	t.Run("filters by primary key", func(t *testing.T) {
		t.Parallel()

		isKey := true
		columns, err := setup(t).FindColumns(context.Background(), schemadoc.ColumnFilter{PrimaryKey: &isKey})

		require.NoError(t, err)
		require.Len(t, columns, 2)
		assert.Equal(t, "ACCOUNT_ID", columns[0].ColumnName)
		assert.Equal(t, "PAT_ID", columns[1].ColumnName)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		columns, err := setup(t).FindColumns(context.Background(), schemadoc.ColumnFilter{Limit: 2, Offset: 1})

		require.NoError(t, err)
		require.Len(t, columns, 2)
		assert.Equal(t, "PAT_ID", columns[0].ColumnName)
		assert.Equal(t, "PAT_NAME", columns[1].ColumnName)
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		columns, err := setup(t).FindColumns(context.Background(), schemadoc.ColumnFilter{Offset: 3})

		require.NoError(t, err)
		require.Len(t, columns, 1)
		assert.Equal(t, "BIRTH_DATE", columns[0].ColumnName)
	})

	t.Run("returns empty for unknown table", func(t *testing.T) {
		t.Parallel()

		name := "NOPE"
		columns, err := setup(t).FindColumns(context.Background(), schemadoc.ColumnFilter{TableName: &name})

		require.NoError(t, err)
		assert.Empty(t, columns)
	})
}
