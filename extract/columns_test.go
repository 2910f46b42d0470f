package extract_test

import (
	"testing"

	"github.com/fwojciec/schemadoc/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildColumns(t *testing.T) {
	t.Parallel()

	t.Run("one record per numbered row", func(t *testing.T) {
		t.Parallel()

		columns := table(
			row("#", "Column", "Type", "Discontinued", "Description"),
			row("1", "ID", "NUMERIC", "", "The identifier."),
			row("2", "NAME", "VARCHAR", "Y"),
		)

		records := extract.BuildColumns("PATIENT", columns, nil)

		require.Len(t, records, 2)
		assert.Equal(t, "PATIENT", records[0].TableName)
		assert.Equal(t, "ID", records[0].ColumnName)
		assert.Equal(t, 1, records[0].OrdinalPosition)
		assert.Equal(t, "NUMERIC", records[0].Type)
		assert.Equal(t, "", records[0].Discontinued)
		assert.Equal(t, "The identifier.", records[0].Description)
		assert.Equal(t, "NAME", records[1].ColumnName)
		assert.Equal(t, 2, records[1].OrdinalPosition)
		assert.Equal(t, "Y", records[1].Discontinued)
		assert.Equal(t, "", records[1].Description)
	})

	t.Run("folds multiple continuation rows into description", func(t *testing.T) {
		t.Parallel()

		columns := table(
			row("#", "Column", "Type", "Discontinued"),
			row("1", "ID", "NUMERIC", ""),
			row("Unique identifier"),
			row("for the patient", "record"),
			row("2", "NAME", "VARCHAR", "", "Full name."),
			row("Last, First"),
		)

		records := extract.BuildColumns("PATIENT", columns, nil)

		require.Len(t, records, 2)
		assert.Equal(t, "Unique identifier for the patient record", records[0].Description)
		assert.Equal(t, "Full name. Last, First", records[1].Description)
	})

	t.Run("drops continuation rows before first column", func(t *testing.T) {
		t.Parallel()

		columns := table(
			row("#", "Column", "Type", "Discontinued"),
			row("orphan text"),
			row("1", "ID", "NUMERIC", ""),
		)

		records := extract.BuildColumns("T", columns, nil)

		require.Len(t, records, 1)
		assert.Equal(t, "", records[0].Description)
	})

	t.Run("numbered row with too few cells continues description", func(t *testing.T) {
		t.Parallel()

		columns := table(
			row("#", "Column", "Type", "Discontinued"),
			row("1", "STATUS", "VARCHAR", ""),
			row("1", "Active"),
		)

		records := extract.BuildColumns("T", columns, nil)

		require.Len(t, records, 1)
		assert.Equal(t, "1 Active", records[0].Description)
	})

	t.Run("marks members of primary key set", func(t *testing.T) {
		t.Parallel()

		pk := pkTable("ID", "NAME")
		columns := table(
			row("#", "Column", "Type", "Discontinued"),
			row("1", "ID", "NUMERIC", ""),
			row("2", "NAME", "VARCHAR", ""),
			row("3", "DESC", "VARCHAR", ""),
		)

		records := extract.BuildColumns("T", columns, extract.PrimaryKeyNames(&pk))

		require.Len(t, records, 3)
		assert.True(t, records[0].PrimaryKey)
		assert.True(t, records[1].PrimaryKey)
		assert.False(t, records[2].PrimaryKey)
	})
}

func TestPrimaryKeyNames_NilTable(t *testing.T) {
	t.Parallel()

	assert.Empty(t, extract.PrimaryKeyNames(nil))
}
