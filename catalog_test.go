package schemadoc_test

import (
	"testing"

	"github.com/fwojciec/schemadoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitions(t *testing.T) {
	t.Parallel()

	ps := schemadoc.Partitions()

	require.Len(t, ps, 27)
	assert.Equal(t, schemadoc.Partition("A"), ps[0])
	assert.Equal(t, schemadoc.Partition("Z"), ps[25])
	assert.Equal(t, schemadoc.PartitionSpecial, ps[26])
	for i, p := range ps {
		assert.Equal(t, i, p.Index())
		assert.True(t, p.Valid())
	}
}

func TestPartition_Invalid(t *testing.T) {
	t.Parallel()

	for _, p := range []schemadoc.Partition{"", "a", "AB", "1", "special"} {
		assert.False(t, p.Valid(), "partition %q", p)
		assert.Equal(t, -1, p.Index(), "partition %q", p)
	}
}

func TestPartitionOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want schemadoc.Partition
	}{
		{"PATIENT", "P"},
		{"pat_enc", "P"},
		{"Zc_state", "Z"},
		{"_INDEX", schemadoc.PartitionSpecial},
		{"3M_CODES", schemadoc.PartitionSpecial},
		{"Ärzte", schemadoc.PartitionSpecial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, schemadoc.PartitionOf(tt.name))
		})
	}
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("groups entries by partition in input order", func(t *testing.T) {
		t.Parallel()

		c := schemadoc.NewCatalog([]schemadoc.LinkEntry{
			{Name: "PATIENT", URL: "u/PATIENT.htm"},
			{Name: "ACCOUNT", URL: "u/ACCOUNT.htm"},
			{Name: "PAT_ENC", URL: "u/PAT_ENC.htm"},
			{Name: "1099_DATA", URL: "u/1099_DATA.htm"},
		})

		assert.Equal(t, 4, c.Len())
		assert.Equal(t, []schemadoc.LinkEntry{
			{Name: "PATIENT", URL: "u/PATIENT.htm"},
			{Name: "PAT_ENC", URL: "u/PAT_ENC.htm"},
		}, c.Entries("P"))
		assert.Len(t, c.Entries("A"), 1)
		assert.Len(t, c.Entries(schemadoc.PartitionSpecial), 1)
		assert.Empty(t, c.Entries("B"))
	})

	t.Run("keeps the first of duplicate names", func(t *testing.T) {
		t.Parallel()

		c := schemadoc.NewCatalog([]schemadoc.LinkEntry{
			{Name: "PATIENT", URL: "first"},
			{Name: "PATIENT", URL: "second"},
		})

		assert.Equal(t, 1, c.Len())
		assert.Equal(t, "first", c.Entries("P")[0].URL)
	})

	t.Run("drops entries without a name", func(t *testing.T) {
		t.Parallel()

		c := schemadoc.NewCatalog([]schemadoc.LinkEntry{{Name: "", URL: "x"}})

		assert.Equal(t, 0, c.Len())
	})
}
