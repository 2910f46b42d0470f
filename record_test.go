package schemadoc_test

import (
	"testing"

	"github.com/fwojciec/schemadoc"
	"github.com/stretchr/testify/assert"
)

func TestColumnRecord_Fields(t *testing.T) {
	t.Parallel()

	r := &schemadoc.ColumnRecord{
		TableName:       "PATIENT",
		ColumnName:      "PAT_ID",
		PrimaryKey:      true,
		OrdinalPosition: 1,
		Type:            "VARCHAR",
		Discontinued:    "",
		Description:     "The unique ID.",
	}

	assert.Len(t, r.Fields(), len(schemadoc.ColumnHeader))
	assert.Equal(t, []string{"PATIENT", "PAT_ID", "Y", "1", "VARCHAR", "", "The unique ID."}, r.Fields())
	assert.Equal(t, schemadoc.RecordKey{TableName: "PATIENT", ColumnName: "PAT_ID"}, r.Key())
}

func TestPrimaryKeyRecord_Fields(t *testing.T) {
	t.Parallel()

	r := &schemadoc.PrimaryKeyRecord{TableName: "PAT_ENC", ColumnName: "CONTACT_DATE_REAL", IsPrimaryKey: false}

	assert.Len(t, r.Fields(), len(schemadoc.PrimaryKeyHeader))
	assert.Equal(t, []string{"PAT_ENC", "CONTACT_DATE_REAL", "N", ""}, r.Fields())
	assert.Equal(t, schemadoc.RecordKey{TableName: "PAT_ENC", ColumnName: "CONTACT_DATE_REAL"}, r.Key())
}
