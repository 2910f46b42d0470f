package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/schemadoc"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	if deps.Columns == nil {
		fmt.Fprintln(deps.Stderr, "error: no catalog database. Set --db or SCHEMADOC_DB to the database of a previous run.")
		return schemadoc.Errorf(schemadoc.EINVALID, "catalog database required")
	}

	if c.Keys {
		return c.showKeys(deps)
	}

	columns, err := deps.Columns.FindColumns(deps.Ctx, schemadoc.ColumnFilter{TableName: &c.Table})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	if len(columns) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no columns stored for table %q\n", c.Table)
		return schemadoc.Errorf(schemadoc.ENOTFOUND, "no columns stored for table %q", c.Table)
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tCOLUMN\tTYPE\tPK\tDISCONTINUED\tDESCRIPTION")
	for _, col := range columns {
		pk := ""
		if col.PrimaryKey {
			pk = "Y"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			col.OrdinalPosition, col.ColumnName, col.Type, pk, col.Discontinued, col.Description)
	}
	return w.Flush()
}

func (c *ShowCmd) showKeys(deps *Dependencies) error {
	keys, err := deps.Columns.FindPrimaryKeys(deps.Ctx, c.Table)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	if len(keys) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no primary keys stored for table %q\n", c.Table)
		return schemadoc.Errorf(schemadoc.ENOTFOUND, "no primary keys stored for table %q", c.Table)
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tORDINAL")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", k.ColumnName, k.OrdinalPosition)
	}
	return w.Flush()
}
