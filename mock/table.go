package mock

import "github.com/fwojciec/schemadoc"

// Compile-time interface verification.
var (
	_ schemadoc.TableReader = (*TableReader)(nil)
	_ schemadoc.LinkReader  = (*LinkReader)(nil)
	_ schemadoc.Extractor   = (*Extractor)(nil)
)

// TableReader is a mock implementation of schemadoc.TableReader.
type TableReader struct {
	ReadTablesFn func(html string) ([]schemadoc.Table, error)
}

func (r *TableReader) ReadTables(html string) ([]schemadoc.Table, error) {
	return r.ReadTablesFn(html)
}

// LinkReader is a mock implementation of schemadoc.LinkReader.
type LinkReader struct {
	ReadLinksFn func(html string) ([]schemadoc.LinkEntry, error)
}

func (r *LinkReader) ReadLinks(html string) ([]schemadoc.LinkEntry, error) {
	return r.ReadLinksFn(html)
}

// Extractor is a mock implementation of schemadoc.Extractor.
type Extractor struct {
	ExtractFn func(tableName string, tables []schemadoc.Table) []schemadoc.Record
}

func (e *Extractor) Extract(tableName string, tables []schemadoc.Table) []schemadoc.Record {
	return e.ExtractFn(tableName, tables)
}
