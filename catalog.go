package schemadoc

// LinkEntry is one documented table found on the index page.
type LinkEntry struct {
	Name string
	URL  string
}

// Partition is one of the 27 fixed buckets used to shard the link catalog
// and checkpoint progress.
type Partition string

// PartitionSpecial holds every entry whose name does not start with A-Z.
const PartitionSpecial Partition = "SPECIAL"

// Partitions returns all partitions in processing order: A through Z, then SPECIAL.
func Partitions() []Partition {
	ps := make([]Partition, 0, 27)
	for c := 'A'; c <= 'Z'; c++ {
		ps = append(ps, Partition(string(c)))
	}
	return append(ps, PartitionSpecial)
}

// Valid reports whether p is one of the 27 known partitions.
func (p Partition) Valid() bool {
	return p.Index() >= 0
}

// Index returns the position of p in processing order, or -1 if unknown.
func (p Partition) Index() int {
	if p == PartitionSpecial {
		return 26
	}
	if len(p) == 1 && p[0] >= 'A' && p[0] <= 'Z' {
		return int(p[0] - 'A')
	}
	return -1
}

// PartitionOf returns the partition a name belongs to: its first character
// uppercased when that is an ASCII letter, SPECIAL otherwise.
// Names must be non-empty.
func PartitionOf(name string) Partition {
	c := name[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c >= 'A' && c <= 'Z' {
		return Partition(string(c))
	}
	return PartitionSpecial
}

// Catalog is the deduplicated link catalog grouped by partition.
type Catalog struct {
	groups map[Partition][]LinkEntry
	size   int
}

// NewCatalog builds a Catalog from raw index entries. Entries with empty
// names are discarded and duplicate names keep their first occurrence.
// Order within a partition follows input order.
func NewCatalog(entries []LinkEntry) *Catalog {
	c := &Catalog{groups: make(map[Partition][]LinkEntry)}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		p := PartitionOf(e.Name)
		c.groups[p] = append(c.groups[p], e)
		c.size++
	}
	return c
}

// Entries returns the entries assigned to p.
func (c *Catalog) Entries(p Partition) []LinkEntry {
	return c.groups[p]
}

// Len returns the total number of unique entries.
func (c *Catalog) Len() int {
	return c.size
}
