package schemadoc

import (
	"context"
	"sort"
)

// ProgressState is the durable resume position of a run.
// The zero value means nothing has been processed.
//
// Invariant: Current, when set, is never also in Processed.
type ProgressState struct {
	Processed map[Partition]bool
	Current   Partition
}

// IsProcessed reports whether p has been fully processed.
func (s ProgressState) IsProcessed(p Partition) bool {
	return s.Processed[p]
}

// ProcessedList returns the processed partitions in processing order.
func (s ProgressState) ProcessedList() []Partition {
	ps := make([]Partition, 0, len(s.Processed))
	for p, ok := range s.Processed {
		if ok {
			ps = append(ps, p)
		}
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].Index() < ps[j].Index() })
	return ps
}

// Begin returns a copy of s with p marked in flight.
func (s ProgressState) Begin(p Partition) ProgressState {
	next := s.clone()
	delete(next.Processed, p)
	next.Current = p
	return next
}

// Complete returns a copy of s with p marked processed and no partition in flight.
func (s ProgressState) Complete(p Partition) ProgressState {
	next := s.clone()
	next.Processed[p] = true
	next.Current = ""
	return next
}

// Normalize drops unknown partitions and a Current that is already processed.
func (s ProgressState) Normalize() ProgressState {
	next := ProgressState{Processed: make(map[Partition]bool, len(s.Processed))}
	for p, ok := range s.Processed {
		if ok && p.Valid() {
			next.Processed[p] = true
		}
	}
	if s.Current.Valid() && !next.Processed[s.Current] {
		next.Current = s.Current
	}
	return next
}

// StartIndex returns the index into Partitions() where processing resumes:
// the in-flight partition if set, otherwise the first unprocessed partition.
// It returns len(Partitions()) when everything is done.
func (s ProgressState) StartIndex() int {
	if s.Current.Valid() && !s.Processed[s.Current] {
		return s.Current.Index()
	}
	for i, p := range Partitions() {
		if !s.Processed[p] {
			return i
		}
	}
	return len(Partitions())
}

func (s ProgressState) clone() ProgressState {
	next := ProgressState{
		Processed: make(map[Partition]bool, len(s.Processed)+1),
		Current:   s.Current,
	}
	for p, ok := range s.Processed {
		if ok {
			next.Processed[p] = true
		}
	}
	return next
}

// CheckpointStore durably records a ProgressState.
// Save must replace the stored state in one step so a reader never observes
// a partially-written state.
type CheckpointStore interface {
	Load(ctx context.Context) (ProgressState, error)
	Save(ctx context.Context, state ProgressState) error
}

// PartitionWriter persists the records accumulated for one partition.
type PartitionWriter interface {
	// WritePartition stores records for p and returns the number of records
	// now held for p. No output is created when records is empty.
	WritePartition(ctx context.Context, p Partition, records []Record) (int, error)
}
