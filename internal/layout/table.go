package layout

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/mpcexport/internal/ctxlog"
	"github.com/specialistvlad/mpcexport/internal/problem"
)

// Kind selects one of the three block collections of a group.
type Kind int

const (
	Variables Kind = iota
	Parameters
	Constraints
)

// String returns the collection name.
func (k Kind) String() string {
	switch k {
	case Variables:
		return "variables"
	case Parameters:
		return "parameters"
	case Constraints:
		return "constraints"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Key identifies a block by its group index and its index inside the
// group's collection.
type Key struct {
	Group int
	Block int
}

// Entry is the resolved range of one block.
type Entry struct {
	Key
	GroupLabel string
	Name       string
	Rows       int
	Cols       int
	Start      int
}

// Size is the number of offsets the entry occupies.
func (e Entry) Size() int {
	return e.Rows * e.Cols
}

// End is one past the last offset of the entry.
func (e Entry) End() int {
	return e.Start + e.Size()
}

// Offset returns the flat offset of element (row, stage) of the block.
func (e Entry) Offset(row, stage int) int {
	return e.Start + stage*e.Rows + row
}

// Table is the offset table of one collection. It is immutable once resolved.
type Table struct {
	kind    Kind
	entries []Entry
	byName  map[nameKey]int
	size    int
}

type nameKey struct {
	group string
	block string
}

// Resolve builds the offset table of one collection of p.
func Resolve(ctx context.Context, p *problem.Problem, kind Kind) (*Table, error) {
	logger := ctxlog.FromContext(ctx)

	t := &Table{
		kind:   kind,
		byName: make(map[nameKey]int),
	}
	for gi, g := range p.Groups {
		for bi, b := range blocksOf(g, kind) {
			if b.Rows <= 0 || b.Cols <= 0 {
				return nil, &UnsupportedShapeError{
					Kind:  kind,
					Group: g.Label,
					Block: b.Name,
					Rows:  b.Rows,
					Cols:  b.Cols,
				}
			}
			e := Entry{
				Key:        Key{Group: gi, Block: bi},
				GroupLabel: g.Label,
				Name:       b.Name,
				Rows:       b.Rows,
				Cols:       b.Cols,
				Start:      t.size,
			}
			t.byName[nameKey{g.Label, b.Name}] = len(t.entries)
			t.entries = append(t.entries, e)
			t.size += e.Size()
			logger.Debug("Offset assigned.", "kind", kind.String(), "group", g.Label, "block", b.Name, "start", e.Start, "size", e.Size())
		}
	}
	return t, nil
}

// blocksOf returns the blocks of one collection in declaration order.
func blocksOf(g *problem.Group, kind Kind) []*problem.Block {
	switch kind {
	case Variables:
		return g.Variables
	case Parameters:
		return g.Parameters
	case Constraints:
		blocks := make([]*problem.Block, len(g.Constraints))
		for i, c := range g.Constraints {
			blocks[i] = &c.Block
		}
		return blocks
	default:
		panic(fmt.Sprintf("layout: unknown collection kind %d", int(kind)))
	}
}

// Kind returns the collection the table was resolved for.
func (t *Table) Kind() Kind {
	return t.kind
}

// Size is the total length of the collection's flat vector.
func (t *Table) Size() int {
	return t.size
}

// Len is the number of blocks in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in offset order.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

// At returns the i-th entry in offset order.
func (t *Table) At(i int) Entry {
	return t.entries[i]
}

// Lookup returns the entry of the named block of a group.
func (t *Table) Lookup(group, block string) (Entry, bool) {
	i, ok := t.byName[nameKey{group, block}]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Verify checks that the ranges are disjoint and densely cover [0, Size()).
func (t *Table) Verify() error {
	next := 0
	for _, e := range t.entries {
		if e.Start != next {
			return fmt.Errorf("%s table: block %s.%s starts at %d, want %d", t.kind, e.GroupLabel, e.Name, e.Start, next)
		}
		next = e.End()
	}
	if next != t.size {
		return fmt.Errorf("%s table: ranges cover [0, %d), size is %d", t.kind, next, t.size)
	}
	return nil
}

// Tables holds the three offset tables of one Problem Description.
type Tables struct {
	Variables   *Table
	Parameters  *Table
	Constraints *Table
}

// ResolveAll resolves all three tables. It must complete before any
// synthesizer reads from the result.
func ResolveAll(ctx context.Context, p *problem.Problem) (*Tables, error) {
	var ts Tables
	var err error
	if ts.Variables, err = Resolve(ctx, p, Variables); err != nil {
		return nil, err
	}
	if ts.Parameters, err = Resolve(ctx, p, Parameters); err != nil {
		return nil, err
	}
	if ts.Constraints, err = Resolve(ctx, p, Constraints); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Offset tables resolved.",
		"n_var", ts.Variables.Size(), "n_par", ts.Parameters.Size(), "n_con", ts.Constraints.Size())
	return &ts, nil
}

// Of returns the table of the given kind.
func (ts *Tables) Of(kind Kind) *Table {
	switch kind {
	case Variables:
		return ts.Variables
	case Parameters:
		return ts.Parameters
	default:
		return ts.Constraints
	}
}
