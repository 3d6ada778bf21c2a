package cell

import (
	"gosheet/formula"
	"gosheet/position"
	"gosheet/value"
)

// Cell is one grid slot: its content, its memoized value, and its
// forward (Includes) / reverse (Dependents) edge sets — spec.md §3's
// Cell attributes and invariants I1–I5.
//
// Cell itself holds no sheet-wide logic: the dependency engine (cycle
// check, cache invalidation, edge rewrite) lives in sheetcore, which is
// the only layer that can see every cell. Cell only stores state and
// answers purely local questions (IsEmpty, IsReferenced, cached value
// retrieval).
type Cell struct {
	Pos     position.Position
	content Content

	cached bool
	cache  value.Value

	includes   map[position.Position]struct{}
	dependents map[position.Position]struct{}
}

// New builds an Empty cell at pos.
func New(pos position.Position) *Cell {
	return &Cell{
		Pos:        pos,
		content:    Empty(),
		includes:   make(map[position.Position]struct{}),
		dependents: make(map[position.Position]struct{}),
	}
}

// Content returns the cell's current CellContent.
func (c *Cell) Content() Content { return c.content }

// SetContent installs new content and clears the cache, per spec.md
// §4.4 step 6. It does not touch edges — sheetcore's dependency engine
// owns edge rewrite (steps 4–5) and calls this only after they're
// settled.
func (c *Cell) SetContent(content Content) {
	c.content = content
	c.InvalidateCache()
}

// GetValue returns the memoized value if present, else evaluates the
// content, memoizes, and returns it — spec.md §4.5.
func (c *Cell) GetValue(resolve formula.Resolver) value.Value {
	if c.cached {
		return c.cache
	}
	v := c.content.Evaluate(resolve)
	c.cache = v
	c.cached = true
	return v
}

// InvalidateCache clears the memoized value, if any.
func (c *Cell) InvalidateCache() {
	c.cached = false
	c.cache = value.Value{}
}

// Text returns the canonical source text (spec.md §6 get_text).
func (c *Cell) Text() string { return c.content.Text() }

// ReferencedCells returns the deduplicated positions this cell's
// content references (spec.md §6 get_referenced_cells).
func (c *Cell) ReferencedCells() []position.Position { return c.content.ReferencedCells() }

// IsEmpty reports whether the cell currently holds Empty content.
func (c *Cell) IsEmpty() bool { return c.content.Kind() == KindEmpty }

// IsReferenced reports whether any other cell depends on this one, or
// this one depends on any other — i.e. whether removing it would be
// observable to the dependency graph. Grounded on original_source's
// Cell::IsReferenced (cell.h): a read-only query with no invariant of
// its own, supplemented here as a diagnostic the spec doesn't name but
// the original exposes.
func (c *Cell) IsReferenced() bool {
	return len(c.includes) > 0 || len(c.dependents) > 0
}

// Includes returns the forward edge set: positions this cell's content
// reads. The returned slice is a snapshot, safe to range over while the
// caller mutates the cell.
func (c *Cell) Includes() []position.Position {
	return keys(c.includes)
}

// Dependents returns the reverse edge set: positions whose content
// reads this cell.
func (c *Cell) Dependents() []position.Position {
	return keys(c.dependents)
}

func keys(m map[position.Position]struct{}) []position.Position {
	out := make([]position.Position, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	return out
}

// AddDependent records that `from` depends on this cell.
func (c *Cell) AddDependent(from position.Position) {
	c.dependents[from] = struct{}{}
}

// RemoveDependent removes `from` from this cell's dependent set.
func (c *Cell) RemoveDependent(from position.Position) {
	delete(c.dependents, from)
}

// SetIncludes replaces the forward edge set wholesale. Called only by
// sheetcore's dependency engine (step 5).
func (c *Cell) SetIncludes(positions []position.Position) {
	c.includes = make(map[position.Position]struct{}, len(positions))
	for _, p := range positions {
		c.includes[p] = struct{}{}
	}
}
