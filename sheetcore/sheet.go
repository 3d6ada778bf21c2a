// Package sheetcore implements the Sheet component of spec.md §4.2 and
// the dependency engine of §4.4: cell addressing, printable-area
// bookkeeping, cycle detection, transitive cache invalidation, and
// edge rewrite. It is the layer that owns every Cell (spec.md §5) and
// is the only layer that can see the whole graph.
package sheetcore

import (
	"io"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gosheet/cell"
	"gosheet/position"
	"gosheet/value"
)

// Sheet is the spec's Sheet: cells keyed by Position, with incrementally
// maintained printable-area bookkeeping (spec.md §4.3's "maintain
// (rows, cols) incrementally" strategy, backed by a sparse map rather
// than a dense table — see SPEC_FULL.md §6 for why).
type Sheet struct {
	id    uuid.UUID
	cells map[position.Position]*cell.Cell

	rowCounts map[int]int // row -> number of non-empty cells in that row
	colCounts map[int]int // col -> number of non-empty cells in that col
	rows      int
	cols      int

	log zerolog.Logger
}

// New creates an empty Sheet. Logging defaults to zerolog's no-op
// logger; call SetLogger to attach one (cmd/gosheet does).
func New() *Sheet {
	return &Sheet{
		id:        uuid.New(),
		cells:     make(map[position.Position]*cell.Cell),
		rowCounts: make(map[int]int),
		colCounts: make(map[int]int),
		log:       zerolog.Nop(),
	}
}

// SetLogger attaches a structured logger used for set/clear/invalidate
// events. Never logs formula or cell text, only positions and outcomes.
func (s *Sheet) SetLogger(l zerolog.Logger) {
	s.log = l.With().Str("sheet_id", s.id.String()).Logger()
}

// ID returns the Sheet's session identifier, stamped into log events.
func (s *Sheet) ID() uuid.UUID { return s.id }

// GetCell returns the cell handle at pos, or absence if pos is in
// range but was never materialized. Per spec.md §9's open question,
// GetCell never materializes: absence is absence. Positions outside
// the current printable area still return a handle if they were
// previously materialized as a dependency target (spec.md §4.4 step 5)
// — printable area and "does a Cell object exist" are different axes.
func (s *Sheet) GetCell(pos position.Position) (*cell.Cell, error) {
	if !pos.IsValid() {
		return nil, newInvalidPosition("get_cell", pos)
	}
	c, ok := s.cells[pos]
	if !ok {
		return nil, nil
	}
	return c, nil
}

// GetValue returns the computed Value at pos. A never-materialized
// position has no Cell handle to call get_value on (spec.md §4.5 is a
// Cell operation), so an absent cell is treated the same as a
// materialized Empty one: Text(""), matching Empty's own evaluation
// rule.
func (s *Sheet) GetValue(pos position.Position) (value.Value, error) {
	if !pos.IsValid() {
		return value.Value{}, newInvalidPosition("get_value", pos)
	}
	c, ok := s.cells[pos]
	if !ok {
		return value.Text(""), nil
	}
	return c.GetValue(s.resolve), nil
}

// PrintableSize returns the tight bounding rectangle over non-empty
// cells, per spec.md §3/§4.3.
func (s *Sheet) PrintableSize() position.Size {
	return position.Size{Rows: s.rows, Cols: s.cols}
}

// PrintValues enumerates the printable rectangle in row-major order,
// rendering each cell's computed Value, columns tab-separated and rows
// newline-terminated. Absent and Empty cells print as "". Per spec.md
// §4.2/§6.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.printRect(w, func(c *cell.Cell) string {
		if c == nil {
			return ""
		}
		return c.GetValue(s.resolve).String()
	})
}

// PrintTexts enumerates the printable rectangle in row-major order,
// rendering each cell's canonical source text. Per spec.md §4.2/§6.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.printRect(w, func(c *cell.Cell) string {
		if c == nil {
			return ""
		}
		return c.Text()
	})
}

func (s *Sheet) printRect(w io.Writer, render func(*cell.Cell) string) error {
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			if c > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			cl := s.cells[position.New(r, c)]
			if _, err := io.WriteString(w, render(cl)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// updateAreaOnContentChange adjusts the printable-area bookkeeping when
// a cell at pos transitions between empty and non-empty content,
// per spec.md §4.3.
func (s *Sheet) updateAreaOnContentChange(pos position.Position, wasEmpty, isEmptyNow bool) {
	switch {
	case wasEmpty && !isEmptyNow:
		s.rowCounts[pos.Row]++
		s.colCounts[pos.Col]++
		if pos.Row+1 > s.rows {
			s.rows = pos.Row + 1
		}
		if pos.Col+1 > s.cols {
			s.cols = pos.Col + 1
		}
	case !wasEmpty && isEmptyNow:
		s.rowCounts[pos.Row]--
		s.colCounts[pos.Col]--
		s.shrinkFrom(pos)
	}
}

// shrinkFrom rescans inward from the rightmost column / bottommost row
// boundary when a cell on that boundary just emptied out, per spec.md
// §4.3's shrink rule.
func (s *Sheet) shrinkFrom(pos position.Position) {
	if pos.Row == s.rows-1 {
		for s.rows > 0 && s.rowCounts[s.rows-1] == 0 {
			delete(s.rowCounts, s.rows-1)
			s.rows--
		}
	}
	if pos.Col == s.cols-1 {
		for s.cols > 0 && s.colCounts[s.cols-1] == 0 {
			delete(s.colCounts, s.cols-1)
			s.cols--
		}
	}
}

// ReferencedEmptyCells returns, in row-major order, the positions of
// every materialized cell that holds no content of its own yet is
// still wired into the dependency graph — a placeholder kept alive
// purely by another cell's formula reference (spec.md §4.4 step 5),
// not by anything ever set there. Backs the CLI's GC diagnostic verb.
func (s *Sheet) ReferencedEmptyCells() []position.Position {
	var out []position.Position
	for pos, c := range s.cells {
		if c.IsEmpty() && c.IsReferenced() {
			out = append(out, pos)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// materialize returns the cell at pos, creating an Empty one if absent.
// Materialization alone never changes printable area (spec.md §4.4
// step 5 / §9's "materializing does not count toward printable_size").
func (s *Sheet) materialize(pos position.Position) *cell.Cell {
	if c, ok := s.cells[pos]; ok {
		return c
	}
	c := cell.New(pos)
	s.cells[pos] = c
	return c
}

