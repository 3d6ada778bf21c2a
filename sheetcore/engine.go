package sheetcore

import (
	"gosheet/cell"
	"gosheet/gsheeterr"
	"gosheet/position"
	"gosheet/value"
)

func newInvalidPosition(op string, pos position.Position) *gsheeterr.Error {
	return gsheeterr.NewInvalidPosition(op, pos)
}

// SetCell implements spec.md §4.4's six-step algorithm: parse, check
// for cycles, invalidate caches transitively, rewrite edges, install
// content. Steps 1–2 touch no state; on any failure the sheet is left
// exactly as it was (spec.md §7's atomicity requirement, property P5).
func (s *Sheet) SetCell(pos position.Position, text string) error {
	if !pos.IsValid() {
		s.log.Warn().Str("op", "set_cell").Str("pos", pos.String()).Msg("invalid position")
		return newInvalidPosition("set_cell", pos)
	}

	// Step 1: build the candidate content. Parse failures mutate nothing.
	candidate, err := cell.NewContent(text)
	if err != nil {
		s.log.Warn().Str("op", "set_cell").Str("pos", pos.String()).Err(err).Msg("formula parse rejected")
		return gsheeterr.NewFormulaParse("set_cell", pos, err)
	}
	newIncludes := candidate.ReferencedCells()

	// Step 2: cycle check against currently installed edges only.
	if s.hasCycle(pos, newIncludes) {
		s.log.Warn().Str("op", "set_cell").Str("pos", pos.String()).Msg("rejected circular dependency")
		return gsheeterr.NewCircularDependency("set_cell", pos)
	}

	c := s.materialize(pos)
	wasEmpty := c.IsEmpty()

	// Step 3: invalidate caches transitively along dependents, before
	// edges are rewritten (order doesn't matter here since dependents
	// of C don't change until step 4/5 touch C's own includes, never
	// C's dependents).
	touched := s.invalidateTransitive(pos)

	// Step 4: remove old forward edges.
	for _, p := range c.Includes() {
		if other, ok := s.cells[p]; ok {
			other.RemoveDependent(pos)
		}
	}

	// Step 5: install new forward edges, materializing empty targets.
	c.SetIncludes(newIncludes)
	for _, p := range newIncludes {
		if !p.IsValid() {
			continue
		}
		s.materialize(p).AddDependent(pos)
	}

	// Step 6: install content.
	c.SetContent(candidate)
	s.updateAreaOnContentChange(pos, wasEmpty, c.IsEmpty())

	s.log.Debug().
		Str("op", "set_cell").
		Str("pos", pos.String()).
		Int("cache_invalidated", touched).
		Msg("set_cell applied")
	return nil
}

// ClearCell resets the cell at pos to Empty, following the same engine
// with text="" per spec.md §4.4.
func (s *Sheet) ClearCell(pos position.Position) error {
	if !pos.IsValid() {
		return newInvalidPosition("clear_cell", pos)
	}
	if err := s.SetCell(pos, ""); err != nil {
		return err
	}
	s.log.Debug().Str("op", "clear_cell").Str("pos", pos.String()).Msg("cleared")
	return nil
}

// hasCycle determines whether installing a forward edge set of
// newIncludes at pos would create a cycle, per spec.md §4.4 step 2: a
// DFS over the *currently installed* forward graph, starting from each
// member of newIncludes, sharing one visited set across every starting
// point so the whole check stays linear in reachable edges regardless
// of diamond structure (spec.md §9).
func (s *Sheet) hasCycle(pos position.Position, newIncludes []position.Position) bool {
	visited := make(map[position.Position]struct{})

	var dfs func(p position.Position) bool
	dfs = func(p position.Position) bool {
		if p == pos {
			return true
		}
		if !p.IsValid() {
			return false
		}
		if _, seen := visited[p]; seen {
			return false
		}
		visited[p] = struct{}{}

		c, ok := s.cells[p]
		if !ok {
			return false
		}
		for _, next := range c.Includes() {
			if dfs(next) {
				return true
			}
		}
		return false
	}

	for _, start := range newIncludes {
		if dfs(start) {
			return true
		}
	}
	return false
}

// invalidateTransitive clears the memoized value of pos and every cell
// reachable by following dependents edges from it, per spec.md §4.4
// step 3 / property P4. Returns the number of cells touched, for
// logging. A single-hop clear is insufficient: P4 must hold through
// chains like A ← B ← C.
func (s *Sheet) invalidateTransitive(pos position.Position) int {
	visited := make(map[position.Position]struct{})
	touched := 0

	var dfs func(p position.Position)
	dfs = func(p position.Position) {
		if _, seen := visited[p]; seen {
			return
		}
		visited[p] = struct{}{}

		c, ok := s.cells[p]
		if !ok {
			return
		}
		c.InvalidateCache()
		touched++
		for _, dep := range c.Dependents() {
			dfs(dep)
		}
	}
	dfs(pos)
	return touched
}

// resolve implements the resolver spec.md §4.5 hands to a formula's
// AST during evaluation: absent cells resolve to 0, text cells coerce
// to a decimal number (raising Value on failure or on an escaped
// literal), numeric formula results pass through, and a cell's own
// error re-raises.
func (s *Sheet) resolve(pos position.Position) (float64, error) {
	if !pos.IsValid() {
		return 0, value.NewFormulaError(value.ErrorRef)
	}
	c, ok := s.cells[pos]
	if !ok {
		return 0, nil
	}
	switch c.Content().Kind() {
	case cell.KindEmpty:
		return 0, nil
	case cell.KindText:
		return cell.ResolveTextToNumber(c.Content().Raw())
	default: // KindFormula
		v := c.GetValue(s.resolve)
		if v.IsError() {
			return 0, v.AsError()
		}
		return v.AsNumber(), nil
	}
}
