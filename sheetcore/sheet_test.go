package sheetcore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosheet/gsheeterr"
	"gosheet/position"
)

func mustSet(t *testing.T, s *Sheet, pos position.Position, text string) {
	t.Helper()
	require.NoError(t, s.SetCell(pos, text))
}

func TestArithmeticAcrossCells(t *testing.T) {
	s := New()
	mustSet(t, s, position.New(0, 0), "=B1+2")
	mustSet(t, s, position.New(0, 1), "3")

	c, err := s.GetCell(position.New(0, 0))
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 5.0, c.GetValue(s.resolve).AsNumber())
	assert.Equal(t, position.Size{Rows: 1, Cols: 2}, s.PrintableSize())
}

func TestSelfReferenceIsCircular(t *testing.T) {
	s := New()
	err := s.SetCell(position.New(0, 0), "=A1")
	require.Error(t, err)

	var gerr *gsheeterr.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, gsheeterr.CircularDependency, gerr.Code)

	c, err := s.GetCell(position.New(0, 0))
	require.NoError(t, err)
	assert.Nil(t, c, "a rejected cycle must not materialize A1")
	assert.True(t, c == nil || c.IsEmpty(), "A1 must remain Empty after a rejected cycle")
}

func TestThreeCellCycleRejectedKeepsPriorState(t *testing.T) {
	s := New()
	mustSet(t, s, position.New(0, 0), "=B1") // A1
	mustSet(t, s, position.New(0, 1), "=C1") // B1

	err := s.SetCell(position.New(0, 2), "=A1") // C1, closes the cycle
	require.Error(t, err)

	a1, _ := s.GetCell(position.New(0, 0))
	b1, _ := s.GetCell(position.New(0, 1))
	c1, _ := s.GetCell(position.New(0, 2))
	assert.Equal(t, "=B1", a1.Text())
	assert.Equal(t, "=C1", b1.Text())
	assert.True(t, c1 == nil || c1.IsEmpty())
}

func TestCacheInvalidatedOnUpstreamChange(t *testing.T) {
	s := New()
	mustSet(t, s, position.New(0, 0), "=B1") // A1
	mustSet(t, s, position.New(0, 1), "5")   // B1

	a1, _ := s.GetCell(position.New(0, 0))
	assert.Equal(t, 5.0, a1.GetValue(s.resolve).AsNumber())

	mustSet(t, s, position.New(0, 1), "7")
	assert.Equal(t, 7.0, a1.GetValue(s.resolve).AsNumber())
}

func TestEscapedTextIsNotCoercedToNumber(t *testing.T) {
	s := New()
	mustSet(t, s, position.New(0, 0), "'123") // A1
	a1, _ := s.GetCell(position.New(0, 0))
	v := a1.GetValue(s.resolve)
	require.True(t, v.IsText())
	assert.Equal(t, "123", v.AsText())
	assert.Equal(t, "'123", a1.Text())

	mustSet(t, s, position.New(0, 1), "=A1") // B1
	b1, _ := s.GetCell(position.New(0, 1))
	assert.True(t, b1.GetValue(s.resolve).IsError())
}

func TestClearShrinksPrintableArea(t *testing.T) {
	s := New()
	mustSet(t, s, position.New(0, 0), "hello") // A1
	mustSet(t, s, position.New(1, 1), "world") // B2
	assert.Equal(t, position.Size{Rows: 2, Cols: 2}, s.PrintableSize())

	require.NoError(t, s.ClearCell(position.New(1, 1)))
	assert.Equal(t, position.Size{Rows: 1, Cols: 1}, s.PrintableSize())
}

func TestSetEmptyStringEquivalentToClear(t *testing.T) {
	s := New()
	mustSet(t, s, position.New(0, 0), "hello")
	mustSet(t, s, position.New(0, 0), "")

	c, err := s.GetCell(position.New(0, 0))
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, position.Size{}, s.PrintableSize())
}

func TestInvalidPosition(t *testing.T) {
	s := New()
	bad := position.New(-1, 0)
	err := s.SetCell(bad, "1")
	require.Error(t, err)
	var gerr *gsheeterr.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, gsheeterr.InvalidPosition, gerr.Code)
}

func TestPrintValuesAndTextsFormat(t *testing.T) {
	s := New()
	mustSet(t, s, position.New(0, 0), "=B1+2")
	mustSet(t, s, position.New(0, 1), "3")

	var values, texts strings.Builder
	require.NoError(t, s.PrintValues(&values))
	require.NoError(t, s.PrintTexts(&texts))

	assert.Equal(t, "5\t3\n", values.String())
	assert.Equal(t, "=B1+2\t3\n", texts.String())
}

func TestFormulaWithNoReferencesHasEmptyIncludes(t *testing.T) {
	s := New()
	mustSet(t, s, position.New(0, 0), "=1+2")
	c, _ := s.GetCell(position.New(0, 0))
	assert.Empty(t, c.Includes())
	assert.Equal(t, 3.0, c.GetValue(s.resolve).AsNumber())
}

func TestEmptySheetPrintsNothing(t *testing.T) {
	s := New()
	var buf strings.Builder
	require.NoError(t, s.PrintValues(&buf))
	assert.Empty(t, buf.String())
}
