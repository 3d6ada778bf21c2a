package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosheet/position"
	"gosheet/value"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, KindEmpty, Classify(""))
	assert.Equal(t, KindText, Classify("hello"))
	assert.Equal(t, KindText, Classify("="))
	assert.Equal(t, KindFormula, Classify("=A1"))
}

func TestNewContentTextEscapeMarker(t *testing.T) {
	c, err := NewContent("'123")
	require.NoError(t, err)
	assert.Equal(t, "'123", c.Text())

	v := c.Evaluate(nil)
	require.True(t, v.IsText())
	assert.Equal(t, "123", v.AsText())
}

func TestNewContentFormulaParseErrorLeavesNoState(t *testing.T) {
	c, err := NewContent("=SUM(")
	require.Error(t, err)
	assert.Equal(t, Content{}, c, "a failed parse must return the zero Content")
}

func TestCellGetValueMemoizes(t *testing.T) {
	c := New(position.New(0, 0))
	content, err := NewContent("hello")
	require.NoError(t, err)
	c.SetContent(content)

	calls := 0
	resolve := func(position.Position) (float64, error) { calls++; return 0, nil }

	v1 := c.GetValue(resolve)
	v2 := c.GetValue(resolve)
	assert.Equal(t, value.Text("hello"), v1)
	assert.Equal(t, v1, v2)
	assert.Equal(t, 0, calls, "text content should never call the resolver")
}

func TestCellInvalidateCacheForcesRecompute(t *testing.T) {
	c := New(position.New(0, 0))
	content, _ := NewContent("=A1")
	c.SetContent(content)

	n := 1.0
	resolve := func(position.Position) (float64, error) { return n, nil }

	v1 := c.GetValue(resolve)
	assert.Equal(t, 1.0, v1.AsNumber())

	n = 2.0
	v2 := c.GetValue(resolve)
	assert.Equal(t, 1.0, v2.AsNumber(), "cached value should not change without invalidation")

	c.InvalidateCache()
	v3 := c.GetValue(resolve)
	assert.Equal(t, 2.0, v3.AsNumber())
}
