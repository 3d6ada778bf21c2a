package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosheet/formula"
	"gosheet/position"
	"gosheet/value"
)

func TestRegisterAndRunViaFormula(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("DOUBLEFIRST", "args[0] * 2"))

	expr, err := formula.Parse("DOUBLEFIRST(21)")
	require.NoError(t, err)

	resolve := func(position.Position) (float64, error) { return 0, nil }
	got, err := expr.Evaluate(resolve)
	require.NoError(t, err)
	assert.Equal(t, 42.0, got)
}

func TestRegisterRejectsBadSource(t *testing.T) {
	r := NewRegistry()
	err := r.Register("BROKEN", "this is not valid expr syntax ((")
	assert.Error(t, err)
}

func TestRunWithNonNumericResultIsValueError(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("GREETING", `"hello"`))

	expr, err := formula.Parse("GREETING()")
	require.NoError(t, err)
	resolve := func(position.Position) (float64, error) { return 0, nil }

	_, err = expr.Evaluate(resolve)
	require.Error(t, err)

	var ferr *value.FormulaError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, value.ErrorValue, ferr.Code)
}
