package xlsxio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gosheet/position"
	"gosheet/sheetcore"
)

func newFileWithCircularFormula(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetCellStr("Sheet1", "A1", "=A1"))
	return f
}

func TestExportThenImportRoundTrips(t *testing.T) {
	src := sheetcore.New()
	require.NoError(t, src.SetCell(position.New(0, 1), "3"))
	require.NoError(t, src.SetCell(position.New(0, 0), "=B1+2"))

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Export(src, path))

	dst := sheetcore.New()
	require.NoError(t, Import(dst, path))

	a1, err := dst.GetCell(position.New(0, 0))
	require.NoError(t, err)
	require.NotNil(t, a1)
	assert.Equal(t, "=B1+2", a1.Text())
}

func TestImportRejectsCircularWorkbook(t *testing.T) {
	src := sheetcore.New()
	f := newFileWithCircularFormula(t)
	path := filepath.Join(t.TempDir(), "circular.xlsx")
	require.NoError(t, f.SaveAs(path))

	err := Import(src, path)
	assert.Error(t, err)
}
