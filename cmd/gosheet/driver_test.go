package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosheet/internal/script"
	"gosheet/position"
	"gosheet/sheetcore"
)

func newTestDriver() (*driver, *bytes.Buffer) {
	sheet := sheetcore.New()
	var out bytes.Buffer
	return &driver{sheet: sheet, scripts: script.NewRegistry(), out: &out, log: zerolog.Nop()}, &out
}

func TestDriverExecLineSetAndGet(t *testing.T) {
	d, out := newTestDriver()
	require.NoError(t, d.execLine("SET B1 3"))
	require.NoError(t, d.execLine("SET A1 =B1+2"))
	require.NoError(t, d.execLine("GET A1"))
	assert.Equal(t, "5\n", out.String())
}

func TestDriverRunBatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.txt")
	contents := "# comment\nSET B1 3\nSET A1 =B1+2\nGET A1\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	d, out := newTestDriver()
	require.NoError(t, d.runBatch(path))
	assert.Equal(t, "5\n", out.String())
}

func TestDriverClearShrinksThenGetReturnsEmpty(t *testing.T) {
	d, out := newTestDriver()
	require.NoError(t, d.execLine("SET A1 hello"))
	require.NoError(t, d.execLine("CLEAR A1"))
	assert.Equal(t, position.Size{}, d.sheet.PrintableSize())
	out.Reset()
	require.NoError(t, d.execLine("GET A1"))
	assert.Equal(t, "\n", out.String())

	c, err := d.sheet.GetCell(position.New(0, 0))
	require.NoError(t, err)
	assert.True(t, c == nil || c.IsEmpty())
}

func TestDriverGCListsReferencedEmptyCells(t *testing.T) {
	d, out := newTestDriver()
	require.NoError(t, d.execLine("SET A1 =B1"))
	out.Reset()

	require.NoError(t, d.execLine("GC"))
	assert.Equal(t, "B1\n", out.String())
}

func TestDriverGCReportsNoneWhenClean(t *testing.T) {
	d, out := newTestDriver()
	require.NoError(t, d.execLine("SET A1 hello"))
	out.Reset()

	require.NoError(t, d.execLine("GC"))
	assert.Equal(t, "(none)\n", out.String())
}

func TestDriverScriptRegistersFunction(t *testing.T) {
	d, out := newTestDriver()
	require.NoError(t, d.execLine("SCRIPT DOUBLE args[0] * 2"))
	require.NoError(t, d.execLine("SET A1 =DOUBLE(21)"))
	require.NoError(t, d.execLine("GET A1"))
	assert.Equal(t, "42\n", out.String())
}
