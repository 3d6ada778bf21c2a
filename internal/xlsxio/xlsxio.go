// Package xlsxio imports and exports a Sheet against a single-worksheet
// .xlsx file, using excelize the way
// vinodismyname-mcpxcel/internal/workbooks opens and saves workbooks
// (excelize.OpenFile / (*excelize.File).SaveAs) and the way its
// internal/registry tools read cells with GetCellValue. Unlike
// mcpxcel's multi-sheet, TTL-cached workbook manager, this package is a
// one-shot sink: a sheetcore.Sheet has no native file format of its
// own, so exporting/importing is the only way batch-command transcripts
// (cmd/gosheet) can hand off to and from real spreadsheet tooling.
package xlsxio

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gosheet/position"
	"gosheet/sheetcore"
)

const sheetName = "Sheet1"

// Export writes every non-empty materialized cell in sheet to a new
// .xlsx workbook at path, one worksheet named "Sheet1". Every cell is
// written as a plain string cell holding its source text: formula
// cells as their canonical source text (prefixed with "="), text and
// numeric cells as typed, preserving the leading-quote escape marker.
// No xlsx formulas or computed values are written; Import turns the
// "=" strings back into formulas.
func Export(sheet *sheetcore.Sheet, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	size := sheet.PrintableSize()
	for r := 0; r < size.Rows; r++ {
		for c := 0; c < size.Cols; c++ {
			pos := position.New(r, c)
			cell, err := sheet.GetCell(pos)
			if err != nil {
				return fmt.Errorf("xlsxio: export %s: %w", pos, err)
			}
			if cell == nil || cell.IsEmpty() {
				continue
			}
			addr, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("xlsxio: export %s: %w", pos, err)
			}
			if err := f.SetCellStr(sheetName, addr, cell.Text()); err != nil {
				return fmt.Errorf("xlsxio: export %s: %w", pos, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsxio: export: %w", err)
	}
	return nil
}

// Import reads the first worksheet of the .xlsx file at path and
// replays every non-empty cell into sheet via SetCell, so the full
// dependency engine (cycle detection, edge install, cache
// invalidation) runs exactly as it would for interactively typed
// input — an imported workbook gets no special-cased trust.
func Import(sheet *sheetcore.Sheet, path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("xlsxio: import: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("xlsxio: import: workbook has no worksheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("xlsxio: import: %w", err)
	}

	for r, row := range rows {
		for c, text := range row {
			if text == "" {
				continue
			}
			if err := sheet.SetCell(position.New(r, c), text); err != nil {
				return fmt.Errorf("xlsxio: import %s: %w", position.New(r, c), err)
			}
		}
	}
	return nil
}
