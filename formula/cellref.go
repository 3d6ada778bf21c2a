package formula

import (
	"strconv"
	"strings"

	"gosheet/position"
)

// columnIndex converts a spreadsheet column letter run ("A", "Z",
// "AA", ...) to a zero-based index. Column-letter parsing is called out
// in spec.md as belonging to the CLI/renderer, not the Sheet core — but
// the formula grammar still needs it to turn "B12" into a Position.
func columnIndex(letters string) int {
	letters = strings.ToUpper(letters)
	idx := 0
	for _, c := range letters {
		idx = idx*26 + int(c-'A'+1)
	}
	return idx - 1
}

// columnLetters is the inverse of columnIndex, used when printing the
// canonical form of a cell reference.
func columnLetters(col int) string {
	var b []byte
	col++
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

// parseCellRef splits a scanned token like "AA23" into its Position.
func parseCellRef(text string) (position.Position, error) {
	i := 0
	for i < len(text) && isAlpha(rune(text[i])) {
		i++
	}
	letters, digits := text[:i], text[i:]
	row, err := strconv.Atoi(digits)
	if err != nil || i == 0 || digits == "" {
		return position.Position{}, newParseErrorAt(0, "malformed cell reference %q", text)
	}
	return position.New(row-1, columnIndex(letters)), nil
}

// formatCellRef renders a Position back to "A1" notation for canonical
// printing.
func formatCellRef(p position.Position) string {
	return columnLetters(p.Col) + strconv.Itoa(p.Row+1)
}
