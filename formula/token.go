package formula

// TokenType enumerates the lexical categories the lexer recognizes.
// Trimmed from the teacher's TokenType (github.com/vogtb/go-spreadsheet)
// down to the grammar this spec actually needs: arithmetic, comparisons,
// cell/range references, and function calls — no worksheet-qualified
// references, no booleans, no string literals (the core formula result
// is always numeric, per spec.md §6).
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenCellRef
	TokenIdentifier // function name
	TokenOp         // + - * / ^
	TokenCompare    // = <> < <= > >=
	TokenComma
	TokenColon // range separator, e.g. A1:B3
	TokenLParen
	TokenRParen
	TokenError
)

// Token is one lexical unit with its source text and position (for
// error messages only; not a grid Position).
type Token struct {
	Type TokenType
	Text string
	Pos  int
}

func (t Token) String() string { return t.Text }
