package main

// Default runtime constants for the gosheet CLI driver. Conservative,
// and fixed at compile time (no flag overrides them) — mirrors the shape of
// vinodismyname-mcpxcel's config/defaults.go, which keeps its knobs as
// plain untyped constants rather than a parsed config file.
const (
	// DefaultPromptLabel is printed before each interactive REPL prompt.
	DefaultPromptLabel = "gosheet> "

	// MaxBatchLineLength rejects batch-file lines longer than this,
	// catching a wrong-file-piped-in mistake early rather than handing
	// a garbage line to the parser.
	MaxBatchLineLength = 4096
)
