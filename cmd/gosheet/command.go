package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"gosheet/position"
)

// verb enumerates the batch/REPL command vocabulary.
type verb string

const (
	verbSet    verb = "SET"
	verbClear  verb = "CLEAR"
	verbGet    verb = "GET"
	verbText   verb = "TEXT"
	verbPrint  verb = "PRINT"
	verbImport verb = "IMPORT"
	verbExport verb = "EXPORT"
	verbScript verb = "SCRIPT"
	verbGC     verb = "GC"
)

// command is the parsed, validated shape of one batch-file or REPL
// line, following the teacher's DTO-then-validate pattern (grounded on
// vinodismyname-mcpxcel/pkg/validation.ValidateStruct): parse first,
// validate the struct, only then execute. A line that fails either
// step never reaches the sheet.
type command struct {
	Verb verb   `validate:"required,oneof=SET CLEAR GET TEXT PRINT IMPORT EXPORT SCRIPT GC"`
	Ref  string `validate:"omitempty"`
	Arg  string `validate:"omitempty"`
}

var validate = validator.New()

// parseCommand splits a raw line into a command DTO and validates it.
// Recognized forms:
//
//	SET <ref> <text...>
//	CLEAR <ref>
//	GET <ref>
//	TEXT <ref>
//	PRINT VALUES|TEXT
//	IMPORT <path>
//	EXPORT <path>
//	SCRIPT <name> <expr-lang source...>
//	GC
func parseCommand(line string) (command, error) {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 3)
	if len(fields) == 0 || fields[0] == "" {
		return command{}, fmt.Errorf("empty command")
	}

	cmd := command{Verb: verb(strings.ToUpper(fields[0]))}
	switch cmd.Verb {
	case verbSet:
		if len(fields) < 3 {
			return command{}, fmt.Errorf("SET requires a reference and text")
		}
		cmd.Ref, cmd.Arg = fields[1], fields[2]
	case verbClear, verbGet, verbText:
		if len(fields) < 2 {
			return command{}, fmt.Errorf("%s requires a reference", cmd.Verb)
		}
		cmd.Ref = fields[1]
	case verbPrint:
		if len(fields) < 2 {
			return command{}, fmt.Errorf("PRINT requires VALUES or TEXT")
		}
		cmd.Arg = strings.ToUpper(fields[1])
	case verbImport, verbExport:
		if len(fields) < 2 {
			return command{}, fmt.Errorf("%s requires a file path", cmd.Verb)
		}
		cmd.Arg = strings.Join(fields[1:], " ")
	case verbScript:
		if len(fields) < 3 {
			return command{}, fmt.Errorf("SCRIPT requires a name and an expression")
		}
		cmd.Ref, cmd.Arg = fields[1], fields[2]
	case verbGC:
		// bare verb, no reference or argument
	default:
		return command{}, fmt.Errorf("unrecognized command %q", fields[0])
	}

	if err := validate.Struct(cmd); err != nil {
		return command{}, fmt.Errorf("invalid command: %w", err)
	}
	return cmd, nil
}

// parseRef decodes an "A1"-style reference into a Position. Column
// decoding lives here rather than in the formula package: spec.md
// treats letter-column notation as a CLI/renderer concern, not
// something the dependency core needs to know about (gosheet/formula's
// cellref.go solves the same sub-problem for formula source text, kept
// separate on purpose).
func parseRef(ref string) (position.Position, error) {
	i := 0
	for i < len(ref) && ((ref[i] >= 'A' && ref[i] <= 'Z') || (ref[i] >= 'a' && ref[i] <= 'z')) {
		i++
	}
	if i == 0 || i == len(ref) {
		return position.Position{}, fmt.Errorf("malformed reference %q", ref)
	}
	letters, digits := strings.ToUpper(ref[:i]), ref[i:]
	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 {
		return position.Position{}, fmt.Errorf("malformed reference %q", ref)
	}
	col := 0
	for _, c := range letters {
		col = col*26 + int(c-'A'+1)
	}
	return position.New(row-1, col-1), nil
}
