// Command gosheet drives a Sheet from a batch command file or an
// interactive REPL, in the flag-parsing-plus-zerolog-bootstrap style of
// vinodismyname-mcpxcel/cmd/server/main.go — trimmed down to a single
// local process with no transport layer, since this is a library demo
// driver rather than a server.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"

	"gosheet/internal/script"
	"gosheet/internal/xlsxio"
	"gosheet/sheetcore"
)

func main() {
	var (
		batchPath string
		verbose   bool
	)

	fs := flag.NewFlagSet("gosheet", flag.ExitOnError)
	fs.StringVar(&batchPath, "batch", "", "run commands from a file instead of an interactive prompt")
	fs.BoolVar(&verbose, "verbose", false, "emit debug-level sheet engine logs to stderr")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	sheet := sheetcore.New()
	sheet.SetLogger(logger)
	scripts := script.NewRegistry()

	driver := &driver{sheet: sheet, scripts: scripts, out: os.Stdout, log: logger}

	var err error
	if batchPath != "" {
		err = driver.runBatch(batchPath)
	} else {
		err = driver.runREPL(os.Stdin)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "gosheet:", err)
		os.Exit(1)
	}
}

// driver executes parsed commands against a single Sheet.
type driver struct {
	sheet   *sheetcore.Sheet
	scripts *script.Registry
	out     io.Writer
	log     zerolog.Logger
}

func (d *driver) runBatch(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, MaxBatchLineLength), MaxBatchLineLength)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := d.execLine(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func (d *driver) runREPL(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(d.out, DefaultPromptLabel)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			if err := d.execLine(line); err != nil {
				fmt.Fprintln(d.out, "error:", err)
			}
		}
		fmt.Fprint(d.out, DefaultPromptLabel)
	}
	fmt.Fprintln(d.out)
	return scanner.Err()
}

func (d *driver) execLine(line string) error {
	cmd, err := parseCommand(line)
	if err != nil {
		return err
	}
	d.log.Debug().Str("verb", string(cmd.Verb)).Str("ref", cmd.Ref).Msg("executing command")

	switch cmd.Verb {
	case verbSet:
		pos, err := parseRef(cmd.Ref)
		if err != nil {
			return err
		}
		return d.sheet.SetCell(pos, cmd.Arg)

	case verbClear:
		pos, err := parseRef(cmd.Ref)
		if err != nil {
			return err
		}
		return d.sheet.ClearCell(pos)

	case verbGet:
		pos, err := parseRef(cmd.Ref)
		if err != nil {
			return err
		}
		v, err := d.sheet.GetValue(pos)
		if err != nil {
			return err
		}
		fmt.Fprintln(d.out, v.String())
		return nil

	case verbText:
		pos, err := parseRef(cmd.Ref)
		if err != nil {
			return err
		}
		c, err := d.sheet.GetCell(pos)
		if err != nil {
			return err
		}
		if c == nil {
			fmt.Fprintln(d.out, "")
			return nil
		}
		fmt.Fprintln(d.out, c.Text())
		return nil

	case verbPrint:
		return d.printTable(cmd.Arg == "TEXT")

	case verbImport:
		return xlsxio.Import(d.sheet, cmd.Arg)

	case verbExport:
		return xlsxio.Export(d.sheet, cmd.Arg)

	case verbScript:
		return d.scripts.Register(cmd.Ref, cmd.Arg)

	case verbGC:
		return d.printGarbageCells()
	}
	return fmt.Errorf("unhandled command %q", cmd.Verb)
}

// printGarbageCells lists every materialized cell that holds no content
// of its own but is still referenced by another cell's formula — a
// leftover from materializing a dependency target (spec.md §4.4 step
// 5) rather than anything a user ever set.
func (d *driver) printGarbageCells() error {
	positions := d.sheet.ReferencedEmptyCells()
	if len(positions) == 0 {
		fmt.Fprintln(d.out, "(none)")
		return nil
	}
	for _, pos := range positions {
		fmt.Fprintln(d.out, columnLetters(pos.Col)+strconv.Itoa(pos.Row+1))
	}
	return nil
}

// printTable renders the sheet's printable rectangle with
// olekukonko/tablewriter, the way a human-facing CLI would rather than
// the core's raw tab-separated PrintValues/PrintTexts output.
func (d *driver) printTable(texts bool) error {
	size := d.sheet.PrintableSize()
	if size.IsEmpty() {
		fmt.Fprintln(d.out, "(empty)")
		return nil
	}

	table := tablewriter.NewWriter(d.out)
	header := make([]string, size.Cols)
	for c := 0; c < size.Cols; c++ {
		header[c] = columnLetters(c)
	}
	table.SetHeader(header)

	var buf strings.Builder
	var renderErr error
	if texts {
		renderErr = d.sheet.PrintTexts(&buf)
	} else {
		renderErr = d.sheet.PrintValues(&buf)
	}
	if renderErr != nil {
		return renderErr
	}

	for _, row := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		table.Append(strings.Split(row, "\t"))
	}
	table.Render()
	return nil
}

// columnLetters renders a zero-based column index as "A", "B", ..., "Z",
// "AA", matching the inverse of parseRef's column decoding.
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
