// Package main provides the CLI entry point for xlsxtext-go.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlsxtext-go/pkg/xlsxtext"
	"github.com/ukaji3/xlsxtext-go/pkg/xlsxtext/models"
	"github.com/ukaji3/xlsxtext-go/pkg/xlsxtext/output"
)

type config struct {
	outputPath string
	format     string
	pretty     bool
	sheets     []string
	skipHidden bool
	skipEmpty  bool
	maxRows    int
	sheetsDir  string
	encoding   string
	verbose    bool
	logger     *log.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config{}
	rootCmd := &cobra.Command{
		Use:   "xlsxtext [input.xlsx]",
		Short: "Stream cell text out of Excel workbooks",
		Long: `xlsxtext reads the cell text of every sheet of an xlsx workbook row by row
and writes it as JSON or delimited text. Merged cells repeat their anchor value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.logger = newLogger(cmd.ErrOrStderr(), cfg.verbose)
			return run(cmd.OutOrStdout(), args[0], cfg)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&cfg.outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.StringVarP(&cfg.format, "format", "f", "json", "Output format: json, csv, tsv")
	flags.BoolVar(&cfg.pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringArrayVarP(&cfg.sheets, "sheet", "s", nil, "Sheet name to include (repeatable, default: all)")
	flags.BoolVar(&cfg.skipHidden, "skip-hidden", false, "Skip hidden sheets")
	flags.BoolVar(&cfg.skipEmpty, "skip-empty", false, "Skip rows without any value")
	flags.IntVar(&cfg.maxRows, "max-rows", 0, "Maximum rows per sheet (0: unlimited)")
	flags.StringVar(&cfg.sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	flags.StringVarP(&cfg.encoding, "encoding", "e", "utf-8", "Output encoding")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "Log progress to stderr")

	return rootCmd
}

func run(stdout io.Writer, inputPath string, cfg *config) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	opts := xlsxtext.Options{
		Sheets:        cfg.sheets,
		SkipHidden:    cfg.skipHidden,
		SkipEmptyRows: cfg.skipEmpty,
		MaxRows:       cfg.maxRows,
	}

	switch cfg.format {
	case "json":
		return runJSON(stdout, inputPath, opts, cfg)
	case "csv", "tsv":
		return runDelimited(stdout, inputPath, opts, cfg)
	default:
		return fmt.Errorf("invalid format: %s (must be json, csv, or tsv)", cfg.format)
	}
}

func runJSON(stdout io.Writer, inputPath string, opts xlsxtext.Options, cfg *config) error {
	cfg.logger.Printf("[xlsxtext] extracting %s", inputPath)
	wb, err := xlsxtext.Extract(inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	cfg.logger.Printf("[xlsxtext] extracted %d sheets", len(wb.Sheets))

	if cfg.sheetsDir != "" {
		if err := writeSheetFiles(wb, cfg); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
		if cfg.outputPath == "" {
			return nil
		}
	}

	jsonData, err := output.ToJSON(wb, cfg.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(stdout, cfg, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, string(jsonData))
		return err
	})
}

// runDelimited streams rows straight from the reader without collecting
// the workbook. Sheets after the first are preceded by a blank line.
func runDelimited(stdout io.Writer, inputPath string, opts xlsxtext.Options, cfg *config) error {
	r, err := xlsxtext.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open failed: %w", err)
	}
	defer r.Close()

	delim := ','
	if cfg.format == "tsv" {
		delim = '\t'
	}

	if cfg.sheetsDir != "" {
		if err := os.MkdirAll(cfg.sheetsDir, 0755); err != nil {
			return err
		}
	}

	written := 0
	write := func(w io.Writer) error {
		for {
			entry, ok := r.PeekSheet()
			if !ok {
				return nil
			}
			if !opts.ShouldIncludeSheet(entry) {
				cfg.logger.Printf("[xlsxtext] skipping sheet %q", entry.Name)
				if err := r.SkipSheet(); err != nil {
					return err
				}
				continue
			}
			if _, err := r.AdvanceSheet(); err != nil {
				return err
			}
			cfg.logger.Printf("[xlsxtext] streaming sheet %q", r.SheetName())

			if cfg.sheetsDir != "" {
				filename := filepath.Join(cfg.sheetsDir, sheetFileName(r.SheetName())+"."+cfg.format)
				if err := writeFile(filename, cfg.encoding, func(fw io.Writer) error {
					return streamSheet(fw, r, opts, delim)
				}); err != nil {
					return err
				}
				continue
			}

			if written > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if err := streamSheet(w, r, opts, delim); err != nil {
				return err
			}
			written++
		}
	}

	if cfg.sheetsDir != "" && cfg.outputPath == "" {
		return write(io.Discard)
	}
	return writeOutput(stdout, cfg, write)
}

func streamSheet(w io.Writer, r *xlsxtext.Reader, opts xlsxtext.Options, delim rune) error {
	cw := output.NewCSVWriter(w, delim)
	s := r.Sheet()
	kept := 0
	for !opts.RowLimitReached(kept) {
		ok, err := s.AdvanceRow()
		if err != nil {
			return xlsxtext.NewExtractionError(r.SheetName(), err)
		}
		if !ok {
			break
		}
		row := models.CellRow{R: s.RowNumber(), Cells: s.CurrentRow()}
		if opts.SkipEmptyRows && row.Empty() {
			continue
		}
		if err := cw.WriteRow(row.Cells); err != nil {
			return err
		}
		kept++
	}
	return cw.Flush()
}

func writeSheetFiles(wb *models.WorkbookData, cfg *config) error {
	if err := os.MkdirAll(cfg.sheetsDir, 0755); err != nil {
		return err
	}

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		jsonData, err := output.SheetToJSON(sheet, cfg.pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(cfg.sheetsDir, sheetFileName(sheet.Name)+".json")
		if err := writeFile(filename, cfg.encoding, func(w io.Writer) error {
			_, err := w.Write(jsonData)
			return err
		}); err != nil {
			return err
		}
		cfg.logger.Printf("[xlsxtext] wrote %s", filename)
	}

	return nil
}

// sheetFileName turns a sheet name into a file name that stays inside the
// output directory.
func sheetFileName(name string) string {
	invalid := strings.NewReplacer(string(os.PathSeparator), "_", "/", "_", "\\", "_")
	clean := strings.TrimSpace(invalid.Replace(name))
	if clean == "" || clean == "." || clean == ".." {
		return "sheet"
	}
	return clean
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	if !verbose {
		w = io.Discard
	}
	return log.New(w, "", log.LstdFlags)
}

// writeOutput sends fn's output to the configured file or stdout.
func writeOutput(stdout io.Writer, cfg *config, fn func(io.Writer) error) error {
	if cfg.outputPath != "" {
		if err := writeFile(cfg.outputPath, cfg.encoding, fn); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	return encode(stdout, cfg.encoding, fn)
}

func writeFile(path, encoding string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, encoding, fn); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encode(w io.Writer, encoding string, fn func(io.Writer) error) error {
	ew, err := output.EncodeWriter(w, encoding)
	if err != nil {
		return err
	}
	if err := fn(ew); err != nil {
		ew.Close()
		return err
	}
	return ew.Close()
}
