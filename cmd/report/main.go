// Command report computes a setter leaderboard from a JSON file of rows, or
// from generated demo rows, and prints the report as JSON.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	app "github.com/okian/setterboard/internal/app"
	"github.com/okian/setterboard/internal/config"
	"github.com/okian/setterboard/internal/demo"
	"github.com/okian/setterboard/internal/domain/model"
	"github.com/okian/setterboard/internal/domain/types"
	"github.com/okian/setterboard/internal/domain/window"
	"github.com/okian/setterboard/pkg/logger"
)

const defaultTimeout = 2 * time.Minute

var errUsage = errors.New("usage")

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			os.Stderr.WriteString("report: " + err.Error() + "\n")
		}
		os.Exit(2)
	}
}

// options are the parsed command line flags.
type options struct {
	rowsFile    string
	mappingFile string
	useDemo     bool
	rangeName   string
	start       string
	end         string
	pretty      bool
	verbose     bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.rowsFile, "rows", "", "JSON file with an array of {id, fields} rows or a records page")
	fs.StringVar(&o.mappingFile, "mapping", "", "JSON file with the column mapping (default: configured field_map)")
	fs.BoolVar(&o.useDemo, "demo", false, "Use generated demo rows instead of -rows")
	fs.StringVar(&o.rangeName, "range", "", "Date range, e.g. THIS_WEEK or \"Last 30 Days\" (default: configured default_range)")
	fs.StringVar(&o.start, "start", "", "First day of a CUSTOM range (YYYY-MM-DD)")
	fs.StringVar(&o.end, "end", "", "Last day of a CUSTOM range (YYYY-MM-DD)")
	fs.BoolVar(&o.pretty, "pretty", false, "Indent the JSON output")
	fs.BoolVar(&o.verbose, "verbose", false, "Log pipeline details to stderr")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.useDemo == (o.rowsFile != "") {
		return options{}, fmt.Errorf("%w: exactly one of -rows or -demo is required", errUsage)
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.New(logLevel(opts.verbose), logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat))
	svc, err := app.FromConfig(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	win, err := parseWindow(opts)
	if err != nil {
		return err
	}

	var report types.Report
	if opts.useDemo {
		report, err = svc.Report(ctx, demo.OfferID, win)
	} else {
		var rows []model.RawRow
		var mapping model.FieldMap
		if rows, err = readRows(opts.rowsFile); err != nil {
			return err
		}
		if opts.mappingFile != "" {
			if err := readJSON(opts.mappingFile, &mapping); err != nil {
				return err
			}
		}
		report, err = svc.Compute(ctx, rows, mapping, win)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func parseWindow(o options) (window.Window, error) {
	win := window.Window{Range: window.Range(o.rangeName)}
	for _, b := range []struct {
		flag  string
		value string
		dst   *model.Date
	}{{"start", o.start, &win.Start}, {"end", o.end, &win.End}} {
		if b.value == "" {
			continue
		}
		t, err := time.Parse(model.DateLayout, b.value)
		if err != nil {
			return window.Window{}, fmt.Errorf("%w: -%s wants YYYY-MM-DD: %w", errUsage, b.flag, err)
		}
		*b.dst = model.DateOf(t)
	}
	return win, nil
}

// readRows accepts either a bare array of rows or a records API page.
func readRows(path string) ([]model.RawRow, error) {
	var raw json.RawMessage
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}
	var rows []model.RawRow
	if err := decode(raw, &rows); err == nil {
		return rows, nil
	}
	var page struct {
		Records []model.RawRow `json:"records"`
	}
	if err := decode(raw, &page); err != nil {
		return nil, fmt.Errorf("%s: want an array of rows or {\"records\": [...]}: %w", path, err)
	}
	return page.Records, nil
}

func readJSON(path string, dst any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := decode(b, dst); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func decode(b []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec.Decode(dst)
}
