package runner

// =============================================================================
// RUNNER: ONE FILE AT A TIME, FAIL LOUDLY
// =============================================================================
//
// The runner sits between the CLI and the parser. For every input it:
// 1. Reads the whole file and parses it (extractor)
// 2. Records a per-file report, rendering diagnostics for failures
// 3. Optionally evaluates lint policies over the files that parsed
// 4. Emits the report as text or as CUE-validated JSON
//
// Inputs are processed strictly in order and never in parallel. A failing
// file does not stop the run; the overall status is "failed" as soon as one
// file fails to parse (or, with linting on, a rule reports an error).
// =============================================================================

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/robert-at-pretension-io/vapi/internal/config"
	"github.com/robert-at-pretension-io/vapi/internal/extractor"
	"github.com/robert-at-pretension-io/vapi/internal/parser"
	"github.com/robert-at-pretension-io/vapi/internal/policy"
	"github.com/robert-at-pretension-io/vapi/internal/validator"
)

const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// Runner parses a list of VHDL files and reports the outcome.
type Runner struct {
	// Configuration loaded from vapi.json
	Config *config.Config

	// Logger receives pipeline progress at Info and grammar tracing at Debug
	Logger *slog.Logger

	// Lint evaluates the policy rules after parsing
	Lint bool

	// TimingPath, when set, receives one JSON line per timed phase
	TimingPath string

	Stdout io.Writer
	Stderr io.Writer

	// Optional extractor factory (for tests)
	extractorFactory func(parser.Options) FactsExtractor

	validator *validator.Validator
}

// FactsExtractor abstracts extraction for tests
type FactsExtractor interface {
	Extract(path string) (extractor.FileFacts, error)
}

// Report is the structured result of a run. Its JSON form is the
// contract checked by the validator package.
type Report struct {
	Status string         `json:"status"`
	Files  []FileReport   `json:"files"`
	Lint   *policy.Result `json:"lint,omitempty"`
}

// FileReport is the outcome for one input file
type FileReport struct {
	extractor.FileFacts
	Passed bool       `json:"passed"`
	Error  *FileError `json:"error,omitempty"`
	diag   *parser.Diagnostic
}

// FileError describes why a file failed
type FileError struct {
	Kind       string `json:"kind"` // syntax, trailing-input or io
	File       string `json:"file"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Expected   string `json:"expected,omitempty"`
	SourceLine string `json:"source_line,omitempty"`
	Message    string `json:"message"`
}

// New creates a Runner writing to the process's stdout and stderr
func New(cfg *config.Config) *Runner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Runner{
		Config: cfg,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParserOptions maps the configuration onto grammar engine options.
func (r *Runner) ParserOptions() parser.Options {
	opts := parser.Options{
		TabSize:      r.Config.Parser.TabSize,
		HidePosition: !r.Config.ShowLineNumbers(),
	}
	if r.Logger != nil {
		opts.Logger = r.Logger.With("component", "parser")
	}
	return opts
}

func (r *Runner) newExtractor() FactsExtractor {
	if r.extractorFactory != nil {
		return r.extractorFactory(r.ParserOptions())
	}
	return extractor.New(r.ParserOptions())
}

// Run parses every file in order. The returned error is reserved for
// failures of the tool itself; parse failures are recorded in the report.
func (r *Runner) Run(ctx context.Context, files []string) (report *Report, err error) {
	log := r.logger()
	start := time.Now()

	timing := newTimingRecorder(start, r.TimingPath)
	if err := timing.Err(); err != nil {
		return nil, fmt.Errorf("opening timing file: %w", err)
	}
	defer func() {
		if cerr := timing.Close(); cerr != nil && err == nil {
			report, err = nil, fmt.Errorf("writing timing file: %w", cerr)
		}
	}()

	report = &Report{Status: StatusPassed, Files: []FileReport{}}
	ext := r.newExtractor()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fileStart := time.Now()
		facts, err := ext.Extract(file)
		fr := newFileReport(file, facts, err)
		report.Files = append(report.Files, fr)

		status := StatusPassed
		if !fr.Passed {
			status = StatusFailed
			report.Status = StatusFailed
		}
		timing.RecordFile("parse", file, status, fileStart, time.Since(fileStart))
		log.Info("parsed file", "file", file, "status", status, "entities", len(fr.Entities))
	}
	timing.RecordStage("parse", start, time.Since(start), report.Status)

	if r.Lint {
		lintStart := time.Now()
		result, err := r.lint(ctx, report)
		if err != nil {
			timing.RecordStage("lint", lintStart, time.Since(lintStart), "error")
			return nil, err
		}
		report.Lint = result
		if result.Summary.Errors > 0 {
			report.Status = StatusFailed
		}
		timing.RecordStage("lint", lintStart, time.Since(lintStart), StatusPassed)
		log.Info("lint finished", "violations", result.Summary.TotalViolations)
	}

	timing.RecordStage("total", start, time.Since(start), report.Status)
	return report, nil
}

func (r *Runner) lint(ctx context.Context, report *Report) (*policy.Result, error) {
	engine, err := policy.New()
	if err != nil {
		return nil, fmt.Errorf("loading policies: %w", err)
	}

	var passed []extractor.FileFacts
	for _, fr := range report.Files {
		if fr.Passed {
			passed = append(passed, fr.FileFacts)
		}
	}

	result, err := engine.Evaluate(ctx, policy.NewInput(r.severities(), passed...))
	if err != nil {
		return nil, fmt.Errorf("evaluating policies: %w", err)
	}
	if err := r.checkLint(result); err != nil {
		return nil, err
	}
	return result, nil
}

// severities resolves the configured severity of every known rule.
func (r *Runner) severities() map[string]string {
	resolved := make(map[string]string, len(policy.DefaultSeverities))
	for rule, def := range policy.DefaultSeverities {
		resolved[rule] = r.Config.GetRuleSeverity(rule, def)
	}
	return resolved
}

// checkLint rejects policy output that does not match #LintOutput, which
// catches custom rule sets emitting unknown severities or empty fields.
func (r *Runner) checkLint(result *policy.Result) error {
	v, err := r.contract()
	if err != nil {
		return err
	}
	if err := v.ValidateLint(result); err != nil {
		return contractError("lint output", err, nil)
	}
	return nil
}

func newFileReport(file string, facts extractor.FileFacts, err error) FileReport {
	if facts.File == "" {
		facts.File = file
	}
	if facts.Entities == nil {
		facts.Entities = []extractor.Entity{}
	}
	if facts.Ports == nil {
		facts.Ports = []extractor.Port{}
	}
	if facts.Fragments == nil {
		facts.Fragments = []string{}
	}

	fr := FileReport{FileFacts: facts}
	if err == nil {
		fr.Passed = true
		return fr
	}

	diag, ok := parser.DiagnosticOf(err)
	if !ok {
		fr.Error = &FileError{Kind: "io", File: file, Message: err.Error()}
		return fr
	}

	kind := "syntax"
	var trailing *parser.TrailingInputError
	if errors.As(err, &trailing) {
		kind = "trailing-input"
	}
	fr.diag = &diag
	fr.Error = &FileError{
		Kind:       kind,
		File:       diag.File,
		Line:       diag.Pos.Line,
		Column:     diag.Pos.Column,
		Expected:   diag.Expected.String(),
		SourceLine: diag.SourceLine,
		Message:    diag.Header(),
	}
	return fr
}
