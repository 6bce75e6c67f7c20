package runner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/robert-at-pretension-io/vapi/internal/config"
	"github.com/robert-at-pretension-io/vapi/internal/validator"
)

// Emit writes the report in the configured output format.
func (r *Runner) Emit(report *Report) error {
	if r.Config.Output.Format == config.FormatJSON {
		return r.emitJSON(report)
	}
	r.emitText(report)
	return nil
}

// emitText prints diagnostics and violations to stderr, then the status
// line and, on success, every fragment joined by ", " to stdout.
func (r *Runner) emitText(report *Report) {
	for _, fr := range report.Files {
		switch {
		case fr.diag != nil:
			fmt.Fprint(r.Stderr, fr.diag.String())
		case fr.Error != nil:
			fmt.Fprintf(r.Stderr, "%s: %s\n", fr.File, fr.Error.Message)
		}
	}

	if report.Lint != nil {
		for _, v := range report.Lint.Violations {
			fmt.Fprintf(r.Stderr, "%s:%d: %s: [%s] %s\n", v.File, v.Line, v.Severity, v.Rule, v.Message)
		}
	}

	fmt.Fprintln(r.Stdout, report.Status)
	if report.Status != StatusPassed {
		return
	}
	fmt.Fprintln(r.Stdout, strings.Join(report.Fragments(), ", "))
}

// emitJSON checks the report against the CUE contract before printing it.
func (r *Runner) emitJSON(report *Report) error {
	v, err := r.contract()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := v.ValidateJSON(data); err != nil {
		return contractError("report", err, v.ValidationErrors(report))
	}

	_, err = fmt.Fprintln(r.Stdout, string(data))
	return err
}

func (r *Runner) contract() (*validator.Validator, error) {
	if r.validator != nil {
		return r.validator, nil
	}
	v, err := validator.New()
	if err != nil {
		return nil, fmt.Errorf("creating validator: %w", err)
	}
	r.validator = v
	return v, nil
}

// contractError lists every schema violation under a one-line summary.
func contractError(what string, err error, details []string) error {
	if len(details) == 0 {
		return fmt.Errorf("%s violates contract: %w", what, err)
	}
	return fmt.Errorf("%s violates contract: %w\n  %s", what, err, strings.Join(details, "\n  "))
}

// Fragments returns the fragments of every file in input order.
func (rep *Report) Fragments() []string {
	fragments := []string{}
	for _, fr := range rep.Files {
		fragments = append(fragments, fr.Fragments...)
	}
	return fragments
}
