// =============================================================================
// vapi - VHDL entity header parser
// =============================================================================
//
// THE PIPELINE:
//   1. Config picks the input files (args, vapi.json, or input.txt)
//   2. Each file is read whole and parsed by the backtracking entity grammar
//   3. Failures are rendered as file:line:col diagnostics with a caret
//   4. OPA lint rules run over the parsed entities (--lint)
//   5. The report prints as text, or as JSON checked against the CUE contract
//
// Exit status is 0 only when every file parsed completely.
// =============================================================================

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/vapi/internal/config"
	"github.com/robert-at-pretension-io/vapi/internal/runner"
)

// errFailed marks a run whose report was already printed as failed.
var errFailed = errors.New("failed")

type options struct {
	configPath string
	format     string
	verbose    bool
	lint       bool
	timing     string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "vapi [path...]",
		Short: "vapi parses VHDL entity declarations",
		Long: `vapi parses the entity declarations of VHDL files and reports syntax
errors with the line, column and a caret under the offending text.

Without arguments the files listed in vapi.json are parsed, or input.txt
when there is no configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, args)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default: search for vapi.json)")
	flags.StringVar(&opts.format, "format", "", "Output format: text or json")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Trace grammar rules to stderr")
	flags.BoolVar(&opts.lint, "lint", false, "Run lint rules over the parsed entities")
	flags.StringVar(&opts.timing, "timing", "", "Write JSONL timing events to this file")

	rootCmd.AddCommand(newInitCmd())
	return rootCmd
}

func loadConfig(opts *options) (*config.Config, string, error) {
	if opts.configPath != "" {
		cfg, err := config.LoadFile(opts.configPath)
		if err != nil {
			return nil, "", err
		}
		return cfg, filepath.Dir(opts.configPath), nil
	}
	cfg, err := config.Load("")
	return cfg, "", err
}

func runParse(cmd *cobra.Command, opts *options, args []string) error {
	stderr := cmd.ErrOrStderr()

	cfg, root, err := loadConfig(opts)
	if err != nil {
		if opts.configPath != "" {
			return fmt.Errorf("loading config %s: %w", opts.configPath, err)
		}
		fmt.Fprintf(stderr, "Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.lint {
		cfg.Lint.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	files, err := cfg.ResolveInputs(root, args)
	if err != nil {
		return fmt.Errorf("resolving inputs: %w", err)
	}

	r := runner.New(cfg)
	r.Stdout = cmd.OutOrStdout()
	r.Stderr = stderr
	r.Lint = cfg.Lint.Enabled
	r.TimingPath = opts.timing
	if opts.verbose || cfg.Parser.Trace {
		r.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	report, err := r.Run(cmd.Context(), files)
	if err != nil {
		return err
	}
	if err := r.Emit(report); err != nil {
		return err
	}
	if report.Status != runner.StatusPassed {
		return errFailed
	}
	return nil
}

func newInitCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a vapi.json configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(out, "Config file %s already exists. Overwrite? [y/N]: ", path)
				var response string
				fmt.Fscanln(cmd.InOrStdin(), &response)
				if response != "y" && response != "Y" {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			cfg := config.DefaultConfig()
			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("creating config: %w", err)
			}

			fmt.Fprintf(out, "Created %s\n", path)
			fmt.Fprintln(out, "\nEdit this file to configure:")
			fmt.Fprintln(out, "  - Input file patterns")
			fmt.Fprintln(out, "  - Diagnostic tab size and line numbers")
			fmt.Fprintln(out, "  - Lint rule severities")
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "vapi.json", "Path of the config file to write")
	return cmd
}
