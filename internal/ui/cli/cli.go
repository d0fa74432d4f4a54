// Package cli wires the layoutlint command tree, logging and runtime modes.
package cli

import (
	"fmt"
	"io"

	"layoutlint/internal/shared/version"
	"layoutlint/internal/ui/report"

	"github.com/spf13/cobra"
)

const (
	exitOK    = 0
	exitLint  = 1
	exitUsage = 2
)

type cliOptions struct {
	configPath   string
	format       string
	output       string
	watch        bool
	ui           bool
	metricsAddr  string
	otlpEndpoint string
	verbose      bool
}

type initOptions struct {
	format string
	force  bool
}

// invocation holds the writers of one Run and the exit code its command chose.
type invocation struct {
	stdout io.Writer
	stderr io.Writer
	code   int
}

func newRootCommand(inv *invocation) *cobra.Command {
	var opts cliOptions

	root := &cobra.Command{
		Use:   "layoutlint [path]",
		Short: "A fast, opinionated CLI to enforce Next.js file-structure conventions",
		Long: `A fast, opinionated CLI to enforce Next.js file-structure conventions.

layoutlint walks a project, checks every source file against the rules in
.layoutlintrc.json (or .yaml/.toml) and reports violations. It exits with 1
when any error-severity diagnostic is found.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			inv.code = inv.lint(cmd.Context(), pathArg(args), format, opts)
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.format, "format", "f", string(report.FormatHuman), "output format: human, json or sarif")
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: discovered in the project root)")
	flags.StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of stdout")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "re-lint when files change")
	flags.BoolVar(&opts.ui, "ui", false, "browse diagnostics in an interactive terminal UI")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve /metrics and /health on this address while watching")
	flags.StringVar(&opts.otlpEndpoint, "otlp-endpoint", "", "export traces to this OTLP gRPC endpoint (host:port)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newInitCommand(inv), newVersionCommand(inv))
	return root
}

func newInitCommand(inv *invocation) *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter config file",
		Long: `Write a starter .layoutlintrc file into the project directory.

The starter enables every built-in rule and two example file organization
checks. An existing file is kept unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseConfigFormat(opts.format)
			if err != nil {
				return err
			}
			inv.code = inv.initConfig(pathArg(args), format, opts.force)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "config format: json, yaml or toml")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing config file")
	return cmd
}

func newVersionCommand(inv *invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the layoutlint version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(inv.stdout, "layoutlint v%s\n", version.Version)
		},
	}
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
