package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/semlang/semlang/internal/ast"
	"github.com/semlang/semlang/internal/config"
	"github.com/semlang/semlang/internal/diag"
	"github.com/semlang/semlang/internal/frontend"
	"github.com/semlang/semlang/internal/lexer"
)

func tokensCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			src := string(data)
			if cfg.Normalize {
				src = frontend.Normalize(src)
			}

			toks, lexErrs := lexer.TokenizeFile(args[0], src)
			writeTokens(cmd.OutOrStdout(), toks)

			if len(lexErrs) == 0 {
				return nil
			}
			ds := make([]diag.Diagnostic, len(lexErrs))
			for i, e := range lexErrs {
				ds[i] = e.ToDiagnostic()
			}
			res := frontend.Result{Path: args[0], Source: src, Diagnostics: ds}
			if err := printDiagnostics(cmd.ErrOrStderr(), cfg.Format, []frontend.Result{res}); err != nil {
				return err
			}
			return errDiagnostics
		},
	}
}

func parseCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and print the syntax tree",
		Long: `Parse a source file and print the syntax tree in source form.
Placeholders left by error recovery are printed as <bad>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			d := frontend.New(frontend.OptionsFromConfig(cfg, logger))
			res, err := d.ParseFile(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ast.Format(res.Program))

			if len(res.Diagnostics) == 0 {
				return nil
			}
			if err := printDiagnostics(cmd.ErrOrStderr(), cfg.Format, []frontend.Result{res}); err != nil {
				return err
			}
			if res.HasErrors() {
				return errDiagnostics
			}
			return nil
		},
	}
}

func checkCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse source files and report diagnostics",
		Long: `Parse source files and report diagnostics. Directories are searched
for files matching the configured include patterns. Without arguments the
current directory is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			d := frontend.New(frontend.OptionsFromConfig(cfg, logger))
			results, err := runCheck(cmd.Context(), d, cfg, args)
			if err != nil {
				return err
			}

			if err := printDiagnostics(cmd.OutOrStdout(), cfg.Format, results); err != nil {
				return err
			}

			logger.Info().
				Int("files", len(results)).
				Int("diagnostics", countDiagnostics(results)).
				Msg("check complete")

			if frontend.HasErrors(results) {
				return errDiagnostics
			}
			return nil
		},
	}
}

func watchCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Check source files and re-check them when they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d := frontend.New(frontend.OptionsFromConfig(cfg, logger))
			results, err := runCheck(ctx, d, cfg, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := printDiagnostics(out, cfg.Format, results); err != nil {
				return err
			}

			paths := make([]string, len(results))
			for i, res := range results {
				paths[i] = res.Path
			}

			w, err := d.Watch(paths)
			if err != nil {
				return fmt.Errorf("failed to watch: %w", err)
			}
			defer w.Close()

			logger.Info().Int("files", len(paths)).Msg("watching for changes")

			done := make(chan error, 1)
			go func() { done <- w.Run(ctx) }()

			for res := range w.Results() {
				if err := printDiagnostics(out, cfg.Format, []frontend.Result{res}); err != nil {
					return err
				}
				if !res.HasErrors() {
					logger.Info().Str("path", res.Path).Msg("no errors")
				}
			}

			if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// runCheck resolves args into source files and parses them.
func runCheck(ctx context.Context, d *frontend.Driver, cfg *config.Config, args []string) ([]frontend.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	paths, err := frontend.Expand(args, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	return d.ParseFiles(ctx, paths)
}

// printDiagnostics writes the diagnostics of every result in the given
// format. JSON output is a single array across all files.
func printDiagnostics(w io.Writer, format string, results []frontend.Result) error {
	if format == config.FormatJSON {
		var all []diag.Diagnostic
		for _, res := range results {
			all = append(all, res.Diagnostics...)
		}
		return diag.WriteJSON(w, all)
	}

	f := diag.NewFormatter(w)
	for _, res := range results {
		f.AddSource(res.Path, res.Source)
	}
	for _, res := range results {
		f.FormatAll(res.Diagnostics)
	}
	return nil
}

func writeTokens(w io.Writer, toks []lexer.Token) {
	for _, tok := range toks {
		pos := fmt.Sprintf("%d:%d", tok.Span.Line, tok.Span.Column)
		fmt.Fprintf(w, "%-8s %-10s %s\n", pos, tok.Type, tok.Raw)
	}
}

func countDiagnostics(results []frontend.Result) int {
	n := 0
	for _, res := range results {
		n += len(res.Diagnostics)
	}
	return n
}
