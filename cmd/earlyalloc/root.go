package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/earlyalloc"
	"github.com/pavanmanishd/earlyalloc/internal/trace"
)

// app carries the global flags shared by every subcommand.
type app struct {
	verbose  bool
	jsonOut  bool
	pageSize uint64
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "earlyalloc",
		Short: "Replay allocation scripts against an early boot arena",
		Long: `earlyalloc drives the double-ended early allocator with a script of
byte and page operations and reports the arena cursors after each step.
It is a debugging aid for boot code that sizes its early memory region.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log allocator activity to stderr")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Output in JSON format")
	root.PersistentFlags().Uint64Var(&a.pageSize, "page-size", earlyalloc.DefaultPageSize, "Page size in bytes (power of two)")

	root.AddCommand(a.newReplayCmd(), a.newScenarioCmd(), a.newLayoutCmd())
	return root
}

func (a *app) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (a *app) newArena(cmd *cobra.Command) (*earlyalloc.Arena, error) {
	return earlyalloc.New(
		earlyalloc.WithPageSize(uintptr(a.pageSize)),
		earlyalloc.WithLogger(a.logger(cmd)),
	)
}

// readScript parses the script at path; "-" reads stdin.
func readScript(cmd *cobra.Command, path string) ([]trace.Op, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		r = f
	}
	return trace.Parse(r)
}

// printJSON outputs data as JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
