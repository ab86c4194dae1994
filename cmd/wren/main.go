package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/wren/internal/server"
	"github.com/ChicagoDave/wren/pkg/validation"
	"github.com/ChicagoDave/wren/pkg/wren"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		// Validation failures have already printed their report.
		if !errors.Is(err, validation.ErrInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "wren",
		Short:         "Decompose panel outlines into blocks, corners, reinforcers, fins and walls",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd, verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log decomposition details to stderr")

	root.AddCommand(decomposeCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(batchCmd())
	root.AddCommand(serveCmd())
	return root
}

// setupLogging installs a text logger on stderr. Without verbose the engine
// stays silent and only the server logs at info level.
func setupLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if verbose {
		wren.SetLogger(logger)
	}
}

func decomposeCmd() *cobra.Command {
	var (
		raw    bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "decompose [project-path]",
		Short: "Decompose a panel and print its scene as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return runDecompose(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], raw)
			}
			// A failed decomposition leaves no output file behind.
			var buf bytes.Buffer
			if err := runDecompose(&buf, cmd.ErrOrStderr(), args[0], raw); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "emit model coordinates instead of display coordinates")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the scene to a file instead of stdout")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a panel spec and its decomposition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func batchCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "batch [project-path...]",
		Short: "Decompose several panels concurrently and print a summary table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), cmd.OutOrStdout(), args, jobs)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of panels decomposed at once")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local preview server and re-solve on every spec change",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(args[0], port, slog.Default())
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
