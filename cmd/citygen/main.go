package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ChicagoDave/citygen/pkg/buildinfo"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "citygen",
		Short:         "Procedural city block layout generator",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	rootCmd.SetVersionTemplate(buildinfo.Template())
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(serveCmd())
	return rootCmd
}

func projectArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Check a city spec without generating",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd.OutOrStdout(), projectArg(args))
		},
	}
}

func generateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [project-path]",
		Short: "Generate a city layout and print its scene graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), projectArg(args), opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 uses the project seed or a fresh one)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "output format: json, table or plan")
	cmd.Flags().StringVar(&opts.cacheDir, "cache", "", "directory for cached scenes (disabled when empty)")
	return cmd
}

func batchCmd() *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch [project-path]",
		Short: "Generate several seeded variants concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), cmd.OutOrStdout(), projectArg(args), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 8, "number of variants")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 4, "concurrent generations")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "first seed; variants use seed, seed+1, ...")
	return cmd
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), projectArg(args), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", 3000, "HTTP server port")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "redis URL for the scene cache (redis://host:port/db)")
	cmd.Flags().DurationVar(&opts.ttl, "cache-ttl", 0, "scene cache TTL (0 keeps entries forever)")
	return cmd
}
