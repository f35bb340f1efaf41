package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s2composite/internal/ctxlog"
	"github.com/aalvaropc/s2composite/internal/infra/logger"
	"github.com/aalvaropc/s2composite/internal/infra/workspacefinder"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		printError(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

type rootOptions struct {
	debug     bool
	workspace string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var cleanup func() error

	cmd := &cobra.Command{
		Use:           "s2composite",
		Short:         "s2composite builds Sentinel-2 level 3A composites with sen2three",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var mirror io.Writer
			if opts.debug {
				mirror = cmd.ErrOrStderr()
			}

			c, err := logger.Setup(logger.Config{
				Root:   logRoot(opts.workspace),
				Debug:  opts.debug,
				Mirror: mirror,
			})
			if err != nil {
				// Logging is best effort; the command still runs.
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
			}
			cleanup = c

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(ctxlog.WithLogger(ctx, logger.L().With("cmd", cmd.CommandPath())))
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging (also mirrored to stderr)")
	cmd.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")

	cmd.AddCommand(
		processCmd(opts),
		validateCmd(opts),
		checkCmd(opts),
		initCmd(),
		runsCmd(opts),
		versionCmd(),
	)
	return cmd
}

// logRoot is the workspace root when one is found, else the working directory.
func logRoot(workspaceFlag string) string {
	if w := strings.TrimSpace(workspaceFlag); w != "" {
		if abs, err := filepath.Abs(w); err == nil {
			return abs
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	wd, _ = filepath.Abs(wd)
	if root, ferr := workspacefinder.NewFinder().FindRoot(wd); ferr == nil && root != "" {
		return root
	}
	return wd
}
