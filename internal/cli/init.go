package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s2composite/internal/infra/fsworkspace"
	"github.com/aalvaropc/s2composite/internal/infra/gipp"
	"github.com/aalvaropc/s2composite/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create an s2composite workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			initializer := fsworkspace.NewInitializer(fsworkspace.WithGIPPTemplate(gipp.DefaultTemplate()))
			if err := usecase.NewInitWorkspace(initializer).Execute(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace initialized at %s\n", absOrSelf(path))
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", ".", "Directory to initialize")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return c
}
