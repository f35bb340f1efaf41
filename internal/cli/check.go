package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/infra/l3aoutput"
	"github.com/aalvaropc/s2composite/internal/usecase"
)

func checkCmd(root *rootOptions) *cobra.Command {
	var tile, outputDir, start, resolution, format string

	c := &cobra.Command{
		Use:   "check",
		Short: "Check that a level 3A product holds every expected band",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspace(root.workspace)
			if err != nil {
				return err
			}

			if start == "" {
				start = ws.cfg.Defaults.Start
			}
			res := ws.cfg.Defaults.Resolution
			if resolution != "" {
				if res, err = domain.ParseResolution(resolution); err != nil {
					return err
				}
			}

			uc := usecase.NewCheckCompletion(l3aoutput.NewInspector())
			report, err := uc.Execute(cmd.Context(), domain.Tile(tile), outputDir, start, res)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				if err := printJSON(out, report); err != nil {
					return err
				}
			} else {
				printReport(out, report)
			}

			if !report.Complete() {
				return fmt.Errorf("%s did not complete processing", report.Tile.Filter())
			}
			return nil
		},
	}

	c.Flags().StringVarP(&tile, "tile", "t", "", "Sentinel-2 tile, e.g. 36KWA (required)")
	c.Flags().StringVarP(&outputDir, "output_dir", "o", "", "Directory holding the L3A product (default working directory)")
	c.Flags().StringVarP(&start, "start", "s", "", "Start date YYYYMMDD the product was built from")
	c.Flags().StringVarP(&resolution, "resolution", "r", "", "Resolution to check: 10, 20, 60 or all")
	c.Flags().StringVar(&format, "format", formatPretty, "Output format: pretty|json")
	_ = c.MarkFlagRequired("tile")
	return c
}
