package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s2composite/internal/infra/safescan"
	"github.com/aalvaropc/s2composite/internal/usecase"
)

func validateCmd(root *rootOptions) *cobra.Command {
	var flags jobFlags

	c := &cobra.Command{
		Use:   "validate [PATH...]",
		Short: "Check level 2A inputs without running sen2three",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(root.workspace)
			if err != nil {
				return err
			}
			inputs, err := expandInputs(args)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateInput(safescan.NewScanner())
			out := cmd.OutOrStdout()
			st := defaultStyles()

			failed := 0
			for _, dir := range inputs {
				job, err := flags.job(ws.cfg, dir, time.Now())
				if err != nil {
					return err
				}
				granules, err := uc.Execute(cmd.Context(), job)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s %s: %s\n", st.fail.Render("FAIL"), dir, userMessage(err))
					fmt.Fprintf(out, "  %v\n", err)
					continue
				}
				fmt.Fprintf(out, "%s %s: %d granule(s) of %s between %s and %s\n",
					st.ok.Render("OK"), dir, len(granules), job.Tile.Filter(),
					job.Dates.StartString(), job.Dates.EndString())
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d input director(ies) failed validation", failed, len(inputs))
			}
			return nil
		},
	}

	flags.register(c, false)
	return c
}
