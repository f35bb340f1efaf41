package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s2composite/internal/usecase/query"
)

func runsCmd(root *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved processing runs",
	}

	c.AddCommand(runsListCmd(root), runsShowCmd(root))
	return c
}

func runsListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(root.workspace)
			if err != nil {
				return err
			}

			refs, err := ws.store.ListRuns()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no runs found)")
				return nil
			}

			st := defaultStyles()
			fmt.Fprintf(out, "Workspace: %s\n\n", ws.root)
			for _, r := range refs {
				status := st.ok.Render("OK  ")
				if !r.Succeeded {
					status = st.fail.Render("FAIL")
				}
				fmt.Fprintf(out, "- [%s] %s  %s  %s  (%s)\n",
					status, r.StartedAt.Local().Format(time.DateTime), r.Tile.Filter(), r.InputDir, r.File)
			}
			return nil
		},
	}
}

func runsShowCmd(root *rootOptions) *cobra.Command {
	var queries []string

	c := &cobra.Command{
		Use:   "show RUN",
		Short: "Print a saved run (by id, id prefix or file name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(root.workspace)
			if err != nil {
				return err
			}

			_, b, err := ws.store.ReadRun(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(queries) == 0 {
				var buf bytes.Buffer
				if err := json.Indent(&buf, b, "", "  "); err != nil {
					_, err = out.Write(b)
					return err
				}
				buf.WriteByte('\n')
				_, err = buf.WriteTo(out)
				return err
			}

			failed := 0
			for _, r := range query.Apply(b, queries) {
				if !r.Success {
					failed++
					fmt.Fprintf(out, "%s: %s\n", r.Expr, r.Message)
					continue
				}
				if len(queries) == 1 {
					fmt.Fprintln(out, r.Value)
				} else {
					fmt.Fprintf(out, "%s = %s\n", r.Expr, r.Value)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d quer(ies) failed", failed, len(queries))
			}
			return nil
		},
	}

	c.Flags().StringArrayVarP(&queries, "query", "q", nil, "JSONPath expression to print, e.g. $.completion.missing[*].band (repeatable)")
	return c
}
