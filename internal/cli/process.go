package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s2composite/internal/ctxlog"
	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/infra/l3aoutput"
	"github.com/aalvaropc/s2composite/internal/infra/safescan"
	"github.com/aalvaropc/s2composite/internal/infra/sen2three"
	"github.com/aalvaropc/s2composite/internal/usecase"
)

// processResult is one input directory's outcome, as printed by --format json.
type processResult struct {
	InputDir string              `json:"input_dir"`
	RunID    string              `json:"run_id,omitempty"`
	Artifact *domain.RunArtifact `json:"artifact,omitempty"`
	Error    string              `json:"error,omitempty"`
}

func (r processResult) ok() bool {
	return r.Error == "" && r.Artifact != nil && r.Artifact.Succeeded()
}

func processCmd(root *rootOptions) *cobra.Command {
	var flags jobFlags
	var noSave bool
	var format string

	c := &cobra.Command{
		Use:   "process [PATH...]",
		Short: "Composite level 2A inputs into a level 3A product with sen2three",
		Long: "Process each input directory (wildcards allowed) in series: validate the\n" +
			"level 2A granules, write the sen2three GIPP file, run L3_Process, remove\n" +
			"intermediate databases and check the output for completeness.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspace(root.workspace)
			if err != nil {
				return err
			}
			inputs, err := expandInputs(args)
			if err != nil {
				return err
			}
			settings, err := ws.settingsWriter()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			runner := sen2three.New(
				sen2three.WithExecutable(ws.cfg.Sen2Three.Executable),
				sen2three.WithOutput(out),
			)
			opts := []usecase.ProcessOption{usecase.WithCommandEcho(out)}
			if !noSave {
				opts = append(opts, usecase.WithStore(ws.store))
			}
			uc := usecase.NewProcessL3A(safescan.NewScanner(), settings, runner, l3aoutput.NewInspector(), opts...)

			log := ctxlog.FromContext(cmd.Context())
			log.Info("process.batch", "inputs", len(inputs), "workspace", ws.root, "gipp_target", settings.Target())

			results := make([]processResult, 0, len(inputs))
			interrupted := false
			for _, dir := range inputs {
				job, err := flags.job(ws.cfg, dir, time.Now())
				if err != nil {
					return err
				}

				art, runErr := uc.Execute(cmd.Context(), job)
				res := processResult{InputDir: dir, RunID: art.ID}
				if !art.StartedAt.IsZero() {
					res.Artifact = &art
				}
				if runErr != nil {
					res.Error = runErr.Error()
					log.Error("process.failed", "input_dir", dir, "error", runErr)
				}
				results = append(results, res)

				if format != formatJSON {
					printProcessResult(out, job.Tile, res, runErr)
				}
				if errors.Is(runErr, domain.ErrInterrupted) || cmd.Context().Err() != nil {
					interrupted = true
					log.Warn("process.interrupted", "input_dir", dir, "remaining", len(inputs)-len(results))
					break
				}
			}

			if format == formatJSON {
				if err := printJSON(out, results); err != nil {
					return err
				}
			}

			if interrupted {
				return fmt.Errorf("processing stopped after %d of %d input director(ies): %w",
					len(results), len(inputs), domain.ErrInterrupted)
			}

			failed := 0
			for _, r := range results {
				if !r.ok() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d input director(ies) did not complete processing", failed, len(inputs))
			}
			return nil
		},
	}

	flags.register(c, true)
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save run artifact under runs/")
	c.Flags().StringVar(&format, "format", formatPretty, "Output format: pretty|json")
	return c
}
