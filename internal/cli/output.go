package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/s2composite/internal/domain"
)

const (
	formatPretty = "pretty"
	formatJSON   = "json"

	// maxMissingShown caps the per-band lines of a pretty report.
	maxMissingShown = 8
)

type styles struct {
	ok    lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	faint lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		ok:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		warn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		fail:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		faint: lipgloss.NewStyle().Faint(true),
	}
}

func checkFormat(format string) error {
	switch format {
	case formatPretty, formatJSON, "":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printProcessResult(w io.Writer, tile domain.Tile, res processResult, runErr error) {
	st := defaultStyles()

	if res.ok() {
		fmt.Fprintln(w, st.ok.Render("Processing completed successfully on "+tile.Filter()))
	} else {
		fmt.Fprintln(w, st.warn.Render("WARNING: "+tile.Filter()+" did not complete processing."))
	}

	fmt.Fprintf(w, "  %s %s\n", st.faint.Render("input: "), res.InputDir)
	if runErr != nil {
		fmt.Fprintf(w, "  %s %s\n", st.faint.Render("error: "), userMessage(runErr))
		fmt.Fprintf(w, "  %s %v\n", st.faint.Render("detail:"), runErr)
	}

	if a := res.Artifact; a != nil {
		if a.Error != nil && a.Error.ExitCode > 0 {
			fmt.Fprintf(w, "  %s %d\n", st.faint.Render("exit:  "), a.Error.ExitCode)
		}
		if len(a.RemovedFiles) > 0 {
			fmt.Fprintf(w, "  %s removed %d intermediate database(s)\n", st.faint.Render("clean: "), len(a.RemovedFiles))
		}
		if a.Completion != nil && !a.Completion.Complete() {
			printMissing(w, st, *a.Completion)
		}
		if a.ID != "" {
			fmt.Fprintf(w, "  %s %s\n", st.faint.Render("run:   "), a.ID)
		}
		if !a.Succeeded() && len(a.Output.Stderr) > 0 {
			fmt.Fprintf(w, "  %s\n", st.faint.Render("stderr (tail):"))
			for _, line := range a.Output.Tail(5).Stderr {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}
	fmt.Fprintln(w)
}

func printReport(w io.Writer, r domain.CompletionReport) {
	st := defaultStyles()

	if r.Complete() {
		fmt.Fprintln(w, st.ok.Render("Complete: "+r.Tile.Filter()))
		fmt.Fprintf(w, "  %s %s\n", st.faint.Render("product:"), r.ProductPath)
		return
	}

	fmt.Fprintln(w, st.warn.Render("WARNING: "+r.Tile.Filter()+" did not complete processing."))
	printMissing(w, st, r)
}

func printMissing(w io.Writer, st styles, r domain.CompletionReport) {
	if !r.Found {
		fmt.Fprintf(w, "  %s no product matches %s\n", st.faint.Render("missing:"), r.Product)
	}
	for i, m := range r.Missing {
		if i == maxMissingShown {
			fmt.Fprintf(w, "  %s ... %d more\n", st.faint.Render("missing:"), len(r.Missing)-i)
			break
		}
		what := "not found"
		if m.Matches > 1 {
			what = fmt.Sprintf("%d matches", m.Matches)
		}
		fmt.Fprintf(w, "  %s %s at %s (%s)\n", st.faint.Render("missing:"), m.Band, m.Resolution, what)
	}
}

func absOrSelf(p string) string {
	if strings.TrimSpace(p) == "" {
		p = "."
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
