package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/s2composite/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// userMessage maps an error to a short headline; the full error is printed below it.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrInterrupted) {
		return "Interrupted"
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			switch {
			case strings.HasPrefix(oe.Op, "gipp"):
				return "GIPP template not found"
			case strings.HasPrefix(oe.Op, "workspacefinder"), strings.HasPrefix(oe.Op, "config"):
				return "Workspace config not found"
			case strings.HasPrefix(oe.Op, "cli.inputs"):
				return "No input directories"
			case strings.HasPrefix(oe.Op, "usecase.validate_input"):
				return "No matching level 2A input"
			}
			return "Not found"

		case domain.KindInvalidInput:
			return "Invalid input"

		case domain.KindOutputExists:
			return "Output already exists"

		case domain.KindExecution:
			if strings.HasPrefix(oe.Op, "sen2three") {
				switch domain.ClassifyRunError(err) {
				case domain.RunErrorNotFound:
					return "sen2three executable not found"
				case domain.RunErrorInterrupted, domain.RunErrorCanceled:
					return "sen2three interrupted"
				}
				return "sen2three failed"
			}
			return "Unexpected error (see logs)"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Error"
}

func printError(w io.Writer, err error) {
	st := defaultStyles()
	fmt.Fprintf(w, "%s %v\n", st.fail.Render(userMessage(err)+":"), err)
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
