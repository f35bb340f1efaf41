// Package query evaluates JSONPath expressions against saved run artifacts.
package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/s2composite/internal/domain"
)

// Apply evaluates every expression against a JSON document, in order.
//
// If body is not JSON every expression fails. A failing expression is
// reported in its result; the others still run.
func Apply(body []byte, exprs []string) []domain.QueryResult {
	if len(exprs) == 0 {
		return []domain.QueryResult{}
	}

	doc, err := parseJSON(body)
	if err != nil {
		out := make([]domain.QueryResult, 0, len(exprs))
		for _, e := range exprs {
			out = append(out, domain.QueryResult{
				Expr:    strings.TrimSpace(e),
				Message: "artifact is not valid JSON",
			})
		}
		return out
	}

	results := make([]domain.QueryResult, 0, len(exprs))
	for _, raw := range exprs {
		expr := strings.TrimSpace(raw)
		res := domain.QueryResult{Expr: expr}

		if expr == "" {
			res.Message = "empty jsonpath expression"
			results = append(results, res)
			continue
		}

		val, getErr := jsonpath.Get(expr, doc)
		if getErr != nil {
			res.Message = fmt.Sprintf("jsonpath error: %v", getErr)
			results = append(results, res)
			continue
		}

		if val == nil {
			res.Message = "no value found"
			results = append(results, res)
			continue
		}

		s, convErr := toString(val)
		if convErr != nil {
			res.Message = fmt.Sprintf("cannot convert value to string: %v", convErr)
			results = append(results, res)
			continue
		}

		res.Value = s
		res.Success = true
		results = append(results, res)
	}

	return results
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func toString(v any) (string, error) {
	// jsonpath wildcards return a slice; a single match is unwrapped.
	if arr, ok := v.([]any); ok {
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool, int, int64, uint64:
		return fmt.Sprint(t), nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(t), nil
	}
}
