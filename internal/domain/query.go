package domain

// QueryResult is the outcome of one JSONPath expression evaluated against a run artifact.
type QueryResult struct {
	Expr    string `json:"expr"`
	Value   string `json:"value,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
