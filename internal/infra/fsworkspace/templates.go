package fsworkspace

import "embed"

//go:embed templates/s2composite.yaml templates/.env.example
var templatesFS embed.FS
