package domain

// Config represents the s2composite configuration loaded from s2composite.yaml.
type Config struct {
	Sen2Three Sen2ThreeConfig
	Defaults  DefaultsConfig
	Paths     PathsConfig
}

type Sen2ThreeConfig struct {
	Executable string
	// Home is the sen2three installation root. Empty means $SEN2THREE_HOME or ~/sen2three.
	Home string
	// GIPPTemplate is resolved against the workspace root when relative.
	GIPPTemplate string
	// GIPPTarget is where sen2three reads its settings. Empty means <Home>/cfg/L3_GIPP.xml.
	GIPPTarget string
}

type DefaultsConfig struct {
	Algorithm  Algorithm
	Resolution Resolution
	Start      string
}

type PathsConfig struct {
	RunsDir string
}

// DefaultConfig provides sane defaults if s2composite.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Sen2Three: Sen2ThreeConfig{
			Executable:   "L3_Process",
			GIPPTemplate: "cfg/L3_GIPP.xml",
		},
		Defaults: DefaultsConfig{
			Algorithm:  DefaultAlgorithm,
			Resolution: ResolutionAll,
			Start:      DefaultStart,
		},
		Paths: PathsConfig{
			RunsDir: "runs",
		},
	}
}
