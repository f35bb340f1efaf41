package config

type YAMLFile struct {
	S2Composite YAMLConfig `yaml:"s2composite"`
}

type YAMLConfig struct {
	Sen2Three YAMLSen2Three `yaml:"sen2three"`
	Defaults  YAMLDefaults  `yaml:"defaults"`
	Paths     YAMLPaths     `yaml:"paths"`
}

type YAMLSen2Three struct {
	Executable   string `yaml:"executable"`
	Home         string `yaml:"home"`
	GIPPTemplate string `yaml:"gipp_template"`
	GIPPTarget   string `yaml:"gipp_target"`
}

type YAMLDefaults struct {
	Algorithm string `yaml:"algorithm"`
	// Resolution accepts 10, 20, 60, "20m", "all" or 0.
	Resolution string `yaml:"resolution"`
	Start      string `yaml:"start"`
}

type YAMLPaths struct {
	RunsDir string `yaml:"runs_dir"`
}
