package config

import (
	"os"

	"github.com/aalvaropc/s2composite/internal/domain"
	"gopkg.in/yaml.v3"
)

// Load reads an s2composite.yaml file.
func Load(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return Parse(path, b)
}

// Parse decodes b; path is only used in errors.
func Parse(path string, b []byte) (domain.Config, error) {
	var dto YAMLFile
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return MapConfig(path, dto.S2Composite)
}
