package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/aalvaropc/s2composite/internal/domain"
)

// MapConfig applies the parsed file on top of domain.DefaultConfig.
// String values may reference environment variables as $VAR or ${VAR}.
func MapConfig(path string, yc YAMLConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if v := expand(yc.Sen2Three.Executable); v != "" {
		cfg.Sen2Three.Executable = v
	}
	if v := expand(yc.Sen2Three.Home); v != "" {
		cfg.Sen2Three.Home = v
	}
	if v := expand(yc.Sen2Three.GIPPTemplate); v != "" {
		cfg.Sen2Three.GIPPTemplate = v
	}
	if v := expand(yc.Sen2Three.GIPPTarget); v != "" {
		cfg.Sen2Three.GIPPTarget = v
	}

	if v := strings.TrimSpace(yc.Defaults.Algorithm); v != "" {
		alg, err := domain.ParseAlgorithm(v)
		if err != nil {
			return domain.Config{}, invalidField(path, "defaults.algorithm", fmt.Sprintf("unsupported algorithm %q", v))
		}
		cfg.Defaults.Algorithm = alg
	}
	if v := strings.TrimSpace(yc.Defaults.Resolution); v != "" {
		res, err := domain.ParseResolution(v)
		if err != nil {
			return domain.Config{}, invalidField(path, "defaults.resolution", fmt.Sprintf("unsupported resolution %q", v))
		}
		cfg.Defaults.Resolution = res
	}
	if v := strings.TrimSpace(yc.Defaults.Start); v != "" {
		if _, err := domain.ParseDate(v); err != nil {
			return domain.Config{}, invalidField(path, "defaults.start", fmt.Sprintf("date %q must be formatted as YYYYMMDD", v))
		}
		cfg.Defaults.Start = v
	}

	if v := expand(yc.Paths.RunsDir); v != "" {
		cfg.Paths.RunsDir = v
	}

	return cfg, nil
}

func expand(s string) string {
	return strings.TrimSpace(os.ExpandEnv(s))
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
