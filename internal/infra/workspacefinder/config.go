package workspacefinder

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/infra/config"
)

// EnvFile is loaded from the workspace root before the config is parsed.
const EnvFile = ".env"

// LoadConfig loads s2composite.yaml from the workspace root and applies defaults.
// Variables from <root>/.env are exported first without overriding the
// process environment, so the config may reference them.
func LoadConfig(root string) (domain.Config, error) {
	if err := LoadEnv(root); err != nil {
		return domain.DefaultConfig(), err
	}
	return config.Load(filepath.Join(root, domain.ConfigFileName))
}

// LoadEnv exports <root>/.env when present.
func LoadEnv(root string) error {
	path := filepath.Join(root, EnvFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return &domain.OpError{
			Op:   "workspacefinder.loadenv",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return nil
}
