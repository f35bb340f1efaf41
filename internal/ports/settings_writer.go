package ports

import "github.com/aalvaropc/s2composite/internal/domain"

// SettingsWriter writes the sen2three GIPP file and returns the path it wrote.
type SettingsWriter interface {
	WriteSettings(s domain.GIPPSettings) (string, error)
}
