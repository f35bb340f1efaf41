package domain

import "strings"

// Algorithm is a sen2three compositing strategy.
type Algorithm string

const (
	AlgorithmMostRecent         Algorithm = "MOST_RECENT"
	AlgorithmTempHomogeneity    Algorithm = "TEMP_HOMOGENEITY"
	AlgorithmRadiometricQuality Algorithm = "RADIOMETRIC_QUALITY"
	AlgorithmAverage            Algorithm = "AVERAGE"

	DefaultAlgorithm = AlgorithmTempHomogeneity
)

// Algorithms lists every accepted algorithm in documentation order.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmMostRecent,
		AlgorithmTempHomogeneity,
		AlgorithmRadiometricQuality,
		AlgorithmAverage,
	}
}

// ParseAlgorithm is case-insensitive; the empty string yields DefaultAlgorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	in := strings.ToUpper(strings.TrimSpace(s))
	if in == "" {
		return DefaultAlgorithm, nil
	}
	for _, a := range Algorithms() {
		if Algorithm(in) == a {
			return a, nil
		}
	}
	return "", invalidInput("domain.parse_algorithm",
		"sen2three algorithm must be one of 'MOST_RECENT', 'TEMP_HOMOGENEITY', 'RADIOMETRIC_QUALITY', or 'AVERAGE', got %q", s)
}

func (a Algorithm) Valid() bool {
	for _, v := range Algorithms() {
		if a == v {
			return true
		}
	}
	return false
}
