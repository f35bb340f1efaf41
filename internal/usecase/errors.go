package usecase

import (
	"fmt"

	"github.com/aalvaropc/s2composite/internal/domain"
)

func opErr(op string, kind domain.ErrorKind, sentinel error, format string, args ...any) error {
	return &domain.OpError{
		Op:   op,
		Kind: kind,
		Err:  fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel),
	}
}
