package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/zklogin/internal/common"
)

var (
	ErrEmptySalt       = errors.New("salt service returned no salt")
	ErrEmptyProof      = errors.New("prover returned an empty body")
	ErrUnavailable     = errors.New("service unavailable")
	ErrInsufficientGas = errors.New("not enough coins to cover amount and gas budget")
)

// serviceError tags err as an external service failure while keeping the
// original cause matchable.
func serviceError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(common.ErrServiceFailure, err))
}
