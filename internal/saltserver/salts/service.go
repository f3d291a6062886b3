// Package salts issues user salts for zkLogin identities.
//
// This is a development stub: every caller receives the same configured salt
// regardless of the token it presents. A production salt service would verify
// the token against the provider's keys and derive a per-user value.
package salts

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/dmitrijs2005/zklogin/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSalt is returned by NewService when the configured salt is not a
// decimal integer below 2^128.
var ErrInvalidSalt = errors.New("salt must be a decimal integer below 2^128")

type Service struct {
	salt   string
	logger logging.Logger
}

func NewService(salt string, l logging.Logger) (*Service, error) {
	v, ok := new(big.Int).SetString(salt, 10)
	if !ok || v.Sign() < 0 || v.BitLen() > 128 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSalt, salt)
	}
	return &Service{salt: v.String(), logger: l.With("module", "salts")}, nil
}

// Salt returns the salt for the holder of token. The token is decoded
// without verification and only to label the log line; a missing or
// undecodable token still gets the salt.
func (s *Service) Salt(ctx context.Context, token string) string {
	s.logger.Info(ctx, "salt issued", "sub", subject(token))
	return s.salt
}

func subject(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, _ := claims.GetSubject()
	return sub
}
