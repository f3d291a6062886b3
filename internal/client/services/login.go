// Package services contains the application services of the zkLogin client.
// This file holds the login lifecycle: BeginLogin prepares ephemeral key
// material and sends the user to the provider, Complete picks the flow up
// again when the provider redirects back with an id_token.
//
// The two halves share no memory; everything Complete needs is read from the
// session store.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/zklogin/internal/client/client"
	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/client/oauth"
	"github.com/dmitrijs2005/zklogin/internal/client/session"
	"github.com/dmitrijs2005/zklogin/internal/common"
	"github.com/dmitrijs2005/zklogin/internal/logging"
	"github.com/dmitrijs2005/zklogin/internal/zkcrypto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Navigator sends the user agent to url, e.g. by opening a browser.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
}

// Page is the location the user agent landed on after the redirect.
type Page struct {
	Href string
	// ReplaceURL rewrites the visible address without navigating. It is
	// called with the fragment removed as soon as a token is found. May be nil.
	ReplaceURL func(clean string)
}

// LoginService defines the login operations for the CLI.
//
// Contract:
//   - BeginLogin: store a fresh setup record and navigate to the provider;
//     returns the authorization URL.
//   - Complete: turn a redirect carrying an id_token into a stored account.
//     Returns common.ErrUserAbsent when the page carries no token. Every
//     other error is one of the common sentinels and leaves no partial state.
type LoginService interface {
	BeginLogin(ctx context.Context, p models.Provider) (string, error)
	Complete(ctx context.Context, page Page) (*models.AccountRecord, error)
}

type LoginConfig struct {
	EpochWindow uint64
	RedirectURI string
	ClientIDs   oauth.ClientIDs
}

type loginService struct {
	cfg    LoginConfig
	store  session.Store
	ledger client.Ledger
	salt   client.SaltService
	prover client.Prover
	nav    Navigator
	log    logging.Logger
}

func NewLoginService(
	cfg LoginConfig,
	store session.Store,
	ledger client.Ledger,
	salt client.SaltService,
	prover client.Prover,
	nav Navigator,
	log logging.Logger,
) LoginService {
	return &loginService{
		cfg:    cfg,
		store:  store,
		ledger: ledger,
		salt:   salt,
		prover: prover,
		nav:    nav,
		log:    log.With("module", "login"),
	}
}

// BeginLogin asks the ledger for the current epoch, generates the ephemeral
// key and nonce, commits the setup record and navigates away. Nothing is
// retried; a ledger failure aborts before anything is stored.
func (s *loginService) BeginLogin(ctx context.Context, p models.Provider) (string, error) {
	epoch, err := s.ledger.CurrentEpoch(ctx)
	if err != nil {
		return "", fmt.Errorf("current epoch: %w", err)
	}
	maxEpoch := epoch + s.cfg.EpochWindow

	eph, err := zkcrypto.Generate(maxEpoch)
	if err != nil {
		return "", fmt.Errorf("ephemeral key: %w", err)
	}

	authURL, err := oauth.AuthURL(p, s.cfg.ClientIDs, s.cfg.RedirectURI, eph.Nonce)
	if err != nil {
		return "", err
	}

	rec := models.SetupRecord{
		Provider:            p,
		MaxEpoch:            maxEpoch,
		Randomness:          eph.Randomness,
		EphemeralPrivateKey: eph.Keypair.Export(),
	}
	if err := s.store.SaveSetup(ctx, rec); err != nil {
		return "", fmt.Errorf("save setup: %w", err)
	}
	s.log.Info(ctx, "login started", "provider", p, "max_epoch", maxEpoch)

	if err := s.nav.Navigate(ctx, authURL); err != nil {
		return authURL, fmt.Errorf("navigate: %w", err)
	}
	return authURL, nil
}

// tokenClaims are the identity token claims the address derivation needs.
type tokenClaims struct {
	Iss string
	Sub string
	Aud string
}

// extractToken returns the id_token carried in the URL fragment and the URL
// without its fragment.
func extractToken(href string) (token, clean string, err error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", common.ErrUserAbsent, err)
	}
	if u.Fragment == "" {
		return "", href, common.ErrUserAbsent
	}

	params, err := url.ParseQuery(u.Fragment)
	if err != nil {
		return "", href, fmt.Errorf("%w: %v", common.ErrUserAbsent, err)
	}
	token = params.Get("id_token")
	if token == "" {
		return "", href, common.ErrUserAbsent
	}

	u.Fragment = ""
	u.RawFragment = ""
	return token, u.String(), nil
}

// parseClaims decodes the token payload without checking the signature; the
// proving service and the network verify it against the provider's keys.
func parseClaims(token string) (*tokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing sub", common.ErrMalformedToken)
	}
	aud, err := claims.GetAudience()
	if err != nil || len(aud) == 0 || aud[0] == "" {
		return nil, fmt.Errorf("%w: missing aud", common.ErrMalformedToken)
	}
	if len(aud) > 1 {
		return nil, fmt.Errorf("%w: %d audiences, want one", common.ErrMalformedToken, len(aud))
	}
	iss, err := claims.GetIssuer()
	if err != nil || iss == "" {
		return nil, fmt.Errorf("%w: missing iss", common.ErrMalformedToken)
	}

	return &tokenClaims{Iss: iss, Sub: sub, Aud: aud[0]}, nil
}

// Complete runs on every page load. The setup record is consumed right after
// the claims check, so every later failure leaves the store without one.
func (s *loginService) Complete(ctx context.Context, page Page) (*models.AccountRecord, error) {
	token, clean, err := extractToken(page.Href)
	if err != nil {
		return nil, err
	}
	if page.ReplaceURL != nil {
		page.ReplaceURL(clean)
	}

	log := s.log.With("attempt_id", uuid.NewString())

	claims, err := parseClaims(token)
	if err != nil {
		log.Warn(ctx, "completion aborted", "reason", err)
		return nil, err
	}
	log = log.With("sub", claims.Sub, "aud", claims.Aud)

	setup, err := s.consumeSetup(ctx)
	if err != nil {
		if errors.Is(err, common.ErrSessionMissing) {
			log.Warn(ctx, "completion aborted", "reason", err)
		} else {
			log.Error(ctx, "completion aborted", "reason", err)
		}
		return nil, err
	}
	log = log.With("provider", setup.Provider)

	salt, err := s.salt.GetSalt(ctx, token)
	if err != nil {
		log.Error(ctx, "salt request failed", "error", err)
		return nil, err
	}

	addr, err := zkcrypto.JWTAddress(claims.Iss, claims.Aud, claims.Sub, salt)
	if err != nil {
		err = fmt.Errorf("%w: derive address: %v", common.ErrServiceFailure, err)
		log.Error(ctx, "completion aborted", "reason", err)
		return nil, err
	}

	if dup, err := s.hasAccount(ctx, addr); err != nil {
		log.Error(ctx, "completion aborted", "reason", err)
		return nil, err
	} else if dup {
		err := fmt.Errorf("%w: %s", common.ErrDuplicateAccount, addr)
		log.Warn(ctx, "completion aborted", "reason", err)
		return nil, err
	}

	kp, err := zkcrypto.ParseKeypair(setup.EphemeralPrivateKey)
	if err != nil {
		err = fmt.Errorf("%w: %v", common.ErrSessionMissing, err)
		log.Warn(ctx, "completion aborted", "reason", err)
		return nil, err
	}

	proof, err := s.prover.Prove(ctx, client.ProofRequest{
		MaxEpoch:                   setup.MaxEpoch,
		JWTRandomness:              setup.Randomness,
		ExtendedEphemeralPublicKey: kp.ExtendedPublicKey(),
		JWT:                        token,
		Salt:                       salt,
		KeyClaimName:               zkcrypto.KeyClaimName,
	})
	if err != nil {
		log.Error(ctx, "proof request failed", "error", err)
		return nil, err
	}

	acct := models.AccountRecord{
		Provider:            setup.Provider,
		UserAddr:            addr,
		ZkProofs:            proof,
		EphemeralPrivateKey: setup.EphemeralPrivateKey,
		UserSalt:            salt,
		Sub:                 claims.Sub,
		Aud:                 claims.Aud,
		MaxEpoch:            setup.MaxEpoch,
	}
	if err := s.store.SaveAccount(ctx, acct); err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			log.Warn(ctx, "completion aborted", "reason", err)
		} else {
			log.Error(ctx, "save account failed", "error", err)
		}
		return nil, err
	}

	log.Info(ctx, "account added", "addr", addr)
	return &acct, nil
}

// consumeSetup loads the setup record and deletes it. The record is
// single-use whatever happens afterwards.
func (s *loginService) consumeSetup(ctx context.Context) (*models.SetupRecord, error) {
	setup, err := s.store.LoadSetup(ctx)
	if err != nil {
		return nil, fmt.Errorf("load setup: %w", err)
	}
	if setup == nil {
		return nil, common.ErrSessionMissing
	}
	if err := s.store.ClearSetup(ctx); err != nil {
		return nil, fmt.Errorf("clear setup: %w", err)
	}
	return setup, nil
}

func (s *loginService) hasAccount(ctx context.Context, addr string) (bool, error) {
	accounts, err := s.store.LoadAccounts(ctx)
	if err != nil {
		return false, fmt.Errorf("load accounts: %w", err)
	}
	for _, a := range accounts {
		if a.UserAddr == addr {
			return true, nil
		}
	}
	return false, nil
}
