package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/zklogin/internal/client/client"
	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/common"
	"github.com/dmitrijs2005/zklogin/internal/logging"
	"github.com/dmitrijs2005/zklogin/internal/zkcrypto"
)

// Submitter signs transactions for a stored account and sends them.
type Submitter interface {
	Submit(ctx context.Context, acct models.AccountRecord, intent models.TxIntent) (*models.Receipt, error)
}

// BalanceRefresher reloads one account's balance.
type BalanceRefresher interface {
	RefreshOne(ctx context.Context, addr string) error
}

type submitter struct {
	ledger   client.Ledger
	balances BalanceRefresher
	log      logging.Logger
}

// NewSubmitter returns a Submitter. balances may be nil.
func NewSubmitter(ledger client.Ledger, balances BalanceRefresher, log logging.Logger) Submitter {
	return &submitter{ledger: ledger, balances: balances, log: log.With("module", "submit")}
}

func submissionError(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrSubmissionFailure, step, err)
}

// Submit never touches the store: a failed attempt can simply be repeated.
func (s *submitter) Submit(ctx context.Context, acct models.AccountRecord, intent models.TxIntent) (*models.Receipt, error) {
	kp, err := zkcrypto.ParseKeypair(acct.EphemeralPrivateKey)
	if err != nil {
		return nil, submissionError("restore key", err)
	}

	txBytes, err := s.ledger.BuildTransfer(ctx, acct.UserAddr, intent)
	if err != nil {
		return nil, submissionError("build transaction", err)
	}
	userSig := zkcrypto.SignTransaction(kp, txBytes)

	seed, err := zkcrypto.AddressSeed(acct.UserSalt, zkcrypto.KeyClaimName, acct.Sub, acct.Aud)
	if err != nil {
		return nil, submissionError("address seed", err)
	}

	sig, err := zkcrypto.ZkLoginSignature(acct.ZkProofs, seed, acct.MaxEpoch, userSig)
	if err != nil {
		return nil, submissionError("compose signature", err)
	}

	receipt, err := s.ledger.Execute(ctx, txBytes, sig)
	if err != nil {
		return nil, submissionError("execute", err)
	}
	s.log.Info(ctx, "transaction executed", "addr", acct.UserAddr, "digest", receipt.Digest)

	if s.balances != nil {
		if err := s.balances.RefreshOne(ctx, acct.UserAddr); err != nil {
			s.log.Warn(ctx, "balance refresh failed", "addr", acct.UserAddr, "error", err)
		}
	}
	return receipt, nil
}
