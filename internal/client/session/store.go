// Package session persists the zkLogin session across the provider redirect:
// one in-flight SetupRecord and the ordered list of completed accounts.
//
// Both live as JSON under two keys of a metadata repository. Data that no
// longer decodes is treated as absent, so a corrupt store degrades to "no
// session" instead of failing every call.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/zklogin/internal/common"
	"github.com/dmitrijs2005/zklogin/internal/logging"
)

const (
	Namespace   = "zklogin."
	SetupKey    = "setup"
	AccountsKey = "accounts"
)

// Store is the session persistence contract.
type Store interface {
	// SaveSetup replaces any existing setup record.
	SaveSetup(ctx context.Context, rec models.SetupRecord) error
	// LoadSetup returns nil, nil when there is no (readable) setup record.
	LoadSetup(ctx context.Context) (*models.SetupRecord, error)
	ClearSetup(ctx context.Context) error

	// SaveAccount prepends rec. It returns common.ErrDuplicateAccount and
	// stores nothing when an account with the same UserAddr exists.
	SaveAccount(ctx context.Context, rec models.AccountRecord) error
	// LoadAccounts returns accounts most-recent-first, never nil.
	LoadAccounts(ctx context.Context) ([]models.AccountRecord, error)

	ClearAll(ctx context.Context) error
}

func loadSetup(ctx context.Context, repo metadata.Repository, log logging.Logger) (*models.SetupRecord, error) {
	raw, err := repo.Get(ctx, SetupKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var rec models.SetupRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.Warn(ctx, "discarding unreadable setup record", "error", err)
		return nil, nil
	}
	return &rec, nil
}

func saveSetup(ctx context.Context, repo metadata.Repository, rec models.SetupRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode setup: %w", err)
	}
	return repo.Set(ctx, SetupKey, raw)
}

func loadAccounts(ctx context.Context, repo metadata.Repository, log logging.Logger) ([]models.AccountRecord, error) {
	raw, err := repo.Get(ctx, AccountsKey)
	if err != nil {
		return nil, err
	}

	accounts := []models.AccountRecord{}
	if raw == nil {
		return accounts, nil
	}
	if err := json.Unmarshal(raw, &accounts); err != nil {
		log.Warn(ctx, "discarding unreadable account list", "error", err)
		return []models.AccountRecord{}, nil
	}
	if accounts == nil {
		accounts = []models.AccountRecord{}
	}
	return accounts, nil
}

func saveAccount(ctx context.Context, repo metadata.Repository, rec models.AccountRecord, log logging.Logger) error {
	accounts, err := loadAccounts(ctx, repo, log)
	if err != nil {
		return err
	}
	for _, a := range accounts {
		if a.UserAddr == rec.UserAddr {
			return fmt.Errorf("%w: %s", common.ErrDuplicateAccount, rec.UserAddr)
		}
	}

	accounts = append([]models.AccountRecord{rec}, accounts...)
	raw, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	return repo.Set(ctx, AccountsKey, raw)
}
