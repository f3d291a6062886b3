package session

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/zklogin/internal/dbx"
	"github.com/dmitrijs2005/zklogin/internal/logging"
)

// SQLiteStore keeps the session in the metadata table of a migrated SQLite
// database.
type SQLiteStore struct {
	db  *sql.DB
	log logging.Logger
}

func NewSQLiteStore(db *sql.DB, log logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, log: log.With("module", "session")}
}

func (s *SQLiteStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db, Namespace)
}

func (s *SQLiteStore) SaveSetup(ctx context.Context, rec models.SetupRecord) error {
	return saveSetup(ctx, s.repo(s.db), rec)
}

func (s *SQLiteStore) LoadSetup(ctx context.Context) (*models.SetupRecord, error) {
	return loadSetup(ctx, s.repo(s.db), s.log)
}

func (s *SQLiteStore) ClearSetup(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, SetupKey)
}

// SaveAccount reads, checks and rewrites the list in one transaction.
func (s *SQLiteStore) SaveAccount(ctx context.Context, rec models.AccountRecord) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return saveAccount(ctx, s.repo(tx), rec, s.log)
	})
}

func (s *SQLiteStore) LoadAccounts(ctx context.Context) ([]models.AccountRecord, error) {
	return loadAccounts(ctx, s.repo(s.db), s.log)
}

func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	return s.repo(s.db).Clear(ctx)
}
