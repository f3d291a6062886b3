package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/zklogin/internal/client/models"
	"github.com/dmitrijs2005/zklogin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/zklogin/internal/logging"
)

// MemoryStore is a Store over an in-memory repository. It serializes the same
// way SQLiteStore does, so it also exercises the decoding paths in tests.
type MemoryStore struct {
	mu   sync.Mutex
	repo *metadata.MemoryRepository
	log  logging.Logger
}

func NewMemoryStore(log logging.Logger) *MemoryStore {
	return &MemoryStore{repo: metadata.NewMemoryRepository(), log: log}
}

// Raw exposes the backing repository, e.g. to plant corrupt data.
func (s *MemoryStore) Raw() metadata.Repository {
	return s.repo
}

func (s *MemoryStore) SaveSetup(ctx context.Context, rec models.SetupRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveSetup(ctx, s.repo, rec)
}

func (s *MemoryStore) LoadSetup(ctx context.Context) (*models.SetupRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadSetup(ctx, s.repo, s.log)
}

func (s *MemoryStore) ClearSetup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Delete(ctx, SetupKey)
}

func (s *MemoryStore) SaveAccount(ctx context.Context, rec models.AccountRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveAccount(ctx, s.repo, rec, s.log)
}

func (s *MemoryStore) LoadAccounts(ctx context.Context) ([]models.AccountRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return loadAccounts(ctx, s.repo, s.log)
}

func (s *MemoryStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Clear(ctx)
}
