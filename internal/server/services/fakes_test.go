package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/dbx"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/sellers"
)

// fakeStore is an in-memory account directory that counts every call, so
// tests can prove a request never reached the store.
type fakeStore struct {
	mu    sync.Mutex
	calls int

	hashes   map[int64]string
	statuses map[int64]models.SellerStatus
	profiles map[int64][]models.SellerProfile
	appUsers map[string]bool

	err   error // returned by every call when set
	panic bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		hashes:   map[int64]string{},
		statuses: map[int64]models.SellerStatus{},
		profiles: map[int64][]models.SellerProfile{},
		appUsers: map[string]bool{},
	}
}

func (f *fakeStore) enter() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.panic {
		panic("store exploded")
	}
	return f.err
}

func (f *fakeStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// accounts.Repository

func (f *fakeStore) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a.AccountNo = int64(len(f.hashes) + 1)
	f.hashes[a.AccountNo] = a.PasswordHash
	f.statuses[a.AccountNo] = a.Status
	return a, nil
}

func (f *fakeStore) GetByLoginID(ctx context.Context, loginID string) (*models.Account, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return nil, common.ErrorNotFound
}

func (f *fakeStore) GetCredentialHash(ctx context.Context, accountNo int64) (string, error) {
	if err := f.enter(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hashes[accountNo]
	if !ok {
		return "", common.ErrorNotFound
	}
	return h, nil
}

func (f *fakeStore) SetCredentialHash(ctx context.Context, accountNo int64, hash string) error {
	if err := f.enter(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hashes[accountNo]; !ok {
		return common.ErrorNotFound
	}
	f.hashes[accountNo] = hash
	return nil
}

func (f *fakeStore) CompareAndSetCredentialHash(ctx context.Context, accountNo int64, oldHash, newHash string) error {
	if err := f.enter(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hashes[accountNo] != oldHash {
		return common.ErrVersionConflict
	}
	f.hashes[accountNo] = newHash
	return nil
}

func (f *fakeStore) SetStatus(ctx context.Context, accountNo int64, status models.SellerStatus) error {
	if err := f.enter(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.statuses[accountNo]; !ok {
		return common.ErrorNotFound
	}
	f.statuses[accountNo] = status
	return nil
}

func (f *fakeStore) GetStatus(ctx context.Context, accountNo int64) (models.SellerStatus, error) {
	if err := f.enter(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.statuses[accountNo]
	if !ok {
		return "", common.ErrorNotFound
	}
	return st, nil
}

// profiles.Repository

func (f *fakeStore) GetCurrent(ctx context.Context, accountNo int64) (*models.SellerProfile, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	h := f.profiles[accountNo]
	if len(h) == 0 {
		return nil, common.ErrorNotFound
	}
	p := h[len(h)-1]
	return &p, nil
}

func (f *fakeStore) AppendVersion(ctx context.Context, accountNo int64, fields models.ProfileFields, editedBy int64) (int64, error) {
	if err := f.enter(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v := int64(len(f.profiles[accountNo]) + 1)
	f.profiles[accountNo] = append(f.profiles[accountNo], models.SellerProfile{
		AccountNo: accountNo, Version: v, ProfileFields: fields, EditedBy: editedBy,
	})
	return v, nil
}

func (f *fakeStore) History(ctx context.Context, accountNo int64) ([]models.SellerProfile, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SellerProfile(nil), f.profiles[accountNo]...), nil
}

func (f *fakeStore) AppUserExists(ctx context.Context, appUserID string) (bool, error) {
	if err := f.enter(); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appUsers[appUserID], nil
}

// sellers.Repository

func (f *fakeStore) List(ctx context.Context, filter models.ListFilter) (*models.SellerPage, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return &models.SellerPage{Items: []models.SellerSummary{}}, nil
}

func (f *fakeStore) SearchByName(ctx context.Context, keyword string, limit int) ([]models.SellerSummary, error) {
	if err := f.enter(); err != nil {
		return nil, err
	}
	return []models.SellerSummary{}, nil
}

type fakeRepoManager struct {
	store    *fakeStore
	accounts accounts.Repository // overrides store for Accounts when set
}

func (m *fakeRepoManager) Dialect() dbx.Dialect                         { return dbx.SQLite }
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository {
	if m.accounts != nil {
		return m.accounts
	}
	return m.store
}
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profiles.Repository { return m.store }
func (m *fakeRepoManager) Sellers(db dbx.DBTX) sellers.Repository   { return m.store }

// fakeHasher "hashes" by prefixing, which keeps tests fast and readable.
type fakeHasher struct {
	hashErr   error
	verifyErr error
}

func (h *fakeHasher) Hash(secret string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + secret, nil
}

func (h *fakeHasher) Verify(secret, hash string) (bool, error) {
	if h.verifyErr != nil {
		return false, h.verifyErr
	}
	return hash == "hashed:"+secret, nil
}

type fakeImages struct {
	keys []string
	err  error
}

func (i *fakeImages) PutURL(ctx context.Context, key string) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	i.keys = append(i.keys, key)
	return "https://put/" + key, nil
}

func (i *fakeImages) GetURL(ctx context.Context, key string) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	return "https://get/" + key, nil
}

var errDBDown = errors.New("db down")
