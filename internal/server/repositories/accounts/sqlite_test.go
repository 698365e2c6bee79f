package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/dbx"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
	"github.com/dmitrijs2005/selleradmin/internal/server/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_AccountLifecycle(t *testing.T) {
	db := repotest.NewSQLite(t)
	repo := NewSQLRepository(db, dbx.SQLite)
	ctx := context.Background()

	a, err := repo.Create(ctx, &models.Account{
		LoginID: "shop1", PasswordHash: "h1", Role: models.RoleSeller, Status: models.StatusPending,
	})
	require.NoError(t, err)
	require.Positive(t, a.AccountNo)

	_, err = repo.Create(ctx, &models.Account{LoginID: "shop1", PasswordHash: "x", Role: models.RoleSeller, Status: models.StatusPending})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)

	got, err := repo.GetByLoginID(ctx, "shop1")
	require.NoError(t, err)
	assert.Equal(t, a.AccountNo, got.AccountNo)
	assert.Equal(t, models.RoleSeller, got.Role)
	assert.Equal(t, "h1", got.PasswordHash)

	_, err = repo.GetByLoginID(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, repo.CompareAndSetCredentialHash(ctx, a.AccountNo, "h1", "h2"))
	err = repo.CompareAndSetCredentialHash(ctx, a.AccountNo, "h1", "h3")
	assert.True(t, errors.Is(err, common.ErrVersionConflict))

	h, err := repo.GetCredentialHash(ctx, a.AccountNo)
	require.NoError(t, err)
	assert.Equal(t, "h2", h)

	require.NoError(t, repo.SetCredentialHash(ctx, a.AccountNo, "h4"))
	h, err = repo.GetCredentialHash(ctx, a.AccountNo)
	require.NoError(t, err)
	assert.Equal(t, "h4", h)

	require.NoError(t, repo.SetStatus(ctx, a.AccountNo, models.StatusSuspended))
	st, err := repo.GetStatus(ctx, a.AccountNo)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuspended, st)
}

func TestSQLite_StatusIgnoresMasters(t *testing.T) {
	db := repotest.NewSQLite(t)
	repo := NewSQLRepository(db, dbx.SQLite)
	ctx := context.Background()

	master := repotest.InsertAccount(t, db, "root", "h", "master", "active")

	assert.ErrorIs(t, repo.SetStatus(ctx, master, models.StatusSuspended), common.ErrorNotFound)
	_, err := repo.GetStatus(ctx, master)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, repo.SetCredentialHash(ctx, 4242, "h"), common.ErrorNotFound)
}
