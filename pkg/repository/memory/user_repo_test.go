package memory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/WalkerBel92/evaluation/pkg/repository/memory"
	"github.com/WalkerBel92/evaluation/pkg/user"
)

func TestSaveOverwritesByID(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	u := user.User{ID: uuid.New(), Name: "Ana", Email: "ana@x.com"}
	_, err := repo.Save(ctx, u)
	require.NoError(t, err)

	u.Name = "Ana María"
	_, err = repo.Save(ctx, u)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana María", got.Name)

	users, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestSaveRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	_, err := repo.Save(ctx, user.User{ID: uuid.New(), Email: "ana@x.com"})
	require.NoError(t, err)

	_, err = repo.Save(ctx, user.User{ID: uuid.New(), Email: "ana@x.com"})
	require.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestDeleteAbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	require.NoError(t, repo.DeleteByID(ctx, uuid.New()))
}

func TestListAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := repo.Save(ctx, user.User{ID: uuid.New(), Email: email})
		require.NoError(t, err)
	}

	users, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, "a@x.com", users[0].Email)
	require.Equal(t, "c@x.com", users[2].Email)
}

func TestStoredPhonesAreDetached(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	id := uuid.New()
	phones := []user.Phone{{ID: uuid.New(), Number: "1234567"}}
	_, err := repo.Save(ctx, user.User{ID: id, Email: "ana@x.com", Phones: phones})
	require.NoError(t, err)

	phones[0].Number = "changed"
	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "1234567", got.Phones[0].Number)
}
