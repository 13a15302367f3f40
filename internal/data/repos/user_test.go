package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/gitfit/gitfit-backend/internal/data/repos/testutil"
	"github.com/gitfit/gitfit-backend/internal/types"
)

func TestUserCreateAndGet(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	log := testutil.Logger(t)

	repo := NewUserRepo(gdb, log)

	created, err := repo.Create(ctx, tx, &types.User{
		ID:        uuid.New(),
		Email:     "user-repo@test.local",
		FirstName: "Repo",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Email != "user-repo@test.local" {
		t.Fatalf("unexpected row: %+v", got)
	}

	missing, err := repo.GetByID(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown id, got %+v", missing)
	}
}
