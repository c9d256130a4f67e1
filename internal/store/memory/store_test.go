package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/earl-cod3/purity-ui-rbac/internal/models"
	"github.com/earl-cod3/purity-ui-rbac/internal/store"
)

func TestGetByEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	st, err := NewSeededStore()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	cred, err := st.GetByEmail(ctx, "  OWNER@Demo.Test ")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if cred.User.UserID != "u1" {
		t.Fatalf("expected u1, got %s", cred.User.UserID)
	}

	if _, err := st.GetByEmail(ctx, "missing@demo.test"); !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateIdentityRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	cred := store.Credential{
		User: models.User{
			UserID:   "u-new",
			Name:     "New User",
			Email:    "new@demo.test",
			RoleName: models.RoleOwner,
			Tenant:   models.Tenant{TenantID: "t-new", Name: "New Tenant"},
			Features: models.NewFeatureSet(),
		},
		PasswordHash: "hash",
	}
	if err := st.CreateIdentity(ctx, cred); err != nil {
		t.Fatalf("first create: %v", err)
	}

	cred.User.UserID = "u-other"
	if err := st.CreateIdentity(ctx, cred); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestConcurrentSignupsSameEmailAdmitExactlyOne(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results <- st.CreateIdentity(ctx, store.Credential{
				User: models.User{
					UserID:   "u-" + string(rune('a'+n)),
					Email:    "race@demo.test",
					RoleName: models.RoleOwner,
					Tenant:   models.Tenant{TenantID: "t-race", Name: "Race Co"},
					Features: models.NewFeatureSet(),
				},
				PasswordHash: "hash",
			})
		}(i)
	}
	wg.Wait()
	close(results)

	var created, conflicts int
	for err := range results {
		switch {
		case err == nil:
			created++
		case errors.Is(err, store.ErrAlreadyExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if created != 1 || conflicts != workers-1 {
		t.Fatalf("expected 1 create and %d conflicts, got %d and %d", workers-1, created, conflicts)
	}
}

func TestResolveInvite(t *testing.T) {
	ctx := context.Background()
	st, err := NewSeededStore()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	invite, err := st.ResolveInvite(ctx, "join-alpha")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if invite.TenantID != "t1" || invite.Role != models.RoleStaff {
		t.Fatalf("unexpected invite %+v", invite)
	}

	if _, err := st.ResolveInvite(ctx, "bogus"); !errors.Is(err, store.ErrInviteNotFound) {
		t.Fatalf("expected ErrInviteNotFound, got %v", err)
	}
}
