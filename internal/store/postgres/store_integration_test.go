package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/earl-cod3/purity-ui-rbac/internal/models"
	"github.com/earl-cod3/purity-ui-rbac/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS tenants (
	tenant_id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL REFERENCES tenants(tenant_id),
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	role TEXT NOT NULL,
	features TEXT[] NOT NULL DEFAULT '{}',
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS invites (
	token TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL REFERENCES tenants(tenant_id),
	role TEXT NOT NULL
);
`

func setupTestStore(t *testing.T, ctx context.Context) (*Store, *pgxpool.Pool) {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = os.Getenv("DB_DSN")
	}
	if dsn == "" {
		t.Skip("TEST_DB_DSN or DB_DSN is required for integration tests")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, testSchema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return NewStore(pool), pool
}

func testCredential(email string) store.Credential {
	return store.Credential{
		User: models.User{
			UserID:   uuid.NewString(),
			Name:     "Integration User",
			Email:    email,
			RoleName: models.RoleOwner,
			Tenant:   models.Tenant{TenantID: uuid.NewString(), Name: "Integration Co"},
			Features: models.NewFeatureSet("billing"),
			Created:  time.Now().UTC(),
		},
		PasswordHash: "not-a-real-hash",
	}
}

func TestCreateAndFetchIdentity(t *testing.T) {
	ctx := context.Background()
	st, _ := setupTestStore(t, ctx)

	email := uuid.NewString() + "@integration.test"
	cred := testCredential(email)
	if err := st.CreateIdentity(ctx, cred); err != nil {
		t.Fatalf("create identity: %v", err)
	}

	fetched, err := st.GetByEmail(ctx, email)
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if fetched.User.UserID != cred.User.UserID {
		t.Fatalf("expected %s, got %s", cred.User.UserID, fetched.User.UserID)
	}
	if !fetched.User.Features.Has("billing") {
		t.Fatal("feature set lost in the database roundtrip")
	}
	if fetched.PasswordHash != cred.PasswordHash {
		t.Fatal("password hash mismatch")
	}

	user, err := st.GetUser(ctx, cred.User.UserID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Tenant.Name != "Integration Co" {
		t.Fatalf("unexpected tenant %+v", user.Tenant)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	ctx := context.Background()
	st, _ := setupTestStore(t, ctx)

	email := uuid.NewString() + "@integration.test"
	if err := st.CreateIdentity(ctx, testCredential(email)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := st.CreateIdentity(ctx, testCredential(email)); !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestResolveInviteAndTenant(t *testing.T) {
	ctx := context.Background()
	st, pool := setupTestStore(t, ctx)

	tenantID := uuid.NewString()
	token := uuid.NewString()
	if _, err := pool.Exec(ctx, `INSERT INTO tenants (tenant_id, name) VALUES ($1, $2)`, tenantID, "Invite Co"); err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	if _, err := pool.Exec(ctx, `INSERT INTO invites (token, tenant_id, role) VALUES ($1, $2, $3)`, token, tenantID, models.RoleStaff); err != nil {
		t.Fatalf("seed invite: %v", err)
	}

	invite, err := st.ResolveInvite(ctx, token)
	if err != nil {
		t.Fatalf("resolve invite: %v", err)
	}
	if invite.TenantID != tenantID || invite.Role != models.RoleStaff {
		t.Fatalf("unexpected invite %+v", invite)
	}

	tenant, err := st.GetTenant(ctx, tenantID)
	if err != nil {
		t.Fatalf("get tenant: %v", err)
	}
	if tenant.Name != "Invite Co" {
		t.Fatalf("unexpected tenant %+v", tenant)
	}

	if _, err := st.ResolveInvite(ctx, "bogus"); !errors.Is(err, store.ErrInviteNotFound) {
		t.Fatalf("expected ErrInviteNotFound, got %v", err)
	}
}
