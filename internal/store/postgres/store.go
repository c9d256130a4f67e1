package postgres

import (
	"context"
	"errors"

	"github.com/earl-cod3/purity-ui-rbac/internal/models"
	"github.com/earl-cod3/purity-ui-rbac/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the pgx-backed identity store. Schema:
//
//	tenants(tenant_id, name)
//	users(user_id, tenant_id, name, email UNIQUE, role, features text[], password_hash, created_at)
//	invites(token, tenant_id, role)
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const userColumns = `
	u.user_id, u.name, u.email, u.role, u.features, u.created_at,
	t.tenant_id, t.name
`

func scanUser(row pgx.Row, dest ...any) (models.User, error) {
	var user models.User
	var features []string
	fields := []any{
		&user.UserID, &user.Name, &user.Email, &user.RoleName, &features, &user.Created,
		&user.Tenant.TenantID, &user.Tenant.Name,
	}
	fields = append(fields, dest...)
	if err := row.Scan(fields...); err != nil {
		return models.User{}, err
	}
	user.Features = models.NewFeatureSet(features...)
	return user, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (store.Credential, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`, u.password_hash
		FROM users u
		JOIN tenants t ON t.tenant_id = u.tenant_id
		WHERE lower(u.email) = lower($1)
	`, email)

	var hash string
	user, err := scanUser(row, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Credential{}, store.ErrUserNotFound
		}
		return store.Credential{}, err
	}
	return store.Credential{User: user, PasswordHash: hash}, nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (models.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users u
		JOIN tenants t ON t.tenant_id = u.tenant_id
		WHERE u.user_id = $1
	`, userID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, store.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) CreateIdentity(ctx context.Context, cred store.Credential) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO tenants (tenant_id, name)
		VALUES ($1, $2)
		ON CONFLICT (tenant_id) DO NOTHING
	`, cred.User.Tenant.TenantID, cred.User.Tenant.Name)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO users (user_id, tenant_id, name, email, role, features, password_hash, created_at)
		VALUES ($1, $2, $3, lower($4), $5, $6, $7, $8)
	`, cred.User.UserID, cred.User.Tenant.TenantID, cred.User.Name, cred.User.Email,
		cred.User.RoleName, cred.User.Features.List(), cred.PasswordHash, cred.User.Created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return store.ErrAlreadyExists
		}
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) ResolveInvite(ctx context.Context, token string) (models.Invite, error) {
	var invite models.Invite
	row := s.pool.QueryRow(ctx, `
		SELECT token, tenant_id, role
		FROM invites
		WHERE token = $1
	`, token)
	if err := row.Scan(&invite.Token, &invite.TenantID, &invite.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Invite{}, store.ErrInviteNotFound
		}
		return models.Invite{}, err
	}
	return invite, nil
}

func (s *Store) GetTenant(ctx context.Context, tenantID string) (models.Tenant, error) {
	var tenant models.Tenant
	row := s.pool.QueryRow(ctx, `
		SELECT tenant_id, name
		FROM tenants
		WHERE tenant_id = $1
	`, tenantID)
	if err := row.Scan(&tenant.TenantID, &tenant.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Tenant{}, store.ErrTenantNotFound
		}
		return models.Tenant{}, err
	}
	return tenant, nil
}
