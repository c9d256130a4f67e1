package store

import (
	"context"

	"github.com/earl-cod3/purity-ui-rbac/internal/models"
)

// Credential pairs an identity with its password hash. The hash never leaves
// the store layer except through this record; comparing it is the
// authenticator's job.
type Credential struct {
	User         models.User
	PasswordHash string
}

// IdentityStore is the persistence boundary for identities, tenants, and
// invites. Implementations must serialize CreateIdentity calls for the same
// email so concurrent signups cannot overwrite each other.
type IdentityStore interface {
	GetByEmail(ctx context.Context, email string) (Credential, error)
	GetUser(ctx context.Context, userID string) (models.User, error)
	CreateIdentity(ctx context.Context, cred Credential) error
	ResolveInvite(ctx context.Context, token string) (models.Invite, error)
	GetTenant(ctx context.Context, tenantID string) (models.Tenant, error)
}
