// Package auth validates credentials and provisions identities. Session
// creation is left to the caller so login stays composable with any
// session.Store.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/earl-cod3/purity-ui-rbac/internal/models"
	"github.com/earl-cod3/purity-ui-rbac/internal/session"
	"github.com/earl-cod3/purity-ui-rbac/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// OwnerFeatures is the feature set granted to the owner of a freshly
// created tenant.
func OwnerFeatures() models.FeatureSet {
	return models.NewFeatureSet("billing")
}

type Authenticator struct {
	identities store.IdentityStore
	sessions   session.Store
}

func New(identities store.IdentityStore, sessions session.Store) *Authenticator {
	return &Authenticator{identities: identities, sessions: sessions}
}

// Login checks the password against the stored hash. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (a *Authenticator) Login(ctx context.Context, email, password string) (models.User, error) {
	cred, err := a.identities.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, store.ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return models.User{}, store.ErrInvalidCredentials
	}
	return cred.User, nil
}

type SignupInput struct {
	Name        string
	Email       string
	Password    string
	InviteToken string
}

// Signup provisions a new identity. Without an invite token a fresh tenant
// is created and the user becomes its OWNER with the owner feature set.
// With an invite token the user joins the invite's tenant with the invite's
// role. A taken email fails with store.ErrAlreadyExists.
func (a *Authenticator) Signup(ctx context.Context, input SignupInput) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return models.User{}, store.ErrInvalidInput
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "New Owner"
	}

	user := models.User{
		UserID:  uuid.NewString(),
		Name:    name,
		Email:   email,
		Created: time.Now().UTC(),
	}

	if input.InviteToken != "" {
		invite, err := a.identities.ResolveInvite(ctx, input.InviteToken)
		if err != nil {
			return models.User{}, err
		}
		tenant, err := a.identities.GetTenant(ctx, invite.TenantID)
		if err != nil {
			return models.User{}, err
		}
		role := invite.Role
		if !role.Valid() {
			role = models.RoleStaff
		}
		user.Tenant = tenant
		user.RoleName = role
		user.Features = models.NewFeatureSet()
	} else {
		user.Tenant = models.Tenant{TenantID: uuid.NewString(), Name: "New Tenant"}
		user.RoleName = models.RoleOwner
		user.Features = OwnerFeatures()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	if err := a.identities.CreateIdentity(ctx, store.Credential{User: user, PasswordHash: string(hash)}); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CurrentUser resolves a session token to its user. Unknown and expired
// tokens both come back as session.ErrSessionNotFound.
func (a *Authenticator) CurrentUser(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, session.ErrSessionNotFound
	}
	return a.sessions.Lookup(ctx, token)
}
