package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/earl-cod3/purity-ui-rbac/internal/models"
	"github.com/earl-cod3/purity-ui-rbac/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// Store is an in-process identity store. Lookups key on lowercased email;
// the mutex serializes signups so two concurrent CreateIdentity calls for
// the same email cannot both succeed.
type Store struct {
	mu      sync.RWMutex
	byEmail map[string]store.Credential
	tenants map[string]models.Tenant
	invites map[string]models.Invite
}

func NewStore() *Store {
	return &Store{
		byEmail: make(map[string]store.Credential),
		tenants: make(map[string]models.Tenant),
		invites: make(map[string]models.Invite),
	}
}

// NewSeededStore returns a store preloaded with the demo identities: four
// users across two tenants, all sharing the password "pass123", plus a
// reusable invite into the Alpha Co tenant.
func NewSeededStore() (*Store, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pass123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	alpha := models.Tenant{TenantID: "t1", Name: "Alpha Co"}
	beta := models.Tenant{TenantID: "t2", Name: "Beta Co"}
	seeded := []models.User{
		{UserID: "u1", Name: "Olivia Owner", Email: "owner@demo.test", RoleName: models.RoleOwner, Tenant: alpha, Features: models.NewFeatureSet("billing")},
		{UserID: "u2", Name: "Andy Admin", Email: "admin@demo.test", RoleName: models.RoleAdmin, Tenant: alpha, Features: models.NewFeatureSet("billing")},
		{UserID: "u3", Name: "Sam Staff", Email: "staff@demo.test", RoleName: models.RoleStaff, Tenant: alpha, Features: models.NewFeatureSet()},
		{UserID: "u4", Name: "Una User", Email: "user@demo.test", RoleName: models.RoleUser, Tenant: beta, Features: models.NewFeatureSet()},
	}

	s := NewStore()
	s.tenants[alpha.TenantID] = alpha
	s.tenants[beta.TenantID] = beta
	now := time.Now().UTC()
	for _, user := range seeded {
		user.Created = now
		s.byEmail[user.Email] = store.Credential{User: user, PasswordHash: string(hash)}
	}
	s.invites["join-alpha"] = models.Invite{Token: "join-alpha", TenantID: alpha.TenantID, Role: models.RoleStaff}
	return s, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (store.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return store.Credential{}, store.ErrUserNotFound
	}
	return cred, nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cred := range s.byEmail {
		if cred.User.UserID == userID {
			return cred.User, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (s *Store) CreateIdentity(ctx context.Context, cred store.Credential) error {
	email := strings.ToLower(strings.TrimSpace(cred.User.Email))
	if email == "" {
		return store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return store.ErrAlreadyExists
	}
	cred.User.Email = email
	s.byEmail[email] = cred
	if _, known := s.tenants[cred.User.Tenant.TenantID]; !known {
		s.tenants[cred.User.Tenant.TenantID] = cred.User.Tenant
	}
	return nil
}

func (s *Store) ResolveInvite(ctx context.Context, token string) (models.Invite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invite, ok := s.invites[token]
	if !ok {
		return models.Invite{}, store.ErrInviteNotFound
	}
	return invite, nil
}

func (s *Store) GetTenant(ctx context.Context, tenantID string) (models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenant, ok := s.tenants[tenantID]
	if !ok {
		return models.Tenant{}, store.ErrTenantNotFound
	}
	return tenant, nil
}

// AddInvite registers an invite token. Used by tests and demo seeding.
func (s *Store) AddInvite(invite models.Invite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invites[invite.Token] = invite
}
