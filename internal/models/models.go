package models

import (
	"encoding/json"
	"sort"
	"time"
)

// Role is a closed set of privilege labels. The access rules match roles
// against allow-lists; there is no numeric hierarchy.
type Role string

const (
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
	RoleUser  Role = "USER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleStaff, RoleUser:
		return true
	}
	return false
}

// FeatureSet holds the capability flags unlocked for a user. It marshals as
// a sorted JSON string array so responses are stable.
type FeatureSet map[string]struct{}

func NewFeatureSet(flags ...string) FeatureSet {
	set := make(FeatureSet, len(flags))
	for _, flag := range flags {
		set[flag] = struct{}{}
	}
	return set
}

func (s FeatureSet) Has(flag string) bool {
	_, ok := s[flag]
	return ok
}

func (s FeatureSet) List() []string {
	flags := make([]string, 0, len(s))
	for flag := range s {
		flags = append(flags, flag)
	}
	sort.Strings(flags)
	return flags
}

func (s FeatureSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

func (s *FeatureSet) UnmarshalJSON(data []byte) error {
	var flags []string
	if err := json.Unmarshal(data, &flags); err != nil {
		return err
	}
	*s = NewFeatureSet(flags...)
	return nil
}

type Tenant struct {
	TenantID string `json:"id"`
	Name     string `json:"name"`
}

type User struct {
	UserID   string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	RoleName Role       `json:"role"`
	Tenant   Tenant     `json:"tenant"`
	Features FeatureSet `json:"features"`
	Created  time.Time  `json:"created_at"`
}

type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Invite is resolved from an externally-validated invite token. Joining via
// an invite assigns the invite's role within the invite's tenant.
type Invite struct {
	Token    string
	TenantID string
	Role     Role
}
