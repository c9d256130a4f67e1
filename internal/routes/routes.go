// Package routes holds the route descriptors and the single canonical
// access evaluator shared by the request-authorization path and the
// navigation-visibility path.
package routes

import (
	"github.com/earl-cod3/purity-ui-rbac/internal/models"
)

const (
	LayoutAuth  = "auth"
	LayoutAdmin = "admin"
)

// Route describes one node of the navigation tree. A node with Views (or
// the Category marker) is a grouping; everything else is a navigable leaf.
type Route struct {
	Layout   string        `json:"layout,omitempty" yaml:"layout,omitempty"`
	Path     string        `json:"path,omitempty" yaml:"path,omitempty"`
	Name     string        `json:"name" yaml:"name"`
	Icon     string        `json:"icon,omitempty" yaml:"icon,omitempty"`
	Access   []models.Role `json:"access,omitempty" yaml:"access,omitempty"`
	Feature  string        `json:"feature,omitempty" yaml:"feature,omitempty"`
	Category bool          `json:"category,omitempty" yaml:"category,omitempty"`
	Redirect bool          `json:"redirect,omitempty" yaml:"redirect,omitempty"`
	Views    []Route       `json:"views,omitempty" yaml:"views,omitempty"`
}

func (r Route) IsCategory() bool {
	return r.Category || len(r.Views) > 0
}

// HasAccess applies the role rules for a leaf, in order, first match wins:
//
//  1. Auth-layout routes are visible to anonymous visitors and to OWNER,
//     and hidden from every other signed-in role. Owners keep access to
//     the auth flows so they can invite co-owners.
//  2. Admin-layout routes require a signed-in user.
//  3. A non-empty access list admits only the listed roles.
//  4. Otherwise the route is unrestricted.
//
// A nil user is an anonymous visitor.
func HasAccess(user *models.User, r Route) bool {
	if r.Layout == LayoutAuth {
		return user == nil || user.RoleName == models.RoleOwner
	}
	if r.Layout == LayoutAdmin && user == nil {
		return false
	}
	if len(r.Access) > 0 {
		if user == nil {
			return false
		}
		return roleAllowed(user.RoleName, r.Access)
	}
	return true
}

// HasFeature applies the feature gate. Routes without a feature flag pass.
func HasFeature(user *models.User, r Route) bool {
	if r.Feature == "" {
		return true
	}
	return user != nil && user.Features.Has(r.Feature)
}

// Visible combines the role rules with the feature gate for a leaf route.
func Visible(user *models.User, r Route) bool {
	return HasAccess(user, r) && HasFeature(user, r)
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
