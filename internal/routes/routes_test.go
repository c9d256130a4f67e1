package routes

import (
	"testing"

	"github.com/earl-cod3/purity-ui-rbac/internal/models"
)

func TestAuthLayoutRuleShortCircuitsAccessList(t *testing.T) {
	// The auth-layout rule wins even when an access list is present.
	r := Route{Layout: LayoutAuth, Path: "/signin", Name: "Sign In", Access: []models.Role{models.RoleAdmin}}

	if !HasAccess(nil, r) {
		t.Error("anonymous should see auth routes regardless of access list")
	}
	if HasAccess(userWithRole(models.RoleAdmin), r) {
		t.Error("ADMIN should not see auth routes even when listed in access")
	}
	if !HasAccess(userWithRole(models.RoleOwner), r) {
		t.Error("OWNER should see auth routes")
	}
}

func TestAdminLayoutRequiresAuthenticationBeforeAccessList(t *testing.T) {
	r := Route{Layout: LayoutAdmin, Path: "/dashboard", Name: "Dashboard"}
	if HasAccess(nil, r) {
		t.Error("anonymous should not see admin routes without access list")
	}
	if !HasAccess(userWithRole(models.RoleUser), r) {
		t.Error("any signed-in role should see unrestricted admin routes")
	}
}

func TestUnrestrictedRouteVisibleToAll(t *testing.T) {
	r := Route{Path: "/about", Name: "About"}
	if !HasAccess(nil, r) || !HasAccess(userWithRole(models.RoleStaff), r) {
		t.Error("routes without layout or access list should be visible to everyone")
	}
}

func TestHasFeature(t *testing.T) {
	gated := Route{Layout: LayoutAdmin, Path: "/billing", Name: "Billing", Feature: "billing"}
	plain := Route{Layout: LayoutAdmin, Path: "/dashboard", Name: "Dashboard"}

	if HasFeature(nil, gated) {
		t.Error("anonymous should fail the feature gate")
	}
	if HasFeature(userWithRole(models.RoleOwner), gated) {
		t.Error("owner without the flag should fail the feature gate")
	}
	if !HasFeature(userWithRole(models.RoleUser, "billing"), gated) {
		t.Error("user holding the flag should pass the feature gate")
	}
	if !HasFeature(nil, plain) {
		t.Error("routes without a feature flag impose no constraint")
	}
}
