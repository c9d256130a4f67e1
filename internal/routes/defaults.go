package routes

import "github.com/earl-cod3/purity-ui-rbac/internal/models"

// DefaultTree is the built-in navigation tree, used when no routes file is
// configured. Billing sits behind the "billing" feature flag and user
// management behind an ADMIN/OWNER allow-list.
func DefaultTree() []Route {
	return []Route{
		{Layout: LayoutAdmin, Path: "/dashboard", Name: "Dashboard", Icon: "home"},
		{Layout: LayoutAdmin, Path: "/tables", Name: "Tables", Icon: "stats"},
		{Layout: LayoutAdmin, Path: "/billing", Name: "Billing", Icon: "credit-card", Feature: "billing"},
		{Layout: LayoutAdmin, Path: "/team", Name: "Team", Icon: "people", Access: []models.Role{models.RoleAdmin, models.RoleOwner}},
		{
			Name:     "Account Pages",
			Category: true,
			Views: []Route{
				{Layout: LayoutAdmin, Path: "/profile", Name: "Profile", Icon: "person"},
				{Layout: LayoutAuth, Path: "/signin", Name: "Sign In", Icon: "document"},
				{Layout: LayoutAuth, Path: "/signup", Name: "Sign Up", Icon: "rocket"},
			},
		},
		{Layout: LayoutAdmin, Path: "/", Name: "Home", Redirect: true},
	}
}
