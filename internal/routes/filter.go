package routes

import "github.com/earl-cod3/purity-ui-rbac/internal/models"

// Filter returns the sub-tree of routes the user may see, preserving
// declaration order. Categories are kept only when at least one descendant
// survives and are never themselves access-checked. Redirect aliases are
// always dropped. Filtering an already-filtered tree is a no-op.
func Filter(user *models.User, tree []Route) []Route {
	out := make([]Route, 0, len(tree))
	for _, r := range tree {
		if r.Redirect {
			continue
		}
		if r.IsCategory() {
			views := Filter(user, r.Views)
			if len(views) == 0 {
				continue
			}
			r.Views = views
			out = append(out, r)
			continue
		}
		if Visible(user, r) {
			out = append(out, r)
		}
	}
	return out
}
