package routes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a route tree from a YAML file. The file is a list of
// route nodes mirroring the Route shape:
//
//	- layout: admin
//	  path: /dashboard
//	  name: Dashboard
//	  icon: home
//	- name: Account Pages
//	  category: true
//	  views:
//	    - layout: auth
//	      path: /signin
//	      name: Sign In
//
// Roles in access lists must be one of the known role labels.
func LoadFile(path string) ([]Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) ([]Route, error) {
	var tree []Route
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse routes: %w", err)
	}
	if err := validate(tree, ""); err != nil {
		return nil, err
	}
	return tree, nil
}

func validate(tree []Route, parent string) error {
	for _, r := range tree {
		label := r.Name
		if label == "" {
			label = r.Path
		}
		if parent != "" {
			label = parent + "/" + label
		}
		for _, role := range r.Access {
			if !role.Valid() {
				return fmt.Errorf("route %q: unknown role %q", label, role)
			}
		}
		if !r.IsCategory() && r.Path == "" && !r.Redirect {
			return fmt.Errorf("route %q: leaf route requires a path", label)
		}
		if err := validate(r.Views, label); err != nil {
			return err
		}
	}
	return nil
}
