package routeconfig

import "encoding/json"

// jsonRoute is the on-the-wire shape of one route node, deliberately
// smaller than Route: guards, resolvers, and token-based behavior aren't
// expressible over JSON and stay nil on the decoded Route.
type jsonRoute struct {
	Path            string      `json:"path"`
	Component       string      `json:"component,omitempty"`
	Outlet          string      `json:"outlet,omitempty"`
	PathMatch       string      `json:"pathMatch,omitempty"`
	RedirectTo      string      `json:"redirectTo,omitempty"`
	Title           string      `json:"title,omitempty"`
	LoadChildren    bool        `json:"loadChildren,omitempty"`
	LoadChildrenRef string      `json:"loadChildrenRef,omitempty"`
	Children        []jsonRoute `json:"children,omitempty"`
}

// ComponentResolver maps the string component identifier a JSON manifest
// names back to the opaque handle Route.Component expects. The core never
// inspects Component itself, so this is entirely the caller's naming
// scheme; a nil resolver leaves every decoded route's Component nil.
type ComponentResolver func(id string) any

// DataKeyLoadChildrenRef is the Route.Data key DecodeRoutes stashes a
// decoded route's loadChildrenRef string under, for a Loader to pick back
// up (a route's loadChildren boundary needs somewhere to carry a
// loader-specific reference — e.g. an S3 object key — without a dedicated
// Route field for every possible loader backend).
const DataKeyLoadChildrenRef = "loadChildrenRef"

// DecodeRoutes decodes a JSON route manifest (as produced by whatever
// authoring tool a team uses, or by hand) into a Route tree, suitable for
// both offline validation (cmd/routecheck) and a Loader's lazy-load
// response (package loader's S3Loader).
func DecodeRoutes(data []byte, resolve ComponentResolver) ([]*Route, error) {
	var nodes []jsonRoute
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, err
	}
	return buildRoutes(nodes, resolve), nil
}

func buildRoutes(nodes []jsonRoute, resolve ComponentResolver) []*Route {
	routes := make([]*Route, 0, len(nodes))
	for _, n := range nodes {
		r := &Route{
			Path:          n.Path,
			Outlet:        n.Outlet,
			PathMatchMode: PathMatch(n.PathMatch),
			RedirectTo:    n.RedirectTo,
			Title:         n.Title,
			LoadChildren:  n.LoadChildren,
		}
		if n.Component != "" && resolve != nil {
			r.Component = resolve(n.Component)
		}
		if n.LoadChildren && n.LoadChildrenRef != "" {
			r.Data = map[string]any{DataKeyLoadChildrenRef: n.LoadChildrenRef}
		}
		if len(n.Children) > 0 {
			r.Children = buildRoutes(n.Children, resolve)
		}
		routes = append(routes, r)
	}
	return routes
}
