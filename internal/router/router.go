package router

import (
	"errors"
	"fmt"
)

// Access is a route's access requirement.
type Access int

const (
	AccessAny Access = iota
	AccessRequiresAuth
	AccessRequiresGuest
)

func (a Access) String() string {
	switch a {
	case AccessRequiresAuth:
		return "requires-auth"
	case AccessRequiresGuest:
		return "requires-guest"
	default:
		return "any"
	}
}

// Paths of the default route table.
const (
	PathRoot             = "/"
	PathLogin            = "/login"
	PathRegister         = "/register"
	PathForgotPassword   = "/forgot-password"
	PathDashboard        = "/dashboard"
	PathErrorCredentials = "/error-credentials"
	PathErrorServer      = "/error-server"
)

// ErrNotFound is returned by Resolve for a path with no route.
var ErrNotFound = errors.New("router: no route for path")

// Route describes one navigable destination. A route with Redirect set is
// never displayed; navigation to it continues at Redirect.
type Route struct {
	Path     string
	Name     string
	Redirect string
	Access   Access
}

// DefaultRoutes returns the application's route table.
func DefaultRoutes() []Route {
	return []Route{
		{Path: PathRoot, Redirect: PathLogin},
		{Path: PathLogin, Name: "Login", Access: AccessRequiresGuest},
		{Path: PathRegister, Name: "Register", Access: AccessRequiresGuest},
		{Path: PathForgotPassword, Name: "ForgotPassword", Access: AccessRequiresGuest},
		{Path: PathDashboard, Name: "Dashboard", Access: AccessRequiresAuth},
		{Path: PathErrorCredentials, Name: "ErrorCredentials"},
		{Path: PathErrorServer, Name: "ErrorServer"},
	}
}

// Authenticator reports the current authentication state.
type Authenticator interface {
	IsAuthenticated() bool
}

// Router applies access requirements to navigation. It keeps no state
// between navigations.
type Router struct {
	routes map[string]Route
	auth   Authenticator
}

// New builds a router over routes. The table must contain the login and
// dashboard routes, which are the guard's redirect targets, and every
// static redirect must point at a known route.
func New(auth Authenticator, routes []Route) (*Router, error) {
	r := &Router{routes: make(map[string]Route, len(routes)), auth: auth}
	for _, rt := range routes {
		if _, dup := r.routes[rt.Path]; dup {
			return nil, fmt.Errorf("router: duplicate route %q", rt.Path)
		}
		r.routes[rt.Path] = rt
	}
	for _, p := range []string{PathLogin, PathDashboard} {
		if _, ok := r.routes[p]; !ok {
			return nil, fmt.Errorf("router: missing required route %q", p)
		}
	}
	for _, rt := range routes {
		if rt.Redirect == "" {
			continue
		}
		target, ok := r.routes[rt.Redirect]
		if !ok {
			return nil, fmt.Errorf("router: route %q redirects to unknown %q", rt.Path, rt.Redirect)
		}
		if target.Redirect != "" {
			return nil, fmt.Errorf("router: route %q redirects to another redirect %q", rt.Path, rt.Redirect)
		}
	}
	return r, nil
}

// Decision is the outcome of a navigation attempt.
type Decision struct {
	Requested  string
	Route      Route
	Redirected bool
}

// Resolve decides where a navigation to path lands.
func (r *Router) Resolve(path string) (Decision, error) {
	rt, ok := r.routes[path]
	if !ok {
		return Decision{Requested: path}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if rt.Redirect != "" {
		rt = r.routes[rt.Redirect]
	}
	if to, redirect := Guard(rt.Access, r.auth.IsAuthenticated()); redirect {
		rt = r.routes[to]
	}
	return Decision{Requested: path, Route: rt, Redirected: rt.Path != path}, nil
}

// Guard applies an access requirement. It returns the path to redirect to
// and true, or "" and false to proceed.
func Guard(access Access, authenticated bool) (string, bool) {
	switch {
	case access == AccessRequiresAuth && !authenticated:
		return PathLogin, true
	case access == AccessRequiresGuest && authenticated:
		return PathDashboard, true
	default:
		return "", false
	}
}
