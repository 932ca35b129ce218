// Package navigation provides path-based routing between screens.
//
// A [Stack] is an in-memory [Router]: screens push, replace and pop paths,
// and hosts listen for changes to decide what to draw.
//
//	stack := navigation.NewStack(
//	    []string{"/catalog", "/catalog/filters", "/brands/:id"},
//	    navigation.WithInitialPath("/catalog"),
//	)
//	stack.Go("/brands/nike?from=search", nil)
//	stack.Current().Param("id") // "nike"
//
// # Route Guards
//
// A Redirect callback can send navigation elsewhere:
//
//	navigation.WithRedirect(func(ctx navigation.RedirectContext) navigation.RedirectResult {
//	    if !loggedIn && strings.HasPrefix(ctx.ToPath, "/wallet") {
//	        return navigation.RedirectTo("/login")
//	    }
//	    return navigation.NoRedirect()
//	})
package navigation

// RouteSettings describes one entry of the route stack.
type RouteSettings struct {
	// Name is the full path navigated to, including any query string.
	Name string

	// Pattern is the registered pattern that matched Name.
	Pattern string

	// Arguments contains arbitrary data passed during navigation.
	Arguments any

	// Params contains path parameters, so "/brands/:id" matching
	// "/brands/nike" yields {"id": "nike"}. Values are percent-decoded.
	Params map[string]string

	// Query contains query string parameters, possibly repeated.
	Query map[string][]string
}

// Param returns a path parameter value or empty string if not found.
func (s RouteSettings) Param(key string) string {
	if s.Params == nil {
		return ""
	}
	return s.Params[key]
}

// QueryValue returns the first query parameter value or empty string if not found.
func (s RouteSettings) QueryValue(key string) string {
	if vals := s.Query[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// QueryValues returns all query parameter values for a key.
func (s RouteSettings) QueryValues(key string) []string {
	if s.Query == nil {
		return nil
	}
	return s.Query[key]
}

// RedirectContext describes the navigation being attempted.
type RedirectContext struct {
	// FromPath is the current path. Empty on the initial route.
	FromPath string

	// ToPath is the intended destination path.
	ToPath string

	// Arguments are the navigation arguments being passed.
	Arguments any
}

// RedirectResult tells the stack how to handle a navigation.
type RedirectResult struct {
	// Path is the redirect destination. Empty string means no redirect.
	Path string

	// Arguments for the redirect destination.
	Arguments any

	// Replace makes the navigation replace the current route instead of
	// pushing.
	Replace bool
}

// NoRedirect allows navigation to proceed normally.
func NoRedirect() RedirectResult {
	return RedirectResult{}
}

// RedirectTo redirects to path, replacing the current route.
func RedirectTo(path string) RedirectResult {
	return RedirectResult{Path: path, Replace: true}
}

// RedirectWithArgs redirects with custom arguments.
func RedirectWithArgs(path string, args any) RedirectResult {
	return RedirectResult{Path: path, Arguments: args, Replace: true}
}
