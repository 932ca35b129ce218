package navigation

import (
	"net/url"
	"strings"
)

// PathPattern is a compiled route pattern.
//
// Patterns support static segments ("/catalog"), parameters
// ("/brands/:id") and a trailing wildcard ("/files/*path") that captures
// the rest of the path. Trailing slashes are ignored when matching.
type PathPattern struct {
	raw      string
	segments []string
}

// NewPathPattern compiles pattern.
func NewPathPattern(pattern string) *PathPattern {
	return &PathPattern{raw: pattern, segments: splitPath(pattern)}
}

// String returns the pattern as written.
func (p *PathPattern) String() string { return p.raw }

// Match reports whether path matches and returns its parameters.
// path must not contain a query string.
func (p *PathPattern) Match(path string) (map[string]string, bool) {
	parts := splitPath(path)
	params := map[string]string{}
	for i, seg := range p.segments {
		if name, ok := strings.CutPrefix(seg, "*"); ok {
			rest := strings.Join(parts[min(i, len(parts)):], "/")
			params[name] = unescape(rest)
			return params, true
		}
		if i >= len(parts) {
			return nil, false
		}
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if parts[i] == "" {
				return nil, false
			}
			params[name] = unescape(parts[i])
			continue
		}
		if seg != parts[i] {
			return nil, false
		}
	}
	if len(parts) != len(p.segments) {
		return nil, false
	}
	return params, true
}

// ParsePath splits a navigation target into its path and query values.
func ParsePath(target string) (string, map[string][]string) {
	path := target
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path = path[:i]
	}
	var query map[string][]string
	if i := strings.IndexByte(path, '?'); i >= 0 {
		if values, err := url.ParseQuery(path[i+1:]); err == nil && len(values) > 0 {
			query = values
		}
		path = path[:i]
	}
	return path, query
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func unescape(s string) string {
	if v, err := url.PathUnescape(s); err == nil {
		return v
	}
	return s
}
