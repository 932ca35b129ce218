package navigation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	kartoerrors "github.com/karto-app/karto/pkg/errors"
)

// Router is the navigation surface handed to screens.
type Router interface {
	// Go pushes path onto the stack.
	Go(path string, args any) error
	// Replace swaps the current route for path.
	Replace(path string, args any) error
	// Pop removes the current route. It reports false on the last route.
	Pop() bool
	// CanPop reports whether Pop would succeed.
	CanPop() bool
	// Current returns the top route.
	Current() RouteSettings
}

// Navigation errors.
var (
	ErrUnknownRoute = errors.New("navigation: no route matches path")
	ErrRedirectLoop = errors.New("navigation: redirect loop")
	ErrTooManyHops  = errors.New("navigation: too many redirects")
)

const maxRedirects = 10

// Action is the kind of stack change.
type Action int

const (
	ActionPush Action = iota
	ActionReplace
	ActionPop
)

func (a Action) String() string {
	switch a {
	case ActionReplace:
		return "replace"
	case ActionPop:
		return "pop"
	default:
		return "push"
	}
}

// Change is delivered to listeners after the stack changes.
type Change struct {
	Action Action
	From   RouteSettings
	To     RouteSettings
}

// Stack is an in-memory Router over a fixed set of path patterns.
// It is not safe for concurrent use.
type Stack struct {
	patterns []*PathPattern
	routes   []RouteSettings
	redirect func(RedirectContext) RedirectResult
	initial  string
	logger   *log.Logger

	listeners map[int]func(Change)
	nextID    int
}

// Option configures a Stack.
type Option func(*Stack)

// WithInitialPath sets the first route. Defaults to "/".
func WithInitialPath(path string) Option {
	return func(s *Stack) { s.initial = path }
}

// WithRedirect installs a guard consulted before every navigation.
func WithRedirect(fn func(RedirectContext) RedirectResult) Option {
	return func(s *Stack) { s.redirect = fn }
}

// WithLogger sets the stack logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Stack) { s.logger = l }
}

// NewStack compiles patterns and pushes the initial path. Patterns are
// tried in the order given.
func NewStack(patterns []string, opts ...Option) (*Stack, error) {
	s := &Stack{
		initial:   "/",
		listeners: make(map[int]func(Change)),
	}
	for _, p := range patterns {
		s.patterns = append(s.patterns, NewPathPattern(p))
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default().WithPrefix("navigation")
	}
	route, _, err := s.resolve("navigation.NewStack", "", s.initial, nil)
	if err != nil {
		return nil, err
	}
	s.routes = []RouteSettings{route}
	return s, nil
}

// Go implements Router.
func (s *Stack) Go(path string, args any) error {
	route, replace, err := s.resolve("navigation.Stack.Go", s.Current().Name, path, args)
	if err != nil {
		return err
	}
	if replace {
		s.replaceTop(route)
		return nil
	}
	from := s.Current()
	s.routes = append(s.routes, route)
	s.emit(Change{Action: ActionPush, From: from, To: route})
	return nil
}

// Replace implements Router.
func (s *Stack) Replace(path string, args any) error {
	route, _, err := s.resolve("navigation.Stack.Replace", s.Current().Name, path, args)
	if err != nil {
		return err
	}
	s.replaceTop(route)
	return nil
}

func (s *Stack) replaceTop(route RouteSettings) {
	from := s.Current()
	s.routes[len(s.routes)-1] = route
	s.emit(Change{Action: ActionReplace, From: from, To: route})
}

// Pop implements Router.
func (s *Stack) Pop() bool {
	if !s.CanPop() {
		return false
	}
	from := s.Current()
	s.routes = s.routes[:len(s.routes)-1]
	s.emit(Change{Action: ActionPop, From: from, To: s.Current()})
	return true
}

// PopUntil pops routes until pred accepts the top one or only one is left.
func (s *Stack) PopUntil(pred func(RouteSettings) bool) {
	for s.CanPop() && !pred(s.Current()) {
		s.Pop()
	}
}

// CanPop implements Router.
func (s *Stack) CanPop() bool { return len(s.routes) > 1 }

// Current implements Router.
func (s *Stack) Current() RouteSettings {
	if len(s.routes) == 0 {
		return RouteSettings{}
	}
	return s.routes[len(s.routes)-1]
}

// Depth returns the number of routes on the stack.
func (s *Stack) Depth() int { return len(s.routes) }

// Routes returns a copy of the stack, bottom first.
func (s *Stack) Routes() []RouteSettings {
	return append([]RouteSettings(nil), s.routes...)
}

// AddListener registers fn for every change. Returns an unsubscribe function.
func (s *Stack) AddListener(fn func(Change)) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Stack) emit(c Change) {
	s.logger.Debug("route change", "action", c.Action, "from", c.From.Name, "to", c.To.Name)
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn(c)
		}
	}
}

// resolve applies redirects to target and matches the result.
func (s *Stack) resolve(op, from, target string, args any) (RouteSettings, bool, error) {
	path, args, replace, err := s.applyRedirect(from, target, args)
	if err != nil {
		return RouteSettings{}, false, kartoerrors.New(op, kartoerrors.KindValidation, err)
	}
	route, ok := s.match(path)
	if !ok {
		return RouteSettings{}, false, kartoerrors.New(op, kartoerrors.KindValidation,
			fmt.Errorf("%w: %s", ErrUnknownRoute, path))
	}
	route.Arguments = args
	return route, replace, nil
}

func (s *Stack) applyRedirect(from, to string, args any) (string, any, bool, error) {
	if s.redirect == nil {
		return to, args, false, nil
	}
	seen := make(map[string]bool)
	replace := false
	for range maxRedirects {
		if seen[to] {
			return "", nil, false, fmt.Errorf("%w at %s", ErrRedirectLoop, to)
		}
		seen[to] = true
		result := s.redirect(RedirectContext{FromPath: from, ToPath: to, Arguments: args})
		if result.Path == "" || result.Path == to {
			return to, args, replace, nil
		}
		to, args = result.Path, result.Arguments
		replace = replace || result.Replace
	}
	return "", nil, false, fmt.Errorf("%w (limit %d)", ErrTooManyHops, maxRedirects)
}

func (s *Stack) match(target string) (RouteSettings, bool) {
	path, query := ParsePath(target)
	for _, p := range s.patterns {
		if params, ok := p.Match(path); ok {
			return RouteSettings{Name: target, Pattern: p.String(), Params: params, Query: query}, true
		}
	}
	return RouteSettings{}, false
}

var _ Router = (*Stack)(nil)
