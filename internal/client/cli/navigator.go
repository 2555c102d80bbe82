package cli

import (
	"sync"

	"github.com/wisataops/wisatacli/internal/client/session"
)

// routeNavigator is the client's router: a current route plus a history
// stack. Navigating with replace swaps the top of the stack so
// back-navigation cannot return to the replaced screen, mirroring how the
// session guard expects login redirects to behave.
type routeNavigator struct {
	mu      sync.Mutex
	history []session.Route
}

func newRouteNavigator(start session.Route) *routeNavigator {
	return &routeNavigator{history: []session.Route{start}}
}

func (n *routeNavigator) Current() session.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.history[len(n.history)-1]
}

func (n *routeNavigator) Navigate(r session.Route, replace bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if replace {
		n.history[len(n.history)-1] = r
		return
	}
	n.history = append(n.history, r)
}

// Back pops to the previous route, reporting false at the bottom of the
// stack.
func (n *routeNavigator) Back() (session.Route, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) < 2 {
		return n.history[0], false
	}
	n.history = n.history[:len(n.history)-1]
	return n.history[len(n.history)-1], true
}
