package session

// Route addresses one screen of the client, with the query string preserved
// so deep links survive a bootstrap round-trip.
type Route struct {
	Path  string
	Query string
}

func (r Route) String() string {
	if r.Query != "" {
		return r.Path + "?" + r.Query
	}
	return r.Path
}

// LoginRoute is where unauthenticated clients are sent.
var LoginRoute = Route{Path: "/login"}

// Navigator abstracts the client's routing. The guard navigates through it
// on auth state transitions; replace controls whether the previous route
// stays reachable via back-navigation.
type Navigator interface {
	Current() Route
	Navigate(r Route, replace bool)
}
