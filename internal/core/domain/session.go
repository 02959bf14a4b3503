package domain

// Session is the request-scoped identity of whoever is calling. The zero value is anonymous.
type Session struct {
	UserID string
}

// AnonymousSession is the session of an unauthenticated caller.
var AnonymousSession = Session{}

// IsAuthenticated reports whether the session belongs to a signed-in profile.
func (s Session) IsAuthenticated() bool {
	return s.UserID != ""
}
