package domain

// Status is the sign-in state reported by the account provider.
type Status string

const (
	StatusInitializing Status = "initializing"
	StatusLoggingIn    Status = "loggingIn"
	StatusLoggedOut    Status = "loggedOut"
	StatusLoggedIn     Status = "loggedIn"
)

// SignedIn reports whether subscriptions can be listed for this status.
func (s Status) SignedIn() bool {
	return s == StatusLoggedIn
}

func (s Status) Valid() bool {
	switch s {
	case StatusInitializing, StatusLoggingIn, StatusLoggedOut, StatusLoggedIn:
		return true
	}
	return false
}
