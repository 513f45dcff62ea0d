// Package model defines domain entities used by the session and repositories.
package model

// Claims is the claim set extracted from an id token payload.
// Missing claims are zero values, never an error.
type Claims struct {
	Subject       string // "user_id" claim, the per-user scoping key
	Name          string
	Email         string
	EmailVerified string // textual "True"/"False", mirroring the wire coercion
}

// Session is the current identity: Anonymous or Authenticated(Claims).
type Session struct {
	Authenticated bool
	Claims        Claims
}

// Anonymous is the zero session, safe to publish on any failure.
var Anonymous = Session{}

// Subject returns the authenticated subject identifier, or "" when anonymous.
func (s Session) Subject() string {
	if !s.Authenticated {
		return ""
	}
	return s.Claims.Subject
}

// Note is the domain entity stored per user in the document store.
// ID is assigned by the store on creation; UserID is always overwritten
// with the session subject before any write.
type Note struct {
	ID     string
	Text   string
	UserID string
}

// AuthResult collects tokens issued by the identity endpoint.
// Both the sign-in and the refresh-exchange responses map into it.
type AuthResult struct {
	IDToken      string
	RefreshToken string
	UserID       string // "localId" on sign-in, "user_id" on refresh
	Email        string
	ExpiresIn    string // seconds, decimal string as transmitted
}
