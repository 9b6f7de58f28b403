// Package session holds the per-chat conversation record and the store
// contract it is persisted through.
package session

import "time"

// Step is the position of a chat inside the login flow.
type Step int

const (
	// StepNone: no flow in progress; free text is ignored.
	StepNone Step = iota
	// StepAwaitingEmail: the next free-text message is treated as an email.
	StepAwaitingEmail
	// StepAwaitingPassword: the next free-text message is treated as a password.
	StepAwaitingPassword
)

// User is the authenticated panel profile cached after a successful login.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

// Session is one chat user's conversation state.
//
// Email and Password only carry values while a login flow is in progress;
// both are cleared once the flow completes, successfully or not. User is set
// only by a successful login and is never partially updated.
type Session struct {
	Step      Step
	Email     string
	Password  string
	User      *User
	UpdatedAt time.Time
}

// LoggedIn reports whether the chat has an authenticated profile cached.
func (s *Session) LoggedIn() bool {
	return s.User != nil
}

// ResetFlow puts the session at the start of a fresh login flow, discarding
// any previously captured credentials. The cached User is kept: re-running
// /login must not log the user out until a new login succeeds.
func (s *Session) ResetFlow() {
	s.Step = StepAwaitingEmail
	s.Email = ""
	s.Password = ""
}

// ClearCredentials wipes the transient login inputs and leaves the flow.
func (s *Session) ClearCredentials() {
	s.Step = StepNone
	s.Email = ""
	s.Password = ""
}

// Clone returns a deep copy, so stores can hand out sessions without
// aliasing their internal state.
func (s *Session) Clone() *Session {
	c := *s
	if s.User != nil {
		u := *s.User
		c.User = &u
	}
	return &c
}
