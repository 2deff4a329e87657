package session

import "sync"

// User identifies the logged-in analyst.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Session is the explicit capability object handed to components that need
// authenticated access. It is created once at startup (after login) and torn
// down on exit; nothing else holds auth state.
type Session struct {
	mu    sync.RWMutex
	token string
	user  User
}

// Init installs the access token and user after a successful login.
func (s *Session) Init(token string, user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// Teardown clears all auth state.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = User{}
}

// Token returns the current access token, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the logged-in user.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Active reports whether a login has been performed.
func (s *Session) Active() bool {
	return s.Token() != ""
}
