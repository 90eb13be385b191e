package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
)

const sessionCookie = "session"

// User is a signed-in visitor.
type User struct {
	Name string
}

// Sessions is an in-memory session store.
type Sessions struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewSessions creates an empty store.
func NewSessions() *Sessions {
	return &Sessions{users: make(map[string]*User)}
}

// Login creates a session for name and returns its ID.
func (s *Sessions) Login(name string) string {
	b := make([]byte, 16)
	rand.Read(b)
	id := hex.EncodeToString(b)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = &User{Name: name}
	return id
}

// Logout ends a session.
func (s *Sessions) Logout(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// Get returns the user for a session ID.
func (s *Sessions) Get(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

type userKey struct{}

// Middleware stores the session's user in the request context.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(sessionCookie); err == nil {
			if u, ok := s.Get(c.Value); ok {
				r = r.WithContext(context.WithValue(r.Context(), userKey{}, u))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// UserFrom returns the signed-in user, or nil.
func UserFrom(ctx context.Context) *User {
	u, _ := ctx.Value(userKey{}).(*User)
	return u
}
