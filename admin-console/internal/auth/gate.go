// Package auth is the admin console's login gate: one credential pair from
// configuration, checked in-process. It is not a trust boundary.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"
)

var ErrThrottled = errors.New("too many failed attempts, try again later")

const maxBackoff = 30 * time.Second

type Credentials struct {
	Email    string
	Password string
}

type attempts struct {
	failures int
	until    time.Time
}

type Gate struct {
	mu            sync.Mutex
	creds         Credentials
	loading       bool
	authenticated bool
	identity      string
	attempts      map[string]*attempts

	Now func() time.Time
}

// NewGate returns a gate in the loading state; Init finishes the startup check.
func NewGate(creds Credentials) *Gate {
	return &Gate{
		creds:    creds,
		loading:  true,
		attempts: make(map[string]*attempts),
		Now:      time.Now,
	}
}

// Init completes the startup check. Sessions are not persisted, so the
// console always starts signed out.
func (g *Gate) Init() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loading = false
}

func (g *Gate) IsLoading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loading
}

func (g *Gate) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authenticated
}

// CurrentUserIdentity is empty when signed out.
func (g *Gate) CurrentUserIdentity() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.identity
}

// Login reports whether the pair matched. A wrong pair is (false, nil); an
// attempt inside the backoff window is (false, ErrThrottled) and does not
// extend the window.
func (g *Gate) Login(identity, secret string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(identity))
	now := g.Now()
	a := g.attempts[key]
	if a != nil && now.Before(a.until) {
		return false, ErrThrottled
	}

	emailOK := subtle.ConstantTimeCompare([]byte(identity), []byte(g.creds.Email))
	passwordOK := subtle.ConstantTimeCompare([]byte(secret), []byte(g.creds.Password))
	if emailOK&passwordOK != 1 {
		if a == nil {
			a = &attempts{}
			g.attempts[key] = a
		}
		a.failures++
		a.until = now.Add(Backoff(a.failures))
		return false, nil
	}

	delete(g.attempts, key)
	g.authenticated = true
	g.identity = identity
	g.loading = false
	return true, nil
}

func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authenticated = false
	g.identity = ""
}

// Backoff is min(30s, 2^failures seconds).
func Backoff(failures int) time.Duration {
	if failures <= 0 {
		return 0
	}
	if failures >= 5 {
		return maxBackoff
	}
	return time.Duration(1<<failures) * time.Second
}
