package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/tripclient/logger"
)

// ErrExpired is returned by Set for a JWT whose expiry has already passed.
var ErrExpired = errors.New("session: token expired")

// Claims is what the store could read from a JWT access token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Store is a concurrency-safe holder of the current access token.
type Store struct {
	mu     sync.RWMutex
	token  string
	claims *Claims

	now    func() time.Time
	leeway time.Duration
	log    *logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLeeway treats tokens as expired this long before their "exp".
func WithLeeway(d time.Duration) Option {
	return func(s *Store) {
		s.leeway = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now: time.Now,
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("session")
	return s
}

// Set stores token, replacing any previous one. An empty token clears the
// store.
func (s *Store) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		s.Clear()
		return nil
	}

	claims := parseClaims(token)
	if claims != nil && s.expired(claims) {
		return ErrExpired
	}

	s.mu.Lock()
	s.token = token
	s.claims = claims
	s.mu.Unlock()
	return nil
}

// Clear forgets the stored token.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.claims = nil
	s.mu.Unlock()
}

// Token returns the current token or "" when signed out. An expired JWT is
// cleared on read. It never fails; the error return satisfies
// apiclient.TokenProvider.
func (s *Store) Token(_ context.Context) (string, error) {
	s.mu.RLock()
	token, claims := s.token, s.claims
	s.mu.RUnlock()

	if token == "" {
		return "", nil
	}
	if claims != nil && s.expired(claims) {
		s.mu.Lock()
		if s.token == token {
			s.token = ""
			s.claims = nil
		}
		s.mu.Unlock()
		s.log.Info("access token expired", logger.Fields("subject", claims.Subject))
		return "", nil
	}
	return token, nil
}

// SignedIn reports whether a usable token is held.
func (s *Store) SignedIn() bool {
	token, _ := s.Token(context.Background())
	return token != ""
}

// Claims returns the claims of the stored token when it is a JWT.
func (s *Store) Claims() (Claims, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claims == nil {
		return Claims{}, false
	}
	return *s.claims, true
}

func (s *Store) expired(c *Claims) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !s.now().Add(s.leeway).Before(c.ExpiresAt)
}

// parseClaims reads registered claims without verifying the signature.
// It returns nil for tokens that are not JWTs.
func parseClaims(token string) *Claims {
	var rc gojwt.RegisteredClaims
	if _, _, err := gojwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return nil
	}
	c := &Claims{Subject: rc.Subject}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c
}
