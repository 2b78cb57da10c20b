package auth

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/rookgm/orderfeed/internal/logger"
	"github.com/rookgm/orderfeed/internal/models"
	"go.uber.org/zap"
	"sync"
	"time"
)

// Credentials holds backend admin token
type Credentials struct {
	mu     sync.RWMutex
	token  string
	now    func() time.Time
	reauth chan struct{}
}

// NewCredentials creates new Credentials instance
func NewCredentials(token string) *Credentials {
	return &Credentials{
		token:  token,
		now:    time.Now,
		reauth: make(chan struct{}, 1),
	}
}

// Token returns current token.
// It returns models.ErrUnauthorized if there is no token or the token is an expired JWT.
func (c *Credentials) Token() (string, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token == "" {
		return "", models.ErrUnauthorized
	}
	if expired(token, c.now()) {
		return "", models.ErrUnauthorized
	}
	return token, nil
}

// Set replaces token
func (c *Credentials) Set(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Invalidate clears token and signals that re-authentication is required
func (c *Credentials) Invalidate() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	logger.Log.Warn("backend credentials invalidated")

	select {
	case c.reauth <- struct{}{}:
	default:
	}
}

// ReauthRequired returns channel that receives a value after Invalidate.
// Several invalidations before a read are coalesced into one.
func (c *Credentials) ReauthRequired() <-chan struct{} {
	return c.reauth
}

// expired reports whether token is a JWT whose exp claim has passed.
// Opaque tokens never expire locally, the backend decides.
func expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if !claims.VerifyExpiresAt(now.Unix(), false) {
		logger.Log.Debug("backend token expired", zap.Any("exp", claims["exp"]))
		return true
	}
	return false
}
