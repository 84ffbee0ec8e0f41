// Package auth implements the single-user session layer: credential
// verification, HS256 session tokens, and the middleware guarding the API.
package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/promptrefine/promptrefine/internal/config"
)

// UserID identifies the service's single operator account. The value is
// fixed so prompt and test-run rows have a stable owner without a users
// table backing them.
var UserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// UserName is the display name reported for the operator account.
const UserName = "Admin"

// Session describes an authenticated caller.
type Session struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// System defines the public contract for authentication operations.
type System interface {
	Handler() *Handler
	Login(email, password string) (string, *Session, error)
	Verify(token string) (*Session, error)
	CookieName() string
	SessionTTL() time.Duration
}

type system struct {
	cfg    *config.AuthConfig
	logger *slog.Logger
}

// New creates the auth system from the finalized auth config.
func New(cfg *config.AuthConfig, logger *slog.Logger) System {
	return &system{
		cfg:    cfg,
		logger: logger.With("system", "auth"),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.cfg, s.logger)
}

func (s *system) CookieName() string {
	return s.cfg.CookieName
}

func (s *system) SessionTTL() time.Duration {
	return s.cfg.SessionTTLDuration()
}

type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login verifies the supplied credentials against the configured operator
// account and mints a signed session token. Comparison is constant-time so
// timing does not leak which credential failed.
func (s *system) Login(email, password string) (string, *Session, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.cfg.AdminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	if !emailOK || !passwordOK {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	expires := now.Add(s.cfg.SessionTTLDuration())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email: s.cfg.AdminEmail,
		Name:  UserName,
	})

	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", nil, err
	}

	return signed, &Session{
		UserID:    UserID,
		Email:     s.cfg.AdminEmail,
		Name:      UserName,
		ExpiresAt: expires,
	}, nil
}

// Verify parses and validates a session token, returning the session it
// encodes. Only HS256 signatures are accepted.
func (s *system) Verify(token string) (*Session, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(
		token,
		&c,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(s.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	subject, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	session := &Session{
		UserID: subject,
		Email:  c.Email,
		Name:   c.Name,
	}
	if c.ExpiresAt != nil {
		session.ExpiresAt = c.ExpiresAt.Time
	}

	return session, nil
}

type sessionKey struct{}

// SessionFromContext returns the session stored by the middleware, or nil.
func SessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionKey{}).(*Session)
	return session
}

// WithSession returns a context carrying the given session.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}
