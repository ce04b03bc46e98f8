package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/internal/employee"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie set at login and cleared at logout.
const CookieName = "pto_session"

// EmployeeResolver is the identity lookup surface the login path depends on.
type EmployeeResolver interface {
	Resolve(id int64) (*employee.Employee, error)
}

// Service performs identifier-based login. The cookie carries an HS256-signed
// token binding the session id; the in-memory store stays authoritative, so a
// signed token alone cannot resurrect a logged-out session.
type Service struct {
	employees EmployeeResolver
	sessions  *SessionStore
	secret    []byte
	logger    *slog.Logger
}

func NewService(employees EmployeeResolver, sessions *SessionStore, secret string, logger *slog.Logger) *Service {
	return &Service{
		employees: employees,
		sessions:  sessions,
		secret:    []byte(secret),
		logger:    logger,
	}
}

// Login resolves the submitted identifier and establishes a session.
// Input validation happens before any storage access: a blank or non-numeric
// identifier never reaches the employee lookup.
func (s *Service) Login(rawEmployeeID string) (*Session, string, error) {
	trimmed := strings.TrimSpace(rawEmployeeID)
	if trimmed == "" {
		return nil, "", internal.ErrMissingEmployeeID
	}

	employeeID, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		s.logger.Info("login rejected: non-numeric identifier")
		return nil, "", internal.ErrInvalidEmployeeID
	}

	emp, err := s.employees.Resolve(employeeID)
	if err != nil {
		return nil, "", err
	}

	sess := s.sessions.Create(emp.ID, emp.DisplayName())

	token, err := s.signToken(sess)
	if err != nil {
		s.sessions.Delete(sess.ID)
		s.logger.Error("failed to sign session token", "error", err)
		return nil, "", internal.NewInternalError("failed to establish session", err)
	}

	s.logger.Info("login succeeded", "employee_id", emp.ID, "session_id", sess.ID)
	return sess, token, nil
}

// Authenticate validates a session cookie value and returns the live session.
func (s *Service) Authenticate(token string) (*Session, error) {
	if token == "" {
		return nil, internal.ErrSessionInvalid
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrSessionExpired
		}
		return nil, internal.ErrSessionInvalid
	}

	sess, ok := s.sessions.Get(claims.ID)
	if !ok {
		return nil, internal.ErrSessionInvalid
	}
	return sess, nil
}

// Logout destroys the session referenced by the cookie value, if any.
func (s *Service) Logout(token string) {
	sess, err := s.Authenticate(token)
	if err != nil {
		return
	}
	s.sessions.Delete(sess.ID)
	s.logger.Info("logout", "employee_id", sess.EmployeeID, "session_id", sess.ID)
}

func (s *Service) signToken(sess *Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sess.ID,
		Subject:   strconv.FormatInt(sess.EmployeeID, 10),
		IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// SessionTTL exposes the store's lifetime for cookie expiry.
func (s *Service) SessionTTL() time.Duration {
	return s.sessions.ttl
}
