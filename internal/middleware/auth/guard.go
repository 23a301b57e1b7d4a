package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Challenge is sent in the WWW-Authenticate header of every 401.
const Challenge = `Basic realm="bookhub"`

// ErrUnauthorized matches every credential failure produced by Guard.
var ErrUnauthorized = errors.New("incorrect username or password")

// UnauthorizedError is returned by Guard.Authenticate. It carries the
// attempted username (never the password) and the challenge for the response.
type UnauthorizedError struct {
	Username  string
	Challenge string
}

func (e *UnauthorizedError) Error() string {
	return ErrUnauthorized.Error()
}

func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}

// Guard checks a username/password pair against the configured admin credentials.
type Guard struct {
	username     string
	passwordHash string
	logger       *slog.Logger
}

// NewGuard hashes the plaintext password once so requests never touch it.
func NewGuard(username, password string, logger *slog.Logger) (*Guard, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("username is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	if len(password) > MaxPasswordBytes {
		return nil, fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return NewGuardWithHash(username, hash, logger)
}

// NewGuardWithHash builds a guard from a pre-computed bcrypt hash.
func NewGuardWithHash(username, passwordHash string, logger *slog.Logger) (*Guard, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("username is required")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{username: username, passwordHash: passwordHash, logger: logger}, nil
}

// Authenticate returns the username when both values match exactly.
func (g *Guard) Authenticate(username, password string) (string, error) {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	// bcrypt truncates at 72 bytes, so longer attempts would match on their prefix
	tooLong := len(password) > MaxPasswordBytes
	// always run bcrypt so a wrong username costs the same as a wrong password
	passwordMatch := VerifyPassword(g.passwordHash, password) == nil && !tooLong

	if !usernameMatch || !passwordMatch {
		g.logger.Warn("failed_login_attempt", "username", username)
		return "", &UnauthorizedError{Username: username, Challenge: Challenge}
	}

	g.logger.Info("user_authenticated", "username", username)
	return username, nil
}
