package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookshare/internal/models"
	"bookshare/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
)

// Domain errors for auth flows.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPasswordRequired   = errors.New("password must not be blank")
)

// TokenConfig carries the JWT signing parameters from configuration.
type TokenConfig struct {
	SigningKey string
	TTL        time.Duration
}

// Claims is the canonical token payload: user id, email and role, so the
// upload gate can run off the token without a store lookup.
type Claims struct {
	jwt.RegisteredClaims
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// AuthService handles registration, login and token parsing.
type AuthService struct {
	users  repository.Users
	tokens TokenConfig
}

func NewAuthService(users repository.Users, tokens TokenConfig) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register hashes the password, creates the account (role defaults to
// student) and returns the public user plus a fresh token. A duplicate
// email surfaces as repository.ErrEmailTaken inside the returned error.
func (s *AuthService) Register(email, password string) (*models.PublicUser, string, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.users.Create(email, hash)
	if err != nil {
		return nil, "", err
	}

	pub := models.PublicUser{ID: id, Email: email, Role: models.RoleStudent}
	token, err := s.issueToken(pub)
	if err != nil {
		return nil, "", err
	}
	return &pub, token, nil
}

// Login validates credentials and returns a JWT. Every failure mode maps to
// ErrInvalidCredentials so callers cannot tell an unknown email from a wrong
// password.
func (s *AuthService) Login(email, password string) (string, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}

	ok, err := verifyPassword(u.PasswordHash, password)
	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(u.Public())
}

// ParseToken verifies signature and expiry and returns the claims.
func (s *AuthService) ParseToken(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.tokens.SigningKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(u models.PublicUser) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokens.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	})
	return token.SignedString([]byte(s.tokens.SigningKey))
}

// Argon2id parameters. Tunable; the encoded hash records them, so existing
// hashes keep verifying after a change.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// helper: hash password with argon2id, encoded in the standard
// $argon2id$v=19$m=..,t=..,p=..$salt$key form.
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrPasswordRequired
	}
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// helper: verify password against an encoded argon2id hash using a
// constant-time comparison.
func verifyPassword(encoded, password string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, errors.New("malformed password hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("parse hash version: %w", err)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var (
		memory  uint32
		t       uint32
		threads uint8
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &t, &threads); err != nil {
		return false, fmt.Errorf("parse hash params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decode key: %w", err)
	}

	derived := argon2.IDKey([]byte(password), salt, t, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, derived) == 1, nil
}
