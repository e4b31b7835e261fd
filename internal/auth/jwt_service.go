package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "bookshelf"

// Claims represents the session token claims.
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Remember bool   `json:"remember,omitempty"`
	jwt.RegisteredClaims
}

// Session is a freshly issued session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Remember  bool
}

// JWTService handles session token generation and validation.
type JWTService struct {
	secret      []byte
	sessionTTL  time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

// NewJWTService creates a new JWT service with the given secret and lifetimes.
func NewJWTService(secret string, sessionTTL, rememberTTL time.Duration) *JWTService {
	return &JWTService{
		secret:      []byte(secret),
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		now:         time.Now,
	}
}

// IssueSession signs a session token for the user. remember selects the
// long-lived lifetime.
func (s *JWTService) IssueSession(userID uuid.UUID, email string, remember bool) (*Session, error) {
	now := s.now()
	ttl := s.sessionTTL
	if remember {
		ttl = s.rememberTTL
	}
	expiresAt := now.Add(ttl)

	claims := &Claims{
		UserID:   userID.String(),
		Email:    email,
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Remember: remember}, nil
}

// ValidateToken validates a session token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// UserIDFromClaims parses the user id carried by claims.
func UserIDFromClaims(claims *Claims) (uuid.UUID, error) {
	if claims == nil {
		return uuid.Nil, errors.New("missing claims")
	}
	return uuid.Parse(claims.UserID)
}
