package jwt

import (
	"errors"
	"time"

	"court-booking-engine/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims is what the identity provider signs. Tier is optional and defaults to regular.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	Tier   string    `json:"tier,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey     []byte
	tokenDuration time.Duration
	issuer        string
	audience      string
	leeway        time.Duration
}

type Option func(*Service)

// WithIssuer requires and stamps the iss claim.
func WithIssuer(iss string) Option {
	return func(s *Service) { s.issuer = iss }
}

// WithAudience requires and stamps the aud claim.
func WithAudience(aud string) Option {
	return func(s *Service) { s.audience = aud }
}

// WithLeeway tolerates clock skew between the identity provider and this service.
func WithLeeway(d time.Duration) Option {
	return func(s *Service) { s.leeway = d }
}

func NewService(secretKey string, tokenDuration time.Duration, opts ...Option) *Service {
	s := &Service{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateToken issues a token for id. Production tokens come from the identity provider;
// local tooling and tests share the secret to mint their own.
func (s *Service) GenerateToken(id user.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: id.UserID,
		Role:   id.Role.String(),
		Tier:   id.Tier.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
