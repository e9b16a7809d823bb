package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rafabene/querypro-backend/internal/domain/ports"
	"github.com/rafabene/querypro-backend/internal/infrastructure/config"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTService implementa ports.TokenService com tokens HS256
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService cria um novo serviço de tokens a partir da configuração
func NewJWTService(cfg *config.JWTConfig) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}

	expiry, err := time.ParseDuration(cfg.AccessExpiry)
	if err != nil {
		return nil, fmt.Errorf("invalid jwt access expiry %q: %w", cfg.AccessExpiry, err)
	}

	return &JWTService{
		secret: []byte(cfg.Secret),
		expiry: expiry,
	}, nil
}

func (s *JWTService) Generate(userID, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Validate(raw string) (*ports.TokenClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}

	return &ports.TokenClaims{
		UserID: sub,
		Email:  email,
		Role:   role,
	}, nil
}
