package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/types"
)

// TokenService validates HS256 bearer tokens issued by the account service.
type TokenService struct {
	jwtSecret []byte
}

var _ ITokenService = (*TokenService)(nil)

func NewTokenService(jwtSecret string) *TokenService {
	return &TokenService{jwtSecret: []byte(jwtSecret)}
}

// ValidateToken parses and verifies a token and returns its claims.
func (s *TokenService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}
	return claims, nil
}
