package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/userhub/domain"
)

// JWTServiceImpl implements domain.TokenService. The credential is stateless:
// validity is the signature plus the exp claim; the last-logout freshness
// check lives with the caller.
type JWTServiceImpl struct {
	secretKey []byte
	tokenTTL  time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, tokenTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

// Issue implements domain.TokenService
func (j *JWTServiceImpl) Issue(userID uint, roles []domain.Role) (string, error) {
	now := time.Now()
	roleStrings := make([]string, len(roles))
	for i, r := range roles {
		roleStrings[i] = string(r)
	}

	claims := jwt.MapClaims{
		"id":    userID,
		"roles": roleStrings,
		"iat":   now.Unix(),
		"exp":   now.Add(j.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Verify implements domain.TokenService
func (j *JWTServiceImpl) Verify(tokenString string) (*domain.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return j.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	rawRoles, ok := claims["roles"].([]interface{})
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	roles := make([]domain.Role, 0, len(rawRoles))
	for _, raw := range rawRoles {
		s, ok := raw.(string)
		if !ok {
			return nil, domain.ErrTokenInvalid
		}
		roles = append(roles, domain.Role(s))
	}

	return &domain.Identity{
		UserID:   uint(id),
		Roles:    roles,
		IssuedAt: time.Unix(int64(iat), 0),
	}, nil
}
