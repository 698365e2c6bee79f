// Package auth issues and checks the HS256 access tokens that carry the
// caller's account number and role.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/selleradmin/internal/common"
	"github.com/dmitrijs2005/selleradmin/internal/server/authz"
	"github.com/dmitrijs2005/selleradmin/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the registered claims plus the caller identity.
type Claims struct {
	jwt.RegisteredClaims
	AccountNo int64  `json:"account_no"`
	Role      string `json:"role"`
}

func GenerateToken(id authz.Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(id.AccountNo),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		AccountNo: id.AccountNo,
		Role:      string(id.Role),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates tokenString and returns the identity it carries.
// The role is returned as written; the gate rejects roles it does not know.
func ParseToken(tokenString string, secretKey []byte) (authz.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return authz.Identity{}, common.ErrTokenExpired
		}
		return authz.Identity{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.AccountNo <= 0 {
		return authz.Identity{}, common.ErrInvalidToken
	}

	return authz.Identity{AccountNo: claims.AccountNo, Role: models.Role(claims.Role)}, nil
}
