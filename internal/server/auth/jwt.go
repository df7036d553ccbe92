// Package auth signs and verifies the HS256 access tokens that carry a
// member's identity and active band between requests.
package auth

import (
	"time"

	"github.com/bandroomhq/bandroom/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims extends the standard claims with the member's identity and the
// band (tenant) the session is scoped to. Switching bands mints a new
// token; nothing server-side remembers an "active band".
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	BandID string `json:"bid"`
}

// GenerateToken mints a signed access token for userID scoped to bandID.
func GenerateToken(userID, bandID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		BandID: bandID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString and returns
// its claims. Invalid or expired tokens yield common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
