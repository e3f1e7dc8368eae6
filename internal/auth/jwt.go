package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/khanhvo/retail-backoffice/internal/models"
)

var jwtSecret = []byte("dev-only-secret")

// SetSecret installs the signing key from configuration; call once at startup.
func SetSecret(secret string) {
	jwtSecret = []byte(secret)
}

func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	})
}

// TokenClaims parses a bearer Authorization header value and returns the
// token with its claims.
func TokenClaims(authorization string) (*jwt.Token, jwt.MapClaims, error) {
	tokenStr := authorization
	if len(tokenStr) > 7 && tokenStr[:7] == "Bearer " {
		tokenStr = tokenStr[7:]
	}
	token, err := ParseToken(tokenStr)
	if err != nil {
		return nil, nil, err
	}
	claims, _ := token.Claims.(jwt.MapClaims)
	return token, claims, nil
}
