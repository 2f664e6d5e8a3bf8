package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT issues an HS256 token carrying the subject and email claims
// the identity resolver expects. Signed with PROVIDER_JWT_SECRET, so it
// resolves through the signed-claim path when that secret is configured.
func GenerateJWT(subject, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"exp":   time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("PROVIDER_JWT_SECRET")))
}
