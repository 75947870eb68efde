package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authUserKey = "auth_user"

// AuthOptional decodes a bearer token when one is sent and stores its
// claims on the context. It never aborts: the itinerary handlers assume
// the real permission gate already ran upstream.
func AuthOptional(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if raw, ok := strings.CutPrefix(header, "Bearer "); ok {
			token, err := jwt.Parse(strings.TrimSpace(raw), func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err == nil && token.Valid {
				if claims, ok := token.Claims.(jwt.MapClaims); ok {
					c.Set(authUserKey, claims)
				}
			}
		}
		c.Next()
	}
}

// GetAuthClaims returns the decoded token claims when a valid token was sent.
func GetAuthClaims(c *gin.Context) (jwt.MapClaims, bool) {
	if v, ok := c.Get(authUserKey); ok {
		if claims, ok := v.(jwt.MapClaims); ok {
			return claims, true
		}
	}
	return nil, false
}
