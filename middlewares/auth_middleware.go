package middlewares

import (
	"errors"
	"net/http"

	"github.com/marcdejesus/fitness/logger"
	"github.com/marcdejesus/fitness/models"
	"github.com/marcdejesus/fitness/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAuth resolves the Authorization header and rejects the request
// when no valid identity comes out of it. On success the profile is on
// both the gin context and the request context.
func RequireAuth(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, credential, err := identity.ResolveHeader(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		if profile == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		attachIdentity(c, profile, credential)
		c.Next()
	}
}

// OptionalAuth resolves an identity when a credential is present but lets
// anonymous requests through. A credential that is present and invalid is
// still rejected: silently downgrading it to anonymous would mask client
// bugs and token expiry.
func OptionalAuth(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, credential, err := identity.ResolveHeader(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		if profile != nil {
			attachIdentity(c, profile, credential)
		}
		c.Next()
	}
}

func attachIdentity(c *gin.Context, profile *models.UserProfile, credential string) {
	c.Set("identity", profile)
	c.Set("userID", profile.UserID)
	c.Set("credential", credential)
	c.Request = c.Request.WithContext(services.WithIdentity(c.Request.Context(), profile))
}

func abortUnauthorized(c *gin.Context, err error) {
	var authErr *services.AuthError
	if errors.As(err, &authErr) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authErr.Reason})
		return
	}
	logger.Error("identity resolution failed", zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
