package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"causes-api/internal/auth"
)

// Authentication resolves a Bearer token to a subject and stores it under
// auth.SubjectKey. It never aborts: a request without a valid token reaches
// the handler with no subject and is answered there.
func Authentication(verifier *auth.TokenVerifier, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || verifier == nil {
			c.Next()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
			logger.WithField("path", c.Request.URL.Path).Debug("Ignoring malformed authorization header")
			c.Next()
			return
		}

		sub, err := verifier.Subject(strings.TrimSpace(tokenParts[1]))
		if err != nil {
			logger.WithFields(logrus.Fields{
				"error":      err.Error(),
				"path":       c.Request.URL.Path,
				"request_id": c.GetString(RequestIDKey),
			}).Warn("Token validation failed")
			c.Next()
			return
		}

		c.Set(auth.SubjectKey, sub)
		c.Next()
	}
}
