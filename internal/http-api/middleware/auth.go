package middleware

import (
	"errors"
	"net/http"

	"bookhub/internal/metrics"
	"bookhub/internal/middleware/auth"

	"github.com/gin-gonic/gin"
)

// UsernameKey is the gin context key holding the authenticated username.
const UsernameKey = "username"

// BasicAuth is a Gin middleware that checks HTTP basic credentials against
// the guard. Every failure gets the same 401 body and challenge header.
func BasicAuth(guard *auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			reject(c, &auth.UnauthorizedError{Challenge: auth.Challenge})
			return
		}

		user, err := guard.Authenticate(username, password)
		if err != nil {
			reject(c, err)
			return
		}

		// Set user info in context for handlers to use
		c.Set(UsernameKey, user)
		c.Next()
	}
}

// reject answers 401 with the challenge carried by the guard's error.
func reject(c *gin.Context, err error) {
	metrics.AuthFailuresTotal.Inc()
	challenge := auth.Challenge
	var unauthorized *auth.UnauthorizedError
	if errors.As(err, &unauthorized) && unauthorized.Challenge != "" {
		challenge = unauthorized.Challenge
	}
	c.Header("WWW-Authenticate", challenge)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
}
