package middlewares

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware rejects requests without a valid Bearer token and stores
// the authenticated user's id and email in the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, err := userFromHeader(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set("userID", userID)
		c.Set("email", email)
		c.Next()
	}
}

// OptionalAuth resolves the caller when a token is present but lets
// anonymous requests through. Read endpoints use it for the personalized
// is_subscribed / is_favorited flags.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if userID, email, err := userFromHeader(c); err == nil {
				c.Set("userID", userID)
				c.Set("email", email)
			}
		}
		c.Next()
	}
}

// AllowedHosts enforces the ALLOWED_HOSTS allowlist. An empty list allows
// any Host header.
func AllowedHosts(hosts []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		allowed[strings.ToLower(h)] = struct{}{}
	}
	return func(c *gin.Context) {
		if len(allowed) == 0 {
			c.Next()
			return
		}
		host := strings.ToLower(c.Request.Host)
		if i := strings.LastIndex(host, ":"); i != -1 {
			host = host[:i]
		}
		if _, ok := allowed[host]; !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "disallowed host"})
			return
		}
		c.Next()
	}
}

func userFromHeader(c *gin.Context) (uint, string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, "", errors.New("Authorization header required")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		return 0, "", errors.New("server misconfigured: JWT_SECRET not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}

	email, _ := claims["email"].(string)

	if v, ok := claims["userId"].(float64); ok {
		return uint(v), email, nil
	}

	// Fallback: resolve by the email claim.
	if email == "" {
		return 0, "", errors.New("email claim missing")
	}
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return 0, "", errors.New("user not found")
	}
	return user.ID, email, nil
}
