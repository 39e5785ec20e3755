package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Tokens are issued by an external identity provider; this middleware only
// verifies the HMAC signature and lifts the claims into the request context.

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// Auth requires a valid bearer token and sets user_id and role.
func Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, role, err := parseBearer(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		c.Set("user_id", userID)
		c.Set("role", role)
		return next(c)
	}
}

// OptionalAuth lifts claims when a valid token is present and lets the
// request through either way. Guest checkout relies on this.
func OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if userID, role, err := parseBearer(c); err == nil {
			c.Set("user_id", userID)
			c.Set("role", role)
		}
		return next(c)
	}
}

func parseBearer(c echo.Context) (userID, role string, err error) {
	header := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", "", errors.New("missing bearer token")
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	userID, _ = claims["sub"].(string)
	if userID == "" {
		userID, _ = claims["id"].(string)
	}
	if userID == "" {
		return "", "", errors.New("token missing subject")
	}
	role, _ = claims["role"].(string)
	return userID, role, nil
}
