// SPX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"presspass-server/commons"
	"presspass-server/db"
	"presspass-server/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// VerifySessionMiddleware authenticates the bearer token and stores the
// backing session in the request context. Requests without a valid
// session are rejected.
func VerifySessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := sessionFromRequest(c)
		if err != nil {
			c.Logger().Error("Authentication failed: ", err)
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired session token, please login again",
			}
		}
		c.Set("session", *session)
		return next(c)
	}
}

// OptionalSessionMiddleware attaches the session when a valid bearer
// token is present and lets the request through anonymously otherwise.
// Used on routes whose responses are filtered per role rather than
// blocked outright.
func OptionalSessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if session, err := sessionFromRequest(c); err == nil {
			c.Set("session", *session)
		}
		return next(c)
	}
}

func sessionFromRequest(c echo.Context) (*models.Session, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errors.New("authorization header missing or invalid")
	}
	sessionToken := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(sessionToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(commons.GetEnv("JWT_SECRET", "default_very_secret_key")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("token failed to parse or is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("failed to parse token claims")
	}

	sessionID := claims["sid"]
	userID := claims["uid"]
	tokenID := claims["jti"]

	session := models.Session{}
	err = db.Conn.Where("id = ? AND user_id = ? AND token = ?", sessionID, userID, tokenID).First(&session).Error
	if err != nil || session.ExpiresAt == nil || session.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("session not found or expired")
	}

	now := time.Now()
	session.LastUsedAt = &now
	if err := db.Conn.Save(&session).Error; err != nil {
		c.Logger().Error("Failed to update session LastUsedAt: ", err)
	}

	return &session, nil
}

// GetAuthenticatedUser loads the user behind the authenticated session
// in the request context, or nil when the request is anonymous.
func GetAuthenticatedUser(c echo.Context) (*models.User, error) {
	session, ok := c.Get("session").(models.Session)
	if !ok {
		return nil, nil
	}
	var user models.User
	if err := db.Conn.Where("id = ?", session.UserID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RequireAuthenticatedUser is GetAuthenticatedUser for routes behind
// VerifySessionMiddleware, where an identity must exist.
func RequireAuthenticatedUser(c echo.Context) (*models.User, error) {
	user, err := GetAuthenticatedUser(c)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("no authenticated user found")
	}
	return user, nil
}
