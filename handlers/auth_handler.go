// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"time"

	"presspass-server/commons"
	"presspass-server/crypto"
	"presspass-server/db"
	"presspass-server/middlewares"
	"presspass-server/models"
	"presspass-server/passwordcheck"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func generateSessionToken(c echo.Context, user models.User) (string, error) {
	logger := c.Logger()

	sessionToken, err := crypto.GenerateRandomString("st_long_", 32, "hex")
	if err != nil {
		logger.Errorf("Failed to generate session token: %v", err)
		return "", err
	}

	sessionExp := time.Now().Add(30 * 24 * time.Hour)
	sessionLastUsed := time.Now()

	userAgent := c.Request().Header.Get("User-Agent")
	ipAddress := c.RealIP()

	session := models.Session{
		UserID:     user.ID,
		Token:      sessionToken,
		LastUsedAt: &sessionLastUsed,
		ExpiresAt:  &sessionExp,
		UserAgent:  &userAgent,
		IPAddress:  &ipAddress,
	}

	if err := db.Conn.Create(&session).Error; err != nil {
		logger.Errorf("Failed to create session: %v", err)
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "https://presspass.news",
		"iat": time.Now().Unix(),
		"sub": user.PublicID,
		"aud": "https://api.presspass.news",
		"jti": sessionToken,
		"sid": session.ID,
		"uid": user.ID,
		"exp": session.ExpiresAt.Unix(),
	})

	tokenString, err := token.SignedString([]byte(commons.GetEnv("JWT_SECRET", "default_very_secret_key")))
	if err != nil {
		logger.Errorf("Failed to sign token: %v", err)
		return "", err
	}

	return tokenString, nil
}

// RegisterHandler godoc
// @Summary      Register a new reader account
// @Description  Creates a new user account. Self-registered accounts always get the reader role.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registerRequest  body  RegisterRequest  true  "Register request payload"
// @Success      201 {object} AuthResponse 	 "Registration successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing or invalid fields"
// @Failure      409 {object} echo.HTTPError     "Duplicate username or email"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/register [post]
func RegisterHandler(c echo.Context) error {
	logger := c.Logger()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid register request payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Password != req.PasswordConfirm {
		logger.Error("Password confirmation mismatch.")
		return fieldError("password_confirm", "Passwords do not match")
	}

	if err := passwordcheck.ValidatePassword(req.Password); err != nil {
		logger.Error("Password validation failed: ", err)
		return fieldError("password", err.Error())
	}

	count := db.Conn.Where("username = ?", req.Username).First(&models.User{}).RowsAffected
	if count > 0 {
		logger.Error("Username already taken.")
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "This username is already taken, please try another one.",
		}
	}

	count = db.Conn.Where("email = ?", req.Email).First(&models.User{}).RowsAffected
	if count > 0 {
		logger.Error("Email already registered.")
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "This email is already registered, please try another one.",
		}
	}

	newCrypto := crypto.NewCrypto()
	hash, err := newCrypto.HashPassword(req.Password)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	// Self-registration never grants anything above reader. Editors and
	// admins are provisioned through the user management endpoints.
	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleReader,
		IsActive:  true,
	}

	if err := db.Conn.Create(&user).Error; err != nil {
		logger.Errorf("Failed to create user: %v", err)
		return echo.ErrInternalServerError
	}

	if err := models.RecordEvent(db.Conn, models.AuthEvent, models.EventOK, "user.register", &user.ID, ""); err != nil {
		logger.Errorf("Failed to record register event: %v", err)
	}

	sessionToken, err := generateSessionToken(c, user)
	if err != nil {
		logger.Errorf("Failed to generate session token after registration: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User registered successfully")
	return c.JSON(http.StatusCreated, AuthResponse{
		SessionToken: sessionToken,
		User:         userDetails(user),
		Message:      "Registration successful",
	})
}

// LoginHandler godoc
// @Summary      Login a user
// @Description  Authenticates a user and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body  LoginRequest  true  "Login request payload"
// @Success      200 {object} AuthResponse 	 "Login successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/login [post]
func LoginHandler(c echo.Context) error {
	logger := c.Logger()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid login request payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := models.User{}
	if err := db.Conn.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("User not found.")
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Credentials are incorrect, please check your username and password",
			}
		}
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	newCrypto := crypto.NewCrypto()
	if err := newCrypto.VerifyPassword(req.Password, user.Password); err != nil {
		logger.Error("Password verification failed.")
		if err := models.RecordEvent(db.Conn, models.AuthEvent, models.EventDenied, "user.login", &user.ID, "invalid password"); err != nil {
			logger.Errorf("Failed to record login event: %v", err)
		}
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Credentials are incorrect, please check your username and password",
		}
	}

	if !user.IsActive {
		logger.Error("Account is deactivated.")
		if err := models.RecordEvent(db.Conn, models.AuthEvent, models.EventDenied, "user.login", &user.ID, "account deactivated"); err != nil {
			logger.Errorf("Failed to record login event: %v", err)
		}
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "This account has been deactivated",
		}
	}

	sessionToken, err := generateSessionToken(c, user)
	if err != nil {
		logger.Errorf("Failed to generate session token after login: %v", err)
		return echo.ErrInternalServerError
	}

	if err := models.RecordEvent(db.Conn, models.AuthEvent, models.EventOK, "user.login", &user.ID, ""); err != nil {
		logger.Errorf("Failed to record login event: %v", err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		SessionToken: sessionToken,
		User:         userDetails(user),
		Message:      "Login successful",
	})
}

// LogoutHandler godoc
// @Summary      Logout a user
// @Description  Logs out a user and invalidates the session.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204 "Logout successful"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/logout [post]
func LogoutHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired session token, please login again",
		}
	}

	if err := db.Conn.Unscoped().Delete(&session).Error; err != nil {
		logger.Errorf("Failed to delete session: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User logged out successfully")
	return c.NoContent(http.StatusNoContent)
}

// RefreshTokenHandler godoc
// @Summary      Refresh the session token
// @Description  Issues a fresh session token and invalidates the one used for this request.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} AuthResponse 	 "Token refreshed"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/token/refresh [post]
func RefreshTokenHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired session token, please login again",
		}
	}

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired session token, please login again",
		}
	}

	sessionToken, err := generateSessionToken(c, *user)
	if err != nil {
		logger.Errorf("Failed to generate refreshed session token: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Unscoped().Delete(&session).Error; err != nil {
		logger.Errorf("Failed to delete previous session: %v", err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		SessionToken: sessionToken,
		User:         userDetails(*user),
		Message:      "Token refreshed successfully",
	})
}
