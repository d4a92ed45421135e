// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"presspass-server/access"
	"presspass-server/crypto"
	"presspass-server/db"
	"presspass-server/middlewares"
	"presspass-server/models"
	"presspass-server/passwordcheck"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func userDetails(user models.User) UserDetails {
	return UserDetails{
		UserID:    user.PublicID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		IsStaff:   user.IsStaff,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func findUserByID(c echo.Context, id string) (*models.User, *echo.HTTPError) {
	userID, err := strconv.Atoi(id)
	if err != nil || userID < 1 {
		return nil, &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "User not found",
		}
	}

	var user models.User
	if err := db.Conn.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "User not found",
			}
		}
		c.Logger().Errorf("Failed to find user: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return &user, nil
}

var errPermissionDenied = &echo.HTTPError{
	Code:    http.StatusForbidden,
	Message: "You do not have permission to perform this action",
}

// GetMeHandler godoc
// @Summary      Get the authenticated user
// @Description  Retrieves the authenticated user's profile together with their active subscription, if any.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} GetMeResponse      "User retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/me [get]
func GetMeHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired session token, please login again",
		}
	}

	response := GetMeResponse{
		UserDetails: userDetails(*user),
		Message:     "User retrieved successfully",
	}

	subscription, err := Gate.Resolver().ActiveSubscription(c.Request().Context(), user.ID)
	if err != nil {
		logger.Errorf("Failed to resolve active subscription: %v", err)
		return echo.ErrInternalServerError
	}
	if subscription != nil {
		details := subscriptionDetails(*subscription, time.Now())
		details.Username = user.Username
		response.ActiveSubscription = &details
	}

	return c.JSON(http.StatusOK, response)
}

// GetUsersHandler godoc
// @Summary      List users
// @Description  Retrieves a paginated list of all users. Admins only. Supports searching by username or email.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search    query   string  false  "Filter by username or email substring"
// @Param        role      query   string  false  "Filter by role"
// @Param        page      query   int     false  "Page number (default 1)"
// @Param        page_size query   int     false  "Page size (default 10, max 100)"
// @Success      200 {object} UserListResponse   "Users retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users [get]
func GetUsersHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanListUsers(actor) {
		return errPermissionDenied
	}

	query := db.Conn.Model(&models.User{})
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("username LIKE ? OR email LIKE ? OR first_name LIKE ? OR last_name LIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if role := c.QueryParam("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count users: %v", err)
		return echo.ErrInternalServerError
	}

	page, pageSize, offset := parsePagination(c)

	var users []models.User
	if err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&users).Error; err != nil {
		logger.Errorf("Failed to fetch users: %v", err)
		return echo.ErrInternalServerError
	}

	data := make([]UserDetails, 0, len(users))
	for _, user := range users {
		data = append(data, userDetails(user))
	}

	return c.JSON(http.StatusOK, UserListResponse{
		Data:       data,
		Pagination: paginationDetails(page, pageSize, total),
		Message:    "Users retrieved successfully",
	})
}

// GetUserHandler godoc
// @Summary      Get a user
// @Description  Retrieves a single user. Admins can read anyone, other users only themselves.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User ID"
// @Success      200 {object} UserDetails        "User retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "User not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/{id} [get]
func GetUserHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	user, httpErr := findUserByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}
	if !access.CanViewUser(actor, user) {
		return errPermissionDenied
	}

	return c.JSON(http.StatusOK, userDetails(*user))
}

// UpdateUserHandler godoc
// @Summary      Update a user
// @Description  Updates profile fields. Admins can update anyone including role and flags, other users only their own profile fields.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User ID"
// @Param        updateUserRequest  body  UpdateUserRequest  true  "Update user payload"
// @Success      200 {object} UserDetails        "User updated successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "User not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/{id} [patch]
func UpdateUserHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	user, httpErr := findUserByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}
	if !access.CanUpdateUser(actor, user) {
		return errPermissionDenied
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update user payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Role and account flags are administrative concerns; self-service
	// updates are limited to profile fields.
	if (req.Role != nil || req.IsStaff != nil || req.IsActive != nil) && !actor.IsAdmin() {
		return errPermissionDenied
	}

	if req.Email != nil {
		count := db.Conn.Where("email = ? AND id != ?", *req.Email, user.ID).First(&models.User{}).RowsAffected
		if count > 0 {
			return &echo.HTTPError{
				Code:    http.StatusConflict,
				Message: "This email is already registered, please try another one.",
			}
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		if !role.Valid() {
			return fieldError("role", "Must be one of: admin, editor, reader")
		}
		user.Role = role
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := db.Conn.Save(user).Error; err != nil {
		logger.Errorf("Failed to update user: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, userDetails(*user))
}

// DeleteUserHandler godoc
// @Summary      Delete a user
// @Description  Soft-deletes a user account. Admins only.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User ID"
// @Success      204 "User deleted successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "User not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/{id} [delete]
func DeleteUserHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanDeleteUser(actor) {
		return errPermissionDenied
	}

	user, httpErr := findUserByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}

	if err := db.Conn.Delete(user).Error; err != nil {
		logger.Errorf("Failed to delete user: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User deleted successfully")
	return c.NoContent(http.StatusNoContent)
}

func createPrivilegedUser(c echo.Context, role models.Role) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanCreateUserWithRole(actor, role) {
		return errPermissionDenied
	}

	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create user payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := passwordcheck.ValidatePassword(req.Password); err != nil {
		logger.Error("Password validation failed: ", err)
		return fieldError("password", err.Error())
	}

	count := db.Conn.Where("username = ? OR email = ?", req.Username, req.Email).First(&models.User{}).RowsAffected
	if count > 0 {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "A user with this username or email already exists.",
		}
	}

	newCrypto := crypto.NewCrypto()
	hash, err := newCrypto.HashPassword(req.Password)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		IsActive:  true,
	}

	if err := db.Conn.Create(&user).Error; err != nil {
		logger.Errorf("Failed to create %s user: %v", role, err)
		return echo.ErrInternalServerError
	}

	if err := models.RecordEvent(db.Conn, models.AuthEvent, models.EventOK, "user.create."+string(role), &actor.ID, "created user "+user.Username); err != nil {
		logger.Errorf("Failed to record user creation event: %v", err)
	}

	logger.Infof("Created %s user", role)
	return c.JSON(http.StatusCreated, userDetails(user))
}

// CreateAdminHandler godoc
// @Summary      Create an admin user
// @Description  Creates a user with the admin role. Restricted to staff members.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createUserRequest  body  CreateUserRequest  true  "Create user payload"
// @Success      201 {object} UserDetails        "Admin created successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      409 {object} echo.HTTPError     "Duplicate username or email"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/admins [post]
func CreateAdminHandler(c echo.Context) error {
	return createPrivilegedUser(c, models.RoleAdmin)
}

// CreateEditorHandler godoc
// @Summary      Create an editor user
// @Description  Creates a user with the editor role. Restricted to admins and staff members.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createUserRequest  body  CreateUserRequest  true  "Create user payload"
// @Success      201 {object} UserDetails        "Editor created successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      409 {object} echo.HTTPError     "Duplicate username or email"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/editors [post]
func CreateEditorHandler(c echo.Context) error {
	return createPrivilegedUser(c, models.RoleEditor)
}

// ChangePasswordHandler godoc
// @Summary      Change the authenticated user's password
// @Description  Verifies the current password before applying the new one. All other sessions are revoked.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        changePasswordRequest  body  ChangePasswordRequest  true  "Change password payload"
// @Success      200 {object} GenericResponse    "Password changed successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/users/password [put]
func ChangePasswordHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid change password payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	newCrypto := crypto.NewCrypto()
	if err := newCrypto.VerifyPassword(req.CurrentPassword, user.Password); err != nil {
		logger.Error("Current password verification failed.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Current password is incorrect",
		}
	}

	if err := passwordcheck.ValidatePassword(req.NewPassword); err != nil {
		logger.Error("Password validation failed: ", err)
		return fieldError("new_password", err.Error())
	}

	hash, err := newCrypto.HashPassword(req.NewPassword)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	user.Password = hash
	if err := db.Conn.Save(user).Error; err != nil {
		logger.Errorf("Failed to update password: %v", err)
		return echo.ErrInternalServerError
	}

	// A password change revokes every other session for the account.
	currentSession, _ := c.Get("session").(models.Session)
	if err := db.Conn.Unscoped().Where("user_id = ? AND id != ?", user.ID, currentSession.ID).Delete(&models.Session{}).Error; err != nil {
		logger.Errorf("Failed to revoke other sessions: %v", err)
	}

	if err := models.RecordEvent(db.Conn, models.AuthEvent, models.EventOK, "user.password_change", &user.ID, ""); err != nil {
		logger.Errorf("Failed to record password change event: %v", err)
	}

	return c.JSON(http.StatusOK, GenericResponse{
		Message: "Password changed successfully",
	})
}
