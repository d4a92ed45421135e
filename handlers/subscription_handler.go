// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"presspass-server/access"
	"presspass-server/db"
	"presspass-server/middlewares"
	"presspass-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func subscriptionDetails(subscription models.Subscription, now time.Time) SubscriptionDetails {
	details := SubscriptionDetails{
		SubscriptionID: subscription.PublicID,
		UserID:         subscription.UserID,
		Username:       subscription.User.Username,
		Plan:           planDetails(subscription.Plan, now),
		Status:         string(subscription.Status),
		StartDate:      subscription.StartDate.Format(time.RFC3339),
		AutoRenew:      subscription.AutoRenew,
		IsCurrent:      subscription.IsCurrent(now),
	}
	if subscription.EndDate != nil {
		endDate := subscription.EndDate.Format(time.RFC3339)
		details.EndDate = &endDate
	}
	return details
}

func findSubscriptionByID(c echo.Context, id string) (*models.Subscription, *echo.HTTPError) {
	subscriptionID, err := strconv.Atoi(id)
	if err != nil || subscriptionID < 1 {
		return nil, &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Subscription not found",
		}
	}

	var subscription models.Subscription
	if err := db.Conn.Preload("User").Preload("Plan").Preload("Plan.Verticals").
		Where("id = ?", subscriptionID).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Subscription not found",
			}
		}
		c.Logger().Errorf("Failed to find subscription: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return &subscription, nil
}

// GetSubscriptionsHandler godoc
// @Summary      List subscriptions
// @Description  Retrieves a paginated list of subscriptions. Admins see every subscription, other users only their own.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        status    query   string  false  "Filter by status"
// @Param        user_id   query   int     false  "Filter by user, admins only"
// @Param        plan_id   query   int     false  "Filter by plan"
// @Param        page      query   int     false  "Page number (default 1)"
// @Param        page_size query   int     false  "Page size (default 10, max 100)"
// @Success      200 {object} SubscriptionListResponse "Subscriptions retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/subscriptions [get]
func GetSubscriptionsHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	query := db.Conn.Model(&models.Subscription{}).Scopes(access.SubscriptionsVisibleTo(actor))

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if userID := c.QueryParam("user_id"); userID != "" && actor.IsAdmin() {
		query = query.Where("user_id = ?", userID)
	}
	if planID := c.QueryParam("plan_id"); planID != "" {
		query = query.Where("plan_id = ?", planID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count subscriptions: %v", err)
		return echo.ErrInternalServerError
	}

	page, pageSize, offset := parsePagination(c)

	var subscriptions []models.Subscription
	if err := query.Preload("User").Preload("Plan").Preload("Plan.Verticals").
		Order("created_at DESC").Limit(pageSize).Offset(offset).
		Find(&subscriptions).Error; err != nil {
		logger.Errorf("Failed to fetch subscriptions: %v", err)
		return echo.ErrInternalServerError
	}

	now := time.Now()
	data := make([]SubscriptionDetails, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		data = append(data, subscriptionDetails(subscription, now))
	}

	return c.JSON(http.StatusOK, SubscriptionListResponse{
		Data:       data,
		Pagination: paginationDetails(page, pageSize, total),
		Message:    "Subscriptions retrieved successfully",
	})
}

// GetSubscriptionHandler godoc
// @Summary      Get a subscription
// @Description  Retrieves a single subscription. Admins can read any, other users only their own. Non-visible subscriptions read as not found.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Subscription ID"
// @Success      200 {object} SubscriptionDetails "Subscription retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      404 {object} echo.HTTPError     "Subscription not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/subscriptions/{id} [get]
func GetSubscriptionHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	subscription, httpErr := findSubscriptionByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}
	if !access.CanViewSubscription(actor, subscription) {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Subscription not found",
		}
	}

	return c.JSON(http.StatusOK, subscriptionDetails(*subscription, time.Now()))
}

// CreateSubscriptionHandler godoc
// @Summary      Create a subscription
// @Description  Subscribes a user to a plan. Admins only. A user holds at most one subscription per plan. Trial plans get an end date derived from the trial length when none is given.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createSubscriptionRequest  body  CreateSubscriptionRequest  true  "Create subscription payload"
// @Success      201 {object} SubscriptionDetails "Subscription created successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "User or plan not found"
// @Failure      409 {object} echo.HTTPError     "User already subscribed to this plan"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/subscriptions [post]
func CreateSubscriptionHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanMutateSubscription(actor) {
		return errPermissionDenied
	}

	var req CreateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create subscription payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status := models.ActiveSubscription
	if req.Status != "" {
		status = models.SubscriptionStatus(req.Status)
		if !status.Valid() {
			return fieldError("status", "Must be one of: active, pending, cancelled, expired")
		}
	}

	startDate := time.Now()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	endDate := req.EndDate
	if endDate != nil && !endDate.After(startDate) {
		return fieldError("end_date", "End date must be after start date")
	}

	var user models.User
	if err := db.Conn.Where("id = ?", req.UserID).First(&user).Error; err != nil {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "User not found",
		}
	}

	var plan models.Plan
	if err := db.Conn.Preload("Verticals").Where("id = ?", req.PlanID).First(&plan).Error; err != nil {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Plan not found",
		}
	}

	// The (user_id, plan_id) unique index also covers soft-deleted rows,
	// so look those up too and purge them before inserting a replacement.
	var existing models.Subscription
	if db.Conn.Unscoped().Where("user_id = ? AND plan_id = ?", req.UserID, req.PlanID).First(&existing).RowsAffected > 0 {
		if !existing.DeletedAt.Valid {
			return &echo.HTTPError{
				Code:    http.StatusConflict,
				Message: "This user is already subscribed to this plan.",
			}
		}
		if err := db.Conn.Unscoped().Delete(&existing).Error; err != nil {
			logger.Errorf("Failed to purge deleted subscription: %v", err)
			return echo.ErrInternalServerError
		}
	}

	if endDate == nil && plan.HasTrial && plan.TrialDays > 0 {
		trialEnd := startDate.AddDate(0, 0, int(plan.TrialDays))
		endDate = &trialEnd
	}

	subscription := models.Subscription{
		Status:    status,
		StartDate: startDate,
		EndDate:   endDate,
		AutoRenew: true,
		UserID:    req.UserID,
		PlanID:    req.PlanID,
	}
	if req.AutoRenew != nil {
		subscription.AutoRenew = *req.AutoRenew
	}

	if err := db.Conn.Create(&subscription).Error; err != nil {
		logger.Errorf("Failed to create subscription: %v", err)
		return echo.ErrInternalServerError
	}
	subscription.User = user
	subscription.Plan = plan

	if err := models.RecordEvent(db.Conn, models.SubscriptionEvent, models.EventOK, "subscription.create", &actor.ID, subscription.PublicID); err != nil {
		logger.Errorf("Failed to record subscription event: %v", err)
	}

	logger.Infof("Subscription created successfully")
	return c.JSON(http.StatusCreated, subscriptionDetails(subscription, time.Now()))
}

// UpdateSubscriptionHandler godoc
// @Summary      Update a subscription
// @Description  Updates the status, end date or auto-renew flag of a subscription. Admins only. Access checks may keep honoring a cached snapshot of the previous state until it expires.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Subscription ID"
// @Param        updateSubscriptionRequest  body  UpdateSubscriptionRequest  true  "Update subscription payload"
// @Success      200 {object} SubscriptionDetails "Subscription updated successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "Subscription not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/subscriptions/{id} [patch]
func UpdateSubscriptionHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanMutateSubscription(actor) {
		return errPermissionDenied
	}

	subscription, httpErr := findSubscriptionByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}

	var req UpdateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update subscription payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Status != nil {
		status := models.SubscriptionStatus(*req.Status)
		if !status.Valid() {
			return fieldError("status", "Must be one of: active, pending, cancelled, expired")
		}
		subscription.Status = status
	}
	if req.EndDate != nil {
		if !req.EndDate.After(subscription.StartDate) {
			return fieldError("end_date", "End date must be after start date")
		}
		subscription.EndDate = req.EndDate
	}
	if req.AutoRenew != nil {
		subscription.AutoRenew = *req.AutoRenew
	}

	if err := db.Conn.Save(subscription).Error; err != nil {
		logger.Errorf("Failed to update subscription: %v", err)
		return echo.ErrInternalServerError
	}

	if err := models.RecordEvent(db.Conn, models.SubscriptionEvent, models.EventOK, "subscription.update", &actor.ID, subscription.PublicID); err != nil {
		logger.Errorf("Failed to record subscription event: %v", err)
	}

	return c.JSON(http.StatusOK, subscriptionDetails(*subscription, time.Now()))
}

// DeleteSubscriptionHandler godoc
// @Summary      Delete a subscription
// @Description  Soft-deletes a subscription. Admins only.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Subscription ID"
// @Success      204 "Subscription deleted successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "Subscription not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/subscriptions/{id} [delete]
func DeleteSubscriptionHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanMutateSubscription(actor) {
		return errPermissionDenied
	}

	subscription, httpErr := findSubscriptionByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}

	if err := db.Conn.Delete(subscription).Error; err != nil {
		logger.Errorf("Failed to delete subscription: %v", err)
		return echo.ErrInternalServerError
	}

	if err := models.RecordEvent(db.Conn, models.SubscriptionEvent, models.EventOK, "subscription.delete", &actor.ID, subscription.PublicID); err != nil {
		logger.Errorf("Failed to record subscription event: %v", err)
	}

	logger.Infof("Subscription deleted successfully")
	return c.NoContent(http.StatusNoContent)
}
