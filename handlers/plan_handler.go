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

func verticalDetails(vertical models.Vertical) VerticalDetails {
	return VerticalDetails{
		ID:          vertical.ID,
		Slug:        string(vertical.Slug),
		Name:        vertical.Name,
		Description: vertical.Description,
	}
}

func planDetails(plan models.Plan, now time.Time) PlanDetails {
	verticals := make([]VerticalDetails, 0, len(plan.Verticals))
	for _, vertical := range plan.Verticals {
		verticals = append(verticals, verticalDetails(vertical))
	}

	details := PlanDetails{
		ID:              plan.ID,
		Name:            plan.Name,
		Slug:            plan.Slug,
		Description:     plan.Description,
		PlanType:        string(plan.PlanType),
		Price:           plan.Price,
		CurrentPrice:    plan.CurrentPrice(now),
		Verticals:       verticals,
		IsActive:        plan.IsActive,
		HasTrial:        plan.HasTrial,
		TrialDays:       plan.TrialDays,
		DiscountPercent: plan.DiscountPercent,
	}
	if plan.DiscountValidUntil != nil {
		until := plan.DiscountValidUntil.Format(time.RFC3339)
		details.DiscountValidUntil = &until
	}
	return details
}

func findPlanByID(c echo.Context, id string) (*models.Plan, *echo.HTTPError) {
	planID, err := strconv.Atoi(id)
	if err != nil || planID < 1 {
		return nil, &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Plan not found",
		}
	}

	var plan models.Plan
	if err := db.Conn.Preload("Verticals").Where("id = ?", planID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Plan not found",
			}
		}
		c.Logger().Errorf("Failed to find plan: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return &plan, nil
}

// verticalsBySlugs resolves a list of vertical slugs, rejecting unknown
// ones with a field error.
func verticalsBySlugs(slugs []string) ([]models.Vertical, *echo.HTTPError) {
	verticals := make([]models.Vertical, 0, len(slugs))
	for _, slug := range slugs {
		if !models.VerticalSlug(slug).Valid() {
			return nil, fieldError("verticals", "Unknown vertical: "+slug)
		}
		var vertical models.Vertical
		if err := db.Conn.Where("slug = ?", slug).First(&vertical).Error; err != nil {
			return nil, fieldError("verticals", "Unknown vertical: "+slug)
		}
		verticals = append(verticals, vertical)
	}
	return verticals, nil
}

// GetVerticalsHandler godoc
// @Summary      List verticals
// @Description  Retrieves all content verticals.
// @Tags         catalog
// @Produce      json
// @Success      200 {object} VerticalListResponse "Verticals retrieved successfully"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/verticals [get]
func GetVerticalsHandler(c echo.Context) error {
	logger := c.Logger()

	var verticals []models.Vertical
	if err := db.Conn.Order("slug").Find(&verticals).Error; err != nil {
		logger.Errorf("Failed to retrieve verticals: %v", err)
		return echo.ErrInternalServerError
	}

	data := make([]VerticalDetails, 0, len(verticals))
	for _, vertical := range verticals {
		data = append(data, verticalDetails(vertical))
	}

	return c.JSON(http.StatusOK, VerticalListResponse{
		Data:    data,
		Message: "Verticals retrieved successfully",
	})
}

// GetVerticalHandler godoc
// @Summary      Get a vertical
// @Description  Retrieves a single vertical by slug.
// @Tags         catalog
// @Produce      json
// @Param        slug  path  string  true  "Vertical slug"
// @Success      200 {object} VerticalDetails    "Vertical retrieved successfully"
// @Failure      404 {object} echo.HTTPError     "Vertical not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/verticals/{slug} [get]
func GetVerticalHandler(c echo.Context) error {
	var vertical models.Vertical
	if err := db.Conn.Where("slug = ?", c.Param("slug")).First(&vertical).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Vertical not found",
			}
		}
		c.Logger().Errorf("Failed to find vertical: %v", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, verticalDetails(vertical))
}

// CreateVerticalHandler godoc
// @Summary      Create a vertical
// @Description  Creates a vertical. Admins only. The slug must belong to the fixed category set; seeding normally creates all of them up front.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createVerticalRequest  body  CreateVerticalRequest  true  "Create vertical payload"
// @Success      201 {object} VerticalDetails    "Vertical created successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      409 {object} echo.HTTPError     "Vertical already exists"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/verticals [post]
func CreateVerticalHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanMutateCatalog(actor) {
		return errPermissionDenied
	}

	var req CreateVerticalRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create vertical payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	slug := models.VerticalSlug(req.Slug)
	if !slug.Valid() {
		return fieldError("slug", "Unknown vertical")
	}

	count := db.Conn.Where("slug = ?", slug).First(&models.Vertical{}).RowsAffected
	if count > 0 {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "This vertical already exists.",
		}
	}

	vertical := models.Vertical{
		Slug:        slug,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := db.Conn.Create(&vertical).Error; err != nil {
		logger.Errorf("Failed to create vertical: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusCreated, verticalDetails(vertical))
}

// DeleteVerticalHandler godoc
// @Summary      Delete a vertical
// @Description  Soft-deletes a vertical. Admins only. Verticals still referenced by a plan cannot be removed.
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path  string  true  "Vertical slug"
// @Success      204 "Vertical deleted successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "Vertical not found"
// @Failure      409 {object} echo.HTTPError     "Vertical still referenced by plans"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/verticals/{slug} [delete]
func DeleteVerticalHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanMutateCatalog(actor) {
		return errPermissionDenied
	}

	var vertical models.Vertical
	if err := db.Conn.Where("slug = ?", c.Param("slug")).First(&vertical).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Vertical not found",
			}
		}
		logger.Errorf("Failed to find vertical: %v", err)
		return echo.ErrInternalServerError
	}

	var referencing int64
	if err := db.Conn.Table("plan_verticals").Where("vertical_id = ?", vertical.ID).Count(&referencing).Error; err != nil {
		logger.Errorf("Failed to count plans referencing vertical: %v", err)
		return echo.ErrInternalServerError
	}
	if referencing > 0 {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "This vertical is bundled in plans and cannot be deleted.",
		}
	}

	if err := db.Conn.Delete(&vertical).Error; err != nil {
		logger.Errorf("Failed to delete vertical: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Vertical deleted successfully")
	return c.NoContent(http.StatusNoContent)
}

// UpdateVerticalHandler godoc
// @Summary      Update a vertical
// @Description  Updates the display name or description of a vertical. Admins only. The slug set itself is fixed.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path  string  true  "Vertical slug"
// @Param        updateVerticalRequest  body  UpdateVerticalRequest  true  "Update vertical payload"
// @Success      200 {object} VerticalDetails    "Vertical updated successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "Vertical not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/verticals/{slug} [patch]
func UpdateVerticalHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanMutateCatalog(actor) {
		return errPermissionDenied
	}

	var vertical models.Vertical
	if err := db.Conn.Where("slug = ?", c.Param("slug")).First(&vertical).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Vertical not found",
			}
		}
		logger.Errorf("Failed to find vertical: %v", err)
		return echo.ErrInternalServerError
	}

	var req UpdateVerticalRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update vertical payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != nil {
		vertical.Name = *req.Name
	}
	if req.Description != nil {
		vertical.Description = *req.Description
	}

	if err := db.Conn.Save(&vertical).Error; err != nil {
		logger.Errorf("Failed to update vertical: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, verticalDetails(vertical))
}

// GetPlansHandler godoc
// @Summary      List plans
// @Description  Retrieves subscription plans with their bundled verticals and current prices. Inactive plans are only listed for admins.
// @Tags         plans
// @Produce      json
// @Success      200 {object} PlanListResponse   "Plans retrieved successfully"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/plans [get]
func GetPlansHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Errorf("Failed to load user for session: %v", err)
		return echo.ErrInternalServerError
	}

	query := db.Conn.Preload("Verticals")
	if actor == nil || !actor.IsAdmin() {
		query = query.Where("is_active = ?", true)
	}

	var plans []models.Plan
	if err := query.Order("price").Find(&plans).Error; err != nil {
		logger.Errorf("Failed to retrieve plans: %v", err)
		return echo.ErrInternalServerError
	}

	now := time.Now()
	data := make([]PlanDetails, 0, len(plans))
	for _, plan := range plans {
		data = append(data, planDetails(plan, now))
	}

	return c.JSON(http.StatusOK, PlanListResponse{
		Data:    data,
		Message: "Plans retrieved successfully",
	})
}

// GetPlanHandler godoc
// @Summary      Get a plan
// @Description  Retrieves a single plan with its bundled verticals and current price.
// @Tags         plans
// @Produce      json
// @Param        id  path  int  true  "Plan ID"
// @Success      200 {object} PlanDetails        "Plan retrieved successfully"
// @Failure      404 {object} echo.HTTPError     "Plan not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/plans/{id} [get]
func GetPlanHandler(c echo.Context) error {
	plan, httpErr := findPlanByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}
	return c.JSON(http.StatusOK, planDetails(*plan, time.Now()))
}

// CreatePlanHandler godoc
// @Summary      Create a plan
// @Description  Creates a subscription plan bundling a set of verticals. Admins only.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createPlanRequest  body  CreatePlanRequest  true  "Create plan payload"
// @Success      201 {object} PlanDetails        "Plan created successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      409 {object} echo.HTTPError     "Duplicate plan slug"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/plans [post]
func CreatePlanHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanMutateCatalog(actor) {
		return errPermissionDenied
	}

	var req CreatePlanRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create plan payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	planType := models.PlanType(req.PlanType)
	if !planType.Valid() {
		return fieldError("plan_type", "Must be one of: info, pro")
	}

	count := db.Conn.Where("slug = ?", req.Slug).First(&models.Plan{}).RowsAffected
	if count > 0 {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "A plan with this slug already exists.",
		}
	}

	verticals, httpErr := verticalsBySlugs(req.Verticals)
	if httpErr != nil {
		return httpErr
	}

	plan := models.Plan{
		Name:               req.Name,
		Slug:               req.Slug,
		Description:        req.Description,
		PlanType:           planType,
		Price:              req.Price,
		Verticals:          verticals,
		IsActive:           true,
		HasTrial:           req.HasTrial,
		TrialDays:          req.TrialDays,
		DiscountPercent:    req.DiscountPercent,
		DiscountValidUntil: req.DiscountValidUntil,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := db.Conn.Create(&plan).Error; err != nil {
		logger.Errorf("Failed to create plan: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Plan created successfully")
	return c.JSON(http.StatusCreated, planDetails(plan, time.Now()))
}

// UpdatePlanHandler godoc
// @Summary      Update a plan
// @Description  Updates plan fields. When a vertical list is given it replaces the current set. Admins only.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Plan ID"
// @Param        updatePlanRequest  body  UpdatePlanRequest  true  "Update plan payload"
// @Success      200 {object} PlanDetails        "Plan updated successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "Plan not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/plans/{id} [patch]
func UpdatePlanHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanMutateCatalog(actor) {
		return errPermissionDenied
	}

	plan, httpErr := findPlanByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}

	var req UpdatePlanRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update plan payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.PlanType != nil {
		planType := models.PlanType(*req.PlanType)
		if !planType.Valid() {
			return fieldError("plan_type", "Must be one of: info, pro")
		}
		plan.PlanType = planType
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.HasTrial != nil {
		plan.HasTrial = *req.HasTrial
	}
	if req.TrialDays != nil {
		plan.TrialDays = *req.TrialDays
	}
	if req.DiscountPercent != nil {
		plan.DiscountPercent = *req.DiscountPercent
	}
	if req.DiscountValidUntil != nil {
		plan.DiscountValidUntil = req.DiscountValidUntil
	}

	if err := db.Conn.Save(plan).Error; err != nil {
		logger.Errorf("Failed to update plan: %v", err)
		return echo.ErrInternalServerError
	}

	if req.Verticals != nil {
		verticals, httpErr := verticalsBySlugs(*req.Verticals)
		if httpErr != nil {
			return httpErr
		}
		if err := db.Conn.Model(plan).Association("Verticals").Replace(verticals); err != nil {
			logger.Errorf("Failed to replace plan verticals: %v", err)
			return echo.ErrInternalServerError
		}
		plan.Verticals = verticals
	}

	return c.JSON(http.StatusOK, planDetails(*plan, time.Now()))
}

// DeletePlanHandler godoc
// @Summary      Delete a plan
// @Description  Soft-deletes a plan. Admins only. Plans with subscriptions cannot be removed.
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Plan ID"
// @Success      204 "Plan deleted successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "Plan not found"
// @Failure      409 {object} echo.HTTPError     "Plan has subscriptions"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/plans/{id} [delete]
func DeletePlanHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanMutateCatalog(actor) {
		return errPermissionDenied
	}

	plan, httpErr := findPlanByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}

	var subscriberCount int64
	if err := db.Conn.Model(&models.Subscription{}).Where("plan_id = ?", plan.ID).Count(&subscriberCount).Error; err != nil {
		logger.Errorf("Failed to count plan subscriptions: %v", err)
		return echo.ErrInternalServerError
	}
	if subscriberCount > 0 {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "This plan has subscriptions and cannot be deleted, deactivate it instead.",
		}
	}

	if err := db.Conn.Delete(plan).Error; err != nil {
		logger.Errorf("Failed to delete plan: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Plan deleted successfully")
	return c.NoContent(http.StatusNoContent)
}

// GetPlanSubscriptionsHandler godoc
// @Summary      List subscriptions of a plan
// @Description  Retrieves the subscriptions attached to a plan. Admins only.
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Plan ID"
// @Param        page      query   int     false  "Page number (default 1)"
// @Param        page_size query   int     false  "Page size (default 10, max 100)"
// @Success      200 {object} SubscriptionListResponse "Subscriptions retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "Plan not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/plans/{id}/subscriptions [get]
func GetPlanSubscriptionsHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return errPermissionDenied
	}

	plan, httpErr := findPlanByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}

	query := db.Conn.Model(&models.Subscription{}).Where("plan_id = ?", plan.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count plan subscriptions: %v", err)
		return echo.ErrInternalServerError
	}

	page, pageSize, offset := parsePagination(c)

	var subscriptions []models.Subscription
	if err := query.Preload("User").Preload("Plan").Preload("Plan.Verticals").
		Order("created_at DESC").Limit(pageSize).Offset(offset).
		Find(&subscriptions).Error; err != nil {
		logger.Errorf("Failed to fetch plan subscriptions: %v", err)
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
