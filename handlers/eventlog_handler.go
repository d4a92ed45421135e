// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"time"

	"presspass-server/access"
	"presspass-server/db"
	"presspass-server/middlewares"
	"presspass-server/models"

	"github.com/labstack/echo/v4"
)

func eventLogDetails(event models.EventLog) EventLogDetails {
	return EventLogDetails{
		EventID:     event.EID.String(),
		Category:    string(event.Category),
		Status:      string(event.Status),
		Action:      event.Action,
		Description: event.Description,
		UserID:      event.UserID,
		CreatedAt:   event.CreatedAt.Format(time.RFC3339),
	}
}

// GetEventLogsHandler godoc
// @Summary      List audit events
// @Description  Retrieves the audit trail of authentication, publishing and subscription events. Admins only.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        category  query   string  false  "Filter by category: AUTH, NEWS, SUBSCRIPTION"
// @Param        status    query   string  false  "Filter by status: OK, DENIED, FAILED"
// @Param        user_id   query   int     false  "Filter by acting user"
// @Param        page      query   int     false  "Page number (default 1)"
// @Param        page_size query   int     false  "Page size (default 10, max 100)"
// @Success      200 {object} EventLogListResponse "Events retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/event-logs [get]
func GetEventLogsHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanViewEventLogs(actor) {
		return errPermissionDenied
	}

	query := db.Conn.Model(&models.EventLog{})
	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if userID := c.QueryParam("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count events: %v", err)
		return echo.ErrInternalServerError
	}

	page, pageSize, offset := parsePagination(c)

	var events []models.EventLog
	if err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&events).Error; err != nil {
		logger.Errorf("Failed to fetch events: %v", err)
		return echo.ErrInternalServerError
	}

	data := make([]EventLogDetails, 0, len(events))
	for _, event := range events {
		data = append(data, eventLogDetails(event))
	}

	return c.JSON(http.StatusOK, EventLogListResponse{
		Data:       data,
		Pagination: paginationDetails(page, pageSize, total),
		Message:    "Events retrieved successfully",
	})
}
