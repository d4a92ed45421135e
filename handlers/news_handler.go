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
	"presspass-server/rabbitmq"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func newsDetails(news models.News, includeContent bool) NewsDetails {
	details := NewsDetails{
		ID:             news.ID,
		Title:          news.Title,
		Subtitle:       news.Subtitle,
		Category:       string(news.Category),
		IsProContent:   news.IsProContent,
		Status:         string(news.Status),
		AuthorID:       news.AuthorID,
		AuthorUsername: news.Author.Username,
		CreatedAt:      news.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      news.UpdatedAt.Format(time.RFC3339),
	}
	if includeContent {
		details.Content = news.Content
	}
	if news.PublicationDate != nil {
		publishedAt := news.PublicationDate.Format(time.RFC3339)
		details.PublicationDate = &publishedAt
	}
	return details
}

func findNewsByID(c echo.Context, id string) (*models.News, *echo.HTTPError) {
	newsID, err := strconv.Atoi(id)
	if err != nil || newsID < 1 {
		return nil, &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Article not found",
		}
	}

	var news models.News
	if err := db.Conn.Preload("Author").Where("id = ?", newsID).First(&news).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Article not found",
			}
		}
		c.Logger().Errorf("Failed to find article: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return &news, nil
}

// GetNewsListHandler godoc
// @Summary      List articles
// @Description  Retrieves a paginated list of articles, without bodies. Visibility depends on the caller: admins see everything, editors see their own drafts plus everything published, everyone else sees published articles only.
// @Tags         news
// @Produce      json
// @Param        category  query   string  false  "Filter by vertical slug"
// @Param        status    query   string  false  "Filter by workflow status"
// @Param        is_pro_content query bool false  "Filter by pro-content flag"
// @Param        search    query   string  false  "Filter by title or subtitle substring"
// @Param        ordering  query   string  false  "Sort order: publication_date, -publication_date, created_at, -created_at"
// @Param        page      query   int     false  "Page number (default 1)"
// @Param        page_size query   int     false  "Page size (default 10, max 100)"
// @Success      200 {object} NewsListResponse   "Articles retrieved successfully"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/news [get]
func GetNewsListHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Errorf("Failed to load user for session: %v", err)
		return echo.ErrInternalServerError
	}

	query := db.Conn.Model(&models.News{}).Scopes(access.NewsVisibleTo(actor))

	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if pro := c.QueryParam("is_pro_content"); pro != "" {
		query = query.Where("is_pro_content = ?", pro == "true")
	}
	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR subtitle LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count articles: %v", err)
		return echo.ErrInternalServerError
	}

	order := "publication_date DESC, created_at DESC"
	switch c.QueryParam("ordering") {
	case "publication_date":
		order = "publication_date ASC"
	case "-publication_date":
		order = "publication_date DESC"
	case "created_at":
		order = "created_at ASC"
	case "-created_at":
		order = "created_at DESC"
	}

	page, pageSize, offset := parsePagination(c)

	var articles []models.News
	if err := query.Preload("Author").Order(order).Limit(pageSize).Offset(offset).Find(&articles).Error; err != nil {
		logger.Errorf("Failed to fetch articles: %v", err)
		return echo.ErrInternalServerError
	}

	data := make([]NewsDetails, 0, len(articles))
	for _, article := range articles {
		data = append(data, newsDetails(article, false))
	}

	return c.JSON(http.StatusOK, NewsListResponse{
		Data:       data,
		Pagination: paginationDetails(page, pageSize, total),
		Message:    "Articles retrieved successfully",
	})
}

// GetNewsHandler godoc
// @Summary      Get an article
// @Description  Retrieves a single article with its body. Drafts are only visible to admins and their author. Pro content requires a subscription covering the article's vertical.
// @Tags         news
// @Produce      json
// @Param        id  path  int  true  "Article ID"
// @Success      200 {object} NewsResponse       "Article retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Authentication required for pro content"
// @Failure      403 {object} echo.HTTPError     "Subscription does not cover this article"
// @Failure      404 {object} echo.HTTPError     "Article not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/news/{id} [get]
func GetNewsHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Errorf("Failed to load user for session: %v", err)
		return echo.ErrInternalServerError
	}

	news, httpErr := findNewsByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}

	allowed, err := Gate.CanReadNews(c.Request().Context(), actor, news)
	if err != nil {
		logger.Errorf("Failed to evaluate article access: %v", err)
		return echo.ErrInternalServerError
	}
	if !allowed {
		// Drafts stay invisible to everyone but their author and admins.
		if !news.IsPublished() {
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Article not found",
			}
		}
		if actor == nil {
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Authentication required to read this article",
			}
		}
		return &echo.HTTPError{
			Code:    http.StatusForbidden,
			Message: "Your subscription does not cover this article",
		}
	}

	return c.JSON(http.StatusOK, NewsResponse{
		NewsDetails: newsDetails(*news, true),
		Message:     "Article retrieved successfully",
	})
}

// CreateNewsHandler godoc
// @Summary      Create an article
// @Description  Creates a draft article authored by the caller. Editors and admins only.
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createNewsRequest  body  CreateNewsRequest  true  "Create article payload"
// @Success      201 {object} NewsResponse       "Article created successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/news [post]
func CreateNewsHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}
	if !access.CanCreateNews(actor) {
		return errPermissionDenied
	}

	var req CreateNewsRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create article payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category := models.VerticalSlug(req.Category)
	if !category.Valid() {
		return fieldError("category", "Unknown vertical")
	}

	news := models.News{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Content:      req.Content,
		Category:     category,
		IsProContent: req.IsProContent,
		Status:       models.DraftNews,
		AuthorID:     actor.ID,
	}

	if err := db.Conn.Create(&news).Error; err != nil {
		logger.Errorf("Failed to create article: %v", err)
		return echo.ErrInternalServerError
	}
	news.Author = *actor

	logger.Infof("Article created successfully")
	return c.JSON(http.StatusCreated, NewsResponse{
		NewsDetails: newsDetails(news, true),
		Message:     "Article created successfully",
	})
}

// UpdateNewsHandler godoc
// @Summary      Update an article
// @Description  Updates article fields. Admins can update anything, editors only their own articles. Updating does not change the workflow status.
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Article ID"
// @Param        updateNewsRequest  body  UpdateNewsRequest  true  "Update article payload"
// @Success      200 {object} NewsResponse       "Article updated successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "Article not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/news/{id} [patch]
func UpdateNewsHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	news, httpErr := findNewsByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}
	if !access.CanMutateNews(actor, news) {
		return errPermissionDenied
	}

	var req UpdateNewsRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update article payload:", err)
		return echo.ErrBadRequest
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Title != nil {
		news.Title = *req.Title
	}
	if req.Subtitle != nil {
		news.Subtitle = *req.Subtitle
	}
	if req.Content != nil {
		news.Content = *req.Content
	}
	if req.Category != nil {
		category := models.VerticalSlug(*req.Category)
		if !category.Valid() {
			return fieldError("category", "Unknown vertical")
		}
		news.Category = category
	}
	if req.IsProContent != nil {
		news.IsProContent = *req.IsProContent
	}

	if err := db.Conn.Save(news).Error; err != nil {
		logger.Errorf("Failed to update article: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, NewsResponse{
		NewsDetails: newsDetails(*news, true),
		Message:     "Article updated successfully",
	})
}

// DeleteNewsHandler godoc
// @Summary      Delete an article
// @Description  Soft-deletes an article. Admins can delete anything, editors only their own articles.
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Article ID"
// @Success      204 "Article deleted successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "Article not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/news/{id} [delete]
func DeleteNewsHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	news, httpErr := findNewsByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}
	if !access.CanMutateNews(actor, news) {
		return errPermissionDenied
	}

	if err := db.Conn.Delete(news).Error; err != nil {
		logger.Errorf("Failed to delete article: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Article deleted successfully")
	return c.NoContent(http.StatusNoContent)
}

// PublishNewsHandler godoc
// @Summary      Publish an article
// @Description  Moves an article to the published state and stamps the publication date. Publishing an already published article re-stamps the date. Admins can publish anything, editors only their own articles.
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Article ID"
// @Success      200 {object} NewsResponse       "Article published successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      403 {object} echo.HTTPError     "Forbidden"
// @Failure      404 {object} echo.HTTPError     "Article not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/news/{id}/publish [post]
func PublishNewsHandler(c echo.Context) error {
	logger := c.Logger()

	actor, err := middlewares.RequireAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	news, httpErr := findNewsByID(c, c.Param("id"))
	if httpErr != nil {
		return httpErr
	}
	if !access.CanPublishNews(actor, news) {
		if err := models.RecordEvent(db.Conn, models.NewsEvent, models.EventDenied, "news.publish", &actor.ID, ""); err != nil {
			logger.Errorf("Failed to record publish event: %v", err)
		}
		return errPermissionDenied
	}

	news.Publish(time.Now())
	if err := db.Conn.Save(news).Error; err != nil {
		logger.Errorf("Failed to publish article: %v", err)
		return echo.ErrInternalServerError
	}

	if err := models.RecordEvent(db.Conn, models.NewsEvent, models.EventOK, "news.publish", &actor.ID, news.Title); err != nil {
		logger.Errorf("Failed to record publish event: %v", err)
	}

	event := rabbitmq.NewsPublishedEvent{
		NewsID:          news.ID,
		Title:           news.Title,
		Category:        string(news.Category),
		IsProContent:    news.IsProContent,
		AuthorID:        news.AuthorID,
		PublicationDate: *news.PublicationDate,
	}
	if err := rabbitmq.PublishEvent(c.Request().Context(), rabbitmq.NewsPublishedKey, event); err != nil {
		logger.Warnf("Failed to publish %s event: %v", rabbitmq.NewsPublishedKey, err)
	}

	logger.Infof("Article published successfully")
	return c.JSON(http.StatusOK, NewsResponse{
		NewsDetails: newsDetails(*news, true),
		Message:     "Article published successfully",
	})
}
