// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"net/http"

	"presspass-server/commons"
	"presspass-server/handlers"
	"presspass-server/middlewares"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering v1 routes")

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api_v1 := e.Group("/v1")

	api_v1.POST("/auth/register", handlers.RegisterHandler)
	api_v1.POST("/auth/login", handlers.LoginHandler)
	api_v1.POST("/auth/logout", handlers.LogoutHandler, middlewares.VerifySessionMiddleware)
	api_v1.POST("/auth/token/refresh", handlers.RefreshTokenHandler, middlewares.VerifySessionMiddleware)

	api_v1.GET("/users", handlers.GetUsersHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/users/me", handlers.GetMeHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/users/password", handlers.ChangePasswordHandler, middlewares.VerifySessionMiddleware)
	api_v1.POST("/users/admins", handlers.CreateAdminHandler, middlewares.VerifySessionMiddleware)
	api_v1.POST("/users/editors", handlers.CreateEditorHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/users/:id", handlers.GetUserHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/users/:id", handlers.UpdateUserHandler, middlewares.VerifySessionMiddleware)
	api_v1.PATCH("/users/:id", handlers.UpdateUserHandler, middlewares.VerifySessionMiddleware)
	api_v1.DELETE("/users/:id", handlers.DeleteUserHandler, middlewares.VerifySessionMiddleware)

	api_v1.GET("/news", handlers.GetNewsListHandler, middlewares.OptionalSessionMiddleware)
	api_v1.GET("/news/:id", handlers.GetNewsHandler, middlewares.OptionalSessionMiddleware)
	api_v1.POST("/news", handlers.CreateNewsHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/news/:id", handlers.UpdateNewsHandler, middlewares.VerifySessionMiddleware)
	api_v1.PATCH("/news/:id", handlers.UpdateNewsHandler, middlewares.VerifySessionMiddleware)
	api_v1.DELETE("/news/:id", handlers.DeleteNewsHandler, middlewares.VerifySessionMiddleware)
	api_v1.POST("/news/:id/publish", handlers.PublishNewsHandler, middlewares.VerifySessionMiddleware)

	api_v1.GET("/verticals", handlers.GetVerticalsHandler)
	api_v1.GET("/verticals/:slug", handlers.GetVerticalHandler)
	api_v1.POST("/verticals", handlers.CreateVerticalHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/verticals/:slug", handlers.UpdateVerticalHandler, middlewares.VerifySessionMiddleware)
	api_v1.PATCH("/verticals/:slug", handlers.UpdateVerticalHandler, middlewares.VerifySessionMiddleware)
	api_v1.DELETE("/verticals/:slug", handlers.DeleteVerticalHandler, middlewares.VerifySessionMiddleware)

	api_v1.GET("/plans", handlers.GetPlansHandler, middlewares.OptionalSessionMiddleware)
	api_v1.GET("/plans/:id", handlers.GetPlanHandler, middlewares.OptionalSessionMiddleware)
	api_v1.POST("/plans", handlers.CreatePlanHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/plans/:id", handlers.UpdatePlanHandler, middlewares.VerifySessionMiddleware)
	api_v1.PATCH("/plans/:id", handlers.UpdatePlanHandler, middlewares.VerifySessionMiddleware)
	api_v1.DELETE("/plans/:id", handlers.DeletePlanHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/plans/:id/subscriptions", handlers.GetPlanSubscriptionsHandler, middlewares.VerifySessionMiddleware)

	api_v1.GET("/subscriptions", handlers.GetSubscriptionsHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/subscriptions/:id", handlers.GetSubscriptionHandler, middlewares.VerifySessionMiddleware)
	api_v1.POST("/subscriptions", handlers.CreateSubscriptionHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/subscriptions/:id", handlers.UpdateSubscriptionHandler, middlewares.VerifySessionMiddleware)
	api_v1.PATCH("/subscriptions/:id", handlers.UpdateSubscriptionHandler, middlewares.VerifySessionMiddleware)
	api_v1.DELETE("/subscriptions/:id", handlers.DeleteSubscriptionHandler, middlewares.VerifySessionMiddleware)

	api_v1.GET("/event-logs", handlers.GetEventLogsHandler, middlewares.VerifySessionMiddleware)

	commons.Logger.Info("v1 routes registered successfully")
}
