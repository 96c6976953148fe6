// Package router wires the HTTP route table.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cafemenu/backend/internal/infrastructure/auth"
	"github.com/cafemenu/backend/internal/interfaces/http/handler"
	"github.com/cafemenu/backend/internal/interfaces/http/middleware"
)

const apiVersion = "v1"

// Deps holds the handlers and services the route table needs
type Deps struct {
	Categories *handler.CategoryHandler
	Items      *handler.ItemHandler
	Settings   *handler.SettingsHandler
	Auth       *handler.AuthHandler
	Analytics  *handler.AnalyticsHandler
	Backups    *handler.BackupHandler
	Uploads    *handler.UploadHandler
	System     *handler.SystemHandler

	JWT    *auth.JWTService
	Logger *zap.Logger
}

// Register installs the operational endpoints, the public menu surface and
// the token-protected admin group on the engine.
func Register(engine *gin.Engine, d Deps) {
	engine.GET("/health", d.System.Health)
	engine.GET("/ready", d.System.Ready)

	api := engine.Group("/api/" + apiVersion)

	// Public read surface. These endpoints degrade instead of failing,
	// so customers scanning the menu always get a response.
	menuGroup := api.Group("/menu")
	menuGroup.GET("/categories", d.Categories.List)
	menuGroup.GET("/categories/:id", d.Categories.Get)
	menuGroup.GET("/items", d.Items.List)
	menuGroup.GET("/items/:id", d.Items.Get)
	menuGroup.GET("/settings", d.Settings.Get)

	api.POST("/auth/login", d.Auth.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(d.JWT, d.Logger))

	admin.GET("/auth/me", d.Auth.Me)
	admin.PUT("/auth/password", d.Auth.ChangePassword)

	admin.POST("/categories", d.Categories.Create)
	admin.PUT("/categories/:id", d.Categories.Update)
	admin.DELETE("/categories/:id", d.Categories.Delete)

	admin.POST("/items", d.Items.Create)
	admin.PUT("/items/:id", d.Items.Update)
	admin.PUT("/items/:id/availability", d.Items.SetAvailability)
	admin.DELETE("/items/:id", d.Items.Delete)

	admin.PUT("/settings", d.Settings.Update)

	admin.GET("/analytics/overview", d.Analytics.Overview)

	admin.POST("/backups", d.Backups.Create)
	admin.GET("/backups", d.Backups.List)

	admin.POST("/uploads", d.Uploads.Store)
	admin.DELETE("/uploads", d.Uploads.Remove)

	admin.POST("/system/clear-caches", d.System.ClearCaches)
}
