package api

import (
	"foldertree/internal/server/config"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupRouter creates and configures the echo router with all routes and middleware.
func SetupRouter(handler *Handler, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", AdminPasswordHeader},
	}))
	e.Use(RequestLogger())

	// Mutations are rate-limited and, when configured, password protected
	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	admin := RequireAdmin(cfg.AdminPasswordHash)

	// Health & stats
	e.GET("/health", handler.HandleHealth)
	e.GET("/api/stats", handler.HandleStats)
	e.GET("/api/history", handler.HandleHistory)

	// Folders
	e.POST("/api/folders", handler.HandleAddFolder, limiter.Middleware(), admin)
	e.DELETE("/api/folders", handler.HandleRemoveFolder, limiter.Middleware(), admin)

	// Files
	e.POST("/api/files", handler.HandleAddFile, limiter.Middleware(), admin)
	e.DELETE("/api/files", handler.HandleRemoveFile, limiter.Middleware(), admin)
	e.GET("/api/files/content", handler.HandleReadFile)

	// Search
	e.GET("/api/search/file", handler.HandleSearchFile)
	e.GET("/api/search/folder", handler.HandleSearchFolder)

	// Whole tree
	e.GET("/api/tree", handler.HandleTree)
	e.GET("/api/export", handler.HandleExport)

	return e
}
