package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"foldertree/internal/core"
	"foldertree/internal/server/service"

	"github.com/labstack/echo/v4"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler contains the HTTP handlers for the tree API.
type Handler struct {
	svc          *service.TreeService
	db           HealthChecker
	historyLimit int
}

// NewHandler creates a new handler. db may be nil when no journal database is configured.
func NewHandler(svc *service.TreeService, db HealthChecker, historyLimit int) *Handler {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &Handler{svc: svc, db: db, historyLimit: historyLimit}
}

type folderRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

type fileRequest struct {
	Path    string `json:"path"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// HandleAddFolder handles POST /api/folders.
func (h *Handler) HandleAddFolder(c echo.Context) error {
	var req folderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if err := h.svc.AddFolder(c.Request().Context(), req.Path, req.Name); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"path": joinPath(req.Path, req.Name)})
}

// HandleAddFile handles POST /api/files.
func (h *Handler) HandleAddFile(c echo.Context) error {
	var req fileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	if err := h.svc.AddFile(c.Request().Context(), req.Path, req.Name, req.Content); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"path": joinPath(req.Path, req.Name)})
}

// HandleRemoveFolder handles DELETE /api/folders?path=&name=.
func (h *Handler) HandleRemoveFolder(c echo.Context) error {
	if err := h.svc.RemoveFolder(c.Request().Context(), c.QueryParam("path"), c.QueryParam("name")); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "folder removed"})
}

// HandleRemoveFile handles DELETE /api/files?path=&name=.
func (h *Handler) HandleRemoveFile(c echo.Context) error {
	if err := h.svc.RemoveFile(c.Request().Context(), c.QueryParam("path"), c.QueryParam("name")); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "file removed"})
}

// HandleReadFile handles GET /api/files/content?path=&name=.
func (h *Handler) HandleReadFile(c echo.Context) error {
	content, err := h.svc.ReadFile(c.Request().Context(), c.QueryParam("path"), c.QueryParam("name"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.String(http.StatusOK, content)
}

// HandleSearchFile handles GET /api/search/file?name=.
func (h *Handler) HandleSearchFile(c echo.Context) error {
	found, err := h.svc.SearchFile(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"path": found})
}

// HandleSearchFolder handles GET /api/search/folder?name=.
func (h *Handler) HandleSearchFolder(c echo.Context) error {
	found, err := h.svc.SearchFolder(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"path": found})
}

// HandleTree handles GET /api/tree.
func (h *Handler) HandleTree(c echo.Context) error {
	return c.String(http.StatusOK, h.svc.Render())
}

// HandleExport handles GET /api/export.
// Serves the whole tree as a ZIP attachment.
func (h *Handler) HandleExport(c echo.Context) error {
	data, err := h.svc.Export()
	if err != nil {
		return mapServiceError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="foldertree.zip"`)
	return c.Blob(http.StatusOK, "application/zip", data)
}

// HandleHistory handles GET /api/history.
// Accepts an optional "limit" query param.
func (h *Handler) HandleHistory(c echo.Context) error {
	limit := h.historyLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer"})
		}
		limit = min(n, h.historyLimit)
	}

	entries, err := h.svc.History(c.Request().Context(), limit)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"entries": entries})
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(c echo.Context) error {
	status := "healthy"
	dbStatus := "disabled"

	if h.db != nil {
		dbStatus = "connected"
		if err := h.db.HealthCheck(c.Request().Context()); err != nil {
			status = "degraded"
			dbStatus = fmt.Sprintf("error: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":   status,
		"database": dbStatus,
	})
}

// HandleStats handles GET /api/stats.
func (h *Handler) HandleStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "failed to retrieve stats",
		})
	}

	resp := echo.Map{
		"folders":             stats.Tree.Folders,
		"files":               stats.Tree.Files,
		"content_bytes":       stats.Tree.ContentBytes,
		"content_bytes_human": humanizeBytes(stats.Tree.ContentBytes),
	}
	if stats.Journal != nil {
		resp["total_commands"] = stats.Journal.TotalCommands
		resp["failed_commands"] = stats.Journal.FailedCommands
		resp["mutations"] = stats.Journal.Mutations
	}
	return c.JSON(http.StatusOK, resp)
}

// mapServiceError translates tree errors into HTTP responses.
func mapServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, core.ErrEmptyPath):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "path is required"})
	case errors.Is(err, core.ErrInvalidName):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, core.ErrAlreadyExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, core.ErrPathNotFound), errors.Is(err, core.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrJournalDisabled):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// joinPath builds the display path of a new entry under path.
func joinPath(path, name string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	return "/" + strings.Join(append(segments, name), "/")
}

// humanizeBytes formats a byte count into a human-readable string.
func humanizeBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
