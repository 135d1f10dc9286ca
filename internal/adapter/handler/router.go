package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/video-digest/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg          *config.Config
	mediaHandler *Media
	chatHandler  *Chat
	artifactsDir string
	startedAt    time.Time
}

// NewRouter creates a new router with all handlers. artifactsDir is served read-only under /v1/artifacts.
func NewRouter(cfg *config.Config, mediaHandler *Media, chatHandler *Chat, artifactsDir string) *Router {
	return &Router{
		cfg:          cfg,
		mediaHandler: mediaHandler,
		chatHandler:  chatHandler,
		artifactsDir: artifactsDir,
		startedAt:    time.Now(),
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMediaRoutes(v1)
	rt.setupChatRoutes(v1)

	if rt.artifactsDir != "" {
		v1.Static("/artifacts", rt.artifactsDir)
	}
}

// setupMediaRoutes configures upload, pipeline and registry routes
func (rt *Router) setupMediaRoutes(g *echo.Group) {
	if rt.mediaHandler == nil {
		g.POST("/upload", rt.notImplemented)
		g.POST("/process", rt.notImplemented)
		g.POST("/summary", rt.notImplemented)
		g.GET("/videos", rt.notImplemented)
		g.GET("/videos/:filename", rt.notImplemented)
		return
	}

	g.POST("/upload", rt.mediaHandler.Upload, middleware.BodyLimit(rt.uploadLimit()))
	g.POST("/process", rt.mediaHandler.Process)
	g.POST("/summary", rt.mediaHandler.Summary)
	g.GET("/videos", rt.mediaHandler.ListVideos)
	g.GET("/videos/:filename", rt.mediaHandler.GetVideo)
}

// setupChatRoutes configures chat routes
func (rt *Router) setupChatRoutes(g *echo.Group) {
	if rt.chatHandler == nil {
		g.POST("/chat", rt.notImplemented)
		return
	}
	g.POST("/chat", rt.chatHandler.Chat)
}

// uploadLimit renders the configured upload size for the BodyLimit middleware
func (rt *Router) uploadLimit() string {
	return UploadLimit(rt.cfg)
}

// UploadLimit renders the configured maximum upload size in BodyLimit notation
func UploadLimit(cfg *config.Config) string {
	mb := 500
	if cfg != nil && cfg.Server.MaxUploadSizeMB > 0 {
		mb = cfg.Server.MaxUploadSizeMB
	}
	return fmt.Sprintf("%dM", mb)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	resp := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(rt.startedAt).Round(time.Second).String(),
	}
	if rt.cfg != nil {
		resp["environment"] = rt.cfg.Server.Environment
		resp["stt_engine"] = rt.cfg.STTEngine
		resp["chat_engine"] = rt.cfg.ChatEngine
		resp["registry"] = rt.cfg.Registry.Backend
	}
	return c.JSON(http.StatusOK, resp)
}
