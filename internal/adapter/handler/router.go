package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-notes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-notes/pkg/config"
	"github.com/johnquangdev/meeting-notes/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	meetingHandler    *Meeting
	actionItemHandler *ActionItem
	jwtManager        *jwt.Manager
}

// NewRouter creates a new router with all handlers. jwtManager may be
// nil to expose the API without authentication.
func NewRouter(cfg *config.Config, meetingHandler *Meeting, actionItemHandler *ActionItem, jwtManager *jwt.Manager) *Router {
	return &Router{
		cfg:               cfg,
		meetingHandler:    meetingHandler,
		actionItemHandler: actionItemHandler,
		jwtManager:        jwtManager,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")
	if rt.jwtManager != nil {
		v1.Use(middleware.EchoAuth(rt.jwtManager))
	}

	rt.setupMeetingRoutes(v1)
	rt.setupActionItemRoutes(v1)
}

// setupMeetingRoutes configures meeting and analysis routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.POST("", rt.meetingHandler.CreateMeeting)
	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.PUT("/:id", rt.meetingHandler.UpdateMeeting)
	meetings.DELETE("/:id", rt.meetingHandler.DeleteMeeting)

	meetings.POST("/:id/transcript", rt.meetingHandler.UploadTranscript)
	meetings.GET("/:id/transcripts", rt.meetingHandler.ListTranscriptArchives)
	meetings.POST("/:id/generate-summary", rt.meetingHandler.GenerateSummary)
	meetings.GET("/:id/summary-status", rt.meetingHandler.SummaryStatus)
	meetings.POST("/:id/extract-action-items", rt.actionItemHandler.ExtractActionItems)
}

// setupActionItemRoutes configures action item routes
func (rt *Router) setupActionItemRoutes(g *echo.Group) {
	items := g.Group("/action-items")

	items.GET("", rt.actionItemHandler.ListActionItems)
	items.POST("", rt.actionItemHandler.CreateActionItem)
	items.GET("/:id", rt.actionItemHandler.GetActionItem)
	items.PUT("/:id", rt.actionItemHandler.UpdateActionItem)
	items.PATCH("/:id/status", rt.actionItemHandler.UpdateActionItemStatus)
	items.DELETE("/:id", rt.actionItemHandler.DeleteActionItem)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
