package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/balkashynov/horas/internal/tracker"
)

// Pinger reports whether storage is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router wires the HTTP routes to the tracker
type Router struct {
	Tracker     *tracker.Tracker
	Logger      *logrus.Logger
	OwnerHeader string
	Health      Pinger
}

// SetUpRouter creates the gin engine with every route
func (r Router) SetUpRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(r.Logger))

	h := &Handler{tracker: r.Tracker, log: r.Logger}

	router.GET("/healthz", func(c *gin.Context) {
		if r.Health != nil {
			if err := r.Health.Ping(c.Request.Context()); err != nil {
				r.Logger.WithError(err).Error("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api", OwnerRequired(r.OwnerHeader, r.Logger))

	api.GET("/work-items", h.ListWorkItems)
	api.POST("/work-items", h.CreateWorkItem)
	api.GET("/work-items/:id", h.GetWorkItem)
	api.PUT("/work-items/:id", h.UpdateWorkItem)
	api.DELETE("/work-items/:id", h.DeleteWorkItem)

	api.GET("/sessions", h.ListActiveSessions)
	api.POST("/sessions", h.StartSession)
	api.POST("/sessions/manual", h.LogManual)
	api.GET("/sessions/:id", h.GetSession)
	api.DELETE("/sessions/:id", h.DeleteSession)
	api.PATCH("/sessions/:id", h.UpdateSessionStatus)
	api.POST("/sessions/:id/pause", h.PauseSession)
	api.POST("/sessions/:id/resume", h.ResumeSession)
	api.POST("/sessions/:id/finish", h.FinishSession)

	api.GET("/dashboard", h.Dashboard)

	api.GET("/config", h.GetConfig)
	api.PUT("/config", h.UpdateConfig)

	return router
}
