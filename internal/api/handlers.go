package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/parser"
	"github.com/balkashynov/horas/internal/report"
	"github.com/balkashynov/horas/internal/tracker"
)

// Handler serves the tracker over HTTP
type Handler struct {
	tracker *tracker.Tracker
	log     logrus.FieldLogger
}

// StartSessionRequest is the body of POST /api/sessions
type StartSessionRequest struct {
	WorkItemID string `json:"work_item_id" binding:"required"`
}

// LogManualRequest is the body of POST /api/sessions/manual. Duration
// accepts the same forms as the CLI (e.g. "1:30", "90m") and is used when
// DurationSeconds is absent.
type LogManualRequest struct {
	WorkItemID      string `json:"work_item_id" binding:"required"`
	DurationSeconds *int64 `json:"duration_seconds"`
	Duration        string `json:"duration"`
}

// UpdateSessionStatusRequest is the body of PATCH /api/sessions/:id
type UpdateSessionStatusRequest struct {
	Status models.SessionStatus `json:"status" binding:"required"`
}

// UpdateConfigRequest is the body of PUT /api/config
type UpdateConfigRequest struct {
	HourlyRate *float64 `json:"hourly_rate" binding:"required"`
}

// Work items

func (h *Handler) ListWorkItems(c *gin.Context) {
	items, err := h.tracker.ListWorkItems(c.Request.Context(), ownerFrom(c))
	if err != nil {
		sendError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateWorkItem(c *gin.Context) {
	var req tracker.WorkItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	item, err := h.tracker.CreateWorkItem(c.Request.Context(), ownerFrom(c), req)
	if err != nil {
		sendError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) GetWorkItem(c *gin.Context) {
	detail, err := h.tracker.GetWorkItem(c.Request.Context(), ownerFrom(c), c.Param("id"))
	if err != nil {
		sendError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) UpdateWorkItem(c *gin.Context) {
	var req tracker.WorkItemPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	item, err := h.tracker.UpdateWorkItem(c.Request.Context(), ownerFrom(c), c.Param("id"), req)
	if err != nil {
		sendError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteWorkItem(c *gin.Context) {
	if err := h.tracker.DeleteWorkItem(c.Request.Context(), ownerFrom(c), c.Param("id")); err != nil {
		sendError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Sessions

func (h *Handler) ListActiveSessions(c *gin.Context) {
	sessions, err := h.tracker.ListActiveSessions(c.Request.Context(), ownerFrom(c))
	if err != nil {
		sendError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *Handler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	session, err := h.tracker.Start(c.Request.Context(), ownerFrom(c), req.WorkItemID)
	if err != nil {
		sendError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *Handler) LogManual(c *gin.Context) {
	var req LogManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}

	var seconds int64
	switch {
	case req.DurationSeconds != nil:
		seconds = *req.DurationSeconds
	case req.Duration != "":
		parsed, err := parser.ParseDuration(req.Duration)
		if err != nil {
			sendError(c, h.log, models.NewValidationError("duration", "%s", err.Error()))
			return
		}
		seconds = parsed
	}

	session, err := h.tracker.LogManual(c.Request.Context(), ownerFrom(c), req.WorkItemID, seconds)
	if err != nil {
		sendError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *Handler) GetSession(c *gin.Context) {
	view, err := h.tracker.GetSession(c.Request.Context(), ownerFrom(c), c.Param("id"))
	if err != nil {
		sendError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.tracker.DeleteSession(c.Request.Context(), ownerFrom(c), c.Param("id")); err != nil {
		sendError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateSessionStatus(c *gin.Context) {
	var req UpdateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	h.respondSession(c)(h.tracker.Transition(c.Request.Context(), ownerFrom(c), c.Param("id"), req.Status))
}

func (h *Handler) PauseSession(c *gin.Context) {
	h.respondSession(c)(h.tracker.Pause(c.Request.Context(), ownerFrom(c), c.Param("id")))
}

func (h *Handler) ResumeSession(c *gin.Context) {
	h.respondSession(c)(h.tracker.Resume(c.Request.Context(), ownerFrom(c), c.Param("id")))
}

func (h *Handler) FinishSession(c *gin.Context) {
	h.respondSession(c)(h.tracker.Finish(c.Request.Context(), ownerFrom(c), c.Param("id")))
}

func (h *Handler) respondSession(c *gin.Context) func(*models.Session, error) {
	return func(session *models.Session, err error) {
		if err != nil {
			sendError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// Dashboard and config

func (h *Handler) Dashboard(c *gin.Context) {
	kind, err := report.ParseKind(c.Query("period"))
	if err != nil {
		sendError(c, h.log, err)
		return
	}

	offset := 0
	raw := c.Query("offset")
	if raw == "" {
		raw = c.Query("semana")
	}
	if raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			sendError(c, h.log, models.NewValidationError("offset", "must be an integer, e.g. 0 or -1"))
			return
		}
	}

	d, err := h.tracker.Dashboard(c.Request.Context(), ownerFrom(c), kind, offset)
	if err != nil {
		sendError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.tracker.GetConfig(c.Request.Context(), ownerFrom(c))
	if err != nil {
		sendError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON format: "+err.Error())
		return
	}
	cfg, err := h.tracker.SetHourlyRate(c.Request.Context(), ownerFrom(c), *req.HourlyRate)
	if err != nil {
		sendError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
