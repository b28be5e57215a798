package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/balkashynov/horas/internal/models"
)

const problemBase = "https://horas.dev/problems/"

// Problem is an error response body according to RFC 7807
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
	Field    string `json:"field,omitempty"`
}

func sendProblem(c *gin.Context, status int, slug, title, detail, field string) {
	c.Header("Content-Type", "application/problem+json")
	c.AbortWithStatusJSON(status, Problem{
		Type:     problemBase + slug,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request.URL.Path,
		Field:    field,
	})
}

// badRequest reports a body or query that could not be decoded
func badRequest(c *gin.Context, detail string) {
	sendProblem(c, http.StatusBadRequest, "validation-error", "Bad Request", detail, "")
}

// sendError maps a tracker error onto its fixed HTTP status. Anything that
// is not a domain error is logged and reported without detail.
func sendError(c *gin.Context, log logrus.FieldLogger, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		sendProblem(c, http.StatusBadRequest, "validation-error", "Validation Error", ve.Message, ve.Field)
	case errors.Is(err, models.ErrValidation):
		sendProblem(c, http.StatusBadRequest, "validation-error", "Validation Error", err.Error(), "")
	case errors.Is(err, models.ErrNotFound):
		sendProblem(c, http.StatusNotFound, "not-found", "Not Found", err.Error(), "")
	case errors.Is(err, models.ErrInvalidTransition):
		sendProblem(c, http.StatusConflict, "invalid-transition", "Invalid Transition", err.Error(), "")
	case errors.Is(err, models.ErrConflict):
		sendProblem(c, http.StatusConflict, "conflict", "Conflict", err.Error(), "")
	case errors.Is(err, models.ErrUnauthorized):
		sendProblem(c, http.StatusUnauthorized, "unauthorized", "Unauthorized", "Authentication required", "")
	default:
		log.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path,
			"error": err,
		}).Error("request failed")
		sendProblem(c, http.StatusInternalServerError, "internal-error", "Internal Server Error", "The request could not be completed", "")
	}
}
