package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/balkashynov/horas/internal/auth"
)

const ownerKey = "owner"

// OwnerRequired resolves the authenticated owner from header, set by the
// identity proxy in front of horas, and rejects requests without one.
func OwnerRequired(header string, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, err := auth.NewOwner(c.GetHeader(header))
		if err != nil {
			sendError(c, log, err)
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

// ownerFrom returns the owner stored by OwnerRequired; the zero Owner
// when absent, which every tracker operation rejects
func ownerFrom(c *gin.Context) auth.Owner {
	if v, ok := c.Get(ownerKey); ok {
		if owner, ok := v.(auth.Owner); ok {
			return owner
		}
	}
	return auth.Owner{}
}

// RequestLogger logs one line per request
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
			"owner":   ownerFrom(c).ID(),
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request")
		case c.Writer.Status() >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
