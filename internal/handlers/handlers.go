// Package handlers contains the HTTP layer. Handlers stay thin: parse the
// request, call a service or the database, translate errors, respond.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conectapro/backend/internal/auth"
	"github.com/conectapro/backend/internal/connections"
	apierrors "github.com/conectapro/backend/internal/errors"
	"github.com/conectapro/backend/internal/feed"
	"github.com/conectapro/backend/internal/logger"
	"github.com/conectapro/backend/internal/metrics"
	"github.com/conectapro/backend/internal/notifications"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	auth          *auth.Service
	feed          *feed.Service
	notifications *notifications.Service
	connections   *connections.Service
}

// NewHandlers creates a new handlers instance
func NewHandlers(
	authSvc *auth.Service,
	feedSvc *feed.Service,
	notificationSvc *notifications.Service,
	connectionSvc *connections.Service,
) *Handlers {
	return &Handlers{
		auth:          authSvc,
		feed:          feedSvc,
		notifications: notificationSvc,
		connections:   connectionSvc,
	}
}

// respondError translates service errors into JSON responses. APIErrors map
// to their status and code; anything else is a 500 with the detail logged,
// not leaked.
func respondError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		metrics.Get().ErrorsTotal.WithLabelValues(string(apiErr.Code), c.FullPath()).Inc()
		c.JSON(apiErr.Status, gin.H{"error": string(apiErr.Code), "message": apiErr.Message})
		return
	}

	logger.ErrorWithFields("unhandled error",
		logger.WithError(err),
	)
	metrics.Get().ErrorsTotal.WithLabelValues(string(apierrors.CodeInternalError), c.FullPath()).Inc()
	c.JSON(http.StatusInternalServerError, gin.H{"error": string(apierrors.CodeInternalError)})
}

// respondInvalidRequest answers malformed or unbindable request payloads.
func respondInvalidRequest(c *gin.Context) {
	metrics.Get().ErrorsTotal.WithLabelValues(string(apierrors.CodeInvalidRequest), c.FullPath()).Inc()
	c.JSON(apierrors.StatusFor(apierrors.CodeInvalidRequest), gin.H{"error": string(apierrors.CodeInvalidRequest)})
}
