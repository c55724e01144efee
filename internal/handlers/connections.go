package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conectapro/backend/internal/util"
)

type connectionRequest struct {
	FollowingID string `json:"following_id" binding:"required"`
}

// RequestConnection sends a connection request to another user.
func (h *Handlers) RequestConnection(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req connectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidRequest(c)
		return
	}

	conn, err := h.connections.Request(c.Request.Context(), userID, req.FollowingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"connection": conn})
}

// AcceptConnection accepts a pending request addressed to the viewer.
func (h *Handlers) AcceptConnection(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	conn, err := h.connections.Accept(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"connection": conn})
}

// RejectConnection rejects a pending request addressed to the viewer.
func (h *Handlers) RejectConnection(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	conn, err := h.connections.Reject(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"connection": conn})
}

// CancelConnection withdraws a request or severs a connection the viewer is
// part of.
func (h *Handlers) CancelConnection(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := h.connections.Cancel(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListPendingConnections returns requests waiting on the viewer.
func (h *Handlers) ListPendingConnections(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	conns, err := h.connections.PendingIncoming(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"connections": conns, "meta": gin.H{"count": len(conns)}})
}

// ListSentConnections returns the viewer's outstanding requests.
func (h *Handlers) ListSentConnections(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	conns, err := h.connections.PendingSent(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"connections": conns, "meta": gin.H{"count": len(conns)}})
}

// ListAcceptedConnections returns the viewer's network.
func (h *Handlers) ListAcceptedConnections(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	conns, err := h.connections.Accepted(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"connections": conns, "meta": gin.H{"count": len(conns)}})
}
