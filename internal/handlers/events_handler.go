package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sisventas/separata-backend/internal/services"
)

type EventsHandler struct {
	sseHub *services.SSEHub
}

func NewEventsHandler(sseHub *services.SSEHub) *EventsHandler {
	return &EventsHandler{sseHub: sseHub}
}

// StreamRefreshSSE godoc
// @Summary Stream refresh signals via Server-Sent Events (SSE)
// @Description Receive a "refresh" event whenever the server-side revision marker moves, signalling that the separata list (and any open separata) should be re-fetched
// @Tags events
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 "SSE stream"
// @Router /api/v1/events/stream [get]
func (h *EventsHandler) StreamRefreshSSE(c *gin.Context) {
	// Set headers for SSE
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable buffering for nginx

	// Register client
	clientChan := h.sseHub.RegisterClient()
	defer h.sseHub.UnregisterClient(clientChan)

	// Send initial connection message
	c.SSEvent("connected", gin.H{"message": "Connected to refresh stream"})
	c.Writer.Flush()

	// Forward refresh signals as they arrive
	for {
		select {
		case <-c.Request.Context().Done():
			logrus.Info("SSE client disconnected")
			return
		case message, ok := <-clientChan:
			if !ok {
				return
			}
			if _, err := c.Writer.Write(message); err != nil {
				logrus.Errorf("Failed to write SSE message: %v", err)
				return
			}
			c.Writer.Flush()
		}
	}
}
