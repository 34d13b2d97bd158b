package handler

import (
	"net/http"

	"github.com/budgetassist/budget-assist-backend/internal/middleware"
	"github.com/budgetassist/budget-assist-backend/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades connections for live event push.
// Authentication, when enabled, runs in middleware before HandleWS.
type WebSocketHandler struct {
	hub            *websocket.Hub
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, allowedOrigins []string) *WebSocketHandler {
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		allowedOrigins: originMap,
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Non-browser clients send no Origin
		return true
	}

	if h.allowedOrigins[origin] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles WebSocket connection requests at GET /ws.
// ?entities=notification,budget limits the events pushed to the client.
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	entities, err := websocket.ParseEntities(c.QueryParam("entities"))
	if err != nil {
		return NewValidationError(c, "Invalid query parameters", []ValidationError{
			{Field: "entities", Message: err.Error()},
		})
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, h.hub, entities...)
	h.hub.Register(client)

	event := log.Info().Str("client_id", client.ID()).Int("entity_count", len(entities))
	if sub := middleware.GetAuth0ID(c); sub != "" {
		event = event.Str("auth0_id", sub)
	}
	event.Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}
