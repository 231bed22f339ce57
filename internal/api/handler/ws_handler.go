package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Nabin-web/startrace/internal/core/ports"
	"github.com/Nabin-web/startrace/internal/ws"
)

// WSHandler upgrades push-notification connections and owns their read loop.
//
// A valid access token resolving to a live user is required before the
// upgrade completes; an unauthenticated client is refused with 401 and never
// enters the registry.
type WSHandler struct {
	auth     ports.AuthService
	registry *ws.Registry
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func NewWSHandler(auth ports.AuthService, registry *ws.Registry, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		auth:     auth,
		registry: registry,
		upgrader: websocket.Upgrader{
			// The API is served to browser clients on other origins; token
			// auth is the gate, not the Origin header.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Serve handles GET /ws?token=… for the lifetime of the connection. The
// client may send "ping" text frames and receives "pong"; every other
// inbound frame is ignored. Server pushes arrive via registry broadcasts.
func (h *WSHandler) Serve(c echo.Context) error {
	user, err := h.auth.Authenticate(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	raw, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote its own error response.
		return nil
	}

	conn := ws.WrapConn(raw)
	member := h.registry.Register(conn, user.Username)
	defer h.registry.Unregister(member)

	for {
		messageType, message, err := raw.ReadMessage()
		if err != nil {
			// Disconnect or read failure; the deferred Unregister converges
			// the registry and a concurrent broadcast failure is a no-op.
			return nil
		}
		if messageType == websocket.TextMessage && string(message) == "ping" {
			if err := conn.WriteText([]byte("pong")); err != nil {
				h.logger.Debug().Err(err).Str("username", user.Username).Msg("pong write failed")
				return nil
			}
		}
	}
}
