package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"tripcollab/internal/adapter/api/middleware"
	"tripcollab/internal/infrastructure/firebase"
	ws "tripcollab/internal/infrastructure/websocket"
	"tripcollab/pkg/errors"
	"tripcollab/pkg/response"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	tokenVerifier  *firebase.TokenVerifier
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // restrict to known origins in production deployments
	},
}

var webSocketHandler *WebSocketHandler

func NewWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware, tokenVerifier *firebase.TokenVerifier) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		tokenVerifier:  tokenVerifier,
	}
}

func SetupWebSocketHandler(wsManager *ws.Manager, authMiddleware *middleware.AuthMiddleware, tokenVerifier *firebase.TokenVerifier) {
	webSocketHandler = NewWebSocketHandler(wsManager, authMiddleware, tokenVerifier)
}

func GetWebSocketHandler() *WebSocketHandler {
	return webSocketHandler
}

// HandleWebSocket upgrades the connection. Browsers cannot set headers on
// websocket requests, so the ID token arrives as a query parameter and is
// checked against Google's JWKS locally.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.Error(c, errors.Unauthorized("Authentication token required", nil))
	}

	userID, err := h.verifyToken(c, token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(userID, conn)
	h.wsManager.Register <- client

	go client.ReadPump(c.Request().Context(), h.wsManager)
	go client.WritePump()

	return nil
}

func (h *WebSocketHandler) verifyToken(c echo.Context, token string) (string, error) {
	if h.tokenVerifier != nil {
		if uid, err := h.tokenVerifier.Verify(token); err == nil {
			return uid, nil
		}
	}
	// Fall back to the Admin SDK, covering tokens minted moments ago that
	// the cached JWKS cannot verify yet.
	return h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
}
