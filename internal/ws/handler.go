package ws

import (
	"errors"
	"net/http"
	"strings"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	hub    *Hub
	jwt    jwt.Service
	logger *zap.Logger
}

func NewHandler(hub *Hub, jwtSvc jwt.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{hub: hub, jwt: jwtSvc, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleNotifications upgrades the request and subscribes the caller to
// their job alerts. Browsers cannot set headers on websocket requests, so
// the access token may also arrive in the "token" query parameter.
func (h *Handler) HandleNotifications(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.jwt == nil {
		return fiber.ErrServiceUnavailable
	}

	userID, err := h.authenticate(requestToken(c))
	if err != nil {
		return err
	}

	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("ws upgrade failed", zap.String("user_id", userID.String()), zap.Error(err))
			return
		}

		client := NewClient(h.hub, conn, userID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})(c)
}

func requestToken(c fiber.Ctx) string {
	if tok, ok := middleware.BearerToken(c.Get(fiber.HeaderAuthorization)); ok {
		return tok
	}
	return strings.TrimSpace(c.Query("token"))
}

func (h *Handler) authenticate(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	claims, err := h.jwt.ParseAccessToken(token)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
	case err != nil:
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
	}
	return claims.UserID, nil
}
