package handler

import (
	"net/http"

	"github.com/pizza-nz/dish-admin/internal/api"
	"github.com/pizza-nz/dish-admin/internal/middleware"
	"github.com/pizza-nz/dish-admin/internal/models"
	"github.com/pizza-nz/dish-admin/internal/websockets"
)

type WebSocketHandler struct {
	hub *websockets.Hub
}

func NewWebSocketHandler(hub *websockets.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// ServeHTTP upgrades an authenticated request to the catalog change stream
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		api.Unauthorized(w, "Unauthorized")
		return
	}

	clientType := websockets.ClientTypeViewer
	if v := r.URL.Query().Get("client_type"); v != "" {
		clientType = websockets.ClientType(v)
	}
	if !clientType.Valid() {
		api.BadRequest(w, "invalid client_type")
		return
	}

	if clientType == websockets.ClientTypeAdmin {
		role, _ := middleware.GetUserRole(r.Context())
		if !role.Satisfies(models.RoleAdmin) {
			api.Forbidden(w)
			return
		}
	}

	// Upgrade the HTTP connection to a WebSocket connection
	conn, err := websockets.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// If upgrading fails, the upgrader has already written the error to the response
		return
	}

	websockets.ServeWs(h.hub, conn, userID, clientType)
}
