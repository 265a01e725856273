package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Amirkhan01/campaign-system/live"
	"github.com/Amirkhan01/campaign-system/services"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the configured frontend origins once they are
		// pinned down for the production deployment.
		return true
	},
}

type WebSocketHandler struct {
	hub             *live.Hub
	campaignService services.CampaignService
}

func NewWebSocketHandler(hub *live.Hub, cs services.CampaignService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:             hub,
		campaignService: cs,
	}
}

// ServeWs handles GET /ws/campaigns/{campaignID}. Each campaign gets its
// own room; clients in it receive match, standings and bracket events.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "campaignID")
	campaignID, err := strconv.Atoi(idStr)
	if err != nil || campaignID <= 0 {
		http.Error(w, "invalid campaignID", http.StatusBadRequest)
		return
	}

	if _, err := h.campaignService.GetByID(r.Context(), campaignID); err != nil {
		if errors.Is(err, services.ErrCampaignNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to look up campaign", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		slog.Error("websocket upgrade failed",
			slog.Int("campaign_id", campaignID),
			slog.Any("error", err),
		)
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: "campaign_" + idStr,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	slog.Info("websocket client joined", slog.Int("campaign_id", campaignID))
}
