package handler

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"auction-hub/internal/realtime"
	"auction-hub/services/helpers"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/websocket"
)

// Client events
const (
	EventJoinAuction  = "join_auction"
	EventLeaveAuction = "leave_auction"
)

type clientMessage struct {
	Event string `json:"event"`
	Data  struct {
		AuctionID int64 `json:"auction_id"`
	} `json:"data"`
}

// DefaultWriteTimeout bounds how long one frame may take to reach a live peer.
const DefaultWriteTimeout = 10 * time.Second

// RealtimeHandler upgrades /ws connections and attaches them to the hub
type RealtimeHandler struct {
	hub          *realtime.Hub
	writeTimeout time.Duration
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, writeTimeout: DefaultWriteTimeout}
}

// ServeWS handles GET /ws
func (h *RealtimeHandler) ServeWS(c *gin.Context) {
	caller := helpers.CallerFromContext(c)
	srv := websocket.Server{
		// browsers on any origin may watch prices
		Handshake: func(*websocket.Config, *http.Request) error { return nil },
		Handler: func(conn *websocket.Conn) {
			h.serve(conn, caller.UserID)
		},
	}
	srv.ServeHTTP(c.Writer, c.Request)
}

func (h *RealtimeHandler) serve(conn *websocket.Conn, userID int64) {
	defer conn.Close()

	client := h.hub.NewClient(userID)
	fields := map[string]any{"client": client.ID(), "user_id": userID}
	utils.Debug("live connection opened", fields)

	var wg sync.WaitGroup
	defer wg.Wait()
	defer h.hub.Unregister(client)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for frame := range client.Send() {
			// a peer that stopped reading is dropped once its socket buffer is full
			if err := conn.SetWriteDeadline(time.Now().Add(h.writeTimeout)); err != nil {
				conn.Close()
				return
			}
			if err := websocket.Message.Send(conn, string(frame)); err != nil {
				utils.Debug("live write failed", map[string]any{"client": client.ID(), "error": err.Error()})
				conn.Close()
				return
			}
		}
	}()

	for {
		var raw string
		if err := websocket.Message.Receive(conn, &raw); err != nil {
			utils.Debug("live connection closed", fields)
			return
		}
		h.handleMessage(client, raw)
	}
}

func (h *RealtimeHandler) handleMessage(client *realtime.Client, raw string) {
	var msg clientMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil || msg.Data.AuctionID <= 0 {
		utils.Debug("ignoring malformed live message", map[string]any{"client": client.ID()})
		return
	}

	room := realtime.AuctionRoom(msg.Data.AuctionID)
	switch msg.Event {
	case EventJoinAuction:
		h.hub.Join(client, room)
	case EventLeaveAuction:
		h.hub.Leave(client, room)
	default:
		utils.Debug("ignoring unknown live event", map[string]any{"client": client.ID(), "event": msg.Event})
	}
}
