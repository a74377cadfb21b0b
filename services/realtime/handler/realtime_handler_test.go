package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auction-hub/internal/models"
	"auction-hub/internal/realtime"
	"auction-hub/services/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func newLiveServer(t *testing.T, hub *realtime.Hub, caller models.Caller) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) { helpers.SetCaller(c, caller) })
	router.GET("/ws", NewRealtimeHandler(hub).ServeWS)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, err := websocket.Dial(url, "", "http://localhost/")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func receiveEvent(t *testing.T, conn *websocket.Conn) realtime.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var raw string
	require.NoError(t, websocket.Message.Receive(conn, &raw))

	var ev realtime.Event
	require.NoError(t, json.Unmarshal([]byte(raw), &ev))
	return ev
}

func TestServeWS_AuctionRoom(t *testing.T) {
	t.Parallel()

	hub := realtime.NewHub(8)
	conn := dial(t, newLiveServer(t, hub, models.Caller{}))
	room := realtime.AuctionRoom(5)

	// junk first, the connection must survive it
	require.NoError(t, websocket.Message.Send(conn, "not json"))
	require.NoError(t, websocket.Message.Send(conn, `{"event":"join_auction","data":{"auction_id":5}}`))
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, 2*time.Second, 10*time.Millisecond)

	err := hub.Emit(context.Background(), room, realtime.Event{
		Name: realtime.EventBidUpdate,
		Data: realtime.BidUpdate{AuctionID: 5, NewPrice: 120, BidderName: "bob"},
	})
	require.NoError(t, err)

	ev := receiveEvent(t, conn)
	require.Equal(t, realtime.EventBidUpdate, ev.Name)
	data := ev.Data.(map[string]any)
	require.Equal(t, 120.0, data["new_price"])
	require.Equal(t, "bob", data["bidder_name"])

	require.NoError(t, websocket.Message.Send(conn, `{"event":"leave_auction","data":{"auction_id":5}}`))
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServeWS_UserRoom(t *testing.T) {
	t.Parallel()

	hub := realtime.NewHub(8)
	conn := dial(t, newLiveServer(t, hub, models.Caller{UserID: 42, Name: "alice"}))
	room := realtime.UserRoom(42)
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, 2*time.Second, 10*time.Millisecond)

	err := hub.Emit(context.Background(), room, realtime.Event{
		Name: realtime.EventStatusUpdate,
		Data: realtime.StatusUpdate{OrderID: 3, Status: "Shipped"},
	})
	require.NoError(t, err)

	ev := receiveEvent(t, conn)
	require.Equal(t, realtime.EventStatusUpdate, ev.Name)
	require.Equal(t, "Shipped", ev.Data.(map[string]any)["status"])
}

func TestServeWS_DisconnectLeavesRooms(t *testing.T) {
	t.Parallel()

	hub := realtime.NewHub(8)
	conn := dial(t, newLiveServer(t, hub, models.Caller{UserID: 9}))
	require.NoError(t, websocket.Message.Send(conn, `{"event":"join_auction","data":{"auction_id":1}}`))
	require.Eventually(t, func() bool { return hub.RoomSize(realtime.AuctionRoom(1)) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return hub.RoomSize(realtime.AuctionRoom(1)) == 0 && hub.RoomSize(realtime.UserRoom(9)) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServeWS_DropsStalledReader(t *testing.T) {
	t.Parallel()

	hub := realtime.NewHub(8)
	live := NewRealtimeHandler(hub)
	live.writeTimeout = 50 * time.Millisecond

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", live.ServeWS)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	// joins a room and then never reads
	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws")
	room := realtime.AuctionRoom(9)
	require.NoError(t, websocket.Message.Send(conn, `{"event":"join_auction","data":{"auction_id":9}}`))
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, 2*time.Second, 10*time.Millisecond)

	frame := []byte(strings.Repeat("x", 256*1024))
	require.Eventually(t, func() bool {
		hub.Publish(room, frame)
		return hub.RoomSize(room) == 0
	}, 10*time.Second, 5*time.Millisecond)
}
