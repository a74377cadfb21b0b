package realtime

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Event names pushed to clients
const (
	EventBidUpdate       = "bid_update"
	EventNewNotification = "new_notification"
	EventStatusUpdate    = "status_update"
)

// Event is one server frame: {"event": name, "data": payload}
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// Encode returns the wire form of e.
func (e Event) Encode() ([]byte, error) {
	frame, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", e.Name, err)
	}
	return frame, nil
}

// BidUpdate is the payload of bid_update
type BidUpdate struct {
	AuctionID  int64     `json:"auction_id"`
	NewPrice   float64   `json:"new_price"`
	BidderName string    `json:"bidder_name"`
	BidTime    time.Time `json:"bid_time"`
}

// StatusUpdate is the payload of status_update
type StatusUpdate struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

// AuctionRoom is the room watching one auction's price.
func AuctionRoom(auctionID int64) string {
	return fmt.Sprintf("auction_%d", auctionID)
}

// UserRoom is the private room of one user.
func UserRoom(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
