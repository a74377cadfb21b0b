package models

import "time"

// Caller is the identity of whoever is making a request. The zero value is an anonymous caller.
type Caller struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
	Admin    bool   `json:"admin"`
}

// Authenticated reports whether the caller is logged in.
func (c Caller) Authenticated() bool {
	return c.UserID > 0
}

// User represents a marketplace account
type User struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	EmailVerified       bool       `json:"email_verified"`
	IsAdmin             bool       `json:"is_admin"`
	VerifyCode          string     `json:"-"`
	VerifyCodeExpiresAt *time.Time `json:"-"`
	PendingEmail        string     `json:"-"`
}

// Auction represents a listing open for bidding until EndTime
type Auction struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartingPrice float64   `json:"starting_price"`
	CurrentPrice  float64   `json:"current_price"`
	EndTime       time.Time `json:"end_time"`
	SellerID      int64     `json:"seller_id"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"image_url,omitempty"`
	HistoryLink   string    `json:"history_link,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SellerAuction is an auction row with its bid count, as listed on the seller dashboard.
type SellerAuction struct {
	Auction
	BidCount int `json:"bid_count"`
}

// AdminAuction is an auction row with the seller's display name.
type AdminAuction struct {
	Auction
	SellerName string `json:"seller_name"`
}

// Bid represents a user's bid on an auction
type Bid struct {
	ID        int64     `json:"id"`
	AuctionID int64     `json:"auction_id"`
	UserID    int64     `json:"user_id"`
	Amount    float64   `json:"amount"`
	BidTime   time.Time `json:"bid_time"`
}

// BidView is a bid joined with the bidder's display name.
type BidView struct {
	Bid
	BidderName string `json:"bidder_name"`
}

// UserBid is the caller's best bid on one auction, for the "my bids" dashboard tab.
type UserBid struct {
	AuctionID    int64     `json:"auction_id"`
	Title        string    `json:"title"`
	Amount       float64   `json:"amount"`
	BidTime      time.Time `json:"bid_time"`
	CurrentPrice float64   `json:"current_price"`
	EndTime      time.Time `json:"end_time"`
	IsOrdered    bool      `json:"is_ordered"`
}

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusOrdered   OrderStatus = "Ordered"
	OrderStatusPicked    OrderStatus = "Picked"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists every status an admin may set, in fulfilment order.
var OrderStatuses = []OrderStatus{
	OrderStatusOrdered,
	OrderStatusPicked,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid reports whether s is one of OrderStatuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// PaymentStatusPaid is the only payment state. There is no payment gateway:
// checkout records every order as paid.
const PaymentStatusPaid = "paid"

// DeliveryWindow is how long after ordering an item is expected to arrive.
const DeliveryWindow = 7 * 24 * time.Hour

// Order is created by the winning bidder after an auction ends
type Order struct {
	ID            int64       `json:"id"`
	AuctionID     int64       `json:"auction_id"`
	UserID        int64       `json:"user_id"`
	Address       string      `json:"address"`
	PaymentStatus string      `json:"payment_status"`
	OrderStatus   OrderStatus `json:"order_status"`
	CreatedAt     time.Time   `json:"created_at"`
}

// EstimatedDelivery returns the expected delivery date.
func (o Order) EstimatedDelivery() time.Time {
	return o.CreatedAt.Add(DeliveryWindow)
}

// OrderView is an order joined with auction and buyer details.
type OrderView struct {
	Order
	AuctionTitle string `json:"auction_title"`
	ImageURL     string `json:"image_url,omitempty"`
	BuyerName    string `json:"buyer_name"`
}

// Notification is a message for one user
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationSummary is what the notification bell shows.
type NotificationSummary struct {
	UnreadCount   int            `json:"unread_count"`
	Notifications []Notification `json:"notifications"`
}

// Page is a slice of dashboard rows plus whether another page exists.
type Page[T any] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"has_more"`
}

// DefaultPageSize is the dashboard page size when none is configured.
const DefaultPageSize = 10

// MaxPage and MaxPageSize bound listing requests so offsets stay small.
const (
	MaxPage     = 10000
	MaxPageSize = 100
)

// PageRequest selects one page of a dashboard listing. Page is 1-based.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) normalized() PageRequest {
	p.Page = min(max(p.Page, 1), MaxPage)
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	p.Size = min(p.Size, MaxPageSize)
	return p
}

// Limit is the number of rows to fetch: one more than the page size, to learn whether another page exists.
func (p PageRequest) Limit() int {
	return p.normalized().Size + 1
}

// Offset is the number of rows before the page.
func (p PageRequest) Offset() int {
	n := p.normalized()
	return (n.Page - 1) * n.Size
}

// NewPage trims rows fetched with req.Limit() down to one page.
func NewPage[T any](rows []T, req PageRequest) Page[T] {
	size := req.normalized().Size
	if len(rows) > size {
		return Page[T]{Items: rows[:size], HasMore: true}
	}
	if rows == nil {
		rows = []T{}
	}
	return Page[T]{Items: rows}
}
