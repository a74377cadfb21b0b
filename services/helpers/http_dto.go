package helpers

import (
	"time"

	"auction-hub/internal/models"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	AuctionID int64   `json:"auction_id" binding:"required,gt=0"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     int64   `json:"bid_id"`
	AuctionID int64   `json:"auction_id"`
	UserID    int64   `json:"user_id"`
	Amount    float64 `json:"amount"`
	BidTime   string  `json:"bid_time"`
}

// NewBidResponse renders a bid with an RFC 3339 timestamp
func NewBidResponse(b models.Bid) BidResponse {
	return BidResponse{
		BidID:     b.ID,
		AuctionID: b.AuctionID,
		UserID:    b.UserID,
		Amount:    b.Amount,
		BidTime:   b.BidTime.UTC().Format(time.RFC3339Nano),
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expires_at"`
	User      models.User `json:"user"`
}

type AuctionRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"image_url"`
	HistoryLink   string    `json:"history_link"`
	StartingPrice float64   `json:"starting_price"`
	EndTime       time.Time `json:"end_time"`
}

type CheckoutRequest struct {
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

// OrderResponse is an order with its expected delivery date
type OrderResponse struct {
	models.Order
	EstimatedDelivery time.Time `json:"estimated_delivery"`
}

func NewOrderResponse(o models.Order) OrderResponse {
	return OrderResponse{Order: o, EstimatedDelivery: o.EstimatedDelivery()}
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp" binding:"required"`
}

type EmailChangeRequest struct {
	NewEmail string `json:"new_email" binding:"required"`
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// DashboardResponse is one page of one dashboard tab
type DashboardResponse struct {
	Tab     string `json:"tab"`
	Page    int    `json:"page"`
	Items   any    `json:"items"`
	HasMore bool   `json:"has_more"`
}
