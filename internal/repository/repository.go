package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"context"
	"time"

	model "auction-hub/internal/models"
)

// UserDB defines account storage
type UserDB interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserProfile(ctx context.Context, id int64, name, email string) error
	SetVerifyCode(ctx context.Context, id int64, code, pendingEmail string, expiresAt time.Time) error
	ClearVerifyCode(ctx context.Context, id int64) error
	MarkEmailVerified(ctx context.Context, id int64) error
	SetAdmin(ctx context.Context, id int64, admin bool) error
}

// AuctionDB defines listing storage
type AuctionDB interface {
	CreateAuction(ctx context.Context, auction *model.Auction) error
	GetAuction(ctx context.Context, id int64) (model.Auction, error)
	ListOpenAuctions(ctx context.Context, now time.Time, category string) ([]model.Auction, error)
	ListAuctionsBySeller(ctx context.Context, sellerID int64, limit, offset int) ([]model.SellerAuction, error)
	ListAllAuctions(ctx context.Context) ([]model.AdminAuction, error)
	UpdateAuctionDetails(ctx context.Context, auction model.Auction) error
	DeleteAuction(ctx context.Context, id int64) error
	CountAuctions(ctx context.Context) (int, error)
}

// BidDB defines bid storage for the auction system
type BidDB interface {
	// PlaceBid commits bid and raises the auction's current price in one transaction.
	// It returns the user id of the highest bidder before this bid, or 0 if there was none.
	// bid.ID and bid.BidTime are set from the commit.
	PlaceBid(ctx context.Context, bid *model.Bid) (int64, error)
	ListRecentBids(ctx context.Context, auctionID int64, limit int) ([]model.BidView, error)
	GetWinningBid(ctx context.Context, auctionID int64) (model.Bid, error)
	// ListBids returns every bid on an auction in commit order.
	ListBids(ctx context.Context, auctionID int64) ([]model.Bid, error)
	ListUserBids(ctx context.Context, userID int64, limit, offset int) ([]model.UserBid, error)
}

// OrderDB defines order storage
type OrderDB interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, id int64) (model.Order, error)
	OrderExistsForAuction(ctx context.Context, auctionID int64) (bool, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error
	ListAllOrders(ctx context.Context) ([]model.OrderView, error)
	ListUserOrders(ctx context.Context, userID int64, limit, offset int) ([]model.OrderView, error)
}

// NotificationDB defines notification storage
type NotificationDB interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	GetNotification(ctx context.Context, id int64) (model.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	ListRecentNotifications(ctx context.Context, userID int64, limit int) ([]model.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// Store is the full persistent store
type Store interface {
	UserDB
	AuctionDB
	BidDB
	OrderDB
	NotificationDB
	Ping(ctx context.Context) error
	Close() error
}
