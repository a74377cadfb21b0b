package order

//go:generate mockgen -source=order_service.go -destination=mock_order_service.go -package=order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	auction "auction-hub/internal/auctionService"
	"auction-hub/internal/biddingerrors"
	"auction-hub/internal/models"
	"auction-hub/internal/realtime"
	"auction-hub/internal/repository"
	"auction-hub/utils"
)

// DashboardLink is where order notifications point.
const DashboardLink = "/dashboard"

// Notifier stores a notification for a user and pushes it live
type Notifier interface {
	Notify(ctx context.Context, userID int64, message, link string) (models.Notification, error)
}

// Broadcaster pushes an event to every connection in a room
type Broadcaster interface {
	Emit(ctx context.Context, room string, ev realtime.Event) error
}

// Eligibility is what the checkout page shows once the caller may order
type Eligibility struct {
	Auction    models.Auction `json:"auction"`
	WinningBid models.Bid     `json:"winning_bid"`
}

// OrderService turns won auctions into orders and tracks their fulfilment
type OrderService struct {
	orders   repository.OrderDB
	auctions repository.AuctionDB
	bids     repository.BidDB
	notifier Notifier
	live     Broadcaster
	now      func() time.Time
}

// NewOrderService creates a new OrderService instance
func NewOrderService(orders repository.OrderDB, auctions repository.AuctionDB, bids repository.BidDB, notifier Notifier, live Broadcaster) *OrderService {
	return &OrderService{
		orders:   orders,
		auctions: auctions,
		bids:     bids,
		notifier: notifier,
		live:     live,
		now:      time.Now,
	}
}

// CheckEligibility reports whether the caller may check out an auction
func (s *OrderService) CheckEligibility(ctx context.Context, caller models.Caller, auctionID int64) (Eligibility, error) {
	if !caller.Authenticated() {
		return Eligibility{}, fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}

	a, err := s.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return Eligibility{}, utils.ServiceError(fmt.Sprintf("load auction %d for checkout", auctionID), err)
	}
	if a.EndTime.After(s.now()) {
		return Eligibility{}, fmt.Errorf("service: %w - auction %d ends at %s", biddingerrors.ErrAuctionNotEnded, auctionID, a.EndTime.Format(time.RFC3339))
	}

	bids, err := s.bids.ListBids(ctx, auctionID)
	if err != nil {
		return Eligibility{}, utils.ServiceError(fmt.Sprintf("list bids for auction %d", auctionID), err)
	}
	winning, err := auction.DetermineWinner(bids)
	if errors.Is(err, biddingerrors.ErrNoBids) {
		return Eligibility{}, fmt.Errorf("service: %w - auction %d had no bids", biddingerrors.ErrNotWinner, auctionID)
	}
	if winning.UserID != caller.UserID {
		return Eligibility{}, fmt.Errorf("service: %w", biddingerrors.ErrNotWinner)
	}

	exists, err := s.orders.OrderExistsForAuction(ctx, auctionID)
	if err != nil {
		return Eligibility{}, utils.ServiceError(fmt.Sprintf("check order for auction %d", auctionID), err)
	}
	if exists {
		return Eligibility{}, fmt.Errorf("service: %w", biddingerrors.ErrAlreadyOrdered)
	}
	return Eligibility{Auction: a, WinningBid: winning}, nil
}

// Checkout places the order for a won auction. Payment is not processed: every order is recorded as paid.
func (s *OrderService) Checkout(ctx context.Context, caller models.Caller, auctionID int64, address, payment string) (models.Order, error) {
	if _, err := s.CheckEligibility(ctx, caller, auctionID); err != nil {
		return models.Order{}, err
	}

	address = strings.TrimSpace(address)
	if address == "" || strings.TrimSpace(payment) == "" {
		return models.Order{}, fmt.Errorf("service: %w", biddingerrors.ErrMissingFields)
	}

	o := models.Order{
		AuctionID:     auctionID,
		UserID:        caller.UserID,
		Address:       address,
		PaymentStatus: models.PaymentStatusPaid,
		OrderStatus:   models.OrderStatusOrdered,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.orders.CreateOrder(ctx, &o); err != nil {
		return models.Order{}, utils.ServiceError(fmt.Sprintf("create order for auction %d", auctionID), err)
	}

	utils.Info("order placed", map[string]any{"order_id": o.ID, "auction_id": auctionID, "user_id": caller.UserID})
	return o, nil
}

// UpdateStatus moves an order to a new fulfilment status and tells the buyer. Admin only.
func (s *OrderService) UpdateStatus(ctx context.Context, caller models.Caller, orderID int64, status models.OrderStatus) (models.Order, error) {
	if err := requireAdmin(caller); err != nil {
		return models.Order{}, err
	}
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("service: %w - %q", biddingerrors.ErrInvalidStatus, status)
	}

	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, utils.ServiceError(fmt.Sprintf("load order %d", orderID), err)
	}
	if err := s.orders.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return models.Order{}, utils.ServiceError(fmt.Sprintf("update order %d", orderID), err)
	}
	o.OrderStatus = status

	s.afterStatusChange(context.WithoutCancel(ctx), o)
	return o, nil
}

func (s *OrderService) afterStatusChange(ctx context.Context, o models.Order) {
	msg := fmt.Sprintf("Your order #%d has been updated to %s.", o.ID, o.OrderStatus)
	if _, err := s.notifier.Notify(ctx, o.UserID, msg, DashboardLink); err != nil {
		utils.Warn("order status notification failed", map[string]any{"order_id": o.ID, "error": err.Error()})
	}

	ev := realtime.Event{
		Name: realtime.EventStatusUpdate,
		Data: realtime.StatusUpdate{OrderID: o.ID, Status: string(o.OrderStatus)},
	}
	if err := s.live.Emit(ctx, realtime.UserRoom(o.UserID), ev); err != nil {
		utils.Warn("order status broadcast failed", map[string]any{"order_id": o.ID, "error": err.Error()})
	}

	utils.Info("order status updated", map[string]any{"order_id": o.ID, "status": o.OrderStatus})
}

// ListUserOrders returns one page of the caller's orders, newest first
func (s *OrderService) ListUserOrders(ctx context.Context, caller models.Caller, page models.PageRequest) (models.Page[models.OrderView], error) {
	if !caller.Authenticated() {
		return models.Page[models.OrderView]{}, fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}

	rows, err := s.orders.ListUserOrders(ctx, caller.UserID, page.Limit(), page.Offset())
	if err != nil {
		return models.Page[models.OrderView]{}, utils.ServiceError("list user orders", err)
	}
	return models.NewPage(rows, page), nil
}

// ListAllOrders returns every order with auction and buyer details. Admin only.
func (s *OrderService) ListAllOrders(ctx context.Context, caller models.Caller) ([]models.OrderView, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	orders, err := s.orders.ListAllOrders(ctx)
	if err != nil {
		return nil, utils.ServiceError("list all orders", err)
	}
	return orders, nil
}

func requireAdmin(caller models.Caller) error {
	if !caller.Authenticated() {
		return fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}
	if !caller.Admin {
		return fmt.Errorf("service: %w", biddingerrors.ErrAdminRequired)
	}
	return nil
}
