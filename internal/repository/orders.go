package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"auction-hub/internal/biddingerrors"
	model "auction-hub/internal/models"
)

const orderViewQuery = `SELECT o.id, o.auction_id, o.user_id, o.address, o.payment_status, o.order_status, o.created_at,
    a.title, a.image_url, u.name
    FROM orders o
    JOIN auctions a ON a.id = o.auction_id
    JOIN users u ON u.id = o.user_id`

// CreateOrder inserts order and sets its ID. A second order for the same auction is rejected.
func (r *SQLiteRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if order.OrderStatus == "" {
		order.OrderStatus = model.OrderStatusOrdered
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (auction_id, user_id, address, payment_status, order_status, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		order.AuctionID, order.UserID, order.Address, order.PaymentStatus, string(order.OrderStatus), toNanos(order.CreatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("create order for auction %d: %w", order.AuctionID, biddingerrors.ErrAlreadyOrdered)
	}
	if err != nil {
		return fmt.Errorf("create order for auction %d: %w", order.AuctionID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create order for auction %d: %w", order.AuctionID, err)
	}
	order.ID = id
	return nil
}

// GetOrder returns the order with id
func (r *SQLiteRepo) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	var (
		o         model.Order
		status    string
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, auction_id, user_id, address, payment_status, order_status, created_at
         FROM orders WHERE id = ?`, id).
		Scan(&o.ID, &o.AuctionID, &o.UserID, &o.Address, &o.PaymentStatus, &status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, fmt.Errorf("get order %d: %w", id, biddingerrors.ErrOrderNotFound)
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	o.OrderStatus = model.OrderStatus(status)
	o.CreatedAt = fromNanos(createdAt)
	return o, nil
}

// OrderExistsForAuction reports whether an auction has already been checked out
func (r *SQLiteRepo) OrderExistsForAuction(ctx context.Context, auctionID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE auction_id = ?)`, auctionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check order for auction %d: %w", auctionID, err)
	}
	return exists, nil
}

// UpdateOrderStatus sets the fulfilment status of an order
func (r *SQLiteRepo) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET order_status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update order %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("update order %d", id), biddingerrors.ErrOrderNotFound)
}

// ListAllOrders returns every order, newest first
func (r *SQLiteRepo) ListAllOrders(ctx context.Context) ([]model.OrderView, error) {
	rows, err := r.db.QueryContext(ctx, orderViewQuery+` ORDER BY o.created_at DESC, o.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return scanOrderViews(rows)
}

// ListUserOrders returns one page of a buyer's orders, newest first
func (r *SQLiteRepo) ListUserOrders(ctx context.Context, userID int64, limit, offset int) ([]model.OrderView, error) {
	rows, err := r.db.QueryContext(ctx,
		orderViewQuery+` WHERE o.user_id = ? ORDER BY o.created_at DESC, o.id DESC LIMIT ? OFFSET ?`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders for user %d: %w", userID, err)
	}
	return scanOrderViews(rows)
}

func scanOrderViews(rows *sql.Rows) ([]model.OrderView, error) {
	defer rows.Close()

	out := []model.OrderView{}
	for rows.Next() {
		var (
			v         model.OrderView
			status    string
			createdAt int64
		)
		err := rows.Scan(&v.ID, &v.AuctionID, &v.UserID, &v.Address, &v.PaymentStatus, &status, &createdAt,
			&v.AuctionTitle, &v.ImageURL, &v.BuyerName)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		v.OrderStatus = model.OrderStatus(status)
		v.CreatedAt = fromNanos(createdAt)
		out = append(out, v)
	}
	return out, rows.Err()
}
