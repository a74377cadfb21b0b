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

const auctionColumns = `a.id, a.title, a.description, a.starting_price, a.current_price, a.end_time,
    a.seller_id, a.category, a.image_url, a.history_link, a.created_at`

func auctionDest(a *model.Auction, endTime, createdAt *int64) []any {
	return []any{&a.ID, &a.Title, &a.Description, &a.StartingPrice, &a.CurrentPrice, endTime,
		&a.SellerID, &a.Category, &a.ImageURL, &a.HistoryLink, createdAt}
}

func scanAuction(row rowScanner, extra ...any) (model.Auction, error) {
	var (
		a                  model.Auction
		endTime, createdAt int64
	)
	if err := row.Scan(append(auctionDest(&a, &endTime, &createdAt), extra...)...); err != nil {
		return model.Auction{}, err
	}
	a.EndTime = fromNanos(endTime)
	a.CreatedAt = fromNanos(createdAt)
	return a, nil
}

// CreateAuction inserts auction and sets its ID. The current price starts at the starting price.
func (r *SQLiteRepo) CreateAuction(ctx context.Context, auction *model.Auction) error {
	if auction.CreatedAt.IsZero() {
		auction.CreatedAt = time.Now().UTC()
	}
	if auction.EndTime.After(maxStoredTime) {
		return fmt.Errorf("create auction %q: %w", auction.Title, biddingerrors.ErrInvalidEndTime)
	}
	auction.CurrentPrice = auction.StartingPrice

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO auctions (title, description, starting_price, current_price, end_time, seller_id,
            category, image_url, history_link, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		auction.Title, auction.Description, auction.StartingPrice, auction.CurrentPrice, toNanos(auction.EndTime),
		auction.SellerID, auction.Category, auction.ImageURL, auction.HistoryLink, toNanos(auction.CreatedAt))
	if err != nil {
		return fmt.Errorf("create auction %q: %w", auction.Title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create auction %q: %w", auction.Title, err)
	}
	auction.ID = id
	return nil
}

// GetAuction returns the auction with id
func (r *SQLiteRepo) GetAuction(ctx context.Context, id int64) (model.Auction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+auctionColumns+` FROM auctions a WHERE a.id = ?`, id)
	a, err := scanAuction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Auction{}, fmt.Errorf("get auction %d: %w", id, biddingerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %d: %w", id, err)
	}
	return a, nil
}

// ListOpenAuctions returns auctions ending after now, newest first. An empty category matches all.
func (r *SQLiteRepo) ListOpenAuctions(ctx context.Context, now time.Time, category string) ([]model.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions a WHERE a.end_time > ?`
	args := []any{toNanos(now)}
	if category != "" {
		query += ` AND a.category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY a.created_at DESC, a.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list open auctions: %w", err)
	}
	defer rows.Close()

	auctions := []model.Auction{}
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("list open auctions: %w", err)
		}
		auctions = append(auctions, a)
	}
	return auctions, rows.Err()
}

// ListAuctionsBySeller returns one page of a seller's auctions with their bid counts
func (r *SQLiteRepo) ListAuctionsBySeller(ctx context.Context, sellerID int64, limit, offset int) ([]model.SellerAuction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auctionColumns+`, (SELECT COUNT(*) FROM bids b WHERE b.auction_id = a.id)
         FROM auctions a
         WHERE a.seller_id = ?
         ORDER BY a.created_at DESC, a.id DESC
         LIMIT ? OFFSET ?`, sellerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list auctions for seller %d: %w", sellerID, err)
	}
	defer rows.Close()

	out := []model.SellerAuction{}
	for rows.Next() {
		var count int
		a, err := scanAuction(rows, &count)
		if err != nil {
			return nil, fmt.Errorf("list auctions for seller %d: %w", sellerID, err)
		}
		out = append(out, model.SellerAuction{Auction: a, BidCount: count})
	}
	return out, rows.Err()
}

// ListAllAuctions returns every auction with its seller name, for the admin view
func (r *SQLiteRepo) ListAllAuctions(ctx context.Context) ([]model.AdminAuction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auctionColumns+`, u.name
         FROM auctions a JOIN users u ON u.id = a.seller_id
         ORDER BY a.created_at DESC, a.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list all auctions: %w", err)
	}
	defer rows.Close()

	out := []model.AdminAuction{}
	for rows.Next() {
		var seller string
		a, err := scanAuction(rows, &seller)
		if err != nil {
			return nil, fmt.Errorf("list all auctions: %w", err)
		}
		out = append(out, model.AdminAuction{Auction: a, SellerName: seller})
	}
	return out, rows.Err()
}

// UpdateAuctionDetails rewrites the descriptive fields of an auction that has no bids yet.
// Prices and end time are not editable.
func (r *SQLiteRepo) UpdateAuctionDetails(ctx context.Context, auction model.Auction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE auctions SET title = ?, description = ?, category = ?, image_url = ?, history_link = ?
         WHERE id = ? AND NOT EXISTS (SELECT 1 FROM bids WHERE auction_id = ?)`,
		auction.Title, auction.Description, auction.Category, auction.ImageURL, auction.HistoryLink,
		auction.ID, auction.ID)
	if err != nil {
		return fmt.Errorf("update auction %d: %w", auction.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update auction %d: %w", auction.ID, err)
	}
	if n > 0 {
		return nil
	}

	if _, err := r.GetAuction(ctx, auction.ID); err != nil {
		return fmt.Errorf("update auction %d: %w", auction.ID, err)
	}
	return fmt.Errorf("update auction %d: %w", auction.ID, biddingerrors.ErrAuctionHasBids)
}

// DeleteAuction removes an auction together with its bids and order
func (r *SQLiteRepo) DeleteAuction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM auctions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete auction %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("delete auction %d", id), biddingerrors.ErrAuctionNotFound)
}

// CountAuctions returns the number of auctions ever listed
func (r *SQLiteRepo) CountAuctions(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM auctions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count auctions: %w", err)
	}
	return n, nil
}
