package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"auction-hub/internal/biddingerrors"
	model "auction-hub/internal/models"
)

// PlaceBid records bid inside one write transaction. The price update is a
// compare-and-set on current_price and end_time so two bidders can never both
// win the same price step. The bid time is taken once the write lock is held,
// so bid times follow commit order.
func (r *SQLiteRepo) PlaceBid(ctx context.Context, bid *model.Bid) (prevBidder int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("place bid on auction %d: %w", bid.AuctionID, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	bidTime := r.now().UTC()

	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM bids WHERE auction_id = ?
         ORDER BY amount DESC, bid_time ASC, id ASC LIMIT 1`, bid.AuctionID).Scan(&prevBidder)
	if errors.Is(err, sql.ErrNoRows) {
		prevBidder, err = 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("place bid on auction %d: %w", bid.AuctionID, err)
	}

	now := toNanos(bidTime)
	res, err := tx.ExecContext(ctx,
		`UPDATE auctions SET current_price = ?
         WHERE id = ? AND current_price < ? AND end_time > ?`,
		bid.Amount, bid.AuctionID, bid.Amount, now)
	if err != nil {
		return 0, fmt.Errorf("place bid on auction %d: %w", bid.AuctionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("place bid on auction %d: %w", bid.AuctionID, err)
	}
	if n == 0 {
		err = rejectReason(ctx, tx, bid.AuctionID, now)
		return 0, fmt.Errorf("place bid on auction %d: %w", bid.AuctionID, err)
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO bids (auction_id, user_id, amount, bid_time) VALUES (?, ?, ?, ?)`,
		bid.AuctionID, bid.UserID, bid.Amount, now)
	if err != nil {
		return 0, fmt.Errorf("place bid on auction %d: %w", bid.AuctionID, err)
	}
	if bid.ID, err = res.LastInsertId(); err != nil {
		return 0, fmt.Errorf("place bid on auction %d: %w", bid.AuctionID, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("place bid on auction %d: commit: %w", bid.AuctionID, err)
	}
	bid.BidTime = bidTime
	return prevBidder, nil
}

// rejectReason explains why the conditional price update matched nothing.
func rejectReason(ctx context.Context, tx *sql.Tx, auctionID, now int64) error {
	var endTime int64
	err := tx.QueryRowContext(ctx, `SELECT end_time FROM auctions WHERE id = ?`, auctionID).Scan(&endTime)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return biddingerrors.ErrAuctionNotFound
	case err != nil:
		return err
	case endTime <= now:
		return biddingerrors.ErrAuctionEnded
	default:
		return biddingerrors.ErrBidTooLow
	}
}

// ListRecentBids returns up to limit bids on an auction, newest first, with bidder names
func (r *SQLiteRepo) ListRecentBids(ctx context.Context, auctionID int64, limit int) ([]model.BidView, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.auction_id, b.user_id, b.amount, b.bid_time, u.name
         FROM bids b JOIN users u ON u.id = b.user_id
         WHERE b.auction_id = ?
         ORDER BY b.bid_time DESC, b.id DESC
         LIMIT ?`, auctionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list bids for auction %d: %w", auctionID, err)
	}
	defer rows.Close()

	bids := []model.BidView{}
	for rows.Next() {
		var (
			b       model.BidView
			bidTime int64
		)
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.UserID, &b.Amount, &bidTime, &b.BidderName); err != nil {
			return nil, fmt.Errorf("list bids for auction %d: %w", auctionID, err)
		}
		b.BidTime = fromNanos(bidTime)
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// GetWinningBid returns the highest bid for an auction, earliest first on ties
func (r *SQLiteRepo) GetWinningBid(ctx context.Context, auctionID int64) (model.Bid, error) {
	var (
		b       model.Bid
		bidTime int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, auction_id, user_id, amount, bid_time FROM bids
         WHERE auction_id = ?
         ORDER BY amount DESC, bid_time ASC, id ASC LIMIT 1`, auctionID).
		Scan(&b.ID, &b.AuctionID, &b.UserID, &b.Amount, &bidTime)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("get winning bid for auction %d: %w", auctionID, biddingerrors.ErrNoBids)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("get winning bid for auction %d: %w", auctionID, err)
	}
	b.BidTime = fromNanos(bidTime)
	return b, nil
}

// ListBids returns all bids on an auction, oldest first
func (r *SQLiteRepo) ListBids(ctx context.Context, auctionID int64) ([]model.Bid, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, auction_id, user_id, amount, bid_time FROM bids
         WHERE auction_id = ?
         ORDER BY bid_time ASC, id ASC`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("list all bids for auction %d: %w", auctionID, err)
	}
	defer rows.Close()

	bids := []model.Bid{}
	for rows.Next() {
		var (
			b       model.Bid
			bidTime int64
		)
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.UserID, &b.Amount, &bidTime); err != nil {
			return nil, fmt.Errorf("list all bids for auction %d: %w", auctionID, err)
		}
		b.BidTime = fromNanos(bidTime)
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// ListUserBids returns the user's highest bid per auction, most recent first
func (r *SQLiteRepo) ListUserBids(ctx context.Context, userID int64, limit, offset int) ([]model.UserBid, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.title, ranked.amount, ranked.bid_time, a.current_price, a.end_time,
            EXISTS (SELECT 1 FROM orders o WHERE o.auction_id = a.id AND o.user_id = ?)
         FROM (
            SELECT auction_id, amount, bid_time,
                ROW_NUMBER() OVER (PARTITION BY auction_id ORDER BY amount DESC, bid_time DESC) AS rn
            FROM bids WHERE user_id = ?
         ) ranked
         JOIN auctions a ON a.id = ranked.auction_id
         WHERE ranked.rn = 1
         ORDER BY ranked.bid_time DESC, a.id DESC
         LIMIT ? OFFSET ?`, userID, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bids for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := []model.UserBid{}
	for rows.Next() {
		var (
			ub               model.UserBid
			bidTime, endTime int64
		)
		if err := rows.Scan(&ub.AuctionID, &ub.Title, &ub.Amount, &bidTime, &ub.CurrentPrice, &endTime, &ub.IsOrdered); err != nil {
			return nil, fmt.Errorf("list bids for user %d: %w", userID, err)
		}
		ub.BidTime = fromNanos(bidTime)
		ub.EndTime = fromNanos(endTime)
		out = append(out, ub)
	}
	return out, rows.Err()
}
