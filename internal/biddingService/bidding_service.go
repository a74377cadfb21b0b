package bidding

//go:generate mockgen -source=bidding_service.go -destination=mock_bidding_service.go -package=bidding

import (
	"context"
	"fmt"
	"math"
	"time"

	"auction-hub/internal/biddingerrors"
	"auction-hub/internal/metrics"
	"auction-hub/internal/models"
	"auction-hub/internal/realtime"
	"auction-hub/internal/repository"
	"auction-hub/utils"
)

// RecentBidsLimit is how many bids the auction page shows.
const RecentBidsLimit = 10

// Notifier stores a notification for a user and pushes it live
type Notifier interface {
	Notify(ctx context.Context, userID int64, message, link string) (models.Notification, error)
}

// Broadcaster pushes an event to every connection in a room
type Broadcaster interface {
	Emit(ctx context.Context, room string, ev realtime.Event) error
}

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	auctions repository.AuctionDB
	bids     repository.BidDB
	notifier Notifier
	live     Broadcaster
	now      func() time.Time
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(auctions repository.AuctionDB, bids repository.BidDB, notifier Notifier, live Broadcaster) *BiddingService {
	return &BiddingService{
		auctions: auctions,
		bids:     bids,
		notifier: notifier,
		live:     live,
		now:      time.Now,
	}
}

// AuctionLink is the page a bid notification points to.
func AuctionLink(auctionID int64) string {
	return fmt.Sprintf("/auction/%d", auctionID)
}

// PlaceBid validates and records a bid by caller on an auction
func (s *BiddingService) PlaceBid(ctx context.Context, caller models.Caller, auctionID int64, amount float64) (models.Bid, error) {
	bid, err := s.placeBid(ctx, caller, auctionID, amount)
	metrics.ObserveBid(err)
	return bid, err
}

func (s *BiddingService) placeBid(ctx context.Context, caller models.Caller, auctionID int64, amount float64) (models.Bid, error) {
	auction, err := s.validateBid(ctx, caller, auctionID, amount)
	if err != nil {
		return models.Bid{}, err
	}

	bid := models.Bid{
		AuctionID: auctionID,
		UserID:    caller.UserID,
		Amount:    amount,
	}
	prevBidder, err := s.bids.PlaceBid(ctx, &bid)
	if err != nil {
		// a concurrent bid or the closing bell can still win the race at commit time
		return models.Bid{}, utils.ServiceError(fmt.Sprintf("record bid on auction %d by user %d", auctionID, caller.UserID), err)
	}

	s.afterBid(context.WithoutCancel(ctx), caller, auction, bid, prevBidder)
	return bid, nil
}

// validateBid checks the caller and the bid against the stored auction
func (s *BiddingService) validateBid(ctx context.Context, caller models.Caller, auctionID int64, amount float64) (models.Auction, error) {
	if !caller.Authenticated() {
		return models.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}
	if !caller.Verified {
		return models.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrEmailNotVerified)
	}
	if auctionID <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - missing auction id", biddingerrors.ErrInvalidBid)
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.Auction{}, fmt.Errorf("service: %w - non-positive bid amount", biddingerrors.ErrInvalidBid)
	}

	auction, err := s.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, utils.ServiceError("load auction for bid", err)
	}
	if auction.SellerID == caller.UserID {
		return models.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrOwnAuction)
	}
	if !auction.EndTime.After(s.now()) {
		return models.Auction{}, fmt.Errorf("service: %w - auction %d ended at %s", biddingerrors.ErrAuctionEnded, auctionID, auction.EndTime.Format(time.RFC3339))
	}
	if amount <= auction.CurrentPrice {
		return models.Auction{}, fmt.Errorf("service: %w - current price is %.2f", biddingerrors.ErrBidTooLow, auction.CurrentPrice)
	}
	return auction, nil
}

// afterBid runs the side effects of an accepted bid. Failures are logged, never returned.
func (s *BiddingService) afterBid(ctx context.Context, caller models.Caller, auction models.Auction, bid models.Bid, prevBidder int64) {
	if prevBidder != 0 && prevBidder != caller.UserID {
		msg := fmt.Sprintf("You have been outbid on %s.", auction.Title)
		if _, err := s.notifier.Notify(ctx, prevBidder, msg, AuctionLink(auction.ID)); err != nil {
			utils.Warn("outbid notification failed", map[string]any{
				"auction_id": auction.ID,
				"user_id":    prevBidder,
				"error":      err.Error(),
			})
		}
	}

	update := realtime.BidUpdate{
		AuctionID:  auction.ID,
		NewPrice:   bid.Amount,
		BidderName: caller.Name,
		BidTime:    bid.BidTime,
	}
	ev := realtime.Event{Name: realtime.EventBidUpdate, Data: update}
	if err := s.live.Emit(ctx, realtime.AuctionRoom(auction.ID), ev); err != nil {
		utils.Warn("bid update broadcast failed", map[string]any{"auction_id": auction.ID, "error": err.Error()})
	}

	utils.Info("bid placed", map[string]any{
		"auction_id": auction.ID,
		"bid_id":     bid.ID,
		"user_id":    caller.UserID,
		"amount":     bid.Amount,
	})
}

// GetBidsForAuction returns the most recent bids on an auction with bidder names
func (s *BiddingService) GetBidsForAuction(ctx context.Context, auctionID int64) ([]models.BidView, error) {
	if auctionID <= 0 {
		return nil, fmt.Errorf("service: %w - missing auction id", biddingerrors.ErrInvalidBid)
	}
	if _, err := s.auctions.GetAuction(ctx, auctionID); err != nil {
		return nil, utils.ServiceError("load auction for bid history", err)
	}

	bids, err := s.bids.ListRecentBids(ctx, auctionID, RecentBidsLimit)
	if err != nil {
		return nil, utils.ServiceError(fmt.Sprintf("get bids for auction %d", auctionID), err)
	}
	return bids, nil
}

// GetWinningBid returns the highest bid for an auction
func (s *BiddingService) GetWinningBid(ctx context.Context, auctionID int64) (models.Bid, error) {
	if auctionID <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - missing auction id", biddingerrors.ErrInvalidBid)
	}
	if _, err := s.auctions.GetAuction(ctx, auctionID); err != nil {
		return models.Bid{}, utils.ServiceError("load auction for winning bid", err)
	}

	winningBid, err := s.bids.GetWinningBid(ctx, auctionID)
	if err != nil {
		return models.Bid{}, utils.ServiceError(fmt.Sprintf("get winning bid for auction %d", auctionID), err)
	}
	return winningBid, nil
}

// GetUserBids returns one page of the caller's best bid per auction
func (s *BiddingService) GetUserBids(ctx context.Context, caller models.Caller, page models.PageRequest) (models.Page[models.UserBid], error) {
	if !caller.Authenticated() {
		return models.Page[models.UserBid]{}, fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}

	rows, err := s.bids.ListUserBids(ctx, caller.UserID, page.Limit(), page.Offset())
	if err != nil {
		return models.Page[models.UserBid]{}, utils.ServiceError(fmt.Sprintf("get bids for user %d", caller.UserID), err)
	}
	return models.NewPage(rows, page), nil
}
