package auction

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"auction-hub/internal/biddingerrors"
	"auction-hub/internal/models"
	"auction-hub/internal/repository"
	"auction-hub/utils"
)

// RecentBidsLimit is how many bids the detail view carries.
const RecentBidsLimit = 10

// MaxAuctionDuration is the furthest ahead an auction may be set to end.
const MaxAuctionDuration = 365 * 24 * time.Hour

// ListingCache holds the unfiltered home listing for a bounded time
type ListingCache interface {
	Get(ctx context.Context) ([]models.Auction, bool, error)
	Set(ctx context.Context, auctions []models.Auction) error
}

// Detail is an auction as shown on its own page
type Detail struct {
	models.Auction
	Status     Status           `json:"status"`
	TimeLeft   string           `json:"time_left"`
	RecentBids []models.BidView `json:"recent_bids"`
}

// Input carries the seller-supplied fields of a listing
type Input struct {
	Title         string
	Description   string
	Category      string
	ImageURL      string
	HistoryLink   string
	StartingPrice float64
	EndTime       time.Time
}

func (in Input) trimmed() Input {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.HistoryLink = strings.TrimSpace(in.HistoryLink)
	return in
}

func (in Input) hasDetails() bool {
	return in.Title != "" && in.Description != "" && in.Category != ""
}

// AuctionService manages listings over their lifetime
type AuctionService struct {
	auctions repository.AuctionDB
	bids     repository.BidDB
	listing  ListingCache
	now      func() time.Time
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(auctions repository.AuctionDB, bids repository.BidDB, listing ListingCache) *AuctionService {
	return &AuctionService{
		auctions: auctions,
		bids:     bids,
		listing:  listing,
		now:      time.Now,
	}
}

// ListOpen returns open auctions, newest first. The unfiltered listing is served from the cache when present.
func (s *AuctionService) ListOpen(ctx context.Context, category string) ([]models.Auction, error) {
	category = strings.TrimSpace(category)
	now := s.now()

	if category == "" {
		cached, ok, err := s.listing.Get(ctx)
		if err != nil {
			utils.Warn("listing cache read failed", map[string]any{"error": err.Error()})
		}
		if ok {
			return stillOpen(cached, now), nil
		}
	}

	auctions, err := s.auctions.ListOpenAuctions(ctx, now, category)
	if err != nil {
		return nil, utils.ServiceError("list open auctions", err)
	}

	if category == "" {
		if err := s.listing.Set(ctx, auctions); err != nil {
			utils.Warn("listing cache write failed", map[string]any{"error": err.Error()})
		}
	}
	return auctions, nil
}

// stillOpen drops cached entries whose end time passed while they sat in the cache
func stillOpen(auctions []models.Auction, now time.Time) []models.Auction {
	open := make([]models.Auction, 0, len(auctions))
	for _, a := range auctions {
		if StatusAt(a, now) == StatusOpen {
			open = append(open, a)
		}
	}
	return open
}

// GetAuction returns an auction with its status, time left and latest bids
func (s *AuctionService) GetAuction(ctx context.Context, id int64) (Detail, error) {
	if id <= 0 {
		return Detail{}, fmt.Errorf("service: %w", biddingerrors.ErrAuctionNotFound)
	}

	a, err := s.auctions.GetAuction(ctx, id)
	if err != nil {
		return Detail{}, utils.ServiceError(fmt.Sprintf("get auction %d", id), err)
	}
	bids, err := s.bids.ListRecentBids(ctx, id, RecentBidsLimit)
	if err != nil {
		return Detail{}, utils.ServiceError(fmt.Sprintf("get bids for auction %d", id), err)
	}

	now := s.now()
	return Detail{
		Auction:    a,
		Status:     StatusAt(a, now),
		TimeLeft:   TimeLeft(a.EndTime, now),
		RecentBids: bids,
	}, nil
}

// CreateAuction lists a new auction for the caller
func (s *AuctionService) CreateAuction(ctx context.Context, caller models.Caller, in Input) (models.Auction, error) {
	if !caller.Authenticated() {
		return models.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}
	in = in.trimmed()
	if !in.hasDetails() || in.EndTime.IsZero() {
		return models.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrMissingFields)
	}
	if in.StartingPrice <= 0 || math.IsNaN(in.StartingPrice) || math.IsInf(in.StartingPrice, 0) {
		return models.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrInvalidPrice)
	}
	now := s.now()
	if !in.EndTime.After(now) || in.EndTime.After(now.Add(MaxAuctionDuration)) {
		return models.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrInvalidEndTime)
	}

	a := models.Auction{
		Title:         in.Title,
		Description:   in.Description,
		StartingPrice: in.StartingPrice,
		EndTime:       in.EndTime.UTC(),
		SellerID:      caller.UserID,
		Category:      in.Category,
		ImageURL:      in.ImageURL,
		HistoryLink:   in.HistoryLink,
	}
	if err := s.auctions.CreateAuction(ctx, &a); err != nil {
		return models.Auction{}, utils.ServiceError("create auction", err)
	}

	utils.Info("auction created", map[string]any{"auction_id": a.ID, "seller_id": caller.UserID})
	return a, nil
}

// UpdateAuction edits the descriptive fields of the caller's auction. Prices and end time stay as listed.
func (s *AuctionService) UpdateAuction(ctx context.Context, caller models.Caller, id int64, in Input) (models.Auction, error) {
	if !caller.Authenticated() {
		return models.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}

	current, err := s.auctions.GetAuction(ctx, id)
	if err != nil {
		return models.Auction{}, utils.ServiceError(fmt.Sprintf("load auction %d for edit", id), err)
	}
	if current.SellerID != caller.UserID {
		return models.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrNotSeller)
	}

	in = in.trimmed()
	if !in.hasDetails() {
		return models.Auction{}, fmt.Errorf("service: %w", biddingerrors.ErrMissingFields)
	}

	updated := current
	updated.Title = in.Title
	updated.Description = in.Description
	updated.Category = in.Category
	updated.ImageURL = in.ImageURL
	updated.HistoryLink = in.HistoryLink
	if err := s.auctions.UpdateAuctionDetails(ctx, updated); err != nil {
		return models.Auction{}, utils.ServiceError(fmt.Sprintf("update auction %d", id), err)
	}
	return updated, nil
}

// DeleteAuction removes an auction with its bids and order. Admin only.
func (s *AuctionService) DeleteAuction(ctx context.Context, caller models.Caller, id int64) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if err := s.auctions.DeleteAuction(ctx, id); err != nil {
		return utils.ServiceError(fmt.Sprintf("delete auction %d", id), err)
	}

	utils.Info("auction deleted", map[string]any{"auction_id": id, "admin_id": caller.UserID})
	return nil
}

// ListSellerAuctions returns one page of the caller's own listings with bid counts
func (s *AuctionService) ListSellerAuctions(ctx context.Context, caller models.Caller, page models.PageRequest) (models.Page[models.SellerAuction], error) {
	if !caller.Authenticated() {
		return models.Page[models.SellerAuction]{}, fmt.Errorf("service: %w", biddingerrors.ErrUnauthenticated)
	}

	rows, err := s.auctions.ListAuctionsBySeller(ctx, caller.UserID, page.Limit(), page.Offset())
	if err != nil {
		return models.Page[models.SellerAuction]{}, utils.ServiceError("list seller auctions", err)
	}
	return models.NewPage(rows, page), nil
}

// ListAllAuctions returns every auction with its seller name. Admin only.
func (s *AuctionService) ListAllAuctions(ctx context.Context, caller models.Caller) ([]models.AdminAuction, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	auctions, err := s.auctions.ListAllAuctions(ctx)
	if err != nil {
		return nil, utils.ServiceError("list all auctions", err)
	}
	return auctions, nil
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
