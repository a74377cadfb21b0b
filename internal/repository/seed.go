package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-hub/internal/biddingerrors"
	model "auction-hub/internal/models"
)

// DemoSellerEmail owns the demo listings
const DemoSellerEmail = "demo@example.com"

// SeedDemoData lists a few demo auctions when the store has never had any.
// It reports whether anything was written.
func SeedDemoData(ctx context.Context, store Store, passwordHash string, now time.Time) (bool, error) {
	n, err := store.CountAuctions(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	seller, err := store.GetUserByEmail(ctx, DemoSellerEmail)
	if errors.Is(err, biddingerrors.ErrUserNotFound) {
		seller = model.User{
			Name:          "Demo Seller",
			Email:         DemoSellerEmail,
			PasswordHash:  passwordHash,
			CreatedAt:     now,
			EmailVerified: true,
		}
		err = store.CreateUser(ctx, &seller)
	}
	if err != nil {
		return false, fmt.Errorf("seed demo seller: %w", err)
	}

	listings := []model.Auction{
		{
			Title:         "Vintage Rolex Watch",
			Description:   "Authentic vintage Rolex Submariner from 1978. In excellent condition.",
			StartingPrice: 2000,
			EndTime:       now.Add(48 * time.Hour),
			Category:      "Watches",
			ImageURL:      "⌚",
			HistoryLink:   "https://en.wikipedia.org/wiki/Rolex_Submariner",
		},
		{
			Title:         "Rare Pokemon Cards Set",
			Description:   "Complete first edition Pokemon card collection",
			StartingPrice: 300,
			EndTime:       now.Add(24 * time.Hour),
			Category:      "Collectibles",
			ImageURL:      "🎮",
		},
		{
			Title:         "Antique Painting",
			Description:   "18th century oil painting by renowned artist",
			StartingPrice: 1000,
			EndTime:       now.Add(5 * 24 * time.Hour),
			Category:      "Art",
			ImageURL:      "🎨",
		},
	}
	for i := range listings {
		listings[i].SellerID = seller.ID
		listings[i].CreatedAt = now
		if err := store.CreateAuction(ctx, &listings[i]); err != nil {
			return false, fmt.Errorf("seed: %w", err)
		}
	}
	return true, nil
}
