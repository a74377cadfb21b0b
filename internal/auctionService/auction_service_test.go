package auction

import (
	"context"
	"errors"
	"testing"
	"time"

	"auction-hub/internal/biddingerrors"
	"auction-hub/internal/cache"
	"auction-hub/internal/models"
	"auction-hub/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type serviceMocks struct {
	auctions *repository.MockAuctionDB
	bids     *repository.MockBidDB
}

func newMockedService(t *testing.T, now time.Time, listing ListingCache) (*AuctionService, serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		auctions: repository.NewMockAuctionDB(ctrl),
		bids:     repository.NewMockBidDB(ctrl),
	}
	if listing == nil {
		listing = cache.NewListingCache(nil, 0)
	}
	svc := NewAuctionService(m.auctions, m.bids, listing)
	svc.now = func() time.Time { return now }
	return svc, m
}

func newRedisListing(t *testing.T) (*miniredis.Miniredis, *cache.ListingCache) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return s, cache.NewListingCache(rdb, time.Minute)
}

func TestAuctionService_ListOpenCaching(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s, listing := newRedisListing(t)
	svc, m := newMockedService(t, now, listing)

	open := []models.Auction{
		{ID: 2, Title: "Clock", EndTime: now.Add(time.Hour), Category: "Antiques"},
		{ID: 1, Title: "Vase", EndTime: now.Add(30 * time.Second), Category: "Pottery"},
	}

	// first call misses and fills the cache, second is served from Redis
	m.auctions.EXPECT().ListOpenAuctions(gomock.Any(), now, "").Return(open, nil).Times(1)
	got, err := svc.ListOpen(ctx, "")
	require.NoError(t, err)
	require.Equal(t, open, got)

	got, err = svc.ListOpen(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// a filtered listing always goes to the store
	m.auctions.EXPECT().ListOpenAuctions(gomock.Any(), now, "Antiques").Return(open[:1], nil).Times(2)
	for i := 0; i < 2; i++ {
		got, err = svc.ListOpen(ctx, " Antiques ")
		require.NoError(t, err)
		require.Len(t, got, 1)
	}

	// entries that ended while cached are hidden
	later := now.Add(45 * time.Second)
	svc.now = func() time.Time { return later }
	got, err = svc.ListOpen(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(2), got[0].ID)

	// after the TTL the store is read again
	s.FastForward(61 * time.Second)
	m.auctions.EXPECT().ListOpenAuctions(gomock.Any(), later, "").Return(open[:1], nil)
	got, err = svc.ListOpen(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestAuctionService_ListOpenWithRedisDown(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()
	s, listing := newRedisListing(t)
	s.Close()
	svc, m := newMockedService(t, now, listing)

	m.auctions.EXPECT().ListOpenAuctions(gomock.Any(), now, "").Return([]models.Auction{{ID: 1}}, nil)
	got, err := svc.ListOpen(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestAuctionService_GetAuction(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := models.Auction{ID: 5, Title: "Clock", CurrentPrice: 120, EndTime: now.Add(26 * time.Hour)}
	bids := []models.BidView{{Bid: models.Bid{ID: 1, AuctionID: 5, Amount: 120}, BidderName: "bob"}}

	tests := []struct {
		name          string
		id            int64
		mockSetup     func(m serviceMocks)
		expected      Detail
		expectedError error
	}{
		{
			name: "open_auction",
			id:   5,
			mockSetup: func(m serviceMocks) {
				m.auctions.EXPECT().GetAuction(gomock.Any(), int64(5)).Return(clock, nil)
				m.bids.EXPECT().ListRecentBids(gomock.Any(), int64(5), RecentBidsLimit).Return(bids, nil)
			},
			expected: Detail{Auction: clock, Status: StatusOpen, TimeLeft: "1d 2h left", RecentBids: bids},
		},
		{
			name: "not_found",
			id:   6,
			mockSetup: func(m serviceMocks) {
				m.auctions.EXPECT().GetAuction(gomock.Any(), int64(6)).Return(models.Auction{}, biddingerrors.ErrAuctionNotFound)
			},
			expectedError: biddingerrors.ErrAuctionNotFound,
		},
		{
			name:          "invalid_id",
			id:            0,
			mockSetup:     func(serviceMocks) {},
			expectedError: biddingerrors.ErrAuctionNotFound,
		},
		{
			name: "bid_history_fails",
			id:   5,
			mockSetup: func(m serviceMocks) {
				m.auctions.EXPECT().GetAuction(gomock.Any(), int64(5)).Return(clock, nil)
				m.bids.EXPECT().ListRecentBids(gomock.Any(), int64(5), RecentBidsLimit).Return(nil, errors.New("database is locked"))
			},
			expectedError: biddingerrors.ErrStoreFailure,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, m := newMockedService(t, now, nil)
			tc.mockSetup(m)

			detail, err := svc.GetAuction(context.Background(), tc.id)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, detail)
		})
	}
}

func TestAuctionService_CreateAuction(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seller := models.Caller{UserID: 3, Name: "sam"}
	valid := Input{
		Title:         " Clock ",
		Description:   "Brass carriage clock",
		Category:      "Antiques",
		StartingPrice: 50,
		EndTime:       now.Add(48 * time.Hour),
	}

	withInput := func(edit func(in *Input)) Input {
		in := valid
		edit(&in)
		return in
	}

	tests := []struct {
		name          string
		caller        models.Caller
		input         Input
		mockSetup     func(m serviceMocks)
		expectedError error
	}{
		{
			name:   "valid",
			caller: seller,
			input:  valid,
			mockSetup: func(m serviceMocks) {
				m.auctions.EXPECT().CreateAuction(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, a *models.Auction) error {
						a.ID = 11
						a.CurrentPrice = a.StartingPrice
						return nil
					})
			},
		},
		{
			name:          "unauthenticated",
			caller:        models.Caller{},
			input:         valid,
			mockSetup:     func(serviceMocks) {},
			expectedError: biddingerrors.ErrUnauthenticated,
		},
		{
			name:          "missing_title",
			caller:        seller,
			input:         withInput(func(in *Input) { in.Title = "   " }),
			mockSetup:     func(serviceMocks) {},
			expectedError: biddingerrors.ErrMissingFields,
		},
		{
			name:          "missing_end_time",
			caller:        seller,
			input:         withInput(func(in *Input) { in.EndTime = time.Time{} }),
			mockSetup:     func(serviceMocks) {},
			expectedError: biddingerrors.ErrMissingFields,
		},
		{
			name:          "zero_price",
			caller:        seller,
			input:         withInput(func(in *Input) { in.StartingPrice = 0 }),
			mockSetup:     func(serviceMocks) {},
			expectedError: biddingerrors.ErrInvalidPrice,
		},
		{
			name:          "end_in_past",
			caller:        seller,
			input:         withInput(func(in *Input) { in.EndTime = now.Add(-time.Minute) }),
			mockSetup:     func(serviceMocks) {},
			expectedError: biddingerrors.ErrInvalidEndTime,
		},
		{
			name:          "end_too_far_ahead",
			caller:        seller,
			input:         withInput(func(in *Input) { in.EndTime = now.Add(MaxAuctionDuration + time.Hour) }),
			mockSetup:     func(serviceMocks) {},
			expectedError: biddingerrors.ErrInvalidEndTime,
		},
		{
			name:          "end_past_year_2262",
			caller:        seller,
			input:         withInput(func(in *Input) { in.EndTime = time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC) }),
			mockSetup:     func(serviceMocks) {},
			expectedError: biddingerrors.ErrInvalidEndTime,
		},
		{
			name:   "store_failure",
			caller: seller,
			input:  valid,
			mockSetup: func(m serviceMocks) {
				m.auctions.EXPECT().CreateAuction(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			expectedError: biddingerrors.ErrStoreFailure,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, m := newMockedService(t, now, nil)
			tc.mockSetup(m)

			a, err := svc.CreateAuction(context.Background(), tc.caller, tc.input)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(11), a.ID)
			require.Equal(t, "Clock", a.Title)
			require.Equal(t, seller.UserID, a.SellerID)
			require.Equal(t, 50.0, a.CurrentPrice)
		})
	}
}

func TestAuctionService_UpdateAuction(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	listed := models.Auction{ID: 5, Title: "Clock", Description: "old", Category: "Antiques", StartingPrice: 50, CurrentPrice: 50, EndTime: now.Add(time.Hour), SellerID: 3}
	edit := Input{Title: "Carriage clock", Description: "new", Category: "Clocks", StartingPrice: 1, EndTime: now.Add(1000 * time.Hour)}

	tests := []struct {
		name          string
		caller        models.Caller
		mockSetup     func(m serviceMocks)
		expectedError error
	}{
		{
			name:   "seller_edits",
			caller: models.Caller{UserID: 3},
			mockSetup: func(m serviceMocks) {
				m.auctions.EXPECT().GetAuction(gomock.Any(), int64(5)).Return(listed, nil)
				m.auctions.EXPECT().UpdateAuctionDetails(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, a models.Auction) error {
						if a.EndTime != listed.EndTime || a.StartingPrice != listed.StartingPrice {
							return errors.New("end time and price must not change")
						}
						return nil
					})
			},
		},
		{
			name:   "not_seller",
			caller: models.Caller{UserID: 4},
			mockSetup: func(m serviceMocks) {
				m.auctions.EXPECT().GetAuction(gomock.Any(), int64(5)).Return(listed, nil)
			},
			expectedError: biddingerrors.ErrNotSeller,
		},
		{
			name:   "has_bids",
			caller: models.Caller{UserID: 3},
			mockSetup: func(m serviceMocks) {
				m.auctions.EXPECT().GetAuction(gomock.Any(), int64(5)).Return(listed, nil)
				m.auctions.EXPECT().UpdateAuctionDetails(gomock.Any(), gomock.Any()).Return(biddingerrors.ErrAuctionHasBids)
			},
			expectedError: biddingerrors.ErrAuctionHasBids,
		},
		{
			name:          "unauthenticated",
			caller:        models.Caller{},
			mockSetup:     func(serviceMocks) {},
			expectedError: biddingerrors.ErrUnauthenticated,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, m := newMockedService(t, now, nil)
			tc.mockSetup(m)

			a, err := svc.UpdateAuction(context.Background(), tc.caller, 5, edit)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "Carriage clock", a.Title)
			require.Equal(t, "Clocks", a.Category)
			require.Equal(t, listed.EndTime, a.EndTime)
		})
	}
}

func TestAuctionService_AdminOperations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	admin := models.Caller{UserID: 1, Admin: true}
	member := models.Caller{UserID: 2}

	t.Run("delete_requires_admin", func(t *testing.T) {
		t.Parallel()
		svc, _ := newMockedService(t, time.Now(), nil)
		require.ErrorIs(t, svc.DeleteAuction(ctx, member, 5), biddingerrors.ErrAdminRequired)
		require.ErrorIs(t, svc.DeleteAuction(ctx, models.Caller{}, 5), biddingerrors.ErrUnauthenticated)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		svc, m := newMockedService(t, time.Now(), nil)
		m.auctions.EXPECT().DeleteAuction(gomock.Any(), int64(5)).Return(nil)
		m.auctions.EXPECT().DeleteAuction(gomock.Any(), int64(6)).Return(biddingerrors.ErrAuctionNotFound)

		require.NoError(t, svc.DeleteAuction(ctx, admin, 5))
		require.ErrorIs(t, svc.DeleteAuction(ctx, admin, 6), biddingerrors.ErrAuctionNotFound)
	})

	t.Run("list_all", func(t *testing.T) {
		t.Parallel()
		svc, m := newMockedService(t, time.Now(), nil)
		rows := []models.AdminAuction{{Auction: models.Auction{ID: 1}, SellerName: "sam"}}
		m.auctions.EXPECT().ListAllAuctions(gomock.Any()).Return(rows, nil)

		got, err := svc.ListAllAuctions(ctx, admin)
		require.NoError(t, err)
		require.Equal(t, rows, got)

		_, err = svc.ListAllAuctions(ctx, member)
		require.ErrorIs(t, err, biddingerrors.ErrAdminRequired)
	})
}

func TestAuctionService_ListSellerAuctions(t *testing.T) {
	t.Parallel()
	svc, m := newMockedService(t, time.Now(), nil)
	rows := make([]models.SellerAuction, 11)
	m.auctions.EXPECT().ListAuctionsBySeller(gomock.Any(), int64(3), 11, 10).Return(rows, nil)

	page, err := svc.ListSellerAuctions(context.Background(), models.Caller{UserID: 3}, models.PageRequest{Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	require.True(t, page.HasMore)

	_, err = svc.ListSellerAuctions(context.Background(), models.Caller{}, models.PageRequest{})
	require.ErrorIs(t, err, biddingerrors.ErrUnauthenticated)
}
