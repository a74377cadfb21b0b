package integrationtests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// PlaceBid through the HTTP API
func TestPlaceBidAPI(t *testing.T) {
	env := SetupTestEnv(t)
	sellerToken, _ := env.RegisterVerifiedUser(t, "seller")
	bidderToken, bidderID := env.RegisterVerifiedUser(t, "bidder")
	rivalToken, rivalID := env.RegisterVerifiedUser(t, "rival")
	lurkerToken, _ := env.RegisterUser(t, "lurker")

	resp, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/api/auctions", sellerToken, map[string]any{
		"title":          "Grandfather Clock",
		"description":    "Oak case, 1890",
		"category":       "Antiques",
		"starting_price": 50,
		"end_time":       time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	auctionID := int64(resp["data"].(map[string]any)["id"].(float64))

	tests := []struct {
		name       string
		token      string
		request    any
		wantStatus int
	}{
		{name: "Anonymous", request: map[string]any{"auction_id": auctionID, "amount": 60}, wantStatus: http.StatusUnauthorized},
		{name: "Unverified", token: lurkerToken, request: map[string]any{"auction_id": auctionID, "amount": 60}, wantStatus: http.StatusBadRequest},
		{name: "Invalid_JSON", token: bidderToken, request: "{auction_id: 1, amount: 100}", wantStatus: http.StatusBadRequest},
		{name: "Own_Auction", token: sellerToken, request: map[string]any{"auction_id": auctionID, "amount": 60}, wantStatus: http.StatusForbidden},
		{name: "Not_Above_Start", token: bidderToken, request: map[string]any{"auction_id": auctionID, "amount": 50}, wantStatus: http.StatusBadRequest},
		{name: "Unknown_Auction", token: bidderToken, request: map[string]any{"auction_id": auctionID + 100, "amount": 60}, wantStatus: http.StatusNotFound},
		{name: "Valid_Bid", token: bidderToken, request: map[string]any{"auction_id": auctionID, "amount": 100}, wantStatus: http.StatusCreated},
		{name: "Same_Price", token: rivalToken, request: map[string]any{"auction_id": auctionID, "amount": 100}, wantStatus: http.StatusBadRequest},
		{name: "Outbid", token: rivalToken, request: map[string]any{"auction_id": auctionID, "amount": 150}, wantStatus: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, w := env.ExecuteRequestAndParse(t, http.MethodPost, "/api/bid", tt.token, tt.request)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus == http.StatusCreated {
				data := resp["data"].(map[string]any)
				require.Equal(t, float64(auctionID), data["auction_id"])
				require.NotZero(t, data["bid_id"])
				_, err := time.Parse(time.RFC3339Nano, data["bid_time"].(string))
				require.NoError(t, err)
			}
		})
	}

	t.Run("Detail_Reflects_Price", func(t *testing.T) {
		resp, w := env.ExecuteRequestAndParse(t, http.MethodGet, fmt.Sprintf("/api/auctions/%d", auctionID), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, 150.0, data["current_price"])
		require.Equal(t, "open", data["status"])
		require.Len(t, data["recent_bids"].([]any), 2)
	})

	t.Run("Outbid_Notification", func(t *testing.T) {
		resp, w := env.ExecuteRequestAndParse(t, http.MethodGet, "/api/notifications/summary", bidderToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, 1.0, data["unread_count"])

		_, w = env.ExecuteRequestAndParse(t, http.MethodPost, "/api/notifications/mark-read", bidderToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp, _ = env.ExecuteRequestAndParse(t, http.MethodGet, "/api/notifications/summary", bidderToken, nil)
		require.Equal(t, 0.0, resp["data"].(map[string]any)["unread_count"])
	})

	t.Run("Winning_Bid", func(t *testing.T) {
		resp, w := env.ExecuteRequestAndParse(t, http.MethodGet, fmt.Sprintf("/api/auctions/%d/winning", auctionID), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, float64(rivalID), data["user_id"])
		require.Equal(t, 150.0, data["amount"])
		require.NotEqual(t, float64(bidderID), data["user_id"])
	})
}

// GetBidsByAuctionHandler Tests
func TestGetBidsByAuctionAPI(t *testing.T) {
	env := SetupTestEnv(t)
	_, sellerID := env.RegisterVerifiedUser(t, "seller")
	bidderToken, _ := env.RegisterVerifiedUser(t, "bidder")

	withBids := env.SeedAuction(t, sellerID, "Vase", 10, time.Now().Add(time.Hour))
	noBids := env.SeedAuction(t, sellerID, "Lamp", 10, time.Now().Add(time.Hour))
	for _, amount := range []float64{20, 30, 40} {
		require.Equal(t, http.StatusCreated, env.PlaceBid(t, bidderToken, withBids.ID, amount))
	}

	tests := []struct {
		name       string
		auctionID  string
		wantCount  int
		wantStatus int
	}{
		{name: "With_Bids", auctionID: fmt.Sprint(withBids.ID), wantCount: 3, wantStatus: http.StatusOK},
		{name: "No_Bids", auctionID: fmt.Sprint(noBids.ID), wantCount: 0, wantStatus: http.StatusOK},
		{name: "Auction_Not_Found", auctionID: "9999", wantStatus: http.StatusNotFound},
		{name: "Bad_ID", auctionID: "abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, w := env.ExecuteRequestAndParse(t, http.MethodGet, "/api/auctions/"+tt.auctionID+"/bids", "", nil)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				bids := resp["data"].([]any)
				require.Len(t, bids, tt.wantCount)
				if tt.wantCount > 0 {
					// newest first
					require.Equal(t, 40.0, bids[0].(map[string]any)["amount"])
					require.Equal(t, "bidder", bids[0].(map[string]any)["bidder_name"])
				}
			}
		})
	}
}

// GetWinningBidHandler Tests
func TestGetWinningBidAPI(t *testing.T) {
	env := SetupTestEnv(t)
	_, sellerID := env.RegisterVerifiedUser(t, "seller")
	aliceToken, _ := env.RegisterVerifiedUser(t, "alice")
	bobToken, bobID := env.RegisterVerifiedUser(t, "bob")

	contested := env.SeedAuction(t, sellerID, "Clock", 50, time.Now().Add(time.Hour))
	require.Equal(t, http.StatusCreated, env.PlaceBid(t, aliceToken, contested.ID, 100))
	require.Equal(t, http.StatusCreated, env.PlaceBid(t, bobToken, contested.ID, 120))
	require.Equal(t, http.StatusBadRequest, env.PlaceBid(t, aliceToken, contested.ID, 110))
	quiet := env.SeedAuction(t, sellerID, "Mirror", 30, time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		auctionID  int64
		wantUser   int64
		wantAmount float64
		wantStatus int
		wantMsg    string
	}{
		{name: "With_Bids", auctionID: contested.ID, wantUser: bobID, wantAmount: 120, wantStatus: http.StatusOK},
		{name: "No_Bids", auctionID: quiet.ID, wantStatus: http.StatusNotFound, wantMsg: "no bids found for auction"},
		{name: "Auction_Not_Found", auctionID: 9999, wantStatus: http.StatusNotFound, wantMsg: "auction not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, w := env.ExecuteRequestAndParse(t, http.MethodGet, fmt.Sprintf("/api/auctions/%d/winning", tt.auctionID), "", nil)
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				data := resp["data"].(map[string]any)
				require.Equal(t, float64(tt.wantUser), data["user_id"])
				require.Equal(t, tt.wantAmount, data["amount"])
				return
			}
			require.Equal(t, tt.wantMsg, resp["message"])
		})
	}
}

// Dashboard my-bids paging
func TestDashboardAPI(t *testing.T) {
	env := SetupTestEnv(t)
	sellerToken, sellerID := env.RegisterVerifiedUser(t, "seller")
	bidderToken, _ := env.RegisterVerifiedUser(t, "bidder")

	for i := 0; i < 12; i++ {
		a := env.SeedAuction(t, sellerID, fmt.Sprintf("Lot %d", i), 10, time.Now().Add(time.Hour))
		require.Equal(t, http.StatusCreated, env.PlaceBid(t, bidderToken, a.ID, 15))
	}

	tests := []struct {
		name        string
		token       string
		query       string
		wantStatus  int
		wantItems   int
		wantHasMore bool
	}{
		{name: "First_Page", token: bidderToken, query: "tab=my-bids", wantStatus: http.StatusOK, wantItems: 10, wantHasMore: true},
		{name: "Second_Page", token: bidderToken, query: "tab=my-bids&page=2", wantStatus: http.StatusOK, wantItems: 2},
		{name: "Past_The_End", token: bidderToken, query: "tab=my-bids&page=5", wantStatus: http.StatusOK},
		{name: "Seller_Auctions", token: sellerToken, query: "tab=my-auctions&page=2", wantStatus: http.StatusOK, wantItems: 2},
		{name: "No_Orders", token: bidderToken, query: "tab=my-orders", wantStatus: http.StatusOK},
		{name: "Unknown_Tab", token: bidderToken, query: "tab=watchlist", wantStatus: http.StatusBadRequest},
		{name: "Anonymous", query: "tab=my-bids", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, w := env.ExecuteRequestAndParse(t, http.MethodGet, "/api/dashboard?"+tt.query, tt.token, nil)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus == http.StatusOK {
				data := resp["data"].(map[string]any)
				require.Len(t, data["items"].([]any), tt.wantItems)
				require.Equal(t, tt.wantHasMore, data["has_more"])
			}
		})
	}
}
