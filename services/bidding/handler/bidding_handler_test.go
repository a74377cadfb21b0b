package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-hub/internal/biddingerrors"
	"auction-hub/internal/models"
	"auction-hub/services/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var bidder = models.Caller{UserID: 7, Name: "bob", Verified: true}

// Helper to build a router that injects bidder as the caller
func newTestRouter(register func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) { helpers.SetCaller(c, bidder) })
	register(router)
	return router
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	handler := NewBiddingHandler(mockService)
	router := newTestRouter(func(r *gin.Engine) { r.POST("/api/bid", handler.PlaceBidHandler) })

	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success_valid_bid",
			requestBody: helpers.PlaceBidRequest{AuctionID: 1, Amount: 100},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), bidder, int64(1), 100.0).
					Return(models.Bid{ID: 11, AuctionID: 1, UserID: 7, Amount: 100, BidTime: now}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid placed successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, 11.0, data["bid_id"])
				require.Equal(t, 1.0, data["auction_id"])
				require.Equal(t, 7.0, data["user_id"])
				require.Equal(t, 100.0, data["amount"])
				_, err := time.Parse(time.RFC3339Nano, data["bid_time"].(string))
				require.NoError(t, err)
			},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "missing_auction_id",
			requestBody:    helpers.PlaceBidRequest{Amount: 50},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "invalid_amount_zero",
			requestBody:    helpers.PlaceBidRequest{AuctionID: 1, Amount: 0},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "negative_amount",
			requestBody:    helpers.PlaceBidRequest{AuctionID: 1, Amount: -10},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "service_bid_too_low",
			requestBody: helpers.PlaceBidRequest{AuctionID: 2, Amount: 50},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), bidder, int64(2), 50.0).
					Return(models.Bid{}, fmt.Errorf("service: %w", biddingerrors.ErrBidTooLow))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "bid must be higher than current price",
		},
		{
			name:        "service_auction_ended",
			requestBody: helpers.PlaceBidRequest{AuctionID: 3, Amount: 50},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), bidder, int64(3), 50.0).
					Return(models.Bid{}, biddingerrors.ErrAuctionEnded)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "auction has ended",
		},
		{
			name:        "service_own_auction",
			requestBody: helpers.PlaceBidRequest{AuctionID: 4, Amount: 50},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), bidder, int64(4), 50.0).
					Return(models.Bid{}, biddingerrors.ErrOwnAuction)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "you cannot bid on your own auction",
		},
		{
			name:        "service_auction_not_found",
			requestBody: helpers.PlaceBidRequest{AuctionID: 404, Amount: 50},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), bidder, int64(404), 50.0).
					Return(models.Bid{}, biddingerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
		},
		{
			name:        "service_generic_error",
			requestBody: helpers.PlaceBidRequest{AuctionID: 5, Amount: 100},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), bidder, int64(5), 100.0).
					Return(models.Bid{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "a database error occurred",
		},
		{
			name:        "extremely_large_amount",
			requestBody: helpers.PlaceBidRequest{AuctionID: 6, Amount: 1e18},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), bidder, int64(6), 1e18).
					Return(models.Bid{ID: 12, AuctionID: 6, UserID: 7, Amount: 1e18, BidTime: now}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid placed successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, 1e18, data["amount"])
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var reqBody []byte
			var err error
			switch v := tc.requestBody.(type) {
			case string:
				reqBody = []byte(v)
			default:
				reqBody, err = json.Marshal(v)
				require.NoError(t, err)
			}

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/api/bid", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			err = json.Unmarshal(w.Body.Bytes(), &resp)
			require.NoError(t, err)

			require.Contains(t, resp["message"], tc.expectedMsg)
			if w.Code == http.StatusInternalServerError {
				require.NotContains(t, w.Body.String(), "database failure")
			}

			if tc.validateData != nil && w.Code == http.StatusCreated {
				data := resp["data"].(map[string]any)
				tc.validateData(t, data)
			}
		})
	}
}

// Test GetBidsByAuctionHandler
func TestGetBidsByAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	handler := NewBiddingHandler(mockService)
	router := newTestRouter(func(r *gin.Engine) { r.GET("/api/auctions/:auction_id/bids", handler.GetBidsByAuctionHandler) })

	now := time.Now().UTC()

	tests := []struct {
		name           string
		auctionID      string
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data []map[string]any)
	}{
		{
			name:      "success_multiple_bids",
			auctionID: "1",
			mockSetup: func() {
				mockService.EXPECT().
					GetBidsForAuction(gomock.Any(), int64(1)).
					Return([]models.BidView{
						{Bid: models.Bid{ID: 2, AuctionID: 1, UserID: 3, Amount: 150, BidTime: now}, BidderName: "carol"},
						{Bid: models.Bid{ID: 1, AuctionID: 1, UserID: 2, Amount: 100, BidTime: now}, BidderName: "bob"},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bids retrieved successfully",
			validateData: func(t *testing.T, data []map[string]any) {
				require.Len(t, data, 2)
				require.Equal(t, "carol", data[0]["bidder_name"])
				require.Equal(t, 150.0, data[0]["amount"])
			},
		},
		{
			name:      "success_no_bids",
			auctionID: "2",
			mockSetup: func() {
				mockService.EXPECT().GetBidsForAuction(gomock.Any(), int64(2)).Return([]models.BidView{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bids retrieved successfully",
			validateData: func(t *testing.T, data []map[string]any) {
				require.Len(t, data, 0)
			},
		},
		{
			name:      "service_nil_slice",
			auctionID: "3",
			mockSetup: func() {
				mockService.EXPECT().GetBidsForAuction(gomock.Any(), int64(3)).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bids retrieved successfully",
			validateData: func(t *testing.T, data []map[string]any) {
				require.Len(t, data, 0)
			},
		},
		{
			name:      "auction_not_found",
			auctionID: "4",
			mockSetup: func() {
				mockService.EXPECT().GetBidsForAuction(gomock.Any(), int64(4)).Return(nil, biddingerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
		},
		{
			name:      "service_generic_error",
			auctionID: "5",
			mockSetup: func() {
				mockService.EXPECT().GetBidsForAuction(gomock.Any(), int64(5)).Return(nil, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "a database error occurred",
		},
		{
			name:           "non_numeric_id",
			auctionID:      "clock",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid auction_id",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/auctions/%s/bids", tc.auctionID), nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			err := json.Unmarshal(w.Body.Bytes(), &resp)
			require.NoError(t, err)

			require.Contains(t, resp["message"], tc.expectedMsg)

			if tc.validateData != nil && w.Code == http.StatusOK {
				dataRaw := resp["data"].([]any)
				data := make([]map[string]any, len(dataRaw))
				for i, v := range dataRaw {
					data[i] = v.(map[string]any)
				}
				tc.validateData(t, data)
			}
		})
	}
}

// Test GetWinningBidHandler
func TestGetWinningBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	handler := NewBiddingHandler(mockService)
	router := newTestRouter(func(r *gin.Engine) { r.GET("/api/auctions/:auction_id/winning", handler.GetWinningBidHandler) })

	now := time.Now().UTC()

	tests := []struct {
		name           string
		auctionID      string
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:      "success",
			auctionID: "1",
			mockSetup: func() {
				mockService.EXPECT().
					GetWinningBid(gomock.Any(), int64(1)).
					Return(models.Bid{ID: 3, AuctionID: 1, UserID: 2, Amount: 150, BidTime: now}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "winning bid retrieved successfully",
		},
		{
			name:      "no_bids",
			auctionID: "2",
			mockSetup: func() {
				mockService.EXPECT().GetWinningBid(gomock.Any(), int64(2)).Return(models.Bid{}, biddingerrors.ErrNoBids)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "no bids found for auction",
		},
		{
			name:      "service_generic_error",
			auctionID: "3",
			mockSetup: func() {
				mockService.EXPECT().GetWinningBid(gomock.Any(), int64(3)).Return(models.Bid{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "a database error occurred",
		},
		{
			name:           "negative_id",
			auctionID:      "-1",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid auction_id",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/auctions/%s/winning", tc.auctionID), nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Contains(t, resp["message"], tc.expectedMsg)

			if w.Code == http.StatusOK {
				data := resp["data"].(map[string]any)
				require.Equal(t, 2.0, data["user_id"])
				require.Equal(t, 150.0, data["amount"])
			}
		})
	}
}
