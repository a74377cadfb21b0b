package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	account "auction-hub/internal/accountService"
	auction "auction-hub/internal/auctionService"
	"auction-hub/internal/auth"
	bidding "auction-hub/internal/biddingService"
	"auction-hub/internal/cache"
	model "auction-hub/internal/models"
	notification "auction-hub/internal/notificationService"
	order "auction-hub/internal/orderService"
	"auction-hub/internal/realtime"
	"auction-hub/internal/repository"
	"auction-hub/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const cookieName = "auction_session"

// captureMailer keeps the last code sent to each address
type captureMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *captureMailer) SendOTP(_ context.Context, toEmail, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[toEmail] = code
	return nil
}

func (m *captureMailer) Code(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email]
}

// TestEnv is the full application on a temp SQLite database
type TestEnv struct {
	Router *gin.Engine
	Repo   *repository.SQLiteRepo
	Hub    *realtime.Hub
	Mail   *captureMailer
}

// SetupTestEnv wires every service the way main does, without Redis.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.New(context.Background(), filepath.Join(t.TempDir(), "auction.db"), repository.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	hub := realtime.NewHub(16)
	mail := &captureMailer{codes: make(map[string]string)}
	tokens := auth.NewJWTManager("integration-secret", time.Hour)
	notifications := notification.NewNotificationService(repo, hub)

	router := server.SetupRouter(server.Services{
		Accounts:      account.NewAccountService(repo, tokens, mail, 10*time.Minute),
		Auctions:      auction.NewAuctionService(repo, repo, cache.NewListingCache(nil, time.Minute)),
		Bidding:       bidding.NewBiddingService(repo, repo, notifications, hub),
		Orders:        order.NewOrderService(repo, repo, repo, notifications, hub),
		Notifications: notifications,
		Hub:           hub,
		Store:         repo,
	}, server.Options{CookieName: cookieName, PageSize: model.DefaultPageSize})

	return &TestEnv{Router: router, Repo: repo, Hub: hub, Mail: mail}
}

// ExecuteRequestAndParse executes an HTTP request on the router and parses the JSON envelope.
// token, when set, is sent as a Bearer token.
func (e *TestEnv) ExecuteRequestAndParse(t *testing.T, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)

	var resp map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

// RegisterUser signs up and logs in, returning the session token and user id.
func (e *TestEnv) RegisterUser(t *testing.T, name string) (string, int64) {
	t.Helper()
	email := name + "@example.com"

	_, w := e.ExecuteRequestAndParse(t, http.MethodPost, "/api/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp, w := e.ExecuteRequestAndParse(t, http.MethodPost, "/api/login", "", map[string]string{
		"email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := resp["data"].(map[string]any)
	user := data["user"].(map[string]any)
	return data["token"].(string), int64(user["id"].(float64))
}

// RegisterVerifiedUser signs up and completes the email OTP flow.
func (e *TestEnv) RegisterVerifiedUser(t *testing.T, name string) (string, int64) {
	t.Helper()
	token, id := e.RegisterUser(t, name)

	_, w := e.ExecuteRequestAndParse(t, http.MethodPost, "/api/profile/request-verify", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	code := e.Mail.Code(name + "@example.com")
	require.Len(t, code, 6)

	_, w = e.ExecuteRequestAndParse(t, http.MethodPost, "/api/profile/verify-otp", token, map[string]string{"otp": code})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return token, id
}

// SeedAuction lists an auction directly in the store, so tests can pick any end time.
func (e *TestEnv) SeedAuction(t *testing.T, sellerID int64, title string, price float64, end time.Time) model.Auction {
	t.Helper()
	a := model.Auction{
		Title:         title,
		Description:   title + " description",
		StartingPrice: price,
		EndTime:       end,
		SellerID:      sellerID,
		Category:      "Antiques",
	}
	require.NoError(t, e.Repo.CreateAuction(context.Background(), &a))
	return a
}

// PlaceBid posts a bid and returns the status code.
func (e *TestEnv) PlaceBid(t *testing.T, token string, auctionID int64, amount float64) int {
	t.Helper()
	_, w := e.ExecuteRequestAndParse(t, http.MethodPost, "/api/bid", token, map[string]any{
		"auction_id": auctionID, "amount": amount,
	})
	return w.Code
}
