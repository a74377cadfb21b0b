package server

import (
	"context"
	"net/http"
	"time"

	account "auction-hub/internal/accountService"
	auction "auction-hub/internal/auctionService"
	bidding "auction-hub/internal/biddingService"
	notification "auction-hub/internal/notificationService"
	order "auction-hub/internal/orderService"
	"auction-hub/internal/realtime"
	accounthandler "auction-hub/services/account/handler"
	adminhandler "auction-hub/services/admin/handler"
	auctionhandler "auction-hub/services/auction/handler"
	biddinghandler "auction-hub/services/bidding/handler"
	dashboardhandler "auction-hub/services/dashboard/handler"
	notificationhandler "auction-hub/services/notification/handler"
	orderhandler "auction-hub/services/order/handler"
	realtimehandler "auction-hub/services/realtime/handler"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether the store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services is everything the router exposes
type Services struct {
	Accounts      *account.AccountService
	Auctions      *auction.AuctionService
	Bidding       *bidding.BiddingService
	Orders        *order.OrderService
	Notifications *notification.NotificationService
	Hub           *realtime.Hub
	Store         Pinger
}

// Options holds the web settings taken from config
type Options struct {
	CookieName   string
	CookieSecure bool
	PageSize     int
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(svc Services, opts Options) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(Authenticate(svc.Accounts, opts.CookieName))

	accountHandler := accounthandler.NewAccountHandler(svc.Accounts, accounthandler.SessionCookie{
		Name:   opts.CookieName,
		Secure: opts.CookieSecure,
	})
	auctionHandler := auctionhandler.NewAuctionHandler(svc.Auctions)
	biddingHandler := biddinghandler.NewBiddingHandler(svc.Bidding)
	orderHandler := orderhandler.NewOrderHandler(svc.Orders)
	dashboardHandler := dashboardhandler.NewDashboardHandler(svc.Bidding, svc.Auctions, svc.Orders, opts.PageSize)
	notificationHandler := notificationhandler.NewNotificationHandler(svc.Notifications)
	adminHandler := adminhandler.NewAdminHandler(svc.Accounts, svc.Auctions, svc.Orders)
	realtimeHandler := realtimehandler.NewRealtimeHandler(svc.Hub)

	router.GET("/healthz", healthHandler(svc.Store))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", realtimeHandler.ServeWS)

	api := router.Group("/api")
	{
		api.POST("/register", accountHandler.RegisterHandler)
		api.POST("/login", accountHandler.LoginHandler)
		api.POST("/logout", accountHandler.LogoutHandler)

		api.GET("/auctions", auctionHandler.ListAuctionsHandler)
		api.GET("/auctions/:auction_id", auctionHandler.GetAuctionHandler)
		api.GET("/auctions/:auction_id/bids", biddingHandler.GetBidsByAuctionHandler)
		api.GET("/auctions/:auction_id/winning", biddingHandler.GetWinningBidHandler)
	}

	member := api.Group("", RequireLogin)
	{
		member.POST("/auctions", auctionHandler.CreateAuctionHandler)
		member.PUT("/auctions/:auction_id", auctionHandler.UpdateAuctionHandler)
		member.POST("/bid", biddingHandler.PlaceBidHandler)
		member.GET("/auctions/:auction_id/order", orderHandler.EligibilityHandler)
		member.POST("/auctions/:auction_id/order", orderHandler.CheckoutHandler)

		member.GET("/dashboard", dashboardHandler.DashboardHandler)

		member.GET("/profile", accountHandler.ProfileHandler)
		member.PUT("/profile", accountHandler.UpdateProfileHandler)
		member.POST("/profile/request-verify", accountHandler.RequestVerifyHandler)
		member.POST("/profile/verify-otp", accountHandler.VerifyOTPHandler)
		member.POST("/profile/request-email-change-otp", accountHandler.RequestEmailChangeHandler)

		member.GET("/notifications/summary", notificationHandler.SummaryHandler)
		member.POST("/notifications/mark-read", notificationHandler.MarkReadHandler)
	}

	admin := api.Group("/admin", RequireAdmin)
	{
		admin.GET("/users", adminHandler.ListUsersHandler)
		admin.POST("/users/:user_id/toggle-admin", adminHandler.ToggleAdminHandler)
		admin.GET("/auctions", adminHandler.ListAuctionsHandler)
		admin.DELETE("/auctions/:auction_id", adminHandler.DeleteAuctionHandler)
		admin.GET("/orders", adminHandler.ListOrdersHandler)
		admin.POST("/orders/:order_id/status", adminHandler.UpdateOrderStatusHandler)
	}

	return router
}

func healthHandler(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			utils.Error("health check failed", map[string]any{"error": err.Error()})
			utils.JSONError(c, http.StatusServiceUnavailable, err, "store unavailable")
			return
		}
		utils.JSONResponse(c, http.StatusOK, gin.H{"store": "ok"}, "healthy")
	}
}
