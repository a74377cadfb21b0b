package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	account "auction-hub/internal/accountService"
	auction "auction-hub/internal/auctionService"
	"auction-hub/internal/auth"
	bidding "auction-hub/internal/biddingService"
	"auction-hub/internal/cache"
	"auction-hub/internal/config"
	"auction-hub/internal/mailer"
	notification "auction-hub/internal/notificationService"
	order "auction-hub/internal/orderService"
	"auction-hub/internal/realtime"
	"auction-hub/internal/repository"
	"auction-hub/internal/server"
	"auction-hub/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	bridgeMinBackoff = time.Second
	bridgeMaxBackoff = 30 * time.Second
)

// Broadcaster is the live event sink shared by the services
type Broadcaster interface {
	Emit(ctx context.Context, room string, ev realtime.Event) error
}

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Fatal("load config failed", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.App.LogLevel)
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := repository.New(ctx, cfg.Database.Path, repository.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		BusyTimeout:     cfg.Database.BusyTimeout,
	})
	if err != nil {
		utils.Fatal("open store failed", map[string]any{"error": err.Error(), "path": cfg.Database.Path})
	}
	defer repo.Close()

	if cfg.App.SeedDemoData {
		prepopulateAuctions(ctx, repo)
	}

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		utils.Fatal("connect redis failed", map[string]any{"error": err.Error()})
	}

	hub := realtime.NewHub(cfg.App.LiveBufferSize)
	var live Broadcaster = hub
	if rdb != nil {
		defer rdb.Close()
		bridge := realtime.NewRedisBroadcaster(rdb, cfg.Redis.BroadcastChannel, hub)
		live = bridge
		go bridge.RunWithRetry(ctx, bridgeMinBackoff, bridgeMaxBackoff)
		utils.Info("redis enabled", map[string]any{"addr": cfg.Redis.Addr})
	}

	tokens := auth.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	mail := mailer.NewSMTPMailer(cfg.Email, cfg.Security.OTPTTL)

	notifications := notification.NewNotificationService(repo, live)
	svc := server.Services{
		Accounts:      account.NewAccountService(repo, tokens, mail, cfg.Security.OTPTTL),
		Auctions:      auction.NewAuctionService(repo, repo, cache.NewListingCache(rdb, cfg.App.ListingCacheTTL)),
		Bidding:       bidding.NewBiddingService(repo, repo, notifications, live),
		Orders:        order.NewOrderService(repo, repo, repo, notifications, live),
		Notifications: notifications,
		Hub:           hub,
		Store:         repo,
	}

	router := server.SetupRouter(svc, server.Options{
		CookieName:   cfg.Security.CookieName,
		CookieSecure: cfg.Security.CookieSecure,
		PageSize:     cfg.App.PageSize,
	})

	httpServer := &http.Server{
		Addr:              cfg.App.HTTPAddr,
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Info("Starting auction server", map[string]any{"addr": cfg.App.HTTPAddr, "env": cfg.App.Env})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Error("server run failed", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	utils.Info("shutting down auction server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		utils.Error("http shutdown failed", map[string]any{"error": err.Error()})
	}
}

// prepopulateAuctions lists the demo auctions on a fresh database
func prepopulateAuctions(ctx context.Context, repo repository.Store) {
	hash, err := auth.HashPassword("demo-seller")
	if err != nil {
		utils.Fatal("hash demo password failed", map[string]any{"error": err.Error()})
	}
	seeded, err := repository.SeedDemoData(ctx, repo, hash, time.Now().UTC())
	if err != nil {
		utils.Fatal("seed demo data failed", map[string]any{"error": err.Error()})
	}
	if seeded {
		utils.Info("demo auctions created", map[string]any{"seller": repository.DemoSellerEmail})
	}
}
