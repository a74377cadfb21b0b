package perftests

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"auction-hub/internal/realtime"
)

// Benchmark 1: PlaceBid - Isolated Auctions (Low Contention - Micro Benchmark)
func Benchmark_PlaceBid_Isolated(b *testing.B) {
	env := setupEnv(b, 1, b.N, 50)
	ctx := context.Background()
	bidder := env.bidders[0]

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		amount := float64(51 + rand.Intn(100))
		if _, err := env.svc.PlaceBid(ctx, bidder, env.auctions[i].ID, amount); err != nil {
			b.Fatalf("failed to place bid: %v", err)
		}
	}
}

// Benchmark 2: PlaceBid - Shared Auction (High Contention - Concurrency Benchmark)
func Benchmark_PlaceBid_ConcurrentSharedAuction(b *testing.B) {
	env := setupEnv(b, 50, 1, 50)
	ctx := context.Background()
	auctionID := env.auctions[0].ID

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 50

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			bidder := env.bidders[rnd.Intn(len(env.bidders))]
			nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
			_, _ = env.svc.PlaceBid(ctx, bidder, auctionID, float64(nextBid))
		}
	})
}

// Benchmark 3: PlaceBid with a watcher in the auction room
func Benchmark_PlaceBid_WithLiveWatcher(b *testing.B) {
	env := setupEnv(b, 2, 1, 50)
	ctx := context.Background()
	auctionID := env.auctions[0].ID

	watcher := env.hub.NewClient(0)
	env.hub.Join(watcher, realtime.AuctionRoom(auctionID))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range watcher.Send() {
		}
	}()
	b.Cleanup(func() {
		env.hub.Unregister(watcher)
		<-done
	})

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		bidder := env.bidders[i%2]
		if _, err := env.svc.PlaceBid(ctx, bidder, auctionID, float64(51+i)); err != nil {
			b.Fatalf("failed to place bid: %v", err)
		}
	}
}

// Benchmark 4: GetWinningBid - Concurrent (High Contention)
func Benchmark_GetWinningBid_ConcurrentSharedAuction(b *testing.B) {
	env := setupEnv(b, 10, 1, 50)
	ctx := context.Background()
	auctionID := env.auctions[0].ID

	for j := 0; j < 100; j++ {
		_, _ = env.svc.PlaceBid(ctx, env.bidders[j%len(env.bidders)], auctionID, float64(51+j))
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := env.svc.GetWinningBid(ctx, auctionID); err != nil {
				b.Errorf("failed to get winning bid: %v", err)
				return
			}
		}
	})
}

// Benchmark 5: Mixed Workload (Readers + Writers concurrently)
func Benchmark_MixedWorkload_SharedAuction(b *testing.B) {
	env := setupEnv(b, 20, 1, 50)
	ctx := context.Background()
	auctionID := env.auctions[0].ID

	for j := 0; j < 50; j++ {
		_, _ = env.svc.PlaceBid(ctx, env.bidders[j%len(env.bidders)], auctionID, float64(52+j*2))
	}

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 150

	// Ratio: 70% readers, 30% writers
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			if rnd.Intn(10) < 3 {
				bidder := env.bidders[rnd.Intn(len(env.bidders))]
				nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
				_, _ = env.svc.PlaceBid(ctx, bidder, auctionID, float64(nextBid))
				continue
			}
			_, _ = env.svc.GetBidsForAuction(ctx, auctionID)
		}
	})
}
