package metrics

import (
	"strconv"
	"time"

	"auction-hub/internal/biddingerrors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auctionhub"

var (
	// BidsTotal counts bid attempts by outcome: "accepted" or the error kind.
	BidsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_total",
		Help:      "Bid attempts by result.",
	}, []string{"result"})

	NotificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Notifications stored.",
	})

	BroadcastEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_events_total",
		Help:      "Realtime events emitted, by event name.",
	}, []string{"event"})

	// DroppedEventsTotal counts events not delivered because a client's buffer was full.
	DroppedEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broadcast_dropped_total",
		Help:      "Realtime events dropped for slow clients.",
	})

	LiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_connections",
		Help:      "Open realtime connections.",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveBid records the outcome of one bid attempt.
func ObserveBid(err error) {
	BidsTotal.WithLabelValues(BidResult(err)).Inc()
}

// BidResult is the label value ObserveBid uses for err.
func BidResult(err error) string {
	if err == nil {
		return "accepted"
	}
	return biddingerrors.KindOf(err).String()
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
