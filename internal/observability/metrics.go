package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harnect_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ContentPublished counts published content items by kind.
	ContentPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harnect_content_published_total",
		Help: "Total number of content items published, by kind",
	}, []string{"kind"})

	// ContentRemoved counts removed content items by kind.
	ContentRemoved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harnect_content_removed_total",
		Help: "Total number of content items removed, by kind",
	}, []string{"kind"})

	// LikeToggles counts like toggles by resulting state.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harnect_like_toggles_total",
		Help: "Total number of like toggles, by resulting state",
	}, []string{"state"})

	// FollowToggles counts follow toggles by resulting state.
	FollowToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harnect_follow_toggles_total",
		Help: "Total number of follow toggles, by resulting state",
	}, []string{"state"})

	// GuestSessions is the gauge of currently live guest accounts.
	GuestSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "harnect_guest_sessions",
		Help: "Number of live guest accounts",
	})

	// SweeperDeletions counts rows removed by the background sweeper.
	SweeperDeletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "harnect_sweeper_deletions_total",
		Help: "Total number of rows removed by the background sweeper",
	}, []string{"kind"})
)
