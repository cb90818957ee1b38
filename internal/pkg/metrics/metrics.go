// Package metrics defines and registers the custom Prometheus metrics of the
// diary service. It is the single source of truth for metric names, labels,
// and help strings. HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "diary"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts bearer tokens minted by the ledger.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued.",
	},
)

// TokensExpiredTotal counts successful token expirations.
var TokensExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_expired_total",
		Help:      "Total number of bearer tokens expired.",
	},
)

// ── Diary metrics ─────────────────────────────────────────────────────────────

// EntriesCreatedTotal counts created diary entries.
// Label:
//   - visibility: "public" or "private"
var EntriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of diary entries created, by visibility.",
	},
	[]string{"visibility"},
)

// EntriesDeletedTotal counts deleted diary entries.
var EntriesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_deleted_total",
		Help:      "Total number of diary entries deleted.",
	},
)

// FeedCacheTotal counts public feed cache lookups.
// Label:
//   - result: "hit", "miss", "error" or "bypass"
var FeedCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_cache_total",
		Help:      "Total number of public feed cache lookups, by result.",
	},
	[]string{"result"},
)
