package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry tiene solo los collectors de la app (más runtime/process).
	Registry = prometheus.NewRegistry()

	adoptionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adoption_hub",
			Subsystem: "adoptions",
			Name:      "transitions_total",
			Help:      "Adoption request status transitions by target status and result.",
		},
		[]string{"to", "result"},
	)

	autoRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "adoption_hub",
			Subsystem: "adoptions",
			Name:      "auto_rejected_total",
			Help:      "Competing requests auto-rejected when an animal was adopted.",
		},
	)

	pointsGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adoption_hub",
			Subsystem: "rewards",
			Name:      "points_total",
			Help:      "Points credited by the reward ledger, by triggering event.",
		},
		[]string{"trigger"},
	)

	achievementsUnlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adoption_hub",
			Subsystem: "rewards",
			Name:      "achievements_unlocked_total",
			Help:      "Achievements unlocked, by achievement code.",
		},
		[]string{"code"},
	)

	rankingResets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adoption_hub",
			Subsystem: "jobs",
			Name:      "ranking_resets_total",
			Help:      "Ranking reset job runs by result.",
		},
		[]string{"result"},
	)

	usersReset = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "adoption_hub",
			Subsystem: "jobs",
			Name:      "ranking_users_reset_total",
			Help:      "Users whose points were zeroed by the ranking reset.",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		adoptionTransitions,
		autoRejected,
		pointsGranted,
		achievementsUnlocked,
		rankingResets,
		usersReset,
	)
}

// Handler expone el registry para /metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordAdoptionTransition(to, result string, rejected int) {
	adoptionTransitions.WithLabelValues(to, result).Inc()
	if rejected > 0 {
		autoRejected.Add(float64(rejected))
	}
}

func RecordReward(trigger string, points int64, unlocked []string) {
	if points > 0 {
		pointsGranted.WithLabelValues(trigger).Add(float64(points))
	}
	for _, code := range unlocked {
		achievementsUnlocked.WithLabelValues(code).Inc()
	}
}

func RecordRankingReset(users int64, err error) {
	if err != nil {
		rankingResets.WithLabelValues("error").Inc()
		return
	}
	rankingResets.WithLabelValues("ok").Inc()
	if users > 0 {
		usersReset.Add(float64(users))
	}
}
