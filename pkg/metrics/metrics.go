package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ContactMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "contact_messages_total", Help: "Contact form submissions by outcome."},
		[]string{"outcome"},
	)
	PortfolioWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "document_writes_total", Help: "Portfolio document writes by outcome."},
		[]string{"outcome"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "cache_lookups_total", Help: "Blob read cache lookups by result."},
		[]string{"result"},
	)
	RateLimitRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "portfolio", Name: "rate_limit_rejected_total", Help: "Requests rejected by the rate limiter."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ContactMessages)
	reg.MustRegister(PortfolioWrites)
	reg.MustRegister(CacheLookups)
	reg.MustRegister(RateLimitRejected)
}
