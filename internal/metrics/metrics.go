package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	WebhooksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prelabel_webhooks_total",
			Help: "Count of webhook requests received",
		},
		[]string{"outcome"},
	)

	DocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prelabel_documents_total",
			Help: "Count of documents run through the pre-annotation pipeline",
		},
		[]string{"status"},
	)

	EntitiesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "prelabel_entities_total",
			Help: "Number of pre-annotated entities produced",
		},
	)

	ImportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prelabel_imports_total",
			Help: "Count of annotated-document import attempts",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(WebhooksTotal)
	prometheus.MustRegister(DocumentsTotal)
	prometheus.MustRegister(EntitiesTotal)
	prometheus.MustRegister(ImportsTotal)
}
