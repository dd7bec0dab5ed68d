package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type StoreMetrics struct {
	IntentsCreated    prometheus.Counter
	PaymentsConfirmed prometheus.Counter
	OrdersCreated     prometheus.Counter
}

func NewStoreMetrics() *StoreMetrics {
	intents := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "intents_created_total",
		Help:      "Total number of payment intents created.",
	})
	confirmed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "payments_confirmed_total",
		Help:      "Total number of payments confirmed into orders.",
	})
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Total number of orders created.",
	})

	prometheus.MustRegister(intents, confirmed, orders)
	return &StoreMetrics{IntentsCreated: intents, PaymentsConfirmed: confirmed, OrdersCreated: orders}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
