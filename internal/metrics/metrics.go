// Package metrics содержит Prometheus-метрики витрины.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Операции с корзиной для метки op.
const (
	OpAdd            = "add"
	OpRemove         = "remove"
	OpChangeQuantity = "change_quantity"
	OpClear          = "clear"
)

type Metrics struct {
	registry       *prometheus.Registry
	cartMutations  *prometheus.CounterVec
	ordersTotal    prometheus.Counter
	orderValue     prometheus.Histogram
	catalogLoads   *prometheus.CounterVec
	catalogSize    prometheus.Gauge
	activeSessions prometheus.GaugeFunc
}

// New регистрирует метрики в собственном реестре. sessions возвращает
// текущее число сессий.
func New(sessions func() int) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Cart mutations by operation.",
		}, []string{"op"}),
		ordersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_confirmed_total",
			Help:      "Confirmed orders.",
		}),
		orderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_value_dollars",
			Help:      "Grand total of confirmed orders.",
			Buckets:   []float64{5, 10, 20, 50, 100, 200, 500},
		}),
		catalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_loads_total",
			Help:      "Catalog load attempts by result.",
		}, []string{"result"}),
		catalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_products",
			Help:      "Products in the loaded catalog.",
		}),
		activeSessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Shopper sessions held in memory.",
		}, func() float64 { return float64(sessions()) }),
	}

	reg.MustRegister(
		m.cartMutations,
		m.ordersTotal,
		m.orderValue,
		m.catalogLoads,
		m.catalogSize,
		m.activeSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) CartMutation(op string) {
	m.cartMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) OrderConfirmed(total float64) {
	m.ordersTotal.Inc()
	m.orderValue.Observe(total)
}

func (m *Metrics) CatalogLoaded(products int) {
	m.catalogLoads.WithLabelValues("success").Inc()
	m.catalogSize.Set(float64(products))
}

func (m *Metrics) CatalogFailed() {
	m.catalogLoads.WithLabelValues("failure").Inc()
}

// Handler отдаёт метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry нужен тестам для чтения значений.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
