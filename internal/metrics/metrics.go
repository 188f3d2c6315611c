package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/apperr"
	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/models"
)

// Metrics owns the ledger collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	stockQuantity *prometheus.GaugeVec
	statusCount   *prometheus.GaugeVec
	operations    *prometheus.CounterVec
	lockWait      prometheus.Histogram
}

// New builds the collectors and registers them.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stockQuantity: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dental_inventory_stock_quantity",
				Help: "On-hand quantity per inventory item",
			},
			[]string{"item"},
		),
		statusCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dental_inventory_item_status",
				Help: "Number of inventory items per derived status",
			},
			[]string{"status"},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dental_ledger_operations_total",
				Help: "Ledger operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		lockWait: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dental_ledger_lock_wait_seconds",
				Help:    "Time spent waiting for the ledger lock",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
		),
	}

	m.registry.MustRegister(m.stockQuantity, m.statusCount, m.operations, m.lockWait)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordOperation counts one ledger operation; the outcome label is the error kind or "ok".
func (m *Metrics) RecordOperation(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(apperr.KindOf(err))
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// ObserveLockWait records how long a caller waited for the ledger lock.
func (m *Metrics) ObserveLockWait(d time.Duration) {
	if m == nil {
		return
	}
	m.lockWait.Observe(d.Seconds())
}

// ObserveItems publishes per-item quantities and the status distribution of a full snapshot.
func (m *Metrics) ObserveItems(items []models.InventoryItem) {
	if m == nil {
		return
	}
	counts := map[models.Status]int{
		models.StatusOK:  0,
		models.StatusLow: 0,
		models.StatusOut: 0,
	}
	for _, item := range items {
		m.stockQuantity.WithLabelValues(item.Name).Set(float64(item.Quantity))
		counts[item.Status]++
	}
	for status, n := range counts {
		m.statusCount.WithLabelValues(string(status)).Set(float64(n))
	}
}

// ObserveItem refreshes the quantity gauge of a single item.
func (m *Metrics) ObserveItem(item models.InventoryItem) {
	if m == nil {
		return
	}
	m.stockQuantity.WithLabelValues(item.Name).Set(float64(item.Quantity))
}
