package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stockcheckout"

// Checkout result label values.
const (
	ResultCreated    = "created"
	ResultNotFound   = "not_found"
	ResultValidation = "validation"
	ResultConflict   = "conflict"
	ResultError      = "error"

	ResultUnauthenticated = "unauthenticated"
)

// Draft outcome label values.
const (
	DraftSynced          = "synced"
	DraftUnauthenticated = "unauthenticated"
	DraftError           = "error"
)

// Checkout groups the collectors of the checkout core. A nil *Checkout is valid and records nothing.
type Checkout struct {
	Orders        *prometheus.CounterVec
	Duration      prometheus.Histogram
	Drafts        *prometheus.CounterVec
	ReservedUnits prometheus.Counter
	StockResets   prometheus.Counter
}

func NewCheckout(reg prometheus.Registerer) *Checkout {
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_orders_total",
		Help:      "Checkout attempts by result.",
	}, []string{"result"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_duration_seconds",
		Help:      "Duration of the checkout transaction.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	})
	drafts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_drafts_total",
		Help:      "Draft synchronisations on checkout entry by outcome.",
	}, []string{"outcome"})
	reserved := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_reserved_units_total",
		Help:      "Units moved from stock to reserved stock by checkouts.",
	})
	resets := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_reset_products_total",
		Help:      "Products whose reserved stock was returned by a reset.",
	})

	reg.MustRegister(orders, duration, drafts, reserved, resets)

	return &Checkout{
		Orders:        orders,
		Duration:      duration,
		Drafts:        drafts,
		ReservedUnits: reserved,
		StockResets:   resets,
	}
}

func (m *Checkout) ObserveCheckout(result string, started time.Time, reservedUnits int) {
	if m == nil {
		return
	}

	m.Orders.WithLabelValues(result).Inc()
	m.Duration.Observe(time.Since(started).Seconds())
	if reservedUnits > 0 {
		m.ReservedUnits.Add(float64(reservedUnits))
	}
}

func (m *Checkout) ObserveDraft(outcome string) {
	if m == nil {
		return
	}

	m.Drafts.WithLabelValues(outcome).Inc()
}

func (m *Checkout) ObserveStockReset(products int64) {
	if m == nil {
		return
	}

	m.StockResets.Add(float64(products))
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
