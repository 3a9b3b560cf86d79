package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "trader_ticks_total", Help: "Completed control loop ticks"},
	)
	QuoteFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trader_quote_failures_total", Help: "Quotes that could not be fetched"},
		[]string{"symbol"},
	)
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trader_orders_total", Help: "Orders submitted"},
		[]string{"symbol", "instruction", "result"},
	)
	LiquidationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "trader_liquidations_total", Help: "End of day flatten runs"},
	)
	PositionDriftTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trader_position_drift_total", Help: "Ticks where broker and ledger positions disagreed"},
		[]string{"symbol"},
	)
	AvailableCapital = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "trader_available_capital", Help: "Free cash in the capital account"},
	)
	CapitalUsed = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "trader_capital_used", Help: "Capital committed to open positions"},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, QuoteFailuresTotal, OrdersTotal, LiquidationsTotal,
		PositionDriftTotal, AvailableCapital, CapitalUsed)
}

// Serve exposes /metrics on addr in the background.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
