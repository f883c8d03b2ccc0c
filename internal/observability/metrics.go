package observability

import (
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqTotal *Counter
	apiReqError *Counter
	apiReqGood  *Counter

	aggregateOps       *CounterVec
	aggregateLatency   *HistogramVec
	aggregateConflicts *CounterVec
	aggregateRetries   *CounterVec
	aggregateTotal     *Counter
	aggregateFailed    *Counter

	shoppingGroups *HistogramVec
	downloads      *CounterVec
	downloadTotal  *Counter
	downloadFailed *Counter
	rateLimited    *CounterVec
	authFailures   *CounterVec

	dbStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge

	sloCompliance       *GaugeVec
	sloBudget           *GaugeVec
	sloBurn             *GaugeVec
	sloLatencyThreshold float64
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("METRICS_ENABLED"))
	if v == "" {
		return false
	}
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

func scrapeInterval() time.Duration {
	v := strings.TrimSpace(os.Getenv("METRICS_SCRAPE_INTERVAL_SECONDS"))
	if v == "" {
		return 10 * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 10 * time.Second
	}
	return time.Duration(n) * time.Second
}

// Init returns nil when METRICS_ENABLED is off. Every method is nil-safe.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = newMetrics(parseFloat("SLO_API_LATENCY_THRESHOLD_SECONDS", 0.5))
		if log != nil {
			log.Info("Observability metrics enabled")
		}
	})
	return instance
}

func newMetrics(latencyThreshold float64) *Metrics {
	if latencyThreshold <= 0 {
		latencyThreshold = 0.5
	}
	return &Metrics{
		apiRequests: NewCounterVec("fg_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"fg_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		),
		apiInflight: NewGauge("fg_api_inflight_requests", "In-flight API requests."),
		apiReqTotal: NewCounter("fg_api_requests_total_all", "Total API requests (all)."),
		apiReqError: NewCounter("fg_api_requests_error_total", "API requests answered with a 5xx status."),
		apiReqGood:  NewCounter("fg_api_requests_good_total", "API requests under the latency threshold."),

		aggregateOps: NewCounterVec("fg_aggregate_operations_total", "Aggregate write operations by name/status.", []string{"operation", "status"}),
		aggregateLatency: NewHistogramVec(
			"fg_aggregate_operation_duration_seconds",
			"Aggregate write latency in seconds by name/status.",
			[]string{"operation", "status"},
			[]float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		),
		aggregateConflicts: NewCounterVec("fg_aggregate_conflicts_total", "Aggregate writes rejected as conflicts.", []string{"operation"}),
		aggregateRetries:   NewCounterVec("fg_aggregate_retryable_total", "Aggregate writes failed with a retryable error.", []string{"operation"}),
		aggregateTotal:     NewCounter("fg_aggregate_operations_total_all", "Aggregate write operations (all)."),
		aggregateFailed:    NewCounter("fg_aggregate_operations_failed_total", "Aggregate writes failed for internal or retryable reasons."),

		shoppingGroups: NewHistogramVec(
			"fg_shopping_list_groups",
			"Ingredient groups per aggregated shopping list.",
			nil,
			[]float64{0, 1, 5, 10, 25, 50, 100, 250},
		),
		downloads:      NewCounterVec("fg_shopping_list_downloads_total", "Shopping list downloads by format/status.", []string{"format", "status"}),
		downloadTotal:  NewCounter("fg_shopping_list_downloads_total_all", "Shopping list downloads (all)."),
		downloadFailed: NewCounter("fg_shopping_list_downloads_failed_total", "Shopping list downloads that failed server-side."),
		rateLimited:    NewCounterVec("fg_rate_limited_total", "Requests rejected by a rate limiter.", []string{"limiter"}),
		authFailures:   NewCounterVec("fg_auth_failures_total", "Rejected authentication attempts by reason.", []string{"reason"}),

		dbStats:   NewGaugeVec("fg_db_pool", "Database connection pool stats.", []string{"stat"}),
		redisUp:   NewGauge("fg_redis_up", "Redis reachability (1 = up)."),
		redisPing: NewGauge("fg_redis_ping_seconds", "Redis ping latency in seconds."),

		sloCompliance: NewGaugeVec("fg_slo_compliance", "SLI over the SLO window.", []string{"slo", "window"}),
		sloBudget:     NewGaugeVec("fg_slo_error_budget_remaining", "Remaining error budget fraction.", []string{"slo", "window"}),
		sloBurn:       NewGaugeVec("fg_slo_burn_rate", "Error budget burn rate.", []string{"slo", "window"}),

		sloLatencyThreshold: latencyThreshold,
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

type promWriter interface {
	WritePrometheus(w io.Writer) error
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	all := []promWriter{
		m.apiRequests, m.apiLatency, m.apiInflight, m.apiReqTotal, m.apiReqError, m.apiReqGood,
		m.aggregateOps, m.aggregateLatency, m.aggregateConflicts, m.aggregateRetries, m.aggregateTotal, m.aggregateFailed,
		m.shoppingGroups, m.downloads, m.downloadTotal, m.downloadFailed, m.rateLimited, m.authFailures,
		m.dbStats, m.redisUp, m.redisPing,
		m.sloCompliance, m.sloBudget, m.sloBurn,
	}
	for _, pw := range all {
		if err := pw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
	m.apiReqTotal.Inc()
	if isServerErrorStatus(status) {
		m.apiReqError.Inc()
	}
	if m.sloLatencyThreshold > 0 && dur.Seconds() <= m.sloLatencyThreshold {
		m.apiReqGood.Inc()
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAggregateOperation(name, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if name == "" {
		name = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	m.aggregateOps.Inc(name, status)
	m.aggregateLatency.Observe(dur.Seconds(), name, status)
	m.aggregateTotal.Inc()
	if status == "internal" || status == "retryable" {
		m.aggregateFailed.Inc()
	}
}

func (m *Metrics) IncAggregateConflict(name string) {
	if m == nil {
		return
	}
	m.aggregateConflicts.Inc(name)
}

func (m *Metrics) IncAggregateRetry(name string) {
	if m == nil {
		return
	}
	m.aggregateRetries.Inc(name)
}

func (m *Metrics) ObserveShoppingGroups(groups int) {
	if m == nil {
		return
	}
	m.shoppingGroups.Observe(float64(groups))
}

// ObserveDownload records one document download. status is "ok", a client
// error code, or "error" for server-side failures.
func (m *Metrics) ObserveDownload(format, status string) {
	if m == nil {
		return
	}
	m.downloads.Inc(format, status)
	m.downloadTotal.Inc()
	if status == "error" {
		m.downloadFailed.Inc()
	}
}

func (m *Metrics) IncRateLimited(limiter string) {
	if m == nil {
		return
	}
	m.rateLimited.Inc(limiter)
}

func (m *Metrics) IncAuthFailure(reason string) {
	if m == nil {
		return
	}
	m.authFailures.Inc(reason)
}

// StartDBCollector samples database/sql pool stats for either driver.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
				m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
			}
		}
	}()
}

// StartRedisCollector pings the shared client; it does not own or close it.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb redis.UniversalClient) {
	if m == nil || rdb == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
