package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/yungbote/foodgram-backend/internal/platform/envutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type rollingSum struct {
	values []float64
	idx    int
	total  float64
}

func newRollingSum(size int) *rollingSum {
	if size < 1 {
		size = 1
	}
	return &rollingSum{values: make([]float64, size)}
}

func (r *rollingSum) add(v float64) {
	r.total += v - r.values[r.idx]
	r.values[r.idx] = v
	r.idx++
	if r.idx >= len(r.values) {
		r.idx = 0
	}
}

// sloSeries tracks one SLI as a rolling window of (total, bad) deltas taken
// from monotonically increasing counters.
type sloSeries struct {
	name   string
	target float64
	total  *rollingSum
	bad    *rollingSum
	read   func(m *Metrics) (total, bad float64)

	prevTotal float64
	prevBad   float64
}

type SLOEvaluator struct {
	metrics *Metrics
	log     *logger.Logger

	interval    time.Duration
	windowLabel string
	burnWarn    float64
	burnCrit    float64

	series []*sloSeries
}

func (m *Metrics) StartSLOEvaluator(ctx context.Context, log *logger.Logger) {
	if m == nil || !envutil.Bool("SLO_ENABLED", false) {
		return
	}
	eval := newSLOEvaluator(m, log)
	go eval.run(ctx)
	if log != nil {
		log.Info("SLO evaluator started", "window", eval.windowLabel, "interval", eval.interval.String())
	}
}

func newSLOEvaluator(m *Metrics, log *logger.Logger) *SLOEvaluator {
	interval := envutil.Seconds("SLO_EVAL_INTERVAL_SECONDS", 60*time.Second)
	if interval <= 0 {
		interval = 60 * time.Second
	}
	windowHours := envutil.Float("SLO_WINDOW_HOURS", 720)
	if windowHours < 1 {
		windowHours = 24
	}
	window := time.Duration(windowHours * float64(time.Hour))
	size := int(window / interval)

	mk := func(name string, target float64, read func(m *Metrics) (float64, float64)) *sloSeries {
		return &sloSeries{name: name, target: clamp01(target), total: newRollingSum(size), bad: newRollingSum(size), read: read}
	}
	return &SLOEvaluator{
		metrics:     m,
		log:         log,
		interval:    interval,
		windowLabel: formatWindowLabel(window),
		burnWarn:    envutil.Float("SLO_ALERT_BURN_RATE_WARN", 2),
		burnCrit:    envutil.Float("SLO_ALERT_BURN_RATE_CRIT", 10),
		series: []*sloSeries{
			mk("api_availability", envutil.Float("SLO_API_AVAIL_TARGET", 0.995), func(m *Metrics) (float64, float64) {
				return m.apiReqTotal.Value(), m.apiReqError.Value()
			}),
			mk("api_latency", envutil.Float("SLO_API_LATENCY_TARGET", 0.95), func(m *Metrics) (float64, float64) {
				total := m.apiReqTotal.Value()
				return total, total - m.apiReqGood.Value()
			}),
			mk("aggregate_write_success", envutil.Float("SLO_AGGREGATE_SUCCESS_TARGET", 0.99), func(m *Metrics) (float64, float64) {
				return m.aggregateTotal.Value(), m.aggregateFailed.Value()
			}),
			mk("shopping_list_download_success", envutil.Float("SLO_DOWNLOAD_SUCCESS_TARGET", 0.99), func(m *Metrics) (float64, float64) {
				return m.downloadTotal.Value(), m.downloadFailed.Value()
			}),
		},
	}
}

func (e *SLOEvaluator) run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.evaluate()
		}
	}
}

func (e *SLOEvaluator) evaluate() {
	if e.metrics == nil {
		return
	}
	for _, s := range e.series {
		total, bad := s.read(e.metrics)
		s.total.add(delta(total, s.prevTotal))
		s.bad.add(delta(bad, s.prevBad))
		s.prevTotal, s.prevBad = total, bad
		e.evalSLO(s.name, s.total.total, s.bad.total, s.target)
	}
}

func (e *SLOEvaluator) evalSLO(name string, total float64, bad float64, target float64) {
	if total <= 0 {
		e.metrics.sloCompliance.Set(1, name, e.windowLabel)
		e.metrics.sloBudget.Set(1, name, e.windowLabel)
		e.metrics.sloBurn.Set(0, name, e.windowLabel)
		return
	}
	sli := clamp01(1 - bad/total)
	burn := 0.0
	if target < 1 {
		burn = (1 - sli) / (1 - target)
	}
	budget := clamp01(1 - burn)
	e.metrics.sloCompliance.Set(sli, name, e.windowLabel)
	e.metrics.sloBudget.Set(budget, name, e.windowLabel)
	e.metrics.sloBurn.Set(burn, name, e.windowLabel)

	if e.log == nil {
		return
	}
	switch {
	case burn >= e.burnCrit:
		e.log.Error("SLO burn rate critical", "slo", name, "window", e.windowLabel, "sli", sli, "target", target, "burn_rate", burn)
	case burn >= e.burnWarn:
		e.log.Warn("SLO burn rate elevated", "slo", name, "window", e.windowLabel, "sli", sli, "target", target, "burn_rate", burn)
	}
}

func delta(current, prev float64) float64 {
	if current < prev {
		return current
	}
	return current - prev
}

func parseFloat(key string, def float64) float64 {
	return envutil.Float(key, def)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func formatWindowLabel(window time.Duration) string {
	hours := window.Hours()
	if hours >= 24 && int(hours)%24 == 0 && hours == float64(int(hours)) {
		return strconv.Itoa(int(hours/24)) + "d"
	}
	if hours >= 1 {
		return strconv.Itoa(int(hours)) + "h"
	}
	return strconv.Itoa(int(window.Minutes())) + "m"
}
