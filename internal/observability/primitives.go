package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Lightweight metric primitives rendered in the Prometheus text format.
// Series are written in label order so scrapes diff cleanly.

type CounterVec struct {
	name       string
	help       string
	labelNames []string
	mu         sync.RWMutex
	values     map[string]float64
}

func NewCounterVec(name, help string, labels []string) *CounterVec {
	return &CounterVec{name: name, help: help, labelNames: labels, values: map[string]float64{}}
}

func (c *CounterVec) Inc(values ...string) {
	if c == nil {
		return
	}
	lbl := labelString(c.labelNames, values)
	c.mu.Lock()
	c.values[lbl]++
	c.mu.Unlock()
}

func (c *CounterVec) Add(v float64, values ...string) {
	if c == nil {
		return
	}
	lbl := labelString(c.labelNames, values)
	c.mu.Lock()
	c.values[lbl] += v
	c.mu.Unlock()
}

func (c *CounterVec) WritePrometheus(w io.Writer) error {
	if c == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s counter\n", c.name); err != nil {
		return err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, k := range sortedKeys(c.values) {
		if _, err := fmt.Fprintf(w, "%s%s %f\n", c.name, k, c.values[k]); err != nil {
			return err
		}
	}
	return nil
}

// Value returns the current value of one labelled series.
func (c *CounterVec) Value(values ...string) float64 {
	if c == nil {
		return 0
	}
	lbl := labelString(c.labelNames, values)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[lbl]
}

type Counter struct {
	name string
	help string
	mu   sync.RWMutex
	val  float64
}

func NewCounter(name, help string) *Counter {
	return &Counter{name: name, help: help}
}

func (c *Counter) Inc() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.val++
	c.mu.Unlock()
}

func (c *Counter) Add(v float64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.val += v
	c.mu.Unlock()
}

func (c *Counter) Value() float64 {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.val
}

func (c *Counter) WritePrometheus(w io.Writer) error {
	if c == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s counter\n", c.name); err != nil {
		return err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, err := fmt.Fprintf(w, "%s %f\n", c.name, c.val)
	return err
}

type Gauge struct {
	name string
	help string
	mu   sync.RWMutex
	val  float64
}

func NewGauge(name, help string) *Gauge {
	return &Gauge{name: name, help: help}
}

func (g *Gauge) Set(v float64) {
	if g == nil {
		return
	}
	g.mu.Lock()
	g.val = v
	g.mu.Unlock()
}

func (g *Gauge) Inc() {
	if g == nil {
		return
	}
	g.mu.Lock()
	g.val++
	g.mu.Unlock()
}

func (g *Gauge) Dec() {
	if g == nil {
		return
	}
	g.mu.Lock()
	g.val--
	g.mu.Unlock()
}

func (g *Gauge) WritePrometheus(w io.Writer) error {
	if g == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", g.name, g.help); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s gauge\n", g.name); err != nil {
		return err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, err := fmt.Fprintf(w, "%s %f\n", g.name, g.val)
	return err
}

type GaugeVec struct {
	name       string
	help       string
	labelNames []string
	mu         sync.RWMutex
	values     map[string]float64
}

func NewGaugeVec(name, help string, labels []string) *GaugeVec {
	return &GaugeVec{name: name, help: help, labelNames: labels, values: map[string]float64{}}
}

func (g *GaugeVec) Set(v float64, values ...string) {
	if g == nil {
		return
	}
	lbl := labelString(g.labelNames, values)
	g.mu.Lock()
	g.values[lbl] = v
	g.mu.Unlock()
}

func (g *GaugeVec) WritePrometheus(w io.Writer) error {
	if g == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", g.name, g.help); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s gauge\n", g.name); err != nil {
		return err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, k := range sortedKeys(g.values) {
		if _, err := fmt.Fprintf(w, "%s%s %f\n", g.name, k, g.values[k]); err != nil {
			return err
		}
	}
	return nil
}

type HistogramVec struct {
	name       string
	help       string
	labelNames []string
	buckets    []float64
	mu         sync.RWMutex
	values     map[string]*histogram
}

type histogram struct {
	buckets []float64
	counts  []uint64
	sum     float64
	total   uint64
}

func NewHistogramVec(name, help string, labels []string, buckets []float64) *HistogramVec {
	if len(buckets) == 0 {
		buckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}
	}
	return &HistogramVec{name: name, help: help, labelNames: labels, buckets: buckets, values: map[string]*histogram{}}
}

func (h *HistogramVec) Observe(v float64, values ...string) {
	if h == nil {
		return
	}
	lbl := labelString(h.labelNames, values)
	h.mu.Lock()
	defer h.mu.Unlock()
	hist, ok := h.values[lbl]
	if !ok {
		hist = &histogram{
			buckets: h.buckets,
			counts:  make([]uint64, len(h.buckets)+1),
		}
		h.values[lbl] = hist
	}
	hist.sum += v
	hist.total++
	for i, b := range hist.buckets {
		if v <= b {
			hist.counts[i]++
		}
	}
	hist.counts[len(hist.counts)-1]++
}

func (h *HistogramVec) WritePrometheus(w io.Writer) error {
	if h == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n", h.name, h.help); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# TYPE %s histogram\n", h.name); err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, k := range sortedKeys(h.values) {
		v := h.values[k]
		for i, b := range v.buckets {
			if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, withLe(k, fmt.Sprintf("%g", b)), v.counts[i]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, withLe(k, "+Inf"), v.counts[len(v.counts)-1]); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s_sum%s %f\n", h.name, k, v.sum); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s_count%s %d\n", h.name, k, v.total); err != nil {
			return err
		}
	}
	return nil
}

func labelString(names []string, values []string) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("{")
	for i, name := range names {
		if i > 0 {
			b.WriteString(",")
		}
		val := "unknown"
		if i < len(values) {
			val = values[i]
		}
		b.WriteString(name)
		b.WriteString("=\"")
		b.WriteString(escapeLabel(val))
		b.WriteString("\"")
	}
	b.WriteString("}")
	return b.String()
}

func escapeLabel(v string) string {
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "\\", "\\\\")
	v = strings.ReplaceAll(v, "\"", "\\\"")
	v = strings.ReplaceAll(v, "\n", "\\n")
	return v
}

func withLe(labels string, le string) string {
	le = escapeLabel(le)
	if labels == "" || labels == "{}" {
		return "{le=\"" + le + "\"}"
	}
	if strings.HasSuffix(labels, "}") {
		return strings.TrimSuffix(labels, "}") + ",le=\"" + le + "\"}"
	}
	return "{le=\"" + le + "\"}"
}

func isServerErrorStatus(status string) bool {
	status = strings.TrimSpace(status)
	if len(status) < 3 {
		return false
	}
	return status[0] == '5'
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
