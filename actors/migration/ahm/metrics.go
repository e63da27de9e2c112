package ahm

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ahm-project/migrator/actors/runtime"
)

// Metrics observes migration progress. A nil *Metrics records nothing.
type Metrics struct {
	Migrated *prometheus.CounterVec
	Skipped  *prometheus.CounterVec
	Messages *prometheus.CounterVec
	Steps    prometheus.Counter
	Weight   *prometheus.GaugeVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Migrated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ahm",
			Name:      "items_migrated_total",
			Help:      "Source chain entries converted, by stage.",
		}, []string{"stage"}),
		Skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ahm",
			Name:      "items_skipped_total",
			Help:      "Source chain entries skipped after a conversion failure, by stage.",
		}, []string{"stage"}),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ahm",
			Name:      "messages_sent_total",
			Help:      "Outbound messages sent, by destination call.",
		}, []string{"call"}),
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ahm",
			Name:      "steps_total",
			Help:      "Migration steps committed.",
		}),
		Weight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ahm",
			Name:      "step_weight",
			Help:      "Weight consumed by the last step of a controller.",
		}, []string{"controller", "chain", "dimension"}),
	}
	for _, c := range []prometheus.Collector{m.Migrated, m.Skipped, m.Messages, m.Steps, m.Weight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// metricsBuffer holds the updates of a step until the step commits, so replayed steps are
// counted once.
type metricsBuffer []func(m *Metrics)

func (b *metricsBuffer) add(fn func(m *Metrics)) {
	*b = append(*b, fn)
}

func (b metricsBuffer) apply(m *Metrics) {
	if m == nil {
		return
	}
	for _, fn := range b {
		fn(m)
	}
}

func (m *Metrics) migrated(stage string) {
	if m == nil {
		return
	}
	m.Migrated.WithLabelValues(stage).Inc()
}

func (m *Metrics) skipped(stage string) {
	if m == nil {
		return
	}
	m.Skipped.WithLabelValues(stage).Inc()
}

func (m *Metrics) sent(call uint64, n int) {
	if m == nil {
		return
	}
	m.Messages.WithLabelValues(CallName(call)).Add(float64(n))
}

func (m *Metrics) step() {
	if m == nil {
		return
	}
	m.Steps.Inc()
}

func (m *Metrics) consumed(ctl string, rc, ah runtime.Weight) {
	if m == nil {
		return
	}
	m.Weight.WithLabelValues(ctl, "rc", "ref_time").Set(float64(rc.RefTime))
	m.Weight.WithLabelValues(ctl, "rc", "proof_size").Set(float64(rc.ProofSize))
	m.Weight.WithLabelValues(ctl, "ah", "ref_time").Set(float64(ah.RefTime))
	m.Weight.WithLabelValues(ctl, "ah", "proof_size").Set(float64(ah.ProofSize))
}
