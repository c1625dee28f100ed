package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for a submission
const (
	OutcomeAccepted        = "accepted"
	OutcomeInvalid         = "invalid"
	OutcomeNoConsent       = "no_consent"
	OutcomeTokenMissing    = "token_missing"
	OutcomeChallengeFailed = "challenge_failed"
	OutcomeError           = "error"
)

// RelayMetrics exposes counters/histograms for the lead relay pipeline.
type RelayMetrics struct {
	submissionsTotal   *prometheus.CounterVec
	invalidFieldsTotal *prometheus.CounterVec
	verificationsTotal *prometheus.CounterVec
	crmForwardTotal    *prometheus.CounterVec
	upstreamLatency    *prometheus.HistogramVec
}

func NewRelayMetrics(reg prometheus.Registerer) *RelayMetrics {
	m := &RelayMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formrelay",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Lead form submissions by form and outcome",
		}, []string{"form", "outcome"}),
		invalidFieldsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formrelay",
			Subsystem: "leads",
			Name:      "invalid_fields_total",
			Help:      "Rejected submissions by offending field and rule",
		}, []string{"field", "rule"}),
		verificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formrelay",
			Subsystem: "recaptcha",
			Name:      "verifications_total",
			Help:      "reCAPTCHA verifications by result",
		}, []string{"result"}),
		crmForwardTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formrelay",
			Subsystem: "crm",
			Name:      "forward_total",
			Help:      "Web-to-Lead forwards by status",
		}, []string{"status"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "formrelay",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Latency of outbound calls to reCAPTCHA and the CRM",
			Buckets:   prometheus.DefBuckets,
		}, []string{"upstream"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.invalidFieldsTotal, m.verificationsTotal, m.crmForwardTotal, m.upstreamLatency)
	return m
}

func (m *RelayMetrics) ObserveSubmission(form, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(form, outcome).Inc()
}

func (m *RelayMetrics) ObserveInvalidField(field, rule string) {
	if m == nil {
		return
	}
	m.invalidFieldsTotal.WithLabelValues(field, rule).Inc()
}

func (m *RelayMetrics) ObserveVerification(result string) {
	if m == nil {
		return
	}
	m.verificationsTotal.WithLabelValues(result).Inc()
}

func (m *RelayMetrics) ObserveCRMForward(status string) {
	if m == nil {
		return
	}
	m.crmForwardTotal.WithLabelValues(status).Inc()
}

func (m *RelayMetrics) ObserveUpstreamLatency(upstream string, seconds float64) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(upstream).Observe(seconds)
}
