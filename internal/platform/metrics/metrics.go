package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	FaceEnrollments    prometheus.Counter
	FaceRevocations    prometheus.Counter
	FaceVerifications  *prometheus.CounterVec
	FaceLogins         *prometheus.CounterVec
	MatchDistance      prometheus.Histogram
	NomineeRegistered  prometheus.Counter
	NomineeDecisions   *prometheus.CounterVec
	DocumentsUploaded  *prometheus.CounterVec
	NotificationsSent  *prometheus.CounterVec
	OutboxRelayed      prometheus.Counter
	OutboxRelayFailure prometheus.Counter
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers metrics on reg; tests pass a fresh registry.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FaceEnrollments: f.NewCounter(prometheus.CounterOpts{
			Name: "pension_face_enrollments_total",
			Help: "Face templates enrolled or replaced",
		}),
		FaceRevocations: f.NewCounter(prometheus.CounterOpts{
			Name: "pension_face_revocations_total",
			Help: "Face enrollments revoked",
		}),
		FaceVerifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pension_face_verifications_total",
			Help: "Face verifications by outcome",
		}, []string{"outcome"}),
		FaceLogins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pension_face_logins_total",
			Help: "Face logins by outcome",
		}, []string{"outcome"}),
		MatchDistance: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pension_face_match_distance",
			Help:    "Euclidean distance of the best template match",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.8, 1, 2, 5},
		}),
		NomineeRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "pension_nominee_registrations_total",
			Help: "Nominee registrations accepted",
		}),
		NomineeDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pension_nominee_decisions_total",
			Help: "Nominee verification decisions by action",
		}, []string{"action"}),
		DocumentsUploaded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pension_nominee_documents_uploaded_total",
			Help: "Nominee documents uploaded by type",
		}, []string{"type"}),
		NotificationsSent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pension_notifications_total",
			Help: "Notification dispatch attempts by channel and outcome",
		}, []string{"channel", "outcome"}),
		OutboxRelayed: f.NewCounter(prometheus.CounterOpts{
			Name: "pension_audit_outbox_relayed_total",
			Help: "Audit outbox entries relayed to Kafka",
		}),
		OutboxRelayFailure: f.NewCounter(prometheus.CounterOpts{
			Name: "pension_audit_outbox_relay_failures_total",
			Help: "Audit outbox publish failures",
		}),
	}
}

func (m *Metrics) IncFaceEnrollment()             { m.FaceEnrollments.Inc() }
func (m *Metrics) IncFaceRevocation()             { m.FaceRevocations.Inc() }
func (m *Metrics) ObserveMatchDistance(d float64) { m.MatchDistance.Observe(d) }
func (m *Metrics) IncNomineeRegistered()          { m.NomineeRegistered.Inc() }

func (m *Metrics) IncFaceVerification(matched bool) {
	m.FaceVerifications.WithLabelValues(outcome(matched)).Inc()
}

func (m *Metrics) IncFaceLogin(matched bool) {
	m.FaceLogins.WithLabelValues(outcome(matched)).Inc()
}

func (m *Metrics) IncNomineeDecision(action string) {
	m.NomineeDecisions.WithLabelValues(action).Inc()
}

func (m *Metrics) IncDocumentUploaded(docType string) {
	m.DocumentsUploaded.WithLabelValues(docType).Inc()
}

func (m *Metrics) IncNotification(channel string, delivered bool) {
	o := "failed"
	if delivered {
		o = "published"
	}
	m.NotificationsSent.WithLabelValues(channel, o).Inc()
}

func (m *Metrics) IncOutboxRelayed(n int)  { m.OutboxRelayed.Add(float64(n)) }
func (m *Metrics) IncOutboxRelayFailures() { m.OutboxRelayFailure.Inc() }

func outcome(matched bool) string {
	if matched {
		return "match"
	}
	return "no_match"
}
