package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts what happens in booking flows.
type Recorder struct {
	stages   *prometheus.CounterVec
	payments *prometheus.CounterVec
	reviews  prometheus.Counter
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agentbooking",
			Name:      "flow_stage_entered_total",
			Help:      "Booking flow stages entered, by stage.",
		}, []string{"stage"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agentbooking",
			Name:      "payments_total",
			Help:      "Payment attempts, by method and outcome.",
		}, []string{"method", "outcome"}),
		reviews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agentbooking",
			Name:      "reviews_submitted_total",
			Help:      "Reviews submitted from the booking status stage.",
		}),
	}
	reg.MustRegister(r.stages, r.payments, r.reviews)
	return r
}

func (r *Recorder) StageEntered(stage string) {
	r.stages.WithLabelValues(stage).Inc()
}

func (r *Recorder) PaymentAttempted(method, outcome string) {
	r.payments.WithLabelValues(method, outcome).Inc()
}

func (r *Recorder) ReviewSubmitted() {
	r.reviews.Inc()
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
