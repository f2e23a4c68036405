package metrics

import "github.com/prometheus/client_golang/prometheus"

// AppointmentMetrics exposes counters/histograms for the appointment engine.
type AppointmentMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	conference *prometheus.CounterVec
}

func NewAppointmentMetrics(reg prometheus.Registerer) *AppointmentMetrics {
	m := &AppointmentMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roboscan",
			Subsystem: "appointments",
			Name:      "operations_total",
			Help:      "Appointment operations by outcome kind",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "roboscan",
			Subsystem: "appointments",
			Name:      "operation_duration_seconds",
			Help:      "Latency of appointment operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		conference: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roboscan",
			Subsystem: "conference",
			Name:      "provision_total",
			Help:      "Conference link provisioning attempts",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.operations, m.duration, m.conference)
	return m
}

func (m *AppointmentMetrics) ObserveOperation(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Observe(seconds)
}

func (m *AppointmentMetrics) ObserveConference(provisioned bool) {
	if m == nil {
		return
	}
	outcome := "provisioned"
	if !provisioned {
		outcome = "degraded"
	}
	m.conference.WithLabelValues(outcome).Inc()
}
