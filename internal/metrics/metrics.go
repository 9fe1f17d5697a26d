package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	appointmentCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "booking_api",
			Name:      "appointment_created_total",
			Help:      "Count of appointments created by initial status.",
		},
		[]string{"status"},
	)

	statusTransition = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "booking_api",
			Name:      "appointment_transition_total",
			Help:      "Count of appointment status transitions.",
		},
		[]string{"to"},
	)

	bookingConflict = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "booking_api",
			Name:      "booking_conflict_total",
			Help:      "Count of rejected bookings by reason.",
		},
		[]string{"reason"},
	)

	slotQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "booking_api",
			Name:      "slot_query_total",
			Help:      "Count of free-slot computations served.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(appointmentCreated, statusTransition, bookingConflict, slotQueries)
	})
}

func IncAppointmentCreated(status string) {
	appointmentCreated.WithLabelValues(status).Inc()
}

func IncStatusTransition(to string) {
	statusTransition.WithLabelValues(to).Inc()
}

func IncBookingConflict(reason string) {
	bookingConflict.WithLabelValues(reason).Inc()
}

func IncSlotQuery() {
	slotQueries.Inc()
}
