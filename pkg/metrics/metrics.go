// Package metrics метрики Prometheus жизненного цикла бронирований.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics счётчики сервиса. Регистрируются в default registry при создании.
type Metrics struct {
	BookingsSubmitted prometheus.Counter
	BookingsApproved  prometheus.Counter
	BookingsCanceled  prometheus.Counter
	RetimeRequested   prometheus.Counter
	RetimeCompleted   prometheus.Counter
	SlotConflicts     prometheus.Counter
	SendFailures      prometheus.Counter
}

// New создает и регистрирует метрики с label сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		BookingsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bot_bookings_submitted_total",
			Help:        "Bookings committed to the ledger with status pending",
			ConstLabels: labels,
		}),
		BookingsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bot_bookings_approved_total",
			Help:        "Bookings approved by the operator",
			ConstLabels: labels,
		}),
		BookingsCanceled: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bot_bookings_canceled_total",
			Help:        "Bookings canceled by the operator or the requester",
			ConstLabels: labels,
		}),
		RetimeRequested: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bot_bookings_retime_requested_total",
			Help:        "Operator requests for a new time",
			ConstLabels: labels,
		}),
		RetimeCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bot_bookings_retime_completed_total",
			Help:        "Retime replies accepted and returned to the approval queue",
			ConstLabels: labels,
		}),
		SlotConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bot_slot_conflicts_total",
			Help:        "Rejected attempts to take an already approved slot",
			ConstLabels: labels,
		}),
		SendFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bot_send_failures_total",
			Help:        "Telegram send errors swallowed at the transport boundary",
			ConstLabels: labels,
		}),
	}
}
