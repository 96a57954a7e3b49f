// Package metrics содержит счётчики prometheus для бизнес-операций магазина.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal число успешных регистраций.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gameshop_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	// OrdersCreatedTotal число созданных заказов.
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gameshop_orders_created_total",
		Help: "Total number of created orders.",
	})

	// OrderStatusChangesTotal число переходов статусов заказов по целевому статусу.
	OrderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gameshop_order_status_changes_total",
		Help: "Total number of order status transitions by target status.",
	}, []string{"status"})
)
