package delivery_metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"logistics/pkg/logger"
)

var (
	DeliveriesTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "deliveries_total",
		Help: "Number of deliveries per status code",
	}, []string{"status_code"})

	DeliveriesDistance = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "deliveries_distance_km_total",
		Help: "Summed distance of deliveries per status code",
	}, []string{"status_code"})
)

// DeliveryMetrics периодически выгружает срез доставок по статусам в гейджи.
type DeliveryMetrics struct {
	log        taskLogger
	repository Repository
	interval   time.Duration
}

func New(log taskLogger, repository Repository, interval time.Duration) *DeliveryMetrics {
	return &DeliveryMetrics{
		log:        log.With(logger.NewField("task", "delivery_metrics")),
		repository: repository,
		interval:   interval,
	}
}

func (d *DeliveryMetrics) Name() string {
	return "delivery_metrics"
}

func (d *DeliveryMetrics) Interval() time.Duration {
	return d.interval
}

func (d *DeliveryMetrics) Do(ctx context.Context) error {
	if d.interval > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.interval)
		defer cancel()
	}

	totals, err := d.repository.StatusTotals(ctx)
	if err != nil {
		return fmt.Errorf("collect status totals: %w", err)
	}

	// Статус, удалённый из справочника, не должен висеть в метриках со старым значением.
	DeliveriesTotal.Reset()
	DeliveriesDistance.Reset()

	var count int64
	for _, t := range totals {
		DeliveriesTotal.WithLabelValues(t.Code.String()).Set(float64(t.Count))
		DeliveriesDistance.WithLabelValues(t.Code.String()).Set(t.Distance)
		count += t.Count
	}

	d.log.With(
		logger.NewField("statuses", len(totals)),
		logger.NewField("deliveries", count),
	).Info("delivery metrics refreshed")

	return nil
}
