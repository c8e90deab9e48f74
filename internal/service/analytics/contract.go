//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=analytics_test
package analytics

import (
	"context"

	"logistics/internal/entities"
)

// Repository отдаёт отфильтрованные записи одним запросом, то есть из одного снимка.
type Repository interface {
	ScanAnalyticsRecords(ctx context.Context, filter entities.DeliveryFilter, fn func(entities.AnalyticsRecord) error) error
}
