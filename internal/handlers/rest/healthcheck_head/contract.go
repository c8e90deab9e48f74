//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=healthcheck_head_test
package healthcheck_head

import "context"

// Probe - зависимость, без которой инстанс не готов принимать трафик.
// *pgxpool.Pool подходит как есть.
type Probe interface {
	Ping(ctx context.Context) error
}
