package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/juanmiguelzamora/StockWise/internal/infra"
)

// AlertWorker turns low-stock alert jobs into outbound mail. SMTP calls go
// through the circuit breaker so a flapping relay fails fast instead of
// blocking the pool.
type AlertWorker struct {
	mailer     *infra.Mailer
	cb         *infra.CircuitBreaker
	alertEmail string
}

func NewAlertWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, alertEmail string) *AlertWorker {
	return &AlertWorker{mailer: mailer, cb: cb, alertEmail: alertEmail}
}

func (w *AlertWorker) Process(ctx context.Context, job Job) error {
	var p LowStockAlertPayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return fmt.Errorf("alert worker: decode payload: %w", err)
	}
	if w.alertEmail == "" {
		// Alerting not configured — treat as processed, not as a failure.
		return nil
	}
	return w.cb.Execute(func() error {
		return w.mailer.SendLowStockAlert(w.alertEmail, p.ProductName, p.SKU, p.Quantity)
	})
}
