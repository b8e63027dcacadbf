package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/juanmiguelzamora/StockWise/internal/infra"
)

// EmailWorker sends transactional mail (currently password resets).
type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb}
}

func (w *EmailWorker) Process(ctx context.Context, job Job) error {
	switch job.Type {
	case "password_reset":
		var p ResetEmailPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return fmt.Errorf("email worker: decode payload: %w", err)
		}
		return w.cb.Execute(func() error {
			return w.mailer.SendPasswordReset(p.To, p.Token)
		})
	default:
		return fmt.Errorf("email worker: unknown job type %q", job.Type)
	}
}
