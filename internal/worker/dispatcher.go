package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const (
	QueueAlerts = "jobs:alerts"
	QueueEmail  = "jobs:email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// LowStockAlertPayload is enqueued by the inventory service whenever a
// mutation leaves a product at or below the low-stock threshold.
type LowStockAlertPayload struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
}

// ResetEmailPayload carries a password-reset mail request.
type ResetEmailPayload struct {
	To    string `json:"to"`
	Token string `json:"token"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueLowStockAlert pushes a low-stock alert job to Redis.
func (d *Dispatcher) EnqueueLowStockAlert(ctx context.Context, payload LowStockAlertPayload) error {
	return d.enqueue(ctx, QueueAlerts, "low_stock_alert", payload)
}

// EnqueueResetEmail pushes a password-reset mail job to Redis.
func (d *Dispatcher) EnqueueResetEmail(ctx context.Context, payload ResetEmailPayload) error {
	return d.enqueue(ctx, QueueEmail, "password_reset", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}
