// Package redis contains the Redis-backed reconciliation queue. A task
// is pushed for every publish attempt whose local bookkeeping failed
// after the platform already accepted the submission; a background
// worker drains the list and repairs local state.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"adpilot/internal/config/configs"
	"adpilot/internal/core/domain"
)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg configs.Redis) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// ReconcileQueue implements port.ReconcileQueue over a Redis list.
type ReconcileQueue struct {
	client *goredis.Client
	key    string
}

func NewReconcileQueue(client *goredis.Client, key string) *ReconcileQueue {
	return &ReconcileQueue{client: client, key: key}
}

// Enqueue pushes the task as JSON onto the list.
func (q *ReconcileQueue) Enqueue(ctx context.Context, task domain.ReconcileTask) error {
	b, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal reconcile task: %w", err)
	}
	return q.client.LPush(ctx, q.key, b).Err()
}
