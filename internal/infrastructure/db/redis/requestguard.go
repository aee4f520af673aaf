package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const reservationTTL = time.Hour

// RequestGuard provides a fast-path duplicate-submission check for job
// creation, backed by Redis SET NX. It narrows the check-then-act window of
// the store-level request id lookup; it does not replace it.
// Key format: reqid:<request_id>
type RequestGuard struct {
	client *redis.Client
}

// NewRequestGuard creates a RequestGuard wrapping the given Redis client.
func NewRequestGuard(client *redis.Client) *RequestGuard {
	return &RequestGuard{client: client}
}

// Reserve marks the request id as seen, returning false when it was already
// reserved by an earlier request. The reservation expires after
// reservationTTL.
func (g *RequestGuard) Reserve(ctx context.Context, requestID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(requestID), "1", reservationTTL).Result()
	if err != nil {
		return false, fmt.Errorf("request guard reserve: %w", err)
	}
	return ok, nil
}

func (g *RequestGuard) key(requestID string) string {
	return "reqid:" + requestID
}
