package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshMarkKey = "leaderboard:last_refresh"

// RefreshMarks persists the last leaderboard refresh time in Redis as
// epoch milliseconds under a fixed key.
type RefreshMarks struct {
	client *redis.Client
}

func NewRefreshMarks(client *redis.Client) *RefreshMarks {
	return &RefreshMarks{client: client}
}

func (m *RefreshMarks) LastRefresh(ctx context.Context) (time.Time, bool, error) {
	raw, err := m.client.Get(ctx, refreshMarkKey).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Unreadable mark is treated as absent so the board can refresh.
		return time.Time{}, false, nil
	}
	return time.UnixMilli(millis), true, nil
}

func (m *RefreshMarks) SetLastRefresh(ctx context.Context, at time.Time) error {
	return m.client.Set(ctx, refreshMarkKey, strconv.FormatInt(at.UnixMilli(), 10), 0).Err()
}
