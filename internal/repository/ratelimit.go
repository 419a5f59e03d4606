package repository

import (
	"context"
	"fmt"
)

// CheckAndIncrementRateLimit bumps the caller's counter for the current
// minute window and returns the post-increment count. The window resets when
// the stored window_start is older than one minute.
func (s *Store) CheckAndIncrementRateLimit(ctx context.Context, key string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		INSERT INTO rate_limits (key, window_start, count)
		VALUES ($1, now(), 1)
		ON CONFLICT (key) DO UPDATE SET
			count = CASE WHEN rate_limits.window_start < now() - interval '1 minute' THEN 1 ELSE rate_limits.count + 1 END,
			window_start = CASE WHEN rate_limits.window_start < now() - interval '1 minute' THEN now() ELSE rate_limits.window_start END
		RETURNING count`,
		key,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment rate limit: %w", err)
	}
	return count, nil
}

// CleanupStaleRateLimits drops counter rows whose window closed long ago.
func (s *Store) CleanupStaleRateLimits(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM rate_limits WHERE window_start < now() - interval '1 hour'`)
	if err != nil {
		return 0, fmt.Errorf("cleanup rate limits: %w", err)
	}
	return tag.RowsAffected(), nil
}
