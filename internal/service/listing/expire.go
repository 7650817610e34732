package listing

import (
	"context"
	"fmt"
	"log/slog"
)

// ExpireSweep marks every active listing past its expiry as expired and
// returns how many changed. Running it twice is harmless.
func (s *Service) ExpireSweep(ctx context.Context) (int64, error) {
	now := s.now()

	n, err := s.listings.ExpireBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("expire listings: %w", err)
	}

	s.log.InfoContext(ctx, "listings expired",
		slog.Int64("count", n),
		slog.Time("cutoff", now),
	)
	return n, nil
}
