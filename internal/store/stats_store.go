package store

import (
	"context"
	"fmt"

	"github.com/spidyshivam/webhook-repo/internal/domain"
)

// EventStats holds per-action totals for stored events.
type EventStats struct {
	TotalEvents  int `json:"total_events"`
	Pushes       int `json:"pushes"`
	PullRequests int `json:"pull_requests"`
	Merges       int `json:"merges"`
}

func (s *EventStats) add(action domain.Action, n int) {
	s.TotalEvents += n
	switch action {
	case domain.ActionPush:
		s.Pushes += n
	case domain.ActionPullRequest:
		s.PullRequests += n
	case domain.ActionMerge:
		s.Merges += n
	}
}

// EventStats returns aggregated event counts from the database.
func (s *PostgresStore) EventStats(ctx context.Context) (*EventStats, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT action, COUNT(*) FROM events GROUP BY action
	`)
	if err != nil {
		return nil, fmt.Errorf("querying event stats: %w", err)
	}
	defer rows.Close()

	var stats EventStats
	for rows.Next() {
		var (
			action string
			count  int
		)
		if err := rows.Scan(&action, &count); err != nil {
			return nil, fmt.Errorf("scanning event stats: %w", err)
		}
		stats.add(domain.Action(action), count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event stats: %w", err)
	}

	return &stats, nil
}
