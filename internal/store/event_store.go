package store

import (
	"context"
	"fmt"

	"github.com/spidyshivam/webhook-repo/internal/domain"
)

// InsertEvent persists ev and returns the id assigned by the database.
func (s *PostgresStore) InsertEvent(ctx context.Context, ev domain.CanonicalEvent) (string, error) {
	if err := validateEvent(ev); err != nil {
		return "", fmt.Errorf("inserting event: %w", err)
	}

	var id string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO events (request_id, author, action, from_branch, to_branch, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text
	`, ev.RequestID, ev.Author, string(ev.Action), ev.FromBranch, ev.ToBranch, ev.Timestamp).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("inserting event: %w", err)
	}
	return id, nil
}

// RecentEvents returns up to limit events, newest first. Ordering compares
// the stored timestamp strings, which is only chronological while every
// writer uses the same ISO-8601 offset convention.
func (s *PostgresStore) RecentEvents(ctx context.Context, limit int) ([]domain.StoredEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, request_id, author, action, from_branch, to_branch, timestamp
		FROM events
		ORDER BY timestamp DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	events := []domain.StoredEvent{}
	for rows.Next() {
		var (
			e      domain.StoredEvent
			action string
		)
		err := rows.Scan(&e.ID, &e.RequestID, &e.Author, &action, &e.FromBranch, &e.ToBranch, &e.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Action = domain.Action(action)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}
