// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopstream/recsys/internal/metrics"
	"github.com/shopstream/recsys/internal/recommend"
)

// AppendInteraction persists one interaction event. The event log is
// append-only; events are never updated or deleted.
func (s *Store) AppendInteraction(ctx context.Context, ev recommend.InteractionEvent) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("INSERT", "interaction_events", time.Since(start), err)
	}()

	occurred := ev.Timestamp
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}

	_, err = s.conn.ExecContext(ctx, `INSERT INTO interaction_events
		(id, user_id, item_id, event_type, rating, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), ev.UserID, ev.ItemID, ev.Type.String(), ev.Rating, occurred,
	)
	if err != nil {
		return fmt.Errorf("failed to append interaction: %w", err)
	}
	return nil
}

// ReplayInteractions streams every stored event in chronological order to
// fn, used at startup to rebuild the in-memory ledger. Replay stops on
// the first fn error.
func (s *Store) ReplayInteractions(ctx context.Context, fn func(recommend.InteractionEvent) error) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("SELECT", "interaction_events", time.Since(start), err)
	}()

	rows, err := s.conn.QueryContext(ctx, `SELECT
		user_id, item_id, event_type, rating, occurred_at
		FROM interaction_events ORDER BY occurred_at, id`)
	if err != nil {
		return fmt.Errorf("failed to query interactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			ev      recommend.InteractionEvent
			typeStr string
		)
		if err = rows.Scan(&ev.UserID, &ev.ItemID, &typeStr, &ev.Rating, &ev.Timestamp); err != nil {
			return fmt.Errorf("failed to scan interaction: %w", err)
		}
		ev.Type, err = recommend.ParseInteractionType(typeStr)
		if err != nil {
			return fmt.Errorf("stored interaction has unknown type %q: %w", typeStr, err)
		}
		if err = fn(ev); err != nil {
			return err
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("interaction row iteration failed: %w", err)
	}
	return nil
}

// InteractionCount returns the number of stored interaction events.
func (s *Store) InteractionCount(ctx context.Context) (int, error) {
	var count int
	err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM interaction_events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count interactions: %w", err)
	}
	return count, nil
}
