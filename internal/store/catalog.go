// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopstream/recsys/internal/metrics"
	"github.com/shopstream/recsys/internal/recommend"
)

// ReplaceCatalog swaps the stored catalog for the given items in one
// transaction, matching the engine's replace-wholesale rebuild contract.
func (s *Store) ReplaceCatalog(ctx context.Context, items []recommend.CatalogItem) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("REPLACE", "catalog_items", time.Since(start), err)
	}()

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM catalog_items`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO catalog_items
		(id, name, description, manufacturer, category, subcategory,
		 price, rating, view_count, featured, on_sale, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, item := range items {
		if _, err = stmt.ExecContext(ctx,
			item.ID, item.Name, item.Description, item.Manufacturer,
			item.Category, item.Subcategory, item.Price, item.Rating,
			item.ViewCount, item.Featured, item.OnSale,
		); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", item.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// LoadCatalog returns every stored catalog item, ordered by id.
func (s *Store) LoadCatalog(ctx context.Context) (items []recommend.CatalogItem, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("SELECT", "catalog_items", time.Since(start), err)
	}()

	rows, err := s.conn.QueryContext(ctx, `SELECT
		id, name, description, manufacturer, category, subcategory,
		price, rating, view_count, featured, on_sale
		FROM catalog_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item recommend.CatalogItem
		if err = rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Manufacturer,
			&item.Category, &item.Subcategory, &item.Price, &item.Rating,
			&item.ViewCount, &item.Featured, &item.OnSale,
		); err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog row iteration failed: %w", err)
	}
	return items, nil
}

// CatalogCount returns the number of stored catalog items.
func (s *Store) CatalogCount(ctx context.Context) (int, error) {
	var count int
	err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count catalog items: %w", err)
	}
	return count, nil
}
