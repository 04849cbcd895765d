package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PrefilterBySlug looks up one saved filter expression. An unknown slug
// resolves to nil, never an error: a query referencing a missing prefilter
// degrades to "no prefilter applied" rather than failing the request.
func (c *Catalog) PrefilterBySlug(ctx context.Context, slug string) (*Prefilter, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("prefilter_by_slug", start, err) }()

	c.mu.RLock()
	defer c.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p Prefilter
	err = c.db.QueryRowContext(ctx,
		"SELECT id, slug, name, filter FROM prefilters WHERE slug = ?", slug,
	).Scan(&p.ID, &p.Slug, &p.Name, &p.Filter)

	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prefilter lookup failed: %w", err)
	}
	return &p, nil
}

// Prefilters returns all saved prefilters ordered by display name.
func (c *Catalog) Prefilters(ctx context.Context) ([]Prefilter, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("prefilters", start, err) }()

	c.mu.RLock()
	defer c.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx, "SELECT id, slug, name, filter FROM prefilters ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("prefilters query failed: %w", err)
	}
	defer rows.Close()

	prefilters := make([]Prefilter, 0)
	for rows.Next() {
		var p Prefilter
		if err = rows.Scan(&p.ID, &p.Slug, &p.Name, &p.Filter); err != nil {
			return nil, fmt.Errorf("prefilters scan failed: %w", err)
		}
		prefilters = append(prefilters, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("prefilters rows error: %w", err)
	}

	return prefilters, nil
}

// UpsertPrefilter inserts or updates a saved prefilter by slug.
// Prefilters are administrator-managed; this exists for seeding and tests.
func (c *Catalog) UpsertPrefilter(ctx context.Context, p *Prefilter) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO prefilters (slug, name, filter) VALUES (?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET name = excluded.name, filter = excluded.filter
	`, p.Slug, p.Name, p.Filter)
	return err
}
