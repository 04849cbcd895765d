package catalog

import (
	"context"
	"fmt"
	"time"
)

// Stats summarizes the catalog for the stats endpoint.
type Stats struct {
	Records    int64 `json:"records"`
	Series     int64 `json:"series"`
	Prefilters int64 `json:"prefilters"`
	FieldRules int64 `json:"fieldRules"`
}

// GetStats counts records, distinct series, prefilters, and field rules.
func (c *Catalog) GetStats(ctx context.Context) (*Stats, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("stats", start, err) }()

	c.mu.RLock()
	defer c.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s Stats
	err = c.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM content),
			(SELECT COUNT(DISTINCT series) FROM content WHERE series != ''),
			(SELECT COUNT(*) FROM prefilters),
			(SELECT COUNT(*) FROM field_rules)
	`).Scan(&s.Records, &s.Series, &s.Prefilters, &s.FieldRules)
	if err != nil {
		return nil, fmt.Errorf("stats query failed: %w", err)
	}

	return &s, nil
}
