package catalog

import (
	"context"
	"fmt"
	"time"
)

// ForcedFieldsFor returns the union of field locks from every rule whose
// path pattern matches the given record path. Pattern matching uses the
// storage layer's LIKE semantics, the same dialect administrators write
// the patterns in.
func (c *Catalog) ForcedFieldsFor(ctx context.Context, file string) (Forced, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("forced_fields", start, err) }()

	c.mu.RLock()
	defer c.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx, `
		SELECT forced_content, forced_series, forced_guests, forced_tags
		FROM field_rules WHERE ? LIKE path_pattern
	`, file)
	if err != nil {
		return Forced{}, fmt.Errorf("field rules query failed: %w", err)
	}
	defer rows.Close()

	var union Forced
	for rows.Next() {
		var f Forced
		if err = rows.Scan(&f.Content, &f.Series, &f.Guests, &f.Tags); err != nil {
			return Forced{}, fmt.Errorf("field rules scan failed: %w", err)
		}
		union = union.Union(f)
	}
	if err = rows.Err(); err != nil {
		return Forced{}, fmt.Errorf("field rules rows error: %w", err)
	}

	return union, nil
}

// FieldRules returns every administrative field rule.
func (c *Catalog) FieldRules(ctx context.Context) ([]FieldRule, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx, `
		SELECT id, path_pattern, forced_content, forced_series, forced_guests, forced_tags
		FROM field_rules ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("field rules query failed: %w", err)
	}
	defer rows.Close()

	rules := make([]FieldRule, 0)
	for rows.Next() {
		var r FieldRule
		if err := rows.Scan(&r.ID, &r.PathPattern, &r.Forced.Content, &r.Forced.Series, &r.Forced.Guests, &r.Forced.Tags); err != nil {
			return nil, fmt.Errorf("field rules scan failed: %w", err)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("field rules rows error: %w", err)
	}

	return rules, nil
}

// AddFieldRule stores a new field rule. Rules are administrator-managed;
// this exists for seeding and tests.
func (c *Catalog) AddFieldRule(ctx context.Context, rule *FieldRule) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := c.db.ExecContext(ctx, `
		INSERT INTO field_rules (path_pattern, forced_content, forced_series, forced_guests, forced_tags)
		VALUES (?, ?, ?, ?, ?)
	`, rule.PathPattern, rule.Forced.Content, rule.Forced.Series, rule.Forced.Guests, rule.Forced.Tags)
	if err != nil {
		return err
	}

	if id, idErr := result.LastInsertId(); idErr == nil {
		rule.ID = id
	}
	return nil
}
