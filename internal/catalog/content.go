package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned when no record exists for a path.
var ErrNotFound = errors.New("content not found")

// GetContent retrieves a single record by path. The standing exclusion
// scope does not apply to direct lookups; a record is always addressable
// by its exact path.
func (c *Catalog) GetContent(ctx context.Context, file string) (*Content, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_content", start, err) }()

	c.mu.RLock()
	defer c.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM content WHERE file = ?`, contentColumns)

	item, err := scanContent(c.db.QueryRowContext(ctx, query, file).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content failed: %w", err)
	}
	return &item, nil
}

// UpdateContentFields applies an authorized partial update to one record
// as a single atomic write. Only editable metadata columns may appear in
// fields; updated_at is touched alongside.
func (c *Catalog) UpdateContentFields(ctx context.Context, file string, fields map[string]string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("update_content", start, err) }()

	if len(fields) == 0 {
		return nil
	}

	editable := map[string]bool{}
	for _, f := range EditableFields {
		editable[f] = true
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if !editable[name] {
			err = fmt.Errorf("field %q is not editable", name)
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]string, 0, len(names)+1)
	args := make([]interface{}, 0, len(names)+1)
	for _, name := range names {
		sets = append(sets, name+" = ?")
		args = append(args, fields[name])
	}
	sets = append(sets, "updated_at = strftime('%s', 'now')")
	args = append(args, file)

	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := "UPDATE content SET " + strings.Join(sets, ", ") + " WHERE file = ?"

	result, execErr := c.db.ExecContext(ctx, query, args...)
	if execErr != nil {
		err = fmt.Errorf("update content failed: %w", execErr)
		return err
	}

	affected, raErr := result.RowsAffected()
	if raErr == nil && affected == 0 {
		err = ErrNotFound
		return err
	}
	return nil
}

// UpsertContent inserts or replaces a full record. The ingestion process
// owns record identity in production; this exists for seeding and tests.
func (c *Catalog) UpsertContent(ctx context.Context, item *Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
	INSERT INTO content (file, series, numbers, content, guests, tags, bytes, seconds, md5, bestdate, podcastdate, source, ref)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(file) DO UPDATE SET
		series = excluded.series,
		numbers = excluded.numbers,
		content = excluded.content,
		guests = excluded.guests,
		tags = excluded.tags,
		bytes = excluded.bytes,
		seconds = excluded.seconds,
		md5 = excluded.md5,
		bestdate = excluded.bestdate,
		podcastdate = excluded.podcastdate,
		source = excluded.source,
		ref = excluded.ref,
		updated_at = strftime('%s', 'now')
	`

	_, err := c.db.ExecContext(ctx, query,
		item.File, item.Series, item.Numbers, item.Content, item.Guests,
		item.Tags, item.Bytes, item.Seconds, item.MD5, item.BestDate,
		item.PodcastDate, item.Source, item.Ref,
	)
	return err
}
