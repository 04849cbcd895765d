package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/faithfm/faithmedia-v1/internal/logging"
	"github.com/faithfm/faithmedia-v1/internal/metrics"
	"github.com/faithfm/faithmedia-v1/internal/pathkey"
	"github.com/faithfm/faithmedia-v1/internal/smartsearch"
)

// SearchFields is the field allow-list every catalog query compiles
// smart-search expressions against.
var SearchFields = smartsearch.FieldSet{"file", "series", "content", "guests", "tags"}

// excludedPrefix is the standing exclusion scope: records under this
// prefix are invisible to default queries unless explicitly opted in.
const excludedPrefix = "3abn"

// ListOptions describes one catalog listing request. Filter expressions
// arrive pre-resolved: the caller restriction's filter and the prefilter's
// expression, not the prefilter slug.
type ListOptions struct {
	Path              string
	Search            string
	RestrictionFilter string
	PrefilterExpr     string
	IncludeSubfolders bool
	IncludeExcluded   bool
	Sort              SortOrder
	Cursor            int
	PageSize          int
}

// ListResult is a page of catalog records. Fault is the side channel for
// read-path degradation: when set, the listing is empty because of a
// storage failure, not because nothing matched.
type ListResult struct {
	Items      []Content
	NextCursor int
	HasMore    bool
	Fault      error
}

// FolderOptions describes a child-folder derivation. Subfolder inclusion
// is always forced on for folder discovery, so there is no flag here.
type FolderOptions struct {
	Path              string
	Search            string
	RestrictionFilter string
	PrefilterExpr     string
	IncludeExcluded   bool
}

// FolderResult is the set of immediate child folder paths under a base
// path, sorted ascending, deduplicated, capped at FolderLimit.
type FolderResult struct {
	Folders []string
	Fault   error
}

func columnOf(field string) string {
	return field
}

// buildConditions assembles the WHERE fragments for a catalog query in
// their fixed order: exclusion scope, path prefix, subfolder exclusion,
// restriction filter, prefilter, search.
func buildConditions(path string, includeSubfolders, includeExcluded bool, exprs ...string) ([]string, []interface{}) {
	var conds []string
	var args []interface{}

	if !includeExcluded {
		conds = append(conds, "file NOT LIKE ?")
		args = append(args, excludedPrefix+"%")
	}

	prefix := pathkey.Prefix(path)
	if prefix != "" {
		conds = append(conds, "file LIKE ?")
		args = append(args, prefix+"%")
	}

	if !includeSubfolders {
		conds = append(conds, "file NOT LIKE ?")
		args = append(args, prefix+"%/%")
	}

	for _, expr := range exprs {
		if expr == "" {
			continue
		}
		sql, exprArgs := smartsearch.Compile(expr, SearchFields).SQL(columnOf)
		if sql == "" {
			continue
		}
		conds = append(conds, sql)
		args = append(args, exprArgs...)
	}

	return conds, args
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

const contentColumns = `file, series, numbers, content, guests, tags, bytes, seconds, md5, bestdate, podcastdate, source, ref, created_at, updated_at`

func scanContent(scan func(...interface{}) error) (Content, error) {
	var item Content
	var createdAt, updatedAt int64

	err := scan(
		&item.File, &item.Series, &item.Numbers, &item.Content, &item.Guests,
		&item.Tags, &item.Bytes, &item.Seconds, &item.MD5, &item.BestDate,
		&item.PodcastDate, &item.Source, &item.Ref, &createdAt, &updatedAt,
	)
	if err != nil {
		return Content{}, err
	}

	item.CreatedAt = time.Unix(createdAt, 0)
	item.UpdatedAt = time.Unix(updatedAt, 0)
	return item, nil
}

// ListContent returns one page of records matching the options, with
// look-ahead hasMore detection. Storage errors are logged with the full
// request context and converted to an empty result carrying the fault.
func (c *Catalog) ListContent(ctx context.Context, opts ListOptions) ListResult {
	start := time.Now()
	var err error
	defer func() { recordQuery("list_content", start, err) }()

	if opts.PageSize < 1 || opts.PageSize > 500 {
		opts.PageSize = 500
	}
	if opts.Cursor < 0 {
		opts.Cursor = 0
	}
	if opts.Sort != SortDesc {
		opts.Sort = SortAsc
	}

	conds, args := buildConditions(opts.Path, opts.IncludeSubfolders, opts.IncludeExcluded,
		opts.RestrictionFilter, opts.PrefilterExpr, opts.Search)

	direction := "ASC"
	if opts.Sort == SortDesc {
		direction = "DESC"
	}

	// Fetch one row past the page to detect whether more remain.
	query := fmt.Sprintf(`SELECT %s FROM content%s ORDER BY file %s LIMIT ? OFFSET ?`,
		contentColumns, whereClause(conds), direction)
	args = append(args, opts.PageSize+1, opts.Cursor)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c.mu.RLock()
	rows, err := c.db.QueryContext(ctx, query, args...)
	c.mu.RUnlock()

	if err != nil {
		logging.Error("ListContent query failed: %v (path=%q search=%q prefilter=%q subfolders=%v cursor=%d)",
			err, opts.Path, opts.Search, opts.PrefilterExpr, opts.IncludeSubfolders, opts.Cursor)
		metrics.ReadDegradedTotal.WithLabelValues("list_content").Inc()
		return ListResult{Items: []Content{}, Fault: err}
	}
	defer rows.Close()

	items := make([]Content, 0, opts.PageSize)
	for rows.Next() {
		item, scanErr := scanContent(rows.Scan)
		if scanErr != nil {
			err = scanErr
			logging.Error("ListContent scan failed: %v (path=%q)", scanErr, opts.Path)
			metrics.ReadDegradedTotal.WithLabelValues("list_content").Inc()
			return ListResult{Items: []Content{}, Fault: scanErr}
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		err = rowsErr
		logging.Error("ListContent rows error: %v (path=%q)", rowsErr, opts.Path)
		metrics.ReadDegradedTotal.WithLabelValues("list_content").Inc()
		return ListResult{Items: []Content{}, Fault: rowsErr}
	}

	result := ListResult{Items: items}
	if len(items) > opts.PageSize {
		result.Items = items[:opts.PageSize]
		result.HasMore = true
		result.NextCursor = opts.Cursor + opts.PageSize
	}

	return result
}

// ChildFolders derives the distinct immediate child folders under the base
// path, honoring the same predicate stack as ListContent but with
// subfolder inclusion always on. Output is sorted ascending, deduplicated
// and capped at FolderLimit distinct entries; a result of exactly
// FolderLimit entries may be incomplete.
func (c *Catalog) ChildFolders(ctx context.Context, opts FolderOptions) FolderResult {
	start := time.Now()
	var err error
	defer func() { recordQuery("child_folders", start, err) }()

	// Folder discovery must see descendants regardless of the caller's
	// subfolder preference for items.
	conds, args := buildConditions(opts.Path, true, opts.IncludeExcluded,
		opts.RestrictionFilter, opts.PrefilterExpr, opts.Search)

	prefix := pathkey.Prefix(opts.Path)
	conds = append(conds, "file LIKE ?")
	args = append(args, prefix+"%/%")

	// The folder path is the base prefix plus the first segment after it,
	// computed in SQL so distinctness and the cap apply storage-side.
	args = append([]interface{}{prefix, prefix}, args...)

	query := fmt.Sprintf(
		`SELECT DISTINCT substr(file, 1, length(?) + instr(substr(file, length(?) + 1), '/') - 1)
		 FROM content%s ORDER BY 1 ASC LIMIT %d`, whereClause(conds), FolderLimit)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c.mu.RLock()
	rows, err := c.db.QueryContext(ctx, query, args...)
	c.mu.RUnlock()

	if err != nil {
		logging.Error("ChildFolders query failed: %v (path=%q search=%q prefilter=%q)",
			err, opts.Path, opts.Search, opts.PrefilterExpr)
		metrics.ReadDegradedTotal.WithLabelValues("child_folders").Inc()
		return FolderResult{Folders: []string{}, Fault: err}
	}
	defer rows.Close()

	folders := make([]string, 0)
	for rows.Next() {
		var folder string
		if scanErr := rows.Scan(&folder); scanErr != nil {
			err = scanErr
			logging.Error("ChildFolders scan failed: %v (path=%q)", scanErr, opts.Path)
			metrics.ReadDegradedTotal.WithLabelValues("child_folders").Inc()
			return FolderResult{Folders: []string{}, Fault: scanErr}
		}
		// A doubled slash yields an empty segment; skip it.
		if folder == prefix {
			continue
		}
		folders = append(folders, folder)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		err = rowsErr
		logging.Error("ChildFolders rows error: %v (path=%q)", rowsErr, opts.Path)
		metrics.ReadDegradedTotal.WithLabelValues("child_folders").Inc()
		return FolderResult{Folders: []string{}, Fault: rowsErr}
	}

	return FolderResult{Folders: folders}
}
