package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/faithfm/faithmedia-v1/internal/cache"
	"github.com/faithfm/faithmedia-v1/internal/catalog"
	"github.com/faithfm/faithmedia-v1/internal/logging"
	"github.com/faithfm/faithmedia-v1/internal/pathkey"
	"github.com/faithfm/faithmedia-v1/internal/permissions"
)

const (
	modeFolder = "folder"
	modeSearch = "search"
)

// ContentResponse is the browse payload: one page of records plus the
// folder navigation context for the requested path.
type ContentResponse struct {
	Path       string            `json:"path"`
	Mode       string            `json:"mode"`
	Breadcrumb []pathkey.Part    `json:"breadcrumb"`
	Folders    []string          `json:"folders"`
	Items      []catalog.Content `json:"items"`
	NextCursor *string           `json:"nextCursor"`
	HasMore    bool              `json:"hasMore"`
}

// GetContent serves the catalog browse endpoint. Query parameters: path,
// search, prefilter (slug), sort (asc|desc), includeSubfolders,
// includeExcluded, cursor, limit. Storage trouble degrades to empty
// listings rather than failing the request.
func (h *Handlers) GetContent(w http.ResponseWriter, r *http.Request) {
	restriction, ok := permissions.FromContext(r.Context(), permissions.CapUseApp)
	if !ok {
		writeJSONError(w, "This application has not been authorized for your account", http.StatusForbidden)
		return
	}

	q := r.URL.Query()

	path := strings.Trim(q.Get("path"), "/")
	search := strings.TrimSpace(q.Get("search"))
	prefilterSlug := q.Get("prefilter")
	includeSubfolders := parseBool(q.Get("includeSubfolders"))
	includeExcluded := parseBool(q.Get("includeExcluded"))

	// Newest first unless the caller asks otherwise.
	sort := catalog.SortDesc
	if q.Get("sort") == "asc" {
		sort = catalog.SortAsc
	}

	cursor := 0
	if v := q.Get("cursor"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cursor = parsed
		}
	}

	limit := 0
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	prefilterExpr := h.resolvePrefilter(r.Context(), prefilterSlug)

	result := h.catalog.ListContent(r.Context(), catalog.ListOptions{
		Path:              path,
		Search:            search,
		RestrictionFilter: restriction.FilterExpression(),
		PrefilterExpr:     prefilterExpr,
		IncludeSubfolders: includeSubfolders,
		IncludeExcluded:   includeExcluded,
		Sort:              sort,
		Cursor:            cursor,
		PageSize:          limit,
	})

	folders := h.folderListing(r.Context(), folderRequest{
		path:            path,
		search:          search,
		prefilterSlug:   prefilterSlug,
		prefilterExpr:   prefilterExpr,
		includeExcluded: includeExcluded,
		restriction:     restriction,
	})

	mode := modeFolder
	if search != "" {
		mode = modeSearch
	}

	var nextCursor *string
	if result.HasMore {
		v := strconv.Itoa(result.NextCursor)
		nextCursor = &v
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, ContentResponse{
		Path:       path,
		Mode:       mode,
		Breadcrumb: pathkey.Breadcrumb(path),
		Folders:    folders,
		Items:      result.Items,
		NextCursor: nextCursor,
		HasMore:    result.HasMore,
	})
}

type folderRequest struct {
	path            string
	search          string
	prefilterSlug   string
	prefilterExpr   string
	includeExcluded bool
	restriction     *permissions.Restriction
}

// folderListing derives the child folders for the browse response. Plain
// folder browsing goes through the cache; searches always derive live
// because the term changes the folder set.
func (h *Handlers) folderListing(ctx context.Context, req folderRequest) []string {
	if req.search != "" {
		result := h.catalog.ChildFolders(ctx, catalog.FolderOptions{
			Path:              req.path,
			Search:            req.search,
			RestrictionFilter: req.restriction.FilterExpression(),
			PrefilterExpr:     req.prefilterExpr,
			IncludeExcluded:   req.includeExcluded,
		})
		return result.Folders
	}

	key := cache.FolderKey{
		Path:                   req.path,
		Prefilter:              req.prefilterSlug,
		IncludeExcluded:        req.includeExcluded,
		RestrictionFingerprint: req.restriction.Fingerprint(),
	}
	if folders, ok := h.cache.Folders(key); ok {
		return folders
	}

	result := h.catalog.ChildFolders(ctx, catalog.FolderOptions{
		Path:              req.path,
		RestrictionFilter: req.restriction.FilterExpression(),
		PrefilterExpr:     req.prefilterExpr,
		IncludeExcluded:   req.includeExcluded,
	})

	// Degraded derivations are never cached; the next request retries.
	if result.Fault == nil {
		h.cache.SetFolders(key, result.Folders)
	}
	return result.Folders
}

// resolvePrefilter turns a prefilter slug into its filter expression via
// the cache. Unknown slugs resolve to "" and are cached as misses; lookup
// errors also degrade to "" so browsing never fails on a prefilter.
func (h *Handlers) resolvePrefilter(ctx context.Context, slug string) string {
	if slug == "" {
		return ""
	}

	if p, ok := h.cache.Prefilter(slug); ok {
		if p == nil {
			return ""
		}
		return p.Filter
	}

	p, err := h.catalog.PrefilterBySlug(ctx, slug)
	if err != nil {
		logging.Error("prefilter %q lookup failed: %v", slug, err)
		return ""
	}

	h.cache.SetPrefilter(slug, p)
	if p == nil {
		return ""
	}
	return p.Filter
}
