package cache

import (
	"crypto/md5" //nolint:gosec // cache key derivation, not security
	"encoding/hex"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/faithfm/faithmedia-v1/internal/catalog"
	"github.com/faithfm/faithmedia-v1/internal/logging"
	"github.com/faithfm/faithmedia-v1/internal/metrics"
)

const (
	// PrefilterTTL bounds how stale a served prefilter may be after an
	// administrator edits one directly in storage.
	PrefilterTTL = time.Hour

	// FolderTTL bounds how stale a derived folder listing may be after
	// the ingestion process adds or removes records.
	FolderTTL = 15 * time.Minute

	prefilterCacheSize = 256
	folderCacheSize    = 1024
)

// FolderKey identifies one cached folder derivation. Every input that
// changes the derived set participates, including the caller's
// restriction fingerprint so callers with different visibility never
// share entries.
type FolderKey struct {
	Path                   string
	Prefilter              string
	IncludeExcluded        bool
	RestrictionFingerprint string
}

// Key renders the stable cache key.
func (k FolderKey) Key() string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s|%s|%t|%s",
		k.Path, k.Prefilter, k.IncludeExcluded, k.RestrictionFingerprint)))
	return hex.EncodeToString(sum[:])
}

// Cache holds the TTL caches for prefilter lookups and folder
// derivations. Entries expire on their own; FlushAll exists for
// administrators who cannot wait.
type Cache struct {
	prefilters    *expirable.LRU[string, *catalog.Prefilter]
	prefilterList *expirable.LRU[string, []catalog.Prefilter]
	folders       *expirable.LRU[string, []string]
}

// New creates a cache with the production TTLs.
func New() *Cache {
	return newWithTTL(PrefilterTTL, FolderTTL)
}

func newWithTTL(prefilterTTL, folderTTL time.Duration) *Cache {
	return &Cache{
		prefilters:    expirable.NewLRU[string, *catalog.Prefilter](prefilterCacheSize, nil, prefilterTTL),
		prefilterList: expirable.NewLRU[string, []catalog.Prefilter](1, nil, prefilterTTL),
		folders:       expirable.NewLRU[string, []string](folderCacheSize, nil, folderTTL),
	}
}

// Prefilter returns the cached lookup result for a slug. A cached nil
// means the slug was recently resolved and does not exist; missing
// prefilters are cached too so repeated bad slugs do not hammer storage.
func (c *Cache) Prefilter(slug string) (*catalog.Prefilter, bool) {
	p, ok := c.prefilters.Get(slug)
	observe("prefilters", ok)
	return p, ok
}

// SetPrefilter caches a slug lookup result, nil included.
func (c *Cache) SetPrefilter(slug string, p *catalog.Prefilter) {
	c.prefilters.Add(slug, p)
}

// Prefilters returns the cached full prefilter list.
func (c *Cache) Prefilters() ([]catalog.Prefilter, bool) {
	list, ok := c.prefilterList.Get("all")
	observe("prefilters", ok)
	return list, ok
}

// SetPrefilters caches the full prefilter list.
func (c *Cache) SetPrefilters(list []catalog.Prefilter) {
	c.prefilterList.Add("all", list)
}

// Folders returns the cached folder derivation for a key.
func (c *Cache) Folders(key FolderKey) ([]string, bool) {
	folders, ok := c.folders.Get(key.Key())
	observe("folders", ok)
	return folders, ok
}

// SetFolders caches a folder derivation.
func (c *Cache) SetFolders(key FolderKey, folders []string) {
	c.folders.Add(key.Key(), folders)
}

// FlushAll drops every cached entry across all categories.
func (c *Cache) FlushAll() {
	c.prefilters.Purge()
	c.prefilterList.Purge()
	c.folders.Purge()
	metrics.CacheFlushesTotal.Inc()
	logging.Info("All caches flushed")
}

func observe(category string, hit bool) {
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(category).Inc()
		return
	}
	metrics.CacheMissesTotal.WithLabelValues(category).Inc()
}
