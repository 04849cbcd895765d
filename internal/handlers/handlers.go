package handlers

import (
	"time"

	"github.com/faithfm/faithmedia-v1/internal/cache"
	"github.com/faithfm/faithmedia-v1/internal/catalog"
)

type Handlers struct {
	catalog   *catalog.Catalog
	cache     *cache.Cache
	startTime time.Time
}

func New(cat *catalog.Catalog, c *cache.Cache) *Handlers {
	return &Handlers{
		catalog:   cat,
		cache:     c,
		startTime: time.Now(),
	}
}
