package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"github.com/faithfm/faithmedia-v1/internal/logging"
	"github.com/faithfm/faithmedia-v1/internal/metrics"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// Catalog manages all database operations for the media catalog.
type Catalog struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// Open creates a Catalog backed by the SQLite database at dbPath.
// The parent directory must already exist and be writable; use
// startup.LoadConfig() for validation before calling this.
func Open(ctx context.Context, dbPath string) (*Catalog, error) {
	logging.Info("Catalog database path: %s", dbPath)

	// WAL mode plus busy_timeout to avoid "database is locked" errors
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	c := &Catalog{
		db:     db,
		dbPath: dbPath,
	}

	if err := c.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.Info("Catalog initialized successfully at %s", dbPath)
	return c, nil
}

func (c *Catalog) initialize(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("initialize_schema", start, err) }()

	schema := `
	-- Content records, one per media file, keyed by path
	CREATE TABLE IF NOT EXISTS content (
		file TEXT PRIMARY KEY,
		series TEXT NOT NULL DEFAULT '',
		numbers TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		guests TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		bytes INTEGER NOT NULL DEFAULT 0,
		seconds INTEGER NOT NULL DEFAULT 0,
		md5 TEXT NOT NULL DEFAULT '',
		bestdate TEXT NOT NULL DEFAULT '',
		podcastdate TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		ref TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE INDEX IF NOT EXISTS idx_content_series ON content(series);
	CREATE INDEX IF NOT EXISTS idx_content_tags ON content(tags);

	-- Saved smart-search expressions selectable by slug
	CREATE TABLE IF NOT EXISTS prefilters (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		filter TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_prefilters_slug ON prefilters(slug);

	-- Administrative field locks by path pattern
	CREATE TABLE IF NOT EXISTS field_rules (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path_pattern TEXT NOT NULL,
		forced_content INTEGER NOT NULL DEFAULT 0,
		forced_series INTEGER NOT NULL DEFAULT 0,
		forced_guests INTEGER NOT NULL DEFAULT 0,
		forced_tags INTEGER NOT NULL DEFAULT 0
	);
	`

	_, err = c.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// UpdateDBMetrics updates database connection metrics.
func (c *Catalog) UpdateDBMetrics() {
	stats := c.db.Stats()
	metrics.DBConnectionsOpen.Set(float64(stats.OpenConnections))
}

// recordQuery records database query metrics
func recordQuery(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DBQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.DBQueryDuration.WithLabelValues(operation).Observe(duration)
}
