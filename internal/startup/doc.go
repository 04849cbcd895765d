// Package startup owns process configuration and boot-time logging.
//
// Configuration comes from environment variables (DATABASE_DIR, PORT,
// METRICS_PORT, METRICS_ENABLED, LOG_HEALTH_CHECKS, PERMISSIONS_FILE),
// validated once at startup; build information arrives through ldflags
// variables. The package also provides the banner, route dump, and
// shutdown log helpers main uses to keep its own body small.
package startup
