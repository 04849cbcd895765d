package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- DB query operations ---
	for _, op := range []string{"initialize_schema", "list_content", "child_folders",
		"get_content", "update_content", "prefilter_by_slug", "prefilters",
		"forced_fields", "stats"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}

	// --- Cache categories ---
	for _, category := range []string{"prefilters", "folders"} {
		CacheHitsTotal.WithLabelValues(category)
		CacheMissesTotal.WithLabelValues(category)
	}

	// --- Degradable read operations ---
	for _, op := range []string{"list_content", "child_folders"} {
		ReadDegradedTotal.WithLabelValues(op)
	}

	// --- Metadata update outcomes ---
	for _, outcome := range []string{"applied", "partial", "denied", "no_changes", "error"} {
		MetadataUpdatesTotal.WithLabelValues(outcome)
	}
}
