// Package catalog manages storage for the media catalog: content records
// keyed by path, saved prefilters, and administrative field rules.
//
// Queries are assembled as SQL fragments in a fixed order: the standing
// exclusion scope, the path-prefix filter, the optional subfolder
// exclusion, then any smart-search predicates (caller restriction,
// prefilter, free-text search). Listing operations never propagate storage
// errors; they degrade to empty results and record the fault on the result
// so callers and tests can tell a clean miss from a swallowed failure.
package catalog
