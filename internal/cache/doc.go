// Package cache provides the TTL caches in front of catalog reads that
// are expensive or hot: prefilter lookups and derived folder listings.
// Both are LRU caches with per-entry expiry; cached values may lag
// storage by at most their TTL, which is the accepted staleness bound for
// this service.
package cache
