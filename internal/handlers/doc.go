// Package handlers implements the HTTP API: catalog browsing with smart
// search and cursor pagination, prefilter listing, authorized metadata
// updates, cache administration, and the health/version/metrics surface.
//
// Read endpoints never fail on storage trouble; they degrade to empty
// listings and log the fault. Write endpoints report partial success
// explicitly: denied fields are named while permitted ones apply.
package handlers
