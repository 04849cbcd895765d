// Package authz decides which metadata fields a caller may change.
//
// Two layers are combined for every update request: the caller's
// permission restriction (which fields they are allowed to edit at all)
// and administrative field rules (fields locked for everyone on records
// whose path matches a pattern). Denials in either layer never block the
// allowed remainder; partial application is the normal outcome.
package authz
