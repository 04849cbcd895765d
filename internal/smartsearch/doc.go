// Package smartsearch compiles the catalog's search-filter mini-language
// into storage-level predicates.
//
// An expression is a sequence of whitespace-separated tokens:
//
//	file:music/v2/*    constrain a named field
//	-tags:rejected     negated field constraint
//	-demo              negated free-text term
//	2020-              free-text term (OR across the allowed fields)
//
// Tokens combine with implicit AND. Field names outside the caller's
// allowed set are not an error; the whole token degrades to a free-text
// term so that compilation never fails on ill-formed input. The wildcard
// "*" inside a term stands for any run of characters.
package smartsearch
