// Package pathkey provides operations on slash-delimited catalog paths.
//
// Catalog records are addressed by path strings like "music/v2/song.mp3".
// Folders have no records of their own; they exist only as shared prefixes
// of deeper paths. This package implements the prefix and segment
// operations used to synthesize that virtual folder hierarchy.
//
// All comparisons are byte-exact. No case folding or Unicode normalization
// is performed, matching the storage layer's collation for the file column.
package pathkey
