package catalog

import "time"

// Content is one catalog record, addressed by its unique slash-delimited
// file path. Records are created and removed by an external ingestion
// process; this service reads them and patches editable metadata fields.
type Content struct {
	File        string    `json:"file"`
	Series      string    `json:"series"`
	Numbers     string    `json:"numbers"`
	Content     string    `json:"content"`
	Guests      string    `json:"guests"`
	Tags        string    `json:"tags"`
	Bytes       int64     `json:"bytes"`
	Seconds     int64     `json:"seconds"`
	MD5         string    `json:"md5"`
	BestDate    string    `json:"bestdate"`
	PodcastDate string    `json:"podcastdate"`
	Source      string    `json:"source"`
	Ref         string    `json:"ref"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Prefilter is a named, administrator-managed smart-search expression
// selectable by slug.
type Prefilter struct {
	ID     int64  `json:"id"`
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Filter string `json:"filter"`
}

// FieldRule locks metadata fields on every record whose path matches
// PathPattern (a SQL-LIKE pattern). Locked fields cannot be edited by any
// caller; the union of all matching rules applies.
type FieldRule struct {
	ID          int64  `json:"id"`
	PathPattern string `json:"pathPattern"`
	Forced      Forced `json:"forced"`
}

// Forced flags one lock per editable metadata field.
type Forced struct {
	Content bool `json:"content"`
	Series  bool `json:"series"`
	Guests  bool `json:"guests"`
	Tags    bool `json:"tags"`
}

// EditableFields are the metadata fields the update surface may change.
// Everything else on a record belongs to the ingestion process.
var EditableFields = []string{"content", "series", "guests", "tags"}

// SortOrder selects the path ordering of a listing.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FolderLimit caps the number of distinct child folders a derivation
// returns. A result of exactly FolderLimit entries may be incomplete.
const FolderLimit = 1000

// EditableValues returns the record's editable fields as a map, the shape
// the field authorizer works with.
func (c *Content) EditableValues() map[string]string {
	return map[string]string{
		"content": c.Content,
		"series":  c.Series,
		"guests":  c.Guests,
		"tags":    c.Tags,
	}
}

// Field returns the union-lookup for one field name.
func (f Forced) Field(name string) bool {
	switch name {
	case "content":
		return f.Content
	case "series":
		return f.Series
	case "guests":
		return f.Guests
	case "tags":
		return f.Tags
	default:
		return false
	}
}

// Union merges another rule's locks into this one.
func (f Forced) Union(other Forced) Forced {
	return Forced{
		Content: f.Content || other.Content,
		Series:  f.Series || other.Series,
		Guests:  f.Guests || other.Guests,
		Tags:    f.Tags || other.Tags,
	}
}

// Map renders the locks as a field-name set.
func (f Forced) Map() map[string]bool {
	return map[string]bool{
		"content": f.Content,
		"series":  f.Series,
		"guests":  f.Guests,
		"tags":    f.Tags,
	}
}
