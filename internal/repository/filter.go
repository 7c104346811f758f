package repository

// DocumentFilter is the request-scoped value object driving the listing query.
// All predicates are optional; zero values mean "no constraint". It is never
// persisted.
type DocumentFilter struct {
	Search   string
	Status   []string
	Category []string
	OwnerID  string
	DateFrom string // "YYYY-MM"
	DateTo   string // "YYYY-MM"
	MimeType string

	// FolderID is resolved by the service into IDs before the query runs;
	// the repository itself never reads it.
	FolderID string

	// IDs restricts the result to the given document IDs. The service fills it
	// in after resolving a folder's junction rows; an empty slice means the
	// constraint is absent, not "match nothing".
	IDs []string

	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// documentSortColumns is the allow-list for SortBy. Anything outside it
// silently falls back to created_at.
var documentSortColumns = map[string]string{
	"title":         "title",
	"created_at":    "created_at",
	"filename":      "filename",
	"status":        "status",
	"file_size":     "file_size",
	"document_type": "mime_type",
	"category":      "mime_type",
	"updated_at":    "updated_at",
}

// Normalized applies paging defaults and sort validation. Page defaults to 1
// when absent or non-positive, Limit to defaultLimit, SortOrder to desc.
func (f DocumentFilter) Normalized(defaultLimit int) DocumentFilter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if col, ok := documentSortColumns[f.SortBy]; ok {
		f.SortBy = col
	} else {
		f.SortBy = "created_at"
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}
	return f
}

// Offset converts the 1-based page to a row offset.
func (f DocumentFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
