package model

// DocumentFilter selects active documents. Nil fields were not supplied and
// take no part in the search; supplied fields are OR'ed together.
type DocumentFilter struct {
	ID              *int64
	SerialCode      *string
	PublicationCode *string
	// AuthorOrEmail is matched case-insensitively as a substring of the
	// author's full name or email.
	AuthorOrEmail *string
	// Page is 1-based.
	Page int
}

// Empty reports whether no search term was supplied.
func (f DocumentFilter) Empty() bool {
	return f.ID == nil && f.SerialCode == nil && f.PublicationCode == nil && f.AuthorOrEmail == nil
}

// DocumentPage is one page of a filtered document search.
type DocumentPage struct {
	Page           int        `json:"page"`
	PageSize       int        `json:"page_size"`
	PageCount      int        `json:"page_count"`
	DocumentsCount int        `json:"documents_count"`
	Documents      []Document `json:"documents"`
}
