package repository

import (
	"context"

	"docregistry/internal/model"
)

// DocumentRepository is the document store. Implementations own the connection
// and transaction lifecycle; callers validate input before calling.
//
// Lookups of missing or inactive documents return ErrNotFound. Any other
// failure is reported as a *StorageError after the transaction is rolled back.
type DocumentRepository interface {
	// SearchByID returns an active document and its page index entries.
	SearchByID(ctx context.Context, id int64) (*model.DocumentView, error)

	// SearchByFilters returns one page of active documents matching any supplied filter term.
	SearchByFilters(ctx context.Context, filter model.DocumentFilter, pageSize int) (*model.DocumentPage, error)

	// Create stores the document and its pages atomically.
	Create(ctx context.Context, doc model.Document, pages []model.PageIndex) (*model.DocumentView, error)

	// Update overwrites the mutable fields of an active document and replaces
	// its whole page set in one transaction.
	Update(ctx context.Context, id int64, doc model.Document, pages []model.PageIndex) (*model.DocumentView, error)

	// Delete deactivates the document and removes its pages in one transaction.
	// The returned view holds the removed pages.
	Delete(ctx context.Context, id int64) (*model.DocumentView, error)
}
