package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"docregistry/internal/model"
	"docregistry/internal/repository"
)

const (
	documentColumns = `id, name, description, author_full_name, author_email, serial_code, publication_code, created_at, updated_at, deleted_at, active`
	pageColumns     = `id, document_id, name, page, created_at`
)

const (
	qSelectActiveDocument = `SELECT ` + documentColumns + ` FROM document WHERE id = $1 AND active = true`

	qSelectPages = `SELECT ` + pageColumns + ` FROM document_page_index WHERE document_id = $1 ORDER BY id`

	qInsertDocument = `
		INSERT INTO document (name, description, author_full_name, author_email, serial_code, publication_code, created_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns

	qUpdateDocument = `
		UPDATE document
		SET name = $1, description = $2, author_full_name = $3, author_email = $4,
			serial_code = $5, publication_code = $6, updated_at = $7
		WHERE id = $8
		RETURNING ` + documentColumns

	qDeactivateDocument = `
		UPDATE document
		SET active = false, deleted_at = $2
		WHERE id = $1 AND active = true
		RETURNING ` + documentColumns

	qDeletePages = `DELETE FROM document_page_index WHERE document_id = $1`

	qDeletePagesReturning = qDeletePages + ` RETURNING ` + pageColumns
)

// errNoRowReturned marks a write that the database accepted but that produced no row.
var errNoRowReturned = errors.New("statement returned no row")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// dbtx is satisfied by both *sql.Conn and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// Every call holds its own connection from the pool and releases it before returning.
type DocumentPostgres struct {
	db     *sql.DB
	logger zerolog.Logger
	now    func() time.Time
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB, logger zerolog.Logger) *DocumentPostgres {
	return &DocumentPostgres{
		db:     db,
		logger: logger.With().Str("component", "document_store").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// SearchByID fetches an active document and its page index entries in insertion order.
func (r *DocumentPostgres) SearchByID(ctx context.Context, id int64) (*model.DocumentView, error) {
	const op = "search_by_id"

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, r.fail(op, err)
	}
	defer conn.Close()

	doc, err := scanDocument(conn.QueryRowContext(ctx, qSelectActiveDocument, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, r.fail(op, err)
	}

	rows, err := conn.QueryContext(ctx, qSelectPages, id)
	if err != nil {
		return nil, r.fail(op, err)
	}
	pages, err := collectPages(rows)
	if err != nil {
		return nil, r.fail(op, err)
	}

	return &model.DocumentView{Document: *doc, Pages: pages}, nil
}

// SearchByFilters counts and fetches one page of active documents matching any supplied term.
func (r *DocumentPostgres) SearchByFilters(ctx context.Context, filter model.DocumentFilter, pageSize int) (*model.DocumentPage, error) {
	const op = "search_by_filters"

	if pageSize < 1 {
		pageSize = repository.DefaultPageSize
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	where, args := filterPredicate(filter)

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, r.fail(op, err)
	}
	defer conn.Close()

	var total int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM document WHERE `+where, args...).Scan(&total); err != nil {
		return nil, r.fail(op, err)
	}

	qList := fmt.Sprintf(`SELECT %s FROM document WHERE %s ORDER BY id LIMIT $%d OFFSET $%d`,
		documentColumns, where, len(args)+1, len(args)+2)
	listArgs := append(args[:len(args):len(args)], pageSize, repository.Offset(page, pageSize))

	rows, err := conn.QueryContext(ctx, qList, listArgs...)
	if err != nil {
		return nil, r.fail(op, err)
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, r.fail(op, err)
		}
		docs = append(docs, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail(op, err)
	}

	return &model.DocumentPage{
		Page:           page,
		PageSize:       pageSize,
		PageCount:      repository.PageCount(total, pageSize),
		DocumentsCount: total,
		Documents:      docs,
	}, nil
}

// Create inserts the document and, in the same transaction, all of its pages.
func (r *DocumentPostgres) Create(ctx context.Context, doc model.Document, pages []model.PageIndex) (*model.DocumentView, error) {
	var out *model.DocumentView
	err := r.withTx(ctx, "create", func(tx *sql.Tx) error {
		now := r.now()
		saved, err := scanDocument(tx.QueryRowContext(ctx, qInsertDocument,
			doc.Name,
			nullString(doc.Description),
			doc.AuthorFullName,
			doc.AuthorEmail,
			doc.SerialCode,
			doc.PublicationCode,
			now,
			doc.Active,
		))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errNoRowReturned
			}
			return err
		}

		inserted, err := insertPages(ctx, tx, saved.ID, pages, now)
		if err != nil {
			return err
		}
		out = &model.DocumentView{Document: *saved, Pages: inserted}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the mutable fields of an active document and replaces its pages.
func (r *DocumentPostgres) Update(ctx context.Context, id int64, doc model.Document, pages []model.PageIndex) (*model.DocumentView, error) {
	var out *model.DocumentView
	err := r.withTx(ctx, "update", func(tx *sql.Tx) error {
		current, err := scanDocument(tx.QueryRowContext(ctx, qSelectActiveDocument, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return err
		}

		now := r.now()
		updated, err := scanDocument(tx.QueryRowContext(ctx, qUpdateDocument,
			doc.Name,
			nullString(doc.Description),
			doc.AuthorFullName,
			doc.AuthorEmail,
			doc.SerialCode,
			doc.PublicationCode,
			now,
			current.ID,
		))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errNoRowReturned
			}
			return err
		}

		// Pages are only replaced once the document row itself was updated.
		if _, err := tx.ExecContext(ctx, qDeletePages, current.ID); err != nil {
			return err
		}

		inserted, err := insertPages(ctx, tx, current.ID, pages, now)
		if err != nil {
			return err
		}
		out = &model.DocumentView{Document: *updated, Pages: inserted}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete soft-deletes an active document and removes its page index entries.
func (r *DocumentPostgres) Delete(ctx context.Context, id int64) (*model.DocumentView, error) {
	var out *model.DocumentView
	err := r.withTx(ctx, "delete", func(tx *sql.Tx) error {
		deleted, err := scanDocument(tx.QueryRowContext(ctx, qDeactivateDocument, id, r.now()))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return err
		}

		rows, err := tx.QueryContext(ctx, qDeletePagesReturning, id)
		if err != nil {
			return err
		}
		removed, err := collectPages(rows)
		if err != nil {
			return err
		}
		out = &model.DocumentView{Document: *deleted, Pages: removed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// withTx runs fn inside a transaction on a dedicated connection. The transaction
// is committed only when fn succeeds and is rolled back on error or panic.
func (r *DocumentPostgres) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return r.fail(op, err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return r.fail(op, fmt.Errorf("begin transaction: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error().Err(rbErr).Str("op", op).Interface("panic", p).Msg("failed to rollback transaction after panic")
			}
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Error().Err(rbErr).AnErr("original_error", err).Str("op", op).Msg("failed to rollback transaction")
		}
		return r.fail(op, err)
	}

	if err := tx.Commit(); err != nil {
		return r.fail(op, fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// fail logs the underlying cause and collapses it into a StorageError.
// ErrNotFound is passed through unchanged.
func (r *DocumentPostgres) fail(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return err
	}
	r.logger.Error().Err(err).Str("op", op).Msg("document store operation failed")
	return &repository.StorageError{Op: op, Err: err}
}

// filterPredicate builds the WHERE clause for a filter. Only supplied terms take
// part; with none, every active document matches.
func filterPredicate(f model.DocumentFilter) (string, []any) {
	var (
		terms []string
		args  []any
	)
	add := func(term string, arg any) {
		args = append(args, arg)
		terms = append(terms, fmt.Sprintf(term, len(args)))
	}

	if f.ID != nil {
		add("id = $%d", *f.ID)
	}
	if f.SerialCode != nil {
		add("serial_code = $%d", *f.SerialCode)
	}
	if f.PublicationCode != nil {
		add("publication_code = $%d", *f.PublicationCode)
	}
	if f.AuthorOrEmail != nil {
		args = append(args, "%"+likeEscaper.Replace(*f.AuthorOrEmail)+"%")
		n := len(args)
		terms = append(terms,
			fmt.Sprintf("author_full_name ILIKE $%d", n),
			fmt.Sprintf("author_email ILIKE $%d", n),
		)
	}

	if len(terms) == 0 {
		return "active = true", nil
	}
	return "(" + strings.Join(terms, " OR ") + ") AND active = true", args
}

// pageInsertBatch bounds the rows per INSERT so the bind parameters stay under
// the PostgreSQL limit of 65535.
var pageInsertBatch = 1000

// insertPages stamps pages with the document id and creation time and stores
// them with multi-row inserts of at most pageInsertBatch rows.
func insertPages(ctx context.Context, db dbtx, documentID int64, pages []model.PageIndex, now time.Time) ([]model.PageIndex, error) {
	inserted := make([]model.PageIndex, 0, len(pages))
	for start := 0; start < len(pages); start += pageInsertBatch {
		end := min(start+pageInsertBatch, len(pages))
		batch, err := insertPageBatch(ctx, db, documentID, pages[start:end], now)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, batch...)
	}
	return inserted, nil
}

func insertPageBatch(ctx context.Context, db dbtx, documentID int64, pages []model.PageIndex, now time.Time) ([]model.PageIndex, error) {
	values := make([]string, 0, len(pages))
	args := make([]any, 0, len(pages)*4)
	for i, p := range pages {
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d)", i*4+1, i*4+2, i*4+3, i*4+4))
		args = append(args, documentID, nullString(p.Name), p.Page, now)
	}

	q := `INSERT INTO document_page_index (document_id, name, page, created_at) VALUES ` +
		strings.Join(values, ", ") +
		` RETURNING ` + pageColumns

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("insert page index: %w", err)
	}
	inserted, err := collectPages(rows)
	if err != nil {
		return nil, fmt.Errorf("insert page index: %w", err)
	}
	if len(inserted) != len(pages) {
		return nil, fmt.Errorf("insert page index: stored %d of %d rows", len(inserted), len(pages))
	}
	return inserted, nil
}

// collectPages drains and closes rows of page index entries.
func collectPages(rows *sql.Rows) ([]model.PageIndex, error) {
	defer rows.Close()

	pages := make([]model.PageIndex, 0)
	for rows.Next() {
		var (
			p    model.PageIndex
			name sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.DocumentID, &name, &p.Page, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Name = name.String
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pages, nil
}

func scanDocument(s rowScanner) (*model.Document, error) {
	var (
		d                    model.Document
		description          sql.NullString
		updatedAt, deletedAt sql.NullTime
	)
	if err := s.Scan(
		&d.ID,
		&d.Name,
		&description,
		&d.AuthorFullName,
		&d.AuthorEmail,
		&d.SerialCode,
		&d.PublicationCode,
		&d.CreatedAt,
		&updatedAt,
		&deletedAt,
		&d.Active,
	); err != nil {
		return nil, err
	}
	d.Description = description.String
	if updatedAt.Valid {
		t := updatedAt.Time
		d.UpdatedAt = &t
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		d.DeletedAt = &t
	}
	return &d, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
