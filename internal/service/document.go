package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docregistry/internal/model"
	"docregistry/internal/repository"
	"docregistry/internal/storage"
)

var (
	ErrIDRequired     = errors.New("id is required")
	ErrNotFound       = errors.New("document not found")
	ErrStorageFailure = errors.New("document could not be saved")
)

var tracer = otel.Tracer("docregistry/internal/service")

// ValidationError wraps input that was rejected before reaching the store.
// Err is usually a validation.Errors keyed by field.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DocumentService defines the document registry use cases.
type DocumentService interface {
	// Get returns an active document and its page index.
	Get(ctx context.Context, id int64) (*model.DocumentView, error)

	// Search returns one page of active documents matching any supplied filter term.
	Search(ctx context.Context, filter model.DocumentFilter) (*model.DocumentPage, error)

	// Create validates and stores a document with at least one page index entry.
	Create(ctx context.Context, in model.DocumentInput) (*model.DocumentView, error)

	// Update validates the input and replaces the document fields and all of its pages.
	Update(ctx context.Context, id int64, in model.DocumentInput) (*model.DocumentView, error)

	// Delete soft-deletes a document. When an archive is configured, a snapshot
	// including the removed pages is written to it.
	Delete(ctx context.Context, id int64) (*model.Document, error)
}

type documentService struct {
	repo     repository.DocumentRepository
	archive  storage.Storage
	pageSize int
	logger   zerolog.Logger
	now      func() time.Time
}

// NewDocumentService constructs a new DocumentService. archive may be nil.
func NewDocumentService(repo repository.DocumentRepository, archive storage.Storage, pageSize int, logger zerolog.Logger) DocumentService {
	if pageSize < 1 {
		pageSize = repository.DefaultPageSize
	}
	return &documentService{
		repo:     repo,
		archive:  archive,
		pageSize: pageSize,
		logger:   logger.With().Str("component", "document_service").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *documentService) Get(ctx context.Context, id int64) (_ *model.DocumentView, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Get", trace.WithAttributes(attribute.Int64("document.id", id)))
	defer func() { endSpan(span, err) }()

	if id <= 0 {
		return nil, ErrIDRequired
	}
	view, err := s.repo.SearchByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return view, nil
}

func (s *documentService) Search(ctx context.Context, filter model.DocumentFilter) (_ *model.DocumentPage, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Search", trace.WithAttributes(attribute.Int("search.page", filter.Page)))
	defer func() { endSpan(span, err) }()

	filter = normalizeFilter(filter)
	if err := validation.ValidateStruct(&filter,
		validation.Field(&filter.ID, validation.NilOrNotEmpty.Error("must be greater than 0"), validation.Min(int64(1)).Error("must be greater than 0")),
		validation.Field(&filter.Page, validation.Required.Error("must be greater than 0"), validation.Min(1).Error("must be greater than 0"),
			validation.Max(repository.MaxPage(s.pageSize)).Error("is too large")),
	); err != nil {
		return nil, &ValidationError{Err: err}
	}

	res, err := s.repo.SearchByFilters(ctx, filter, s.pageSize)
	if err != nil {
		return nil, translate(err)
	}
	span.SetAttributes(attribute.Int("search.documents_count", res.DocumentsCount))
	return res, nil
}

func (s *documentService) Create(ctx context.Context, in model.DocumentInput) (_ *model.DocumentView, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Create", trace.WithAttributes(attribute.Int("document.pages", len(in.Pages))))
	defer func() { endSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}
	view, err := s.repo.Create(ctx, in.Document(), in.Pages)
	if err != nil {
		return nil, translate(err)
	}
	return view, nil
}

func (s *documentService) Update(ctx context.Context, id int64, in model.DocumentInput) (_ *model.DocumentView, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Update", trace.WithAttributes(
		attribute.Int64("document.id", id),
		attribute.Int("document.pages", len(in.Pages)),
	))
	defer func() { endSpan(span, err) }()

	if id <= 0 {
		return nil, ErrIDRequired
	}
	if err := in.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}
	view, err := s.repo.Update(ctx, id, in.Document(), in.Pages)
	if err != nil {
		return nil, translate(err)
	}
	return view, nil
}

func (s *documentService) Delete(ctx context.Context, id int64) (_ *model.Document, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Delete", trace.WithAttributes(attribute.Int64("document.id", id)))
	defer func() { endSpan(span, err) }()

	if id <= 0 {
		return nil, ErrIDRequired
	}
	view, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	s.archiveDeleted(ctx, view)
	return &view.Document, nil
}

type deletedSnapshot struct {
	Document   model.Document    `json:"document"`
	Pages      []model.PageIndex `json:"pages"`
	ArchivedAt time.Time         `json:"archived_at"`
}

// archiveDeleted writes a JSON snapshot of a deleted document. The delete has
// already been committed, so failures here are only logged.
func (s *documentService) archiveDeleted(ctx context.Context, view *model.DocumentView) {
	if s.archive == nil {
		return
	}

	now := s.now()
	body, err := json.Marshal(deletedSnapshot{
		Document:   view.Document,
		Pages:      view.Pages,
		ArchivedAt: now,
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("document_id", view.Document.ID).Msg("failed to encode deleted document snapshot")
		return
	}

	key := fmt.Sprintf("documents/%d/deleted-%d.json", view.Document.ID, now.Unix())
	info, err := s.archive.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
		Metadata: map[string]string{
			"document-id": strconv.FormatInt(view.Document.ID, 10),
		},
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("document_id", view.Document.ID).Str("key", key).Msg("failed to archive deleted document")
		return
	}
	s.logger.Info().Int64("document_id", view.Document.ID).Str("key", info.Key).Int("pages", len(view.Pages)).Msg("deleted document archived")
}

// normalizeFilter drops blank string terms so they are treated as not supplied.
func normalizeFilter(f model.DocumentFilter) model.DocumentFilter {
	f.SerialCode = trimmedOrNil(f.SerialCode)
	f.PublicationCode = trimmedOrNil(f.PublicationCode)
	f.AuthorOrEmail = trimmedOrNil(f.AuthorOrEmail)
	return f
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	span.End()
}

// translate maps store errors onto the service's error set.
func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrStorage):
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	default:
		return err
	}
}
