package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"docregistry/internal/model"
	"docregistry/internal/repository"
	repoMocks "docregistry/internal/repository/mocks"
	"docregistry/internal/storage"
	storeMocks "docregistry/internal/storage/mocks"
)

var fixedNow = time.Date(2025, 6, 19, 10, 30, 0, 0, time.UTC)

func newTestService(repo *repoMocks.MockDocumentRepository, archive storage.Storage) *documentService {
	svc := NewDocumentService(repo, archive, 10, zerolog.Nop()).(*documentService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func validInput() model.DocumentInput {
	return model.DocumentInput{
		Name:            "Ley de transparencia",
		AuthorFullName:  "Ana Pérez",
		AuthorEmail:     "ana@example.com",
		SerialCode:      "0x1F",
		PublicationCode: "Ley N° 20.285",
		Pages: []model.PageIndex{
			{Name: "Intro", Page: 1},
			{Name: "Anexo", Page: 12},
		},
	}
}

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func TestNewDocumentService_DefaultPageSize(t *testing.T) {
	svc := NewDocumentService(new(repoMocks.MockDocumentRepository), nil, 0, zerolog.Nop()).(*documentService)
	assert.Equal(t, repository.DefaultPageSize, svc.pageSize)
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         int64
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name: "found",
			id:   7,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("SearchByID", mock.Anything, int64(7)).Return(&model.DocumentView{
					Document: model.Document{ID: 7, Name: "doc", Active: true},
					Pages:    []model.PageIndex{{ID: 1, DocumentID: 7, Page: 1}},
				}, nil)
			},
		},
		{
			name:       "invalid id",
			id:         0,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   8,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("SearchByID", mock.Anything, int64(8)).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "storage failure",
			id:   9,
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("SearchByID", mock.Anything, int64(9)).
					Return(nil, &repository.StorageError{Op: "search by id", Err: errors.New("conn reset")})
			},
			wantErr: ErrStorageFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			tt.setupMocks(mRepo)
			svc := newTestService(mRepo, nil)

			got, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.id, got.Document.ID)
				assert.Len(t, got.Pages, 1)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_StorageFailureKeepsCause(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("conn reset")
	mRepo := new(repoMocks.MockDocumentRepository)
	mRepo.On("SearchByID", mock.Anything, int64(1)).Return(nil, &repository.StorageError{Op: "search by id", Err: cause})

	_, err := newTestService(mRepo, nil).Get(ctx, 1)

	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.ErrorIs(t, err, repository.ErrStorage)
	assert.ErrorIs(t, err, cause)
}

func TestDocumentService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("blank terms are dropped", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		want := model.DocumentFilter{AuthorOrEmail: strPtr("ana"), Page: 2}
		mRepo.On("SearchByFilters", mock.Anything, want, 10).
			Return(&model.DocumentPage{Page: 2, PageSize: 10, PageCount: 2, DocumentsCount: 11}, nil)

		got, err := newTestService(mRepo, nil).Search(ctx, model.DocumentFilter{
			SerialCode:      strPtr("   "),
			PublicationCode: strPtr(""),
			AuthorOrEmail:   strPtr("  ana "),
			Page:            2,
		})

		require.NoError(t, err)
		assert.Equal(t, 11, got.DocumentsCount)
		mRepo.AssertExpectations(t)
	})

	t.Run("no terms lists everything", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("SearchByFilters", mock.Anything, model.DocumentFilter{Page: 1}, 10).
			Return(&model.DocumentPage{Page: 1, PageSize: 10}, nil)

		_, err := newTestService(mRepo, nil).Search(ctx, model.DocumentFilter{Page: 1})

		require.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	invalid := []struct {
		name   string
		filter model.DocumentFilter
		field  string
	}{
		{name: "page zero", filter: model.DocumentFilter{Page: 0}, field: "Page"},
		{name: "negative page", filter: model.DocumentFilter{Page: -3}, field: "Page"},
		{name: "zero id", filter: model.DocumentFilter{ID: int64Ptr(0), Page: 1}, field: "ID"},
		{name: "page past last offset", filter: model.DocumentFilter{Page: math.MaxInt / 5}, field: "Page"},
		{name: "max int page", filter: model.DocumentFilter{Page: math.MaxInt}, field: "Page"},
		{name: "negative id", filter: model.DocumentFilter{ID: int64Ptr(-4), Page: 1}, field: "ID"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)

			got, err := newTestService(mRepo, nil).Search(ctx, tt.filter)

			assert.Nil(t, got)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			var fields validation.Errors
			require.ErrorAs(t, err, &fields)
			assert.Contains(t, fields, tt.field)
			mRepo.AssertNotCalled(t, "SearchByFilters", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("storage failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("SearchByFilters", mock.Anything, model.DocumentFilter{Page: 1}, 10).
			Return(nil, &repository.StorageError{Op: "count documents", Err: errors.New("boom")})

		_, err := newTestService(mRepo, nil).Search(ctx, model.DocumentFilter{Page: 1})

		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		in := validInput()
		mRepo.On("Create", mock.Anything, mock.MatchedBy(func(doc model.Document) bool {
			return doc.Name == in.Name && doc.Active && doc.ID == 0
		}), in.Pages).Return(&model.DocumentView{
			Document: model.Document{ID: 42, Name: in.Name, Active: true},
			Pages:    []model.PageIndex{{ID: 1, DocumentID: 42, Page: 1}, {ID: 2, DocumentID: 42, Page: 12}},
		}, nil)

		got, err := newTestService(mRepo, nil).Create(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, int64(42), got.Document.ID)
		assert.Len(t, got.Pages, 2)
		mRepo.AssertExpectations(t)
	})

	t.Run("inactive on request", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		in := validInput()
		inactive := false
		in.Active = &inactive
		mRepo.On("Create", mock.Anything, mock.MatchedBy(func(doc model.Document) bool { return !doc.Active }), in.Pages).
			Return(&model.DocumentView{Document: model.Document{ID: 1}}, nil)

		_, err := newTestService(mRepo, nil).Create(ctx, in)

		require.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	invalid := []struct {
		name   string
		mutate func(in *model.DocumentInput)
		field  string
	}{
		{name: "missing pages", mutate: func(in *model.DocumentInput) { in.Pages = nil }, field: "Pages"},
		{name: "bad serial code", mutate: func(in *model.DocumentInput) { in.SerialCode = "0xZZ" }, field: "SerialCode"},
		{name: "bad publication code", mutate: func(in *model.DocumentInput) { in.PublicationCode = "ISO-" }, field: "PublicationCode"},
		{name: "bad email", mutate: func(in *model.DocumentInput) { in.AuthorEmail = "not-an-email" }, field: "AuthorEmail"},
		{name: "missing name", mutate: func(in *model.DocumentInput) { in.Name = "" }, field: "Name"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			in := validInput()
			tt.mutate(&in)

			got, err := newTestService(mRepo, nil).Create(ctx, in)

			assert.Nil(t, got)
			var fields validation.Errors
			require.ErrorAs(t, err, &fields)
			assert.Contains(t, fields, tt.field)
			mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("storage failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &repository.StorageError{Op: "insert pages", Err: errors.New("unique violation")})

		_, err := newTestService(mRepo, nil).Create(ctx, validInput())

		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestDocumentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		in := validInput()
		mRepo.On("Update", mock.Anything, int64(5), in.Document(), in.Pages).
			Return(&model.DocumentView{Document: model.Document{ID: 5, Name: in.Name}}, nil)

		got, err := newTestService(mRepo, nil).Update(ctx, 5, in)

		require.NoError(t, err)
		assert.Equal(t, int64(5), got.Document.ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := newTestService(new(repoMocks.MockDocumentRepository), nil).Update(ctx, -1, validInput())
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("validation failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		in := validInput()
		in.Pages = []model.PageIndex{}

		_, err := newTestService(mRepo, nil).Update(ctx, 5, in)

		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("Update", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

		_, err := newTestService(mRepo, nil).Update(ctx, 5, validInput())

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	deletedAt := fixedNow
	view := &model.DocumentView{
		Document: model.Document{ID: 3, Name: "doc", DeletedAt: &deletedAt},
		Pages:    []model.PageIndex{{ID: 10, DocumentID: 3, Page: 1}},
	}

	t.Run("without archive", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("Delete", mock.Anything, int64(3)).Return(view, nil)

		got, err := newTestService(mRepo, nil).Delete(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
		assert.False(t, got.Active)
		assert.NotNil(t, got.DeletedAt)
		mRepo.AssertExpectations(t)
	})

	t.Run("archives snapshot", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("Delete", mock.Anything, int64(3)).Return(view, nil)

		var body []byte
		key := "documents/3/deleted-1750329000.json"
		mStore.On("Put", mock.Anything, key, mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "application/json" && opt.Metadata["document-id"] == "3"
		})).Return(func(_ context.Context, k string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
			body, _ = io.ReadAll(r)
			return storage.ObjectInfo{Key: k, Size: opt.Size}
		}, nil)

		_, err := newTestService(mRepo, mStore).Delete(ctx, 3)

		require.NoError(t, err)
		mStore.AssertExpectations(t)

		var snap deletedSnapshot
		require.NoError(t, json.NewDecoder(bytes.NewReader(body)).Decode(&snap))
		assert.Equal(t, int64(3), snap.Document.ID)
		assert.Len(t, snap.Pages, 1)
		assert.True(t, snap.ArchivedAt.Equal(fixedNow))
	})

	t.Run("archive failure does not fail delete", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("Delete", mock.Anything, int64(3)).Return(view, nil)
		mStore.On("Put", mock.Anything, mock.MatchedBy(func(k string) bool { return strings.HasPrefix(k, "documents/3/") }), mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("bucket unavailable"))

		got, err := newTestService(mRepo, mStore).Delete(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
		mStore.AssertExpectations(t)
	})

	t.Run("not found skips archive", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("Delete", mock.Anything, int64(4)).Return(nil, repository.ErrNotFound)

		_, err := newTestService(mRepo, mStore).Delete(ctx, 4)

		assert.ErrorIs(t, err, ErrNotFound)
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := newTestService(new(repoMocks.MockDocumentRepository), nil).Delete(ctx, 0)
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestDocumentService_RecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx := context.Background()
	mRepo := new(repoMocks.MockDocumentRepository)
	mRepo.On("SearchByID", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	_, err := newTestService(mRepo, nil).Get(ctx, 11)
	require.ErrorIs(t, err, ErrNotFound)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "DocumentService.Get", spans[0].Name())
	assert.Equal(t, otelcodes.Error, spans[0].Status().Code)
}
