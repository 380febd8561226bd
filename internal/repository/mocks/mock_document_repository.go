package mocks

import (
	"context"

	"docregistry/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) SearchByID(ctx context.Context, id int64) (*model.DocumentView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentView), args.Error(1)
}

func (m *MockDocumentRepository) SearchByFilters(ctx context.Context, filter model.DocumentFilter, pageSize int) (*model.DocumentPage, error) {
	args := m.Called(ctx, filter, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentPage), args.Error(1)
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc model.Document, pages []model.PageIndex) (*model.DocumentView, error) {
	args := m.Called(ctx, doc, pages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentView), args.Error(1)
}

func (m *MockDocumentRepository) Update(ctx context.Context, id int64, doc model.Document, pages []model.PageIndex) (*model.DocumentView, error) {
	args := m.Called(ctx, id, doc, pages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentView), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id int64) (*model.DocumentView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentView), args.Error(1)
}
