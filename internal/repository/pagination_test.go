package repository

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	tests := []struct {
		page, size, want int
	}{
		{page: 1, size: 10, want: 0},
		{page: 2, size: 10, want: 10},
		{page: 3, size: 10, want: 20},
		{page: 0, size: 10, want: 0},
		{page: -4, size: 10, want: 0},
		{page: 2, size: 0, want: DefaultPageSize},
		{page: math.MaxInt / 10, size: 10, want: (math.MaxInt/10 - 1) * 10},
		{page: math.MaxInt, size: 10, want: (math.MaxInt/10 - 1) * 10},
		{page: math.MaxInt / 5, size: 10, want: (math.MaxInt/10 - 1) * 10},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page=%d size=%d", tt.page, tt.size), func(t *testing.T) {
			assert.Equal(t, tt.want, Offset(tt.page, tt.size))
		})
	}
}

func TestOffset_NeverNegative(t *testing.T) {
	for _, size := range []int{1, 3, 10, 250} {
		for _, page := range []int{MaxPage(size), MaxPage(size) + 1, math.MaxInt} {
			assert.GreaterOrEqual(t, Offset(page, size), 0, "page=%d size=%d", page, size)
		}
	}
}

func TestMaxPage(t *testing.T) {
	assert.Equal(t, math.MaxInt/10, MaxPage(10))
	assert.Equal(t, math.MaxInt/DefaultPageSize, MaxPage(0))
	assert.Equal(t, math.MaxInt, MaxPage(1))
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{total: 0, size: 10, want: 0},
		{total: 1, size: 10, want: 1},
		{total: 10, size: 10, want: 1},
		{total: 11, size: 10, want: 2},
		{total: 25, size: 10, want: 3},
		{total: 25, size: 0, want: 3},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("total=%d size=%d", tt.total, tt.size), func(t *testing.T) {
			assert.Equal(t, tt.want, PageCount(tt.total, tt.size))
		})
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("wrapped: %w", &StorageError{Op: "create", Err: cause})

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "wrapped: create: connection reset", err.Error())
}
