package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"holidaily/internal/domain"
)

func TestCreateCommentInput_Scope(t *testing.T) {
	id := int64(4)

	scope, err := domain.CreateCommentInput{HolidayID: &id}.Scope()
	assert.NoError(t, err)
	assert.Equal(t, domain.HolidayScope(4), scope)
	assert.Equal(t, "holiday:4", scope.String())

	scope, err = domain.CreateCommentInput{PostID: &id}.Scope()
	assert.NoError(t, err)
	assert.Equal(t, domain.PostScope(4), scope)

	_, err = domain.CreateCommentInput{HolidayID: &id, PostID: &id}.Scope()
	assert.ErrorIs(t, err, domain.ErrInvalidScope)

	_, err = domain.CreateCommentInput{}.Scope()
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewPaginatedResponse(t *testing.T) {
	page := domain.NewPaginatedResponse[int](nil, domain.PageWindow{Index: 1, Size: 10}, 25)

	assert.NotNil(t, page.Data)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)

	window := domain.PageWindow{Index: -2, Size: 500}
	window.Validate()
	assert.Equal(t, domain.PageWindow{Index: 0, Size: 100}, window)
}

func TestPageWindow_OffsetSaturates(t *testing.T) {
	tests := []struct {
		name   string
		window domain.PageWindow
		want   int
	}{
		{"first page", domain.PageWindow{Index: 0, Size: 20}, 0},
		{"third page", domain.PageWindow{Index: 2, Size: 20}, 40},
		{"negative index", domain.PageWindow{Index: -1, Size: 20}, 0},
		{"overflowing index", domain.PageWindow{Index: math.MaxInt / 10, Size: 20}, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.Offset())
		})
	}
}

func TestPageWindow_ValidateCapsIndex(t *testing.T) {
	window := domain.PageWindow{Index: math.MaxInt, Size: 20}
	window.Validate()

	assert.Equal(t, math.MaxInt/20, window.Index)
	assert.GreaterOrEqual(t, window.Offset(), 0)

	page := domain.NewPaginatedResponse[int](nil, window, 5)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}
