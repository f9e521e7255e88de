package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, PageQuery{Page: 1, Size: 10}.Offset())
	assert.Equal(t, 20, PageQuery{Page: 3, Size: 10}.Offset())
}

func TestNewPageMeta_RoundsUp(t *testing.T) {
	meta := NewPageMeta(21, PageQuery{Page: 2, Size: 10})
	assert.Equal(t, PageMeta{TotalData: 21, TotalPages: 3, Page: 2, Size: 10}, meta)
}

func TestNewPageMeta_Empty(t *testing.T) {
	meta := NewPageMeta(0, PageQuery{Page: 1, Size: 10})
	assert.Equal(t, 0, meta.TotalPages)
}

func TestError_UnwrapsToKind(t *testing.T) {
	err := fmt.Errorf("consume: %w", NewError(ErrUnauthorized, "Invalid Registration Token"))
	assert.True(t, errors.Is(err, ErrUnauthorized))
	msg, ok := Message(err)
	assert.True(t, ok)
	assert.Equal(t, "Invalid Registration Token", msg)
}

func TestMessage_PlainError(t *testing.T) {
	_, ok := Message(errors.New("boom"))
	assert.False(t, ok)
}
