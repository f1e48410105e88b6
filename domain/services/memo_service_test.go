package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tokenlotto/domain/entities"
	"tokenlotto/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMemoService_StoreAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := testhelpers.NewMemoryStore()
	service := NewMemoService(store.Memos(), store)

	_, found, err := service.Get(ctx, alice)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, service.Store(ctx, alice, "hello"))
	require.NoError(t, service.Store(ctx, alice, "hello again"))

	data, found, err := service.Get(ctx, alice)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "hello again", data)
	assert.Len(t, store.Events, 2)
}

func TestMemoService_Store_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "too long", data: strings.Repeat("x", entities.MaxMemoLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			memoRepo := new(testhelpers.MockMemoRepository)
			eventPublisher := new(testhelpers.MockEventPublisher)
			service := NewMemoService(memoRepo, eventPublisher)

			err := service.Store(context.Background(), alice, tt.data)
			assert.ErrorIs(t, err, entities.ErrInvalidMemo)
			memoRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
			eventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
		})
	}
}

func TestMemoService_Get_Error(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memoRepo := new(testhelpers.MockMemoRepository)
	memoRepo.On("Get", ctx, alice).Return(nil, errors.New("database error"))

	service := NewMemoService(memoRepo, new(testhelpers.MockEventPublisher))
	_, _, err := service.Get(ctx, alice)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get memo")
}
