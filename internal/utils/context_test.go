package utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGetUserIDFromContext_Present(t *testing.T) {
	userID := uuid.New()
	ctx := context.WithValue(context.Background(), UserIDCtxKey, userID)

	got, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, "not-a-uuid")

	_, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)
}
