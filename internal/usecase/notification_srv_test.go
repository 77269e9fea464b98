package usecase

import (
	"context"
	"testing"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService(t *testing.T) {
	ctx := context.Background()
	mem := newMemNotifications()
	svc := NewNotificationService(&repository.Repository{Notification: mem}, testLogger())

	recipient := uuid.New()
	stranger := uuid.New()
	bookingID := uuid.New()

	require.NoError(t, svc.Notify(ctx, recipient, entity.NotificationServiceCompleted, bookingID, "first"))
	require.NoError(t, svc.Notify(ctx, recipient, entity.NotificationServiceCompleted, bookingID, "second"))

	list, err := svc.List(ctx, recipient)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)
	assert.False(t, list[0].Read)

	others, err := svc.List(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, others)

	id := mem.items[0].ID

	err = svc.MarkRead(ctx, id, stranger)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, mem.items[0].Read)

	require.NoError(t, svc.MarkRead(ctx, id, recipient))
	assert.True(t, mem.items[0].Read)

	// marking twice is a no-op
	require.NoError(t, svc.MarkRead(ctx, id, recipient))

	err = svc.MarkRead(ctx, uuid.New(), recipient)
	assert.ErrorIs(t, err, ErrNotFound)
}
