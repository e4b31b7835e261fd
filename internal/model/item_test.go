package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemStatus_Valid(t *testing.T) {
	for _, s := range ItemStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ItemStatus("reading").Valid())
	assert.False(t, ItemStatus("").Valid())
}

func TestItem_ApplyStatus(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	finish := start.Add(48 * time.Hour)
	later := finish.Add(24 * time.Hour)

	item := &Item{Status: ItemStatusWant}

	item.ApplyStatus(ItemStatusInProgress, start)
	require.NotNil(t, item.StartedAt)
	assert.Equal(t, start, *item.StartedAt)
	assert.Nil(t, item.FinishedAt)

	item.ApplyStatus(ItemStatusDone, finish)
	require.NotNil(t, item.FinishedAt)
	assert.Equal(t, finish, *item.FinishedAt)
	assert.Equal(t, start, *item.StartedAt, "start date is kept")

	item.ApplyStatus(ItemStatusDone, later)
	assert.Equal(t, finish, *item.FinishedAt, "re-applying done keeps the first finish date")

	item.ApplyStatus(ItemStatusInProgress, later)
	assert.Nil(t, item.FinishedAt)
	assert.Equal(t, ItemStatusInProgress, item.Status)
}
