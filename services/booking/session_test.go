package booking

import (
	"context"
	"testing"

	"sparklewash/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreCreateAndGet(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	draft, err := store.Create(ctx, "user1", "shop1", models.VehicleCar)
	require.NoError(t, err)
	assert.NotEmpty(t, draft.SessionID)
	assert.Equal(t, StateIdle, draft.State)
	assert.Equal(t, models.FulfillAtLocation, draft.FulfillmentMode)

	loaded, err := store.Get(ctx, draft.SessionID)
	require.NoError(t, err)
	assert.Equal(t, draft.SessionID, loaded.SessionID)
	assert.Equal(t, "user1", loaded.UserID)
	assert.Equal(t, "shop1", loaded.ShopID)
}

func TestSessionStoreSaveRoundTripsDraft(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	draft, err := store.Create(ctx, "user1", "shop1", models.VehicleCar)
	require.NoError(t, err)

	ToggleService(draft, foamWash)
	SetDate(draft, "2026-09-01")
	SetTime(draft, "09:30")
	require.NoError(t, store.Save(ctx, draft))

	loaded, err := store.Get(ctx, draft.SessionID)
	require.NoError(t, err)
	assert.Equal(t, draft.Services, loaded.Services)
	assert.Equal(t, "2026-09-01", loaded.Date)
	assert.Equal(t, "09:30", loaded.Time)
	assert.Equal(t, draft.ScheduleGen, loaded.ScheduleGen)
}

func TestSessionStoreGetUnknownSession(t *testing.T) {
	store := newTestSessionStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSessionStoreDelete(t *testing.T) {
	store := newTestSessionStore(t)
	ctx := context.Background()

	draft, err := store.Create(ctx, "user1", "shop1", models.VehicleCar)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, draft.SessionID))
	_, err = store.Get(ctx, draft.SessionID)
	assert.Error(t, err)
}
