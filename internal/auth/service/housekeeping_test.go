package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/duetmatch/duet/internal/auth/store"
	"github.com/duetmatch/duet/internal/auth/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingSweepPurgesOldDeletes(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(t)

	u, _, err := svc.RegisterEmail(ctx, "gone@example.com", "purgeme123", "Gone")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAccount(ctx, u.ID))

	keep, _, err := svc.RegisterEmail(ctx, "keep@example.com", "keepme1234", "Keep")
	require.NoError(t, err)

	// Zero retention in the test so the fresh soft delete is already past
	// the window. Calling sweep directly keeps the test deterministic.
	hk := &HousekeepingService{
		Store:      svc.Store,
		Logger:     slog.Default(),
		PurgeAfter: time.Nanosecond,
	}
	time.Sleep(10 * time.Millisecond)
	hk.sweep()

	// Purged rows are gone for good, the email shows as free and the live
	// account is untouched.
	_, err = svc.Store.Users().GetUserByEmail(ctx, "gone@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.ProfileByID(ctx, keep.ID)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	hk := NewHousekeepingService(s, slog.Default(), 10*time.Millisecond, time.Hour)
	hk.Start()

	// Let at least one ticker sweep run on an empty table.
	time.Sleep(35 * time.Millisecond)
	hk.Stop()
}

func TestNewHousekeepingServiceDefaults(t *testing.T) {
	hk := NewHousekeepingService(nil, slog.Default(), 0, 0)
	require.Equal(t, time.Hour, hk.Interval)
	require.Equal(t, 30*24*time.Hour, hk.PurgeAfter)
}
