package leadlog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atoshub/go-site/pkg/relay"
)

func openTemp(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "leads", "leadlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	l := openTemp(t)
	assert.FileExists(t, l.Path())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, l.Record(ctx, relay.Attempt{
		ID:       "a1",
		Endpoint: relay.DefaultEndpoint,
		Subject:  "Novo contato via Site - empresa",
		Fields:   9,
		Status:   200,
		At:       base,
		Duration: 120 * time.Millisecond,
	}))
	require.NoError(t, l.Record(ctx, relay.Attempt{
		ID:       "a2",
		Endpoint: relay.DefaultEndpoint,
		Fields:   8,
		Status:   422,
		Err:      "relay: submission rejected",
		At:       base.Add(time.Minute),
	}))

	got, err := l.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "a2", got[0].ID)
	assert.Equal(t, "relay: submission rejected", got[0].Err)
	assert.Equal(t, "", got[0].Subject)
	assert.False(t, got[0].Succeeded())

	assert.Equal(t, "a1", got[1].ID)
	assert.Equal(t, base, got[1].At)
	assert.Equal(t, 120*time.Millisecond, got[1].Duration)
	assert.Equal(t, 9, got[1].Fields)
	assert.True(t, got[1].Succeeded())

	limited, err := l.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	l := openTemp(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, status := range []int{200, 202, 500} {
		require.NoError(t, l.Record(ctx, relay.Attempt{
			ID:       string(rune('a' + i)),
			Endpoint: "http://relay.test",
			Status:   status,
			At:       base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := l.Stats(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 3, Succeeded: 2}, all)
	assert.Equal(t, 1, all.Failed())

	recent, err := l.Stats(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 1, Succeeded: 0}, recent)
}

func TestReopenKeepsRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "leadlog.db")

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record(ctx, relay.Attempt{ID: "x", Endpoint: "http://relay.test", Status: 200, At: time.Now()}))
	require.NoError(t, l.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestClosed(t *testing.T) {
	l := openTemp(t)
	require.NoError(t, l.Close())
	err := l.Record(context.Background(), relay.Attempt{ID: "late"})
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}
