package growth

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/growly/growly-web/pkg/db/dbtest"
	"github.com/growly/growly-web/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, now time.Time) (*service, *Repository) {
	t.Helper()
	client := dbtest.Open(t)
	svc, err := NewService(client)
	require.NoError(t, err)
	s := svc.(*service)
	s.now = func() time.Time { return now }
	return s, NewRepository(client.DB())
}

func TestAppendAddsClampedDeltaToLatest(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)
	ctx := context.Background()

	first, err := svc.Append(ctx, 1, Delta{Likes: 50, Follows: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(50), first.Likes)
	assert.Equal(t, int64(10), first.Follows)

	svc.now = func() time.Time { return now.Add(time.Hour) }
	second, err := svc.Append(ctx, 1, Delta{Likes: -30, Follows: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(50), second.Likes, "negative delta must count as zero")
	assert.Equal(t, int64(15), second.Follows)

	n, err := repo.CountByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n, "each append is a new snapshot")
}

func TestSeriesSeedsEmptyHistoryOnce(t *testing.T) {
	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)
	ctx := context.Background()

	series, err := svc.Series(ctx, 7)
	require.NoError(t, err)
	require.Len(t, series.Points, 6)

	for i, p := range series.Points {
		assert.Equal(t, int64(i+1)*100, p.Likes)
		assert.Equal(t, int64(i+1)*20, p.Follows)
		if i > 0 {
			assert.Equal(t, 24*time.Hour, p.Date.Sub(series.Points[i-1].Date), "points are one day apart")
		}
	}
	assert.True(t, series.Points[5].Date.Equal(now))
	assert.Len(t, series.Labels(), 6)

	_, err = svc.Series(ctx, 7)
	require.NoError(t, err)
	n, err := repo.CountByUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n, "seeding only happens on empty history")
}

func TestSeriesKeepsExistingHistory(t *testing.T) {
	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	_, err := svc.Append(ctx, 3, Delta{Likes: 5})
	require.NoError(t, err)

	series, err := svc.Series(ctx, 3)
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	assert.Equal(t, int64(5), series.Points[0].Likes)
}

func TestLatestWithoutHistory(t *testing.T) {
	svc, _ := newTestService(t, time.Now())
	latest, err := svc.Latest(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestSeedSnapshotsOldestFirst(t *testing.T) {
	now := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	seeds := SeedSnapshots(2, now)
	require.Len(t, seeds, 6)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), seeds[0].CreatedAt)
	assert.Equal(t, int64(600), seeds[5].Likes)
	assert.Equal(t, int64(120), seeds[5].Follows)
}

func TestAppendOrdersByInsertionUnderNonUTCLocal(t *testing.T) {
	prev := time.Local
	time.Local = time.FixedZone("JST", 9*60*60)
	t.Cleanup(func() { time.Local = prev })

	client := dbtest.Open(t)
	svc, err := NewService(client)
	require.NoError(t, err)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	signup := &models.Metric{UserID: 1}
	require.NoError(t, repo.Create(ctx, signup))
	assert.Equal(t, time.UTC, signup.CreatedAt.Location())

	_, err = svc.Append(ctx, 1, Delta{Likes: 10, Follows: 1})
	require.NoError(t, err)
	second, err := svc.Append(ctx, 1, Delta{Likes: 10, Follows: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(20), second.Likes)
	assert.Equal(t, int64(2), second.Follows)

	latest, err := svc.Latest(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, int64(20), latest.Likes)

	history, err := repo.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, []int64{0, 10, 20}, []int64{history[0].Likes, history[1].Likes, history[2].Likes})
}

func TestAppendSaturatesInsteadOfOverflowing(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.Append(ctx, 1, Delta{Likes: 10, Follows: 10})
	require.NoError(t, err)
	m, err := svc.Append(ctx, 1, Delta{Likes: math.MaxInt64, Follows: math.MaxInt64})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), m.Likes)
	assert.Equal(t, int64(math.MaxInt64), m.Follows)

	m, err = svc.Append(ctx, 1, Delta{Likes: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), m.Likes)
}
