package cache

import (
	"context"
	"testing"
	"time"

	"interviewprep/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestAnalyticsCacheRoundTrip(t *testing.T) {
	mr, client := newTestClient(t)
	c := NewAnalyticsCache(client, 10*time.Minute)
	ctx := context.Background()

	got, err := c.GetCompanyAnalysis(ctx, "v1", "google")
	require.NoError(t, err)
	assert.Nil(t, got, "miss returns nil without error")

	analysis := &model.CompanyAnalysis{
		CompanyID:         "google",
		CompanyName:       "Google",
		TotalQuestions:    3,
		AverageDifficulty: 2.5,
		DifficultyDistribution: map[model.Difficulty]int{
			model.DifficultyAdvanced: 2,
		},
	}
	require.NoError(t, c.SetCompanyAnalysis(ctx, "v1", analysis))

	got, err = c.GetCompanyAnalysis(ctx, "v1", "google")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.TotalQuestions)
	assert.Equal(t, 2, got.DifficultyDistribution[model.DifficultyAdvanced])

	// other dataset versions do not see the entry
	got, err = c.GetCompanyAnalysis(ctx, "v2", "google")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.True(t, mr.Exists("prep:v1:company:google:analysis"))
	assert.Equal(t, 10*time.Minute, mr.TTL("prep:v1:company:google:analysis"))

	mr.FastForward(11 * time.Minute)
	got, err = c.GetCompanyAnalysis(ctx, "v1", "google")
	require.NoError(t, err)
	assert.Nil(t, got, "entry expires after ttl")
}

func TestAnalyticsCacheRoleSet(t *testing.T) {
	_, client := newTestClient(t)
	c := NewAnalyticsCache(client, 0)
	ctx := context.Background()

	set := &model.RoleQuestionSet{
		CompanyID:         "amazon",
		RoleID:            "software-engineer",
		RoleName:          "Software Engineer",
		EstimatedDuration: 45,
		FocusAreas:        []string{"Ownership"},
	}
	require.NoError(t, c.SetRoleQuestionSet(ctx, "v1", set))

	got, err := c.GetRoleQuestionSet(ctx, "v1", "amazon", "software-engineer")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, set.EstimatedDuration, got.EstimatedDuration)
	assert.Equal(t, set.FocusAreas, got.FocusAreas)

	got, err = c.GetRoleQuestionSet(ctx, "v1", "amazon", "data-scientist")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAnalyticsCacheCorruptEntry(t *testing.T) {
	mr, client := newTestClient(t)
	c := NewAnalyticsCache(client, time.Minute)

	require.NoError(t, mr.Set("prep:v1:company:meta:analysis", "{not json"))
	_, err := c.GetCompanyAnalysis(context.Background(), "v1", "meta")
	assert.Error(t, err)
}

func TestTrendingCache(t *testing.T) {
	_, client := newTestClient(t)
	c := NewTrendingCache(client)
	ctx := context.Background()

	for _, id := range []string{"google", "amazon", "google", "meta", "google", "amazon"} {
		require.NoError(t, c.Increment(ctx, id))
	}

	top, err := c.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, TrendingEntry{CompanyID: "google", Lookups: 3, Rank: 1}, top[0])
	assert.Equal(t, TrendingEntry{CompanyID: "amazon", Lookups: 2, Rank: 2}, top[1])

	none, err := c.Top(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
