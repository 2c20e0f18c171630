package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashureev/boj-daily/internal/progress"
	"github.com/ashureev/boj-daily/internal/solvedac"
)

func TestRegisterValidatesBeforeLookup(t *testing.T) {
	stats := &fakeStats{}
	svc := newTestService(t, newFakeRepo(), stats, progress.LapseLazy)

	_, err := svc.Register(context.Background(), RegisterInput{ID: "k1", Handle: "   "})
	assert.ErrorIs(t, err, ErrEmptyHandle)
	assert.Empty(t, stats.calls)
}

func TestRegisterHandleNotFound(t *testing.T) {
	repo := newFakeRepo()
	stats := &fakeStats{failing: map[string]bool{"flaky": true}}
	svc := newTestService(t, repo, stats, progress.LapseLazy)

	for _, h := range []string{"ghost", "flaky"} {
		_, err := svc.Register(context.Background(), RegisterInput{ID: "k1", Handle: h})
		assert.ErrorIs(t, err, ErrHandleNotFound)
	}
	assert.Nil(t, repo.stored("k1"))
}

func TestRegisterBatchMode(t *testing.T) {
	repo := newFakeRepo()
	stats := &fakeStats{stats: map[string]solvedac.Stats{"alice": {SolvedCount: 120, Tier: 9}}}
	svc := newTestService(t, repo, stats, progress.LapseLazy)

	reg, err := svc.Register(context.Background(), RegisterInput{Handle: "alice", DisplayName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, Created, reg.Status)
	assert.Equal(t, 9, reg.Stats.Tier)

	stored := repo.stored("alice")
	require.NotNil(t, stored)
	assert.Equal(t, "Alice", stored.DisplayName)
	assert.Equal(t, 120, stored.SolvedCount)
	assert.Equal(t, 0, stored.CurrentStreak)
	assert.Nil(t, stored.LastSolvedDate)

	_, err = svc.Register(context.Background(), RegisterInput{Handle: "alice", DisplayName: "Again"})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterChatMode(t *testing.T) {
	repo := newFakeRepo()
	stats := &fakeStats{stats: map[string]solvedac.Stats{
		"alice": {SolvedCount: 120},
		"bob":   {SolvedCount: 7},
	}}
	svc := newTestService(t, repo, stats, progress.LapseLazy)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{ID: "kakao-1", Handle: "alice", AllowReplace: true})
	require.NoError(t, err)
	assert.Equal(t, Created, reg.Status)

	u := repo.stored("kakao-1")
	u.CurrentStreak = 4
	u.LastSolvedDate = date(0)
	u.RegisteredAt = clock.Add(-48 * time.Hour)

	reg, err = svc.Register(ctx, RegisterInput{ID: "kakao-1", Handle: "alice", AllowReplace: true})
	require.NoError(t, err)
	assert.Equal(t, Unchanged, reg.Status)
	assert.Equal(t, 4, repo.stored("kakao-1").CurrentStreak, "same handle keeps the streak")
	assert.Equal(t, clock.Add(-48*time.Hour), repo.stored("kakao-1").RegisteredAt)

	reg, err = svc.Register(ctx, RegisterInput{ID: "kakao-1", Handle: "bob", AllowReplace: true})
	require.NoError(t, err)
	assert.Equal(t, Changed, reg.Status)
	assert.Equal(t, "alice", reg.PreviousHandle)

	u = repo.stored("kakao-1")
	assert.Equal(t, "bob", u.Handle)
	assert.Equal(t, 7, u.SolvedCount)
	assert.Equal(t, 0, u.CurrentStreak)
	assert.Nil(t, u.LastSolvedDate)
}
