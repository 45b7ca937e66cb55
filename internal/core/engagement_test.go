package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidhub/pkg/models"
)

func newEngagementFixture() (EngagementService, *fakeVideoRepo, *fakeUserRepo) {
	videoRepo := newFakeVideoRepo()
	userRepo := newFakeUserRepo()
	return NewEngagementService(videoRepo, userRepo), videoRepo, userRepo
}

func TestLikeTwiceRestoresOriginalCounts(t *testing.T) {
	svc, videoRepo, userRepo := newEngagementFixture()
	seedVideo(videoRepo, "v1")
	ctx := context.Background()

	first, err := svc.Like(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, first.LikesCount)
	assert.Equal(t, 0, first.DislikesCount)

	second, err := svc.Like(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 0, second.LikesCount)
	assert.Equal(t, 0, second.DislikesCount)

	liked, err := userRepo.IsLiked(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.False(t, liked, "second like must un-like")
}

func TestDislikeTwiceRestoresOriginalCounts(t *testing.T) {
	svc, videoRepo, _ := newEngagementFixture()
	seedVideo(videoRepo, "v1")
	ctx := context.Background()

	first, err := svc.Dislike(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, first.DislikesCount)

	second, err := svc.Dislike(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 0, second.DislikesCount)
	assert.Equal(t, 0, second.LikesCount)
}

func TestDislikeThenLikeCrossTransition(t *testing.T) {
	svc, videoRepo, userRepo := newEngagementFixture()
	seedVideo(videoRepo, "v1")
	ctx := context.Background()

	afterDislike, err := svc.Dislike(ctx, "userA", "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, afterDislike.DislikesCount)
	assert.Equal(t, 0, afterDislike.LikesCount)

	afterLike, err := svc.Like(ctx, "userA", "v1")
	require.NoError(t, err)
	assert.Equal(t, 0, afterLike.DislikesCount)
	assert.Equal(t, 1, afterLike.LikesCount)

	liked, _ := userRepo.IsLiked(ctx, "userA", "v1")
	disliked, _ := userRepo.IsDisliked(ctx, "userA", "v1")
	assert.True(t, liked)
	assert.False(t, disliked)
}

func TestLikeThenDislikeCrossTransition(t *testing.T) {
	svc, videoRepo, _ := newEngagementFixture()
	seedVideo(videoRepo, "v1")
	ctx := context.Background()

	_, err := svc.Like(ctx, "u1", "v1")
	require.NoError(t, err)

	after, err := svc.Dislike(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 0, after.LikesCount)
	assert.Equal(t, 1, after.DislikesCount)
}

func TestNeverLikedAndDislikedSimultaneously(t *testing.T) {
	svc, videoRepo, userRepo := newEngagementFixture()
	seedVideo(videoRepo, "v1")
	ctx := context.Background()

	// arbitrary alternating sequence
	ops := []func(context.Context, string, string) (*models.VideoDTO, error){
		svc.Like, svc.Dislike, svc.Dislike, svc.Like, svc.Like, svc.Dislike, svc.Like,
	}
	for i, op := range ops {
		_, err := op(ctx, "u1", "v1")
		require.NoError(t, err)

		liked, _ := userRepo.IsLiked(ctx, "u1", "v1")
		disliked, _ := userRepo.IsDisliked(ctx, "u1", "v1")
		assert.False(t, liked && disliked, "step %d: video in both sets", i)
	}
}

func TestCountersMatchMembershipAcrossUsers(t *testing.T) {
	svc, videoRepo, _ := newEngagementFixture()
	seedVideo(videoRepo, "v1")
	ctx := context.Background()

	_, err := svc.Like(ctx, "u1", "v1")
	require.NoError(t, err)
	_, err = svc.Like(ctx, "u2", "v1")
	require.NoError(t, err)
	after, err := svc.Dislike(ctx, "u3", "v1")
	require.NoError(t, err)

	assert.Equal(t, 2, after.LikesCount)
	assert.Equal(t, 1, after.DislikesCount)
}

func TestRecordViewCountsAndHistory(t *testing.T) {
	svc, videoRepo, userRepo := newEngagementFixture()
	seedVideo(videoRepo, "v1")
	ctx := context.Background()

	_, err := svc.RecordView(ctx, "userA", "v1")
	require.NoError(t, err)
	_, err = svc.RecordView(ctx, "userA", "v1")
	require.NoError(t, err)
	video, err := svc.RecordView(ctx, "userB", "v1")
	require.NoError(t, err)

	assert.Equal(t, 3, video.ViewCount)
	assert.Equal(t, 2, userRepo.historyCount("userA", "v1"))
	assert.Equal(t, 1, userRepo.historyCount("userB", "v1"))
}

func TestLikeVideoNotFound(t *testing.T) {
	svc, _, _ := newEngagementFixture()

	_, err := svc.Like(context.Background(), "u1", "missing")
	require.Error(t, err)
	assert.Equal(t, 404, models.StatusOf(err))
}

func TestLikeMissingIDs(t *testing.T) {
	svc, _, _ := newEngagementFixture()

	_, err := svc.Like(context.Background(), "", "v1")
	require.Error(t, err)
	assert.Equal(t, 400, models.StatusOf(err))

	_, err = svc.Dislike(context.Background(), "u1", "")
	require.Error(t, err)
	assert.Equal(t, 400, models.StatusOf(err))
}

func TestLikePersistFailureSurfacesAsPersistenceError(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	userRepo := newFakeUserRepo()
	svc := NewEngagementService(videoRepo, userRepo)
	seedVideo(videoRepo, "v1")
	videoRepo.failSave = true

	_, err := svc.Like(context.Background(), "u1", "v1")
	require.Error(t, err)
	assert.Equal(t, 500, models.StatusOf(err))
	assert.Contains(t, err.Error(), models.ErrCodePersistence)
}

func TestLikeUserSetFailurePropagates(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	userRepo := newFakeUserRepo()
	svc := NewEngagementService(videoRepo, userRepo)
	seedVideo(videoRepo, "v1")
	userRepo.failSets = true

	_, err := svc.Like(context.Background(), "u1", "v1")
	require.Error(t, err)
	assert.Equal(t, 500, models.StatusOf(err))

	// no retry happened: video counters untouched
	video, err := videoRepo.GetByID(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, 0, video.LikesCount)
}
