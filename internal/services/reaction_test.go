package services

import (
	"testing"

	"minigram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// countsInDB 直接从库里读帖子行上的计数
func countsInDB(t *testing.T, svc *ReactionService, postID uint) (int, int) {
	t.Helper()
	var post models.Post
	require.NoError(t, svc.db.First(&post, postID).Error)
	return post.LikeCount, post.DislikeCount
}

// reactionRows 统计帖子下的 reaction 行数
func reactionRows(t *testing.T, svc *ReactionService, postID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, svc.db.Model(&models.Reaction{}).Where("post_id = ?", postID).Count(&n).Error)
	return n
}

func TestReactToggleAndSwitch(t *testing.T) {
	database := newTestDB(t)
	media := NewMediaStore(t.TempDir())
	svc := NewReactionService(database)

	author := seedUser(t, database, "Author A", "a@example.com")
	voter := seedUser(t, database, "Voter B", "b@example.com")
	post := seedPost(t, database, media, author, "hello")

	require.Equal(t, 0, post.LikeCount)
	require.Equal(t, 0, post.DislikeCount)

	// None + like -> Liked
	likes, dislikes, err := svc.React(post.ID, voter.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)
	assert.Equal(t, 0, dislikes)

	// Liked + like -> None (取消)
	likes, dislikes, err = svc.React(post.ID, voter.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 0, likes)
	assert.Equal(t, 0, dislikes)
	assert.EqualValues(t, 0, reactionRows(t, svc, post.ID))

	// None + dislike -> Disliked
	likes, dislikes, err = svc.React(post.ID, voter.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, 0, likes)
	assert.Equal(t, 1, dislikes)

	// Disliked + like -> Liked (切换，不新增行)
	likes, dislikes, err = svc.React(post.ID, voter.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)
	assert.Equal(t, 0, dislikes)
	assert.EqualValues(t, 1, reactionRows(t, svc, post.ID))

	// 帖子行上的计数和返回值一致
	dbLikes, dbDislikes := countsInDB(t, svc, post.ID)
	assert.Equal(t, 1, dbLikes)
	assert.Equal(t, 0, dbDislikes)
}

func TestReactCountsMatchRowsAcrossUsers(t *testing.T) {
	database := newTestDB(t)
	media := NewMediaStore(t.TempDir())
	svc := NewReactionService(database)

	author := seedUser(t, database, "Author", "author@example.com")
	post := seedPost(t, database, media, author, "counts")

	u1 := seedUser(t, database, "U1", "u1@example.com")
	u2 := seedUser(t, database, "U2", "u2@example.com")
	u3 := seedUser(t, database, "U3", "u3@example.com")

	_, _, err := svc.React(post.ID, u1.ID, models.ReactionLike)
	require.NoError(t, err)
	_, _, err = svc.React(post.ID, u2.ID, models.ReactionLike)
	require.NoError(t, err)
	likes, dislikes, err := svc.React(post.ID, u3.ID, models.ReactionDislike)
	require.NoError(t, err)

	assert.Equal(t, 2, likes)
	assert.Equal(t, 1, dislikes)

	// 派生计数永远等于行数
	var likeRows, dislikeRows int64
	require.NoError(t, database.Model(&models.Reaction{}).
		Where("post_id = ? AND kind = ?", post.ID, models.ReactionLike).Count(&likeRows).Error)
	require.NoError(t, database.Model(&models.Reaction{}).
		Where("post_id = ? AND kind = ?", post.ID, models.ReactionDislike).Count(&dislikeRows).Error)
	assert.EqualValues(t, likes, likeRows)
	assert.EqualValues(t, dislikes, dislikeRows)
}

func TestReactSingleRowPerUser(t *testing.T) {
	database := newTestDB(t)
	media := NewMediaStore(t.TempDir())
	svc := NewReactionService(database)

	author := seedUser(t, database, "Author", "author@example.com")
	voter := seedUser(t, database, "Voter", "voter@example.com")
	post := seedPost(t, database, media, author, "one row")

	// 连续换边多次，始终只有一行
	for _, kind := range []models.ReactionKind{
		models.ReactionLike, models.ReactionDislike, models.ReactionLike, models.ReactionDislike,
	} {
		_, _, err := svc.React(post.ID, voter.ID, kind)
		require.NoError(t, err)
		assert.EqualValues(t, 1, reactionRows(t, svc, post.ID))
	}
}

func TestReactDuplicateRowBackstop(t *testing.T) {
	database := newTestDB(t)
	media := NewMediaStore(t.TempDir())
	svc := NewReactionService(database)

	author := seedUser(t, database, "Author", "author@example.com")
	voter := seedUser(t, database, "Voter", "voter@example.com")
	post := seedPost(t, database, media, author, "race")

	_, _, err := svc.React(post.ID, voter.ID, models.ReactionLike)
	require.NoError(t, err)

	// 唯一索引兜底：同一 (user, post) 的第二行插不进去，
	// 并发首投的输家看到的就是这个错误
	dup := models.Reaction{UserID: voter.ID, PostID: post.ID, Kind: models.ReactionDislike}
	err = database.Create(&dup).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.EqualValues(t, 1, reactionRows(t, svc, post.ID))

	// 撞墙后重走读-改-写：切换已有行，而不是双插
	likes, dislikes, err := svc.React(post.ID, voter.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, 0, likes)
	assert.Equal(t, 1, dislikes)
	assert.EqualValues(t, 1, reactionRows(t, svc, post.ID))

	kind, err := svc.GetUserReaction(post.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionDislike, kind)
}

func TestReactInvalidKind(t *testing.T) {
	database := newTestDB(t)
	svc := NewReactionService(database)

	_, _, err := svc.React(1, 1, models.ReactionKind("love"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = svc.React(1, 1, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestReactMissingPost(t *testing.T) {
	database := newTestDB(t)
	svc := NewReactionService(database)

	voter := seedUser(t, database, "Voter", "voter@example.com")

	_, _, err := svc.React(9999, voter.ID, models.ReactionLike)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserReaction(t *testing.T) {
	database := newTestDB(t)
	media := NewMediaStore(t.TempDir())
	svc := NewReactionService(database)

	author := seedUser(t, database, "Author", "author@example.com")
	voter := seedUser(t, database, "Voter", "voter@example.com")
	post := seedPost(t, database, media, author, "state")

	kind, err := svc.GetUserReaction(post.ID, voter.ID)
	require.NoError(t, err)
	assert.Empty(t, kind, "no row means neutral")

	_, _, err = svc.React(post.ID, voter.ID, models.ReactionDislike)
	require.NoError(t, err)

	kind, err = svc.GetUserReaction(post.ID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionDislike, kind)
}
