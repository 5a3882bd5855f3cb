package service

import (
	"Glintz/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePostToggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	viewer := env.createUser(t, "viewer")
	post := env.createPost(t, author.ID, "hello")

	state, err := env.engagement.LikePost(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, state.IsLiked)
	assert.Equal(t, 1, state.LikesCount)

	// 再点一次等于取消，计数回到起点
	state, err = env.engagement.LikePost(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, state.IsLiked)
	assert.Equal(t, 0, state.LikesCount)

	liked, err := env.engagementRepo.HasPostLike(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikePostNotifiesAuthorOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	viewer := env.createUser(t, "viewer")
	post := env.createPost(t, author.ID, "hello")

	_, err := env.engagement.LikePost(ctx, viewer.ID, post.ID)
	require.NoError(t, err)

	notifs := env.notificationsOf(t, author.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotificationTypeLike, notifs[0].Type)
	assert.Equal(t, viewer.ID, notifs[0].SenderID)
	require.NotNil(t, notifs[0].PostID)
	assert.Equal(t, post.ID, *notifs[0].PostID)

	// 取消点赞不产生新通知，旧通知也不回收
	_, err = env.engagement.LikePost(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	assert.Len(t, env.notificationsOf(t, author.ID), 1)
}

func TestLikeOwnPostNoNotification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	post := env.createPost(t, author.ID, "hello")

	state, err := env.engagement.LikePost(ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, state.IsLiked)
	assert.Equal(t, 1, state.LikesCount)
	assert.Empty(t, env.notificationsOf(t, author.ID))
}

func TestLikePostNotFound(t *testing.T) {
	env := newTestEnv(t)
	viewer := env.createUser(t, "viewer")

	_, err := env.engagement.LikePost(context.Background(), viewer.ID, 9999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestLikesCountClampsAtZero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	viewer := env.createUser(t, "viewer")
	post := env.createPost(t, author.ID, "hello")

	// 没有点赞行时取消是空操作，计数不会被减成负数
	deleted, err := env.engagementRepo.DeletePostLike(ctx, viewer.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 0, env.reloadPost(t, post.ID).LikesCount)
}

func TestLikeCommentTouchesNoCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	viewer := env.createUser(t, "viewer")
	post := env.createPost(t, author.ID, "hello")

	comment, err := env.engagement.CreateComment(ctx, author.ID, post.ID, commentReq("nice"))
	require.NoError(t, err)
	before := env.reloadPost(t, post.ID)

	state, err := env.engagement.LikeComment(ctx, viewer.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, state.IsLiked)

	after := env.reloadPost(t, post.ID)
	assert.Equal(t, before.LikesCount, after.LikesCount)
	assert.Equal(t, before.CommentsCount, after.CommentsCount)
	assert.Empty(t, env.notificationsOf(t, author.ID))

	state, err = env.engagement.LikeComment(ctx, viewer.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, state.IsLiked)
}

func TestCreateCommentIncrementsCountAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	viewer := env.createUser(t, "viewer")
	post := env.createPost(t, author.ID, "hello")

	comment, err := env.engagement.CreateComment(ctx, viewer.ID, post.ID, commentReq("first"))
	require.NoError(t, err)
	assert.Equal(t, "first", comment.Content)
	assert.Equal(t, 1, env.reloadPost(t, post.ID).CommentsCount)

	notifs := env.notificationsOf(t, author.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotificationTypeComment, notifs[0].Type)
	require.NotNil(t, notifs[0].CommentID)
	assert.Equal(t, comment.ID, *notifs[0].CommentID)
}

func TestCommentOwnPostNoNotification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	post := env.createPost(t, author.ID, "hello")

	_, err := env.engagement.CreateComment(ctx, author.ID, post.ID, commentReq("self"))
	require.NoError(t, err)
	assert.Empty(t, env.notificationsOf(t, author.ID))
}

func TestCommentReplyDepthLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	post := env.createPost(t, author.ID, "hello")

	top, err := env.engagement.CreateComment(ctx, author.ID, post.ID, commentReq("top"))
	require.NoError(t, err)

	reply, err := env.engagement.CreateComment(ctx, author.ID, post.ID, replyReq("reply", top.ID))
	require.NoError(t, err)

	// 对回复再回复被拒绝
	_, err = env.engagement.CreateComment(ctx, author.ID, post.ID, replyReq("too deep", reply.ID))
	assert.ErrorIs(t, err, ErrCommentReplyDepth)
}

func TestCommentParentMustBelongToSamePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	postA := env.createPost(t, author.ID, "a")
	postB := env.createPost(t, author.ID, "b")

	parent, err := env.engagement.CreateComment(ctx, author.ID, postA.ID, commentReq("on a"))
	require.NoError(t, err)

	_, err = env.engagement.CreateComment(ctx, author.ID, postB.ID, replyReq("cross post", parent.ID))
	assert.ErrorIs(t, err, ErrPostCommentNotFound)
}

func TestDeleteCommentCascadesRepliesAndCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	viewer := env.createUser(t, "viewer")
	post := env.createPost(t, author.ID, "hello")

	top, err := env.engagement.CreateComment(ctx, viewer.ID, post.ID, commentReq("top"))
	require.NoError(t, err)
	_, err = env.engagement.CreateComment(ctx, author.ID, post.ID, replyReq("r1", top.ID))
	require.NoError(t, err)
	_, err = env.engagement.CreateComment(ctx, author.ID, post.ID, replyReq("r2", top.ID))
	require.NoError(t, err)
	require.Equal(t, 3, env.reloadPost(t, post.ID).CommentsCount)

	// 非作者删除是 404，计数不动
	err = env.engagement.DeleteComment(ctx, top.ID, author.ID)
	assert.ErrorIs(t, err, ErrPostCommentNotFound)
	assert.Equal(t, 3, env.reloadPost(t, post.ID).CommentsCount)

	// 作者删除顶层评论，两条回复一并消失
	require.NoError(t, env.engagement.DeleteComment(ctx, top.ID, viewer.ID))
	assert.Equal(t, 0, env.reloadPost(t, post.ID).CommentsCount)

	comments, err := env.engagement.GetComments(ctx, post.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestGetCommentsTree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	post := env.createPost(t, author.ID, "hello")

	top, err := env.engagement.CreateComment(ctx, author.ID, post.ID, commentReq("top"))
	require.NoError(t, err)
	_, err = env.engagement.CreateComment(ctx, author.ID, post.ID, replyReq("child", top.ID))
	require.NoError(t, err)

	comments, err := env.engagement.GetComments(ctx, post.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "top", comments[0].Content)
	assert.Equal(t, "author", comments[0].Username)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "child", comments[0].Replies[0].Content)
}
