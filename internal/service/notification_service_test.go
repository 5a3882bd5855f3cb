package service

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationListMarksAllRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	fan := env.createUser(t, "fan")
	post := env.createPost(t, author.ID, "hello")

	_, err := env.engagement.LikePost(ctx, fan.ID, post.ID)
	require.NoError(t, err)

	count, err := env.notifRepo.CountUnread(ctx, author.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// 返回体里是读取时刻的状态，置读发生在读取之后
	list, err := env.notifications.List(ctx, author.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsRead)
	assert.Equal(t, model.NotificationTypeLike, list[0].Type)
	assert.Equal(t, "fan", list[0].SenderUsername)

	count, err = env.notifRepo.CountUnread(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestNotificationOrderNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	fan := env.createUser(t, "fan")
	post := env.createPost(t, author.ID, "hello")

	_, err := env.engagement.LikePost(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	_, err = env.engagement.CreateComment(ctx, fan.ID, post.ID, &dto.CommentCreateDTO{Content: "hi"})
	require.NoError(t, err)

	list, err := env.notifications.List(ctx, author.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, model.NotificationTypeComment, list[0].Type)
	assert.Equal(t, model.NotificationTypeLike, list[1].Type)
}

func TestUnreadCountCachedForAMinute(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	fan := env.createUser(t, "fan")
	post := env.createPost(t, author.ID, "hello")

	_, err := env.engagement.LikePost(ctx, fan.ID, post.ID)
	require.NoError(t, err)

	count, err := env.notifications.UnreadCount(ctx, author.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// 新通知进来角标不动，读的是缓存
	_, err = env.engagement.CreateComment(ctx, fan.ID, post.ID, &dto.CommentCreateDTO{Content: "hi"})
	require.NoError(t, err)

	count, err = env.notifications.UnreadCount(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	env.redis.FastForward(2 * time.Minute)
	count, err = env.notifications.UnreadCount(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestMarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	fan := env.createUser(t, "fan")
	post := env.createPost(t, author.ID, "hello")

	_, err := env.engagement.LikePost(ctx, fan.ID, post.ID)
	require.NoError(t, err)

	require.NoError(t, env.notifications.MarkAllRead(ctx, author.ID))

	count, err := env.notifRepo.CountUnread(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
