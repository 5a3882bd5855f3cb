package service

import (
	"Glintz/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowSelfRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	_, err := env.follows.Follow(context.Background(), user.ID, user.ID)
	assert.ErrorIs(t, err, ErrUserFollowSelf)

	_, err = env.follows.Unfollow(context.Background(), user.ID, user.ID)
	assert.ErrorIs(t, err, ErrUserFollowSelf)
}

func TestFollowUnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")

	_, err := env.follows.Follow(context.Background(), user.ID, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFollowCounterRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	state, err := env.follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, state.IsFollowing)
	assert.Equal(t, 1, state.FollowersCount)

	// 两侧计数各更新一边
	assert.Equal(t, 1, env.profileOf(t, bob.ID).FollowersCount)
	assert.Equal(t, 0, env.profileOf(t, bob.ID).FollowingCount)
	assert.Equal(t, 1, env.profileOf(t, alice.ID).FollowingCount)
	assert.Equal(t, 0, env.profileOf(t, alice.ID).FollowersCount)

	// 重复关注是空操作，计数和通知都不翻倍
	state, err = env.follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, state.IsFollowing)
	assert.Equal(t, 1, state.FollowersCount)
	assert.Len(t, env.notificationsOf(t, bob.ID), 1)

	state, err = env.follows.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, state.IsFollowing)
	assert.Equal(t, 0, state.FollowersCount)
	assert.Equal(t, 0, env.profileOf(t, alice.ID).FollowingCount)

	// 取关不存在的关系同样是空操作，计数不会掉到零以下
	state, err = env.follows.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, state.IsFollowing)
	assert.Equal(t, 0, state.FollowersCount)
}

func TestFollowNotification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	notifs := env.notificationsOf(t, bob.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotificationTypeFollow, notifs[0].Type)
	assert.Equal(t, alice.ID, notifs[0].SenderID)
	assert.Nil(t, notifs[0].PostID)
	assert.Empty(t, env.notificationsOf(t, alice.ID))
}

func TestFollowLists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	_, err := env.follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.follows.Follow(ctx, carol.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.follows.Follow(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	followers, err := env.follows.ListFollowers(ctx, bob.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	following, err := env.follows.ListFollowing(ctx, alice.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, following, 2)
	for _, u := range following {
		assert.NotEqual(t, alice.ID, u.UserID)
	}
}
