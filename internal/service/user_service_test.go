package service

import (
	"Glintz/internal/api/dto"
	"Glintz/internal/pkg/consts"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	auth, err := env.users.Register(ctx, &dto.RegisterDTO{Username: "alice", Password: "secret123", Bio: "hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, "alice", auth.User.Username)
	assert.Equal(t, "hi", auth.User.Bio)
	assert.Equal(t, consts.DefaultAvatarURL, auth.User.AvatarURL)

	// 用户名唯一
	_, err = env.users.Register(ctx, &dto.RegisterDTO{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserUsernameExist)

	_, err = env.users.Login(ctx, &dto.CredentialDTO{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = env.users.Login(ctx, &dto.CredentialDTO{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	again, err := env.users.Login(ctx, &dto.CredentialDTO{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, again.Token)
}

func TestLogoutDenylistsToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	auth, err := env.users.Register(ctx, &dto.RegisterDTO{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, env.users.Logout(ctx, auth.Token))

	denied := false
	for _, key := range env.redis.Keys() {
		if strings.HasPrefix(key, consts.JWTDenyKey) {
			denied = true
		}
	}
	assert.True(t, denied)

	assert.ErrorIs(t, env.users.Logout(ctx, "not-a-token"), UnauthorizedError)
}

func TestGetProfileFollowState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	profile, err := env.users.GetProfile(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsFollowing)
	assert.Equal(t, 1, profile.FollowersCount)

	// 未登录视角
	profile, err = env.users.GetProfile(ctx, bob.ID, 0)
	require.NoError(t, err)
	assert.False(t, profile.IsFollowing)

	_, err = env.users.GetProfile(ctx, 9999, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileKeepsCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	_, err := env.follows.Follow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	bio := "new bio"
	location := "tokyo"
	updated, err := env.users.UpdateProfile(ctx, alice.ID, &dto.UpdateProfileDTO{Bio: &bio, Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "tokyo", updated.Location)
	// 计数列不经资料更新入口
	assert.Equal(t, 1, updated.FollowersCount)
}

func TestSearchUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "alice")
	env.createUser(t, "alicia")
	env.createUser(t, "bob")

	result, err := env.users.SearchUsers(ctx, "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, result)

	result, err = env.users.SearchUsers(ctx, "ali", 20, 0)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "alice", result[0].Username)
	assert.Equal(t, "alicia", result[1].Username)
}

func TestSuggestedUsersFriendsOfFriends(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	env.createUser(t, "dave")

	_, err := env.follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.follows.Follow(ctx, bob.ID, carol.ID)
	require.NoError(t, err)

	suggestions, err := env.users.GetSuggestedUsers(ctx, alice.ID, 5)
	require.NoError(t, err)

	names := make([]string, 0, len(suggestions))
	for _, u := range suggestions {
		assert.NotEqual(t, alice.ID, u.UserID, "不推荐自己")
		assert.NotEqual(t, bob.ID, u.UserID, "不推荐已关注的人")
		names = append(names, u.Username)
	}
	// 二度关系优先，名额不足用最新注册补齐
	assert.Contains(t, names, "carol")
	assert.Contains(t, names, "dave")

	// 结果缓存一小时，新的关注关系在 TTL 内不影响推荐
	_, err = env.follows.Follow(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	cached, err := env.users.GetSuggestedUsers(ctx, alice.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, len(suggestions), len(cached))
}
