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

func TestCreateAndDeletePostCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	other := env.createUser(t, "other")

	first, err := env.posts.CreatePost(ctx, author.ID, &dto.CreatePostDTO{Content: "one"})
	require.NoError(t, err)
	_, err = env.posts.CreatePost(ctx, author.ID, &dto.CreatePostDTO{Content: "two"})
	require.NoError(t, err)
	assert.Equal(t, 2, env.profileOf(t, author.ID).PostsCount)

	// 非作者删帖是 404，计数不动
	err = env.posts.DeletePost(ctx, first.ID, other.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Equal(t, 2, env.profileOf(t, author.ID).PostsCount)

	require.NoError(t, env.posts.DeletePost(ctx, first.ID, author.ID))
	assert.Equal(t, 1, env.profileOf(t, author.ID).PostsCount)

	_, err = env.posts.GetPost(ctx, first.ID, 0)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFeedFallbackToDiscover(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.createPost(t, bob.ID, "from bob")

	// 没关注任何人，整页回退到全站最新
	feed, err := env.posts.GetFeed(ctx, alice.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, dto.FeedSourceDiscover, feed.Source)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "from bob", feed.Posts[0].Content)
}

func TestFeedSwitchesToFollowingAfterFollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	env.createPost(t, bob.ID, "from bob")
	env.createPost(t, carol.ID, "from carol")

	feed, err := env.posts.GetFeed(ctx, alice.ID, 1, 20)
	require.NoError(t, err)
	require.Equal(t, dto.FeedSourceDiscover, feed.Source)
	assert.Len(t, feed.Posts, 2)

	_, err = env.follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// 写路径不清缓存，TTL 内仍是旧的回退流
	feed, err = env.posts.GetFeed(ctx, alice.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, dto.FeedSourceDiscover, feed.Source)

	// 缓存过期后重建为关注流，只含被关注者的帖子
	env.redis.FastForward(6 * time.Minute)
	feed, err = env.posts.GetFeed(ctx, alice.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, dto.FeedSourceFollowing, feed.Source)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "from bob", feed.Posts[0].Content)
}

func TestFeedCacheStaleCountsFreshLikedFlag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	post := env.createPost(t, bob.ID, "from bob")

	_, err := env.follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	feed, err := env.posts.GetFeed(ctx, alice.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	require.False(t, feed.Posts[0].IsLiked)

	_, err = env.engagement.LikePost(ctx, alice.ID, post.ID)
	require.NoError(t, err)

	// 缓存体不含点赞状态：likes_count 还是旧值，is_liked 每次现查
	feed, err = env.posts.GetFeed(ctx, alice.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.True(t, feed.Posts[0].IsLiked)
	assert.Equal(t, 0, feed.Posts[0].LikesCount)
}

func TestFeedIncludesOwnPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	env.createPost(t, alice.ID, "mine")
	env.createPost(t, bob.ID, "from bob")
	env.createPost(t, carol.ID, "from carol")

	_, err := env.follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// 关注流 = 关注的人 + 自己，未关注者不出现
	feed, err := env.posts.GetFeed(ctx, alice.ID, 1, 20)
	require.NoError(t, err)
	require.Equal(t, dto.FeedSourceFollowing, feed.Source)
	require.Len(t, feed.Posts, 2)
	contents := []string{feed.Posts[0].Content, feed.Posts[1].Content}
	assert.Contains(t, contents, "mine")
	assert.Contains(t, contents, "from bob")
}

func TestExploreReturnsAllPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.createPost(t, alice.ID, "mine")
	env.createPost(t, bob.ID, "theirs")

	// 发现页不筛作者，自己的帖子也在
	result, err := env.posts.GetExplore(ctx, alice.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Posts, 2)
}

func TestTrendingWindowAndOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")

	now := time.Now()
	mostLiked := &model.Post{UserID: author.ID, Content: "most liked", LikesCount: 5, CreatedAt: now.Add(-time.Hour)}
	tieNewer := &model.Post{UserID: author.ID, Content: "tie newer", LikesCount: 3, CommentsCount: 1, CreatedAt: now.Add(-time.Hour)}
	tieOlder := &model.Post{UserID: author.ID, Content: "tie older", LikesCount: 3, CommentsCount: 1, CreatedAt: now.Add(-2 * time.Hour)}
	tooOld := &model.Post{UserID: author.ID, Content: "too old", LikesCount: 100, CreatedAt: now.Add(-8 * 24 * time.Hour)}
	for _, p := range []*model.Post{mostLiked, tieNewer, tieOlder, tooOld} {
		require.NoError(t, env.postRepo.CreatePost(ctx, p))
	}

	result, err := env.posts.GetTrending(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, result, 3)
	// 七天窗口外的高赞帖不入榜，窗口内按赞数、评论数、时间排序
	assert.Equal(t, "most liked", result[0].Content)
	assert.Equal(t, "tie newer", result[1].Content)
	assert.Equal(t, "tie older", result[2].Content)
}

func TestTrendingCacheSharedAcrossViewers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	fan := env.createUser(t, "fan")
	post := env.createPost(t, author.ID, "hot")

	_, err := env.engagement.LikePost(ctx, fan.ID, post.ID)
	require.NoError(t, err)

	// 点赞者视角带 is_liked，其他人拿同一份缓存但注解不同
	forFan, err := env.posts.GetTrending(ctx, fan.ID, 10)
	require.NoError(t, err)
	require.Len(t, forFan, 1)
	assert.True(t, forFan[0].IsLiked)

	forAuthor, err := env.posts.GetTrending(ctx, author.ID, 10)
	require.NoError(t, err)
	require.Len(t, forAuthor, 1)
	assert.False(t, forAuthor[0].IsLiked)

	// 榜单在 TTL 内冻结，新帖不入榜
	env.createPost(t, author.ID, "newer")
	again, err := env.posts.GetTrending(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, again, 1)
}

func TestSearchPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.createPost(t, alice.ID, "golang tips")
	env.createPost(t, bob.ID, "unrelated")

	// 空关键词直接返回空集
	result, err := env.posts.Search(ctx, 0, "", 1, 20)
	require.NoError(t, err)
	assert.Empty(t, result.Posts)

	result, err = env.posts.Search(ctx, 0, "golang", 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "golang tips", result.Posts[0].Content)

	// 作者用户名也参与匹配
	result, err = env.posts.Search(ctx, 0, "bob", 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "unrelated", result.Posts[0].Content)
}

func TestAnnotateLikedBatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	viewer := env.createUser(t, "viewer")
	liked := env.createPost(t, author.ID, "liked")
	env.createPost(t, author.ID, "not liked")

	_, err := env.engagement.LikePost(ctx, viewer.ID, liked.ID)
	require.NoError(t, err)

	result, err := env.posts.GetUserPosts(ctx, author.ID, viewer.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Posts, 2)

	byContent := map[string]bool{}
	for _, p := range result.Posts {
		byContent[p.Content] = p.IsLiked
	}
	assert.True(t, byContent["liked"])
	assert.False(t, byContent["not liked"])
}

func TestInvalidateUserCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.createPost(t, bob.ID, "from bob")

	_, err := env.posts.GetFeed(ctx, alice.ID, 1, 20)
	require.NoError(t, err)
	require.NotEmpty(t, env.redis.Keys())

	InvalidateUserCache(ctx, alice.ID)
	for _, key := range env.redis.Keys() {
		assert.NotContains(t, key, "feed:user:")
	}
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	other := env.createUser(t, "other")
	post := env.createPost(t, author.ID, "first draft")

	// 非作者改帖是 404，内容不动
	_, err := env.posts.UpdatePost(ctx, post.ID, other.ID, &dto.UpdatePostDTO{Content: "hijacked"})
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Equal(t, "first draft", env.reloadPost(t, post.ID).Content)

	updated, err := env.posts.UpdatePost(ctx, post.ID, author.ID, &dto.UpdatePostDTO{Content: "second draft"})
	require.NoError(t, err)
	assert.Equal(t, "second draft", updated.Content)
	assert.Equal(t, "second draft", env.reloadPost(t, post.ID).Content)

	_, err = env.posts.UpdatePost(ctx, post.ID+100, author.ID, &dto.UpdatePostDTO{Content: "ghost"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdatePostImageAndCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	post := env.createPost(t, author.ID, "with image")

	image := "1/pic.png"
	_, err := env.posts.UpdatePost(ctx, post.ID, author.ID, &dto.UpdatePostDTO{Content: "with image", ImageURL: &image})
	require.NoError(t, err)
	assert.Equal(t, "1/pic.png", env.reloadPost(t, post.ID).ImageURL)

	// 不带图片字段的更新保留原图
	_, err = env.posts.UpdatePost(ctx, post.ID, author.ID, &dto.UpdatePostDTO{Content: "reworded"})
	require.NoError(t, err)
	assert.Equal(t, "1/pic.png", env.reloadPost(t, post.ID).ImageURL)

	// 改帖不经过计数路径
	assert.Equal(t, 1, env.profileOf(t, author.ID).PostsCount)
	assert.Equal(t, 0, env.reloadPost(t, post.ID).LikesCount)
}

func TestCreatePostStoresImageKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	created, err := env.posts.CreatePost(ctx, author.ID, &dto.CreatePostDTO{
		Content:  "snapshot",
		ImageURL: "1/abc.png",
	})
	require.NoError(t, err)

	// 入库的是对象键，孤儿清理按键比对才不会误删在用的图
	assert.Equal(t, "1/abc.png", env.reloadPost(t, created.ID).ImageURL)
}

func TestCreatePostWithPromotedMedia(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")
	require.NoError(t, env.mediaRepo.CreateMediaFile(ctx, &model.MediaFile{
		UserID:    author.ID,
		ObjectKey: "1/done.png",
		Promoted:  true,
		CreatedAt: time.Now(),
	}))

	// 已转正的对象不再触发搬桶
	created, err := env.posts.CreatePost(ctx, author.ID, &dto.CreatePostDTO{
		Content:  "reuse",
		ImageURL: "1/done.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "1/done.png", env.reloadPost(t, created.ID).ImageURL)
}
