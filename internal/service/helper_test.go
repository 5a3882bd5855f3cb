package service

import (
	"Glintz/internal/api/config"
	"Glintz/internal/api/dto"
	"Glintz/internal/model"
	"Glintz/internal/pkg/redis"
	"Glintz/internal/repository"
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// testEnv 把服务层压在真实的 sqlite 内存库与 miniredis 上跑，
// 计数、唯一约束、缓存行为都走和线上相同的 SQL / 命令路径。
type testEnv struct {
	db    *gorm.DB
	redis *miniredis.Miniredis

	userRepo       repository.UserRepo
	followRepo     repository.FollowRepo
	postRepo       repository.PostRepo
	engagementRepo repository.EngagementRepo
	notifRepo      repository.NotificationRepo
	mediaRepo      repository.MediaRepo

	users         UserService
	follows       FollowService
	posts         PostService
	engagement    EngagementService
	notifications NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	require.NoError(t, redis.InitRedis(config.RedisConfig{Addr: mr.Addr()}))

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Follow{},
		&model.Notification{},
		&model.MediaFile{},
	))

	env := &testEnv{db: db, redis: mr}
	env.userRepo = repository.NewUserRepo(db)
	env.followRepo = repository.NewFollowRepo(db)
	env.postRepo = repository.NewPostRepo(db)
	env.engagementRepo = repository.NewEngagementRepo(db)
	env.notifRepo = repository.NewNotificationRepo(db)
	env.mediaRepo = repository.NewMediaRepo(db)

	env.users = NewUserService(env.userRepo, env.followRepo, env.mediaRepo)
	env.follows = NewFollowService(env.followRepo, env.userRepo)
	env.posts = NewPostService(env.postRepo, env.followRepo, env.engagementRepo, env.mediaRepo)
	env.engagement = NewEngagementService(env.engagementRepo, env.postRepo)
	env.notifications = NewNotificationService(env.notifRepo)
	return env
}

func (e *testEnv) createUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Password: "hashed-password"}
	require.NoError(t, e.userRepo.CreateUser(context.Background(), user))
	return user
}

func (e *testEnv) createPost(t *testing.T, userID uint64, content string) *model.Post {
	t.Helper()
	post := &model.Post{UserID: userID, Content: content}
	require.NoError(t, e.postRepo.CreatePost(context.Background(), post))
	return post
}

func (e *testEnv) reloadPost(t *testing.T, postID uint64) *model.Post {
	t.Helper()
	post, err := e.postRepo.GetPostByID(context.Background(), postID)
	require.NoError(t, err)
	require.NotNil(t, post)
	return post
}

func (e *testEnv) profileOf(t *testing.T, userID uint64) *model.Profile {
	t.Helper()
	profile, err := e.userRepo.GetProfileByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	return profile
}

func (e *testEnv) notificationsOf(t *testing.T, recipientID uint64) []*model.Notification {
	t.Helper()
	list, err := e.notifRepo.ListByRecipient(context.Background(), recipientID, 100, 0)
	require.NoError(t, err)
	return list
}

func commentReq(content string) *dto.CommentCreateDTO {
	return &dto.CommentCreateDTO{Content: content}
}

func replyReq(content string, parentID uint64) *dto.CommentCreateDTO {
	return &dto.CommentCreateDTO{Content: content, ParentID: &parentID}
}
