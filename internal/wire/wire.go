package wire

import (
	"Glintz/internal/api"
	"Glintz/internal/api/handler"
	"Glintz/internal/job"
	"Glintz/internal/pkg/cron"
	pkgmongo "Glintz/internal/pkg/mongo"
	"Glintz/internal/repository"
	"Glintz/internal/service"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongodriver.Database) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	followRepo := repository.NewFollowRepo(db)
	postRepo := repository.NewPostRepo(db)
	engagementRepo := repository.NewEngagementRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	conversationRepo := repository.NewConversationRepo(db)
	mediaRepo := repository.NewMediaRepo(db)
	messageRepo := pkgmongo.NewMessageRepo(mongoDB)

	userService := service.NewUserService(userRepo, followRepo, mediaRepo)
	followService := service.NewFollowService(followRepo, userRepo)
	postService := service.NewPostService(postRepo, followRepo, engagementRepo, mediaRepo)
	engagementService := service.NewEngagementService(engagementRepo, postRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	imService := service.NewIMService(conversationRepo, messageRepo, userRepo)
	mediaService := service.NewMediaService(mediaRepo)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		UserFollowHandler:   handler.NewUserFollowHandler(followService),
		PostHandler:         handler.NewPostHandler(postService),
		PostActionHandler:   handler.NewPostActionHandler(engagementService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		IMHandler:           handler.NewIMHandler(imService),
		WSHandler:           handler.NewWsHandler(),
		MediaHandler:        handler.NewMediaHandler(mediaService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewMediaCleanupJob(mediaRepo))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
