package api

import (
	"Glintz/internal/api/middleware"
	"Glintz/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.GET("/search", group.UserHandler.SearchUsers)

			profileGroup := userGroup.Group("")
			profileGroup.Use(middleware.AuthOptionalMiddleware())
			{
				profileGroup.GET("/:user_id", group.UserHandler.GetUser)
			}

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/me", group.UserHandler.GetMe)
				authGroup.PUT("/me", group.UserHandler.UpdateProfile)
				authGroup.GET("/suggested", group.UserHandler.GetSuggestedUsers)
			}
		}

		followGroup := apiGroup.Group("/user-relation")
		{
			followGroup.GET("/:target_id/followers", group.UserFollowHandler.ListFollowers)
			followGroup.GET("/:target_id/following", group.UserFollowHandler.ListFollowing)

			authGroup := followGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/follow/:target_id", group.UserFollowHandler.Follow)
				authGroup.DELETE("/follow/:target_id", group.UserFollowHandler.Unfollow)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/trending", group.PostHandler.Trending)
				authOptGroup.GET("/search", group.PostHandler.Search)
				authOptGroup.GET("/detail/:post_id", group.PostHandler.GetPost)
				authOptGroup.GET("/list/:target_id", group.PostHandler.GetUserPosts)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				authGroup.GET("/feed", group.PostHandler.Feed)
				authGroup.GET("/explore", group.PostHandler.Explore)
			}
		}

		postActionGroup := apiGroup.Group("/post/action")
		{
			postActionGroup.GET("/comments/:post_id", group.PostActionHandler.GetComments)

			authActionGroup := postActionGroup.Group("")
			authActionGroup.Use(middleware.AuthMiddleware())
			{
				authActionGroup.POST("/likes/:post_id", group.PostActionHandler.LikePost)
				authActionGroup.POST("/comments/:post_id", group.PostActionHandler.CreateComment)
				authActionGroup.DELETE("/comments/:comment_id", group.PostActionHandler.DeleteComment)
				authActionGroup.POST("/comment-likes/:comment_id", group.PostActionHandler.LikeComment)
			}
		}

		notifyGroup := apiGroup.Group("/notifications")
		notifyGroup.Use(middleware.AuthMiddleware())
		{
			notifyGroup.GET("/list", group.NotificationHandler.List)
			notifyGroup.GET("/unread", group.NotificationHandler.UnreadCount)
			notifyGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
		}

		imGroup := apiGroup.Group("/im")
		{
			imGroup.GET("", group.WSHandler.Connect)
			authGroup := imGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/send", group.IMHandler.SendMessage)
				authGroup.GET("/history/:conversation_id", group.IMHandler.GetHistory)
				authGroup.GET("/sync/:conversation_id", group.IMHandler.SyncMessages)
				authGroup.GET("/list", group.IMHandler.ListConversations)
				authGroup.POST("/read", group.IMHandler.MarkAsRead)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
			mediaGroup.GET("/library", group.MediaHandler.Library)
			mediaGroup.DELETE("/:media_id", group.MediaHandler.Delete)
		}
	}

	return r
}
