package router

import (
	"minigram/internal/handlers"
	"minigram/internal/middleware"
	"minigram/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes 组装服务与 handler 并挂载全部路由。
// 数据库句柄和媒体存储从外面传进来，方便测试时替换。
func RegisterRoutes(r *gin.Engine, database *gorm.DB, media *services.MediaStore) {
	// Services
	userService := services.NewUserService(database, media)
	postService := services.NewPostService(database, media)
	reactionService := services.NewReactionService(database)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	postHandler := handlers.NewPostHandler(postService, reactionService)
	reactionHandler := handlers.NewReactionHandler(reactionService)
	userHandler := handlers.NewUserHandler(userService, postService)

	// 公共路由 (Public Routes)
	r.POST("/signup", authHandler.Register) // 提交注册
	r.POST("/login", authHandler.Login)     // 提交登录
	r.POST("/logout", authHandler.Logout)   // 退出登录

	// 受保护路由 (Protected Routes)
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.GET("/profile", userHandler.Profile)        // 我的资料
		api.POST("/profile", userHandler.UpdateProfile) // 更新资料

		api.POST("/posts", postHandler.Create)       // 发布帖子
		api.GET("/posts", postHandler.ListMine)      // 我的动态
		api.DELETE("/posts/:id", postHandler.Delete) // 删除帖子

		api.POST("/posts/:id/react", reactionHandler.React)        // 点赞/点踩
		api.GET("/posts/:id/reaction", reactionHandler.MyReaction) // 我的投票状态

		api.GET("/users/:id", userHandler.PublicProfile)    // 他人主页
		api.GET("/users/:id/posts", postHandler.ListByUser) // 他人动态
	}
}
