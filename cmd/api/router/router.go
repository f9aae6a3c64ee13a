package router

import (
	interaction "TikLite.com/cmd/api/handlers/interaction"
	"TikLite.com/cmd/api/handlers/live"
	ops "TikLite.com/cmd/api/handlers/ops"
	relation "TikLite.com/cmd/api/handlers/relation"
	user "TikLite.com/cmd/api/handlers/user"
	video "TikLite.com/cmd/api/handlers/video"
	"TikLite.com/pkg/middleware"
	"TikLite.com/pkg/session"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
)

func _authMW(s *session.Manager) []app.HandlerFunc {
	return []app.HandlerFunc{s.RequireAuth()}
}

// _writeMW 登录 + 写接口限流
func _writeMW(s *session.Manager) []app.HandlerFunc {
	return []app.HandlerFunc{s.RequireAuth(), middleware.RateLimit(middleware.WriteResource)}
}

func _viewerMW(s *session.Manager) []app.HandlerFunc {
	return []app.HandlerFunc{s.OptionalAuth()}
}

// Register 注册全部HTTP与websocket路由
func Register(h *server.Hertz, s *session.Manager, hub *live.Hub) {
	auth := _authMW(s)
	write := _writeMW(s)
	viewer := _viewerMW(s)
	limit := middleware.RateLimit(middleware.WriteResource)

	api := h.Group("/api")

	a := api.Group("/auth")
	a.POST("/register", limit, user.Register)
	a.POST("/login", limit, s.LoginHandler)
	a.POST("/refresh", s.RefreshHandler)
	a.POST("/logout", s.LogoutHandler)
	a.GET("/me", append(auth, user.Me)...)

	u := api.Group("/users")
	u.PUT("/me", append(write, user.UpdateMe)...)
	u.POST("/me/avatar", append(write, user.UpdateAvatar)...)
	u.GET("/:user", append(viewer, user.GetProfile)...)
	u.GET("/:user/videos", append(viewer, user.UserVideos)...)
	u.GET("/:user/followers", append(viewer, relation.Followers)...)
	u.GET("/:user/following", append(viewer, relation.Following)...)
	u.GET("/:user/friends", append(viewer, relation.Friends)...)
	u.POST("/:user/follow", append(write, relation.Follow)...)
	u.GET("/:user/follow", append(viewer, relation.FollowState)...)

	v := api.Group("/videos")
	v.GET("/feed", append(viewer, video.Feed)...)
	v.GET("/explore", append(viewer, video.Explore)...)
	v.POST("", append(write, video.Publish)...)
	v.POST("/", append(write, video.Publish)...)
	v.GET("/:id", append(viewer, video.Detail)...)
	v.DELETE("/:id", append(write, video.Delete)...)
	v.POST("/:id/view", limit, video.Visit)
	v.POST("/:id/like", append(write, video.Like)...)
	v.GET("/:id/like", append(viewer, video.LikeState)...)
	v.GET("/:id/comments", append(viewer, interaction.ListComments)...)
	v.POST("/:id/comments", append(write, interaction.CreateComment)...)

	c := api.Group("/comments")
	c.DELETE("/:id", append(write, interaction.DeleteComment)...)
	c.POST("/:id/like", append(write, interaction.LikeComment)...)

	api.GET("/search", append(viewer, video.Search)...)
	api.POST("/storage/init", append(auth, ops.InitBucket)...)

	h.GET("/ws/videos/:id", hub.Handler)
	h.GET("/health", ops.Health)
}
