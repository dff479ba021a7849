package router

import (
	"net/http"

	"inkpost/internal/app"
	"inkpost/internal/handlers"
	"inkpost/internal/middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

const sessionMaxAge = 30 * 24 * 60 * 60

// New builds the engine with its middleware stack, templates, static files
// and routes.
func New(a *app.App, html render.HTMLRender) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RequestID(a.Log), middleware.Logger())

	store := cookie.NewStore([]byte(a.Config.App.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(a.Config.App.SessionName, store))
	r.Use(middleware.LoadUser(a.Auth, a.Gate))

	r.HTMLRender = html
	if a.Config.App.StaticDir != "" {
		r.Static("/static", a.Config.App.StaticDir)
	}

	RegisterRoutes(r, a)
	return r
}

func RegisterRoutes(r *gin.Engine, a *app.App) {
	authHandler := handlers.NewAuthHandler(a.Auth)
	postHandler := handlers.NewPostHandler(a.Content)
	pageHandler := handlers.NewPageHandler(a.Mail)

	r.GET("/", postHandler.List)
	r.GET("/post/:post_id", postHandler.Show)
	r.POST("/post/:post_id", postHandler.Comment)
	r.GET("/about", pageHandler.About)
	r.GET("/contact", pageHandler.ShowContact)
	r.POST("/contact", pageHandler.Contact)

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// content management, checked again by the services
	admin := r.Group("/")
	admin.Use(middleware.AdminOnly(a.Gate, handlers.Forbidden))
	{
		admin.GET("/new-post", postHandler.ShowCreate)
		admin.POST("/new-post", postHandler.Create)
		admin.GET("/edit-post/:post_id", postHandler.ShowEdit)
		admin.POST("/edit-post/:post_id", postHandler.Edit)
		admin.GET("/delete/:post_id", postHandler.Delete)
		admin.GET("/delete_comment/:comment_id", postHandler.DeleteComment)
	}

	r.NoRoute(handlers.NotFound)
}
