package main

import (
	"flag"
	"html/template"
	"io/fs"
	"net/http"

	"dailybuzz/internal/config"
	"dailybuzz/internal/handlers"
	"dailybuzz/internal/logging"
	"dailybuzz/internal/models"
	"dailybuzz/internal/repository"
	"dailybuzz/internal/services"
	"dailybuzz/internal/tasks"
	"dailybuzz/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Global filesystems that will be populated by either assets_dev.go or assets_prod.go at startup.
var templatesFS fs.FS
var staticFS fs.FS

// prettyLogs is flipped off by assets_prod.go for release builds.
var prettyLogs = true

func createRenderer() multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	add := func(name string, files ...string) {
		tpl, err := template.ParseFS(templatesFS, files...)
		if err != nil {
			log.Fatal().Err(err).Str("template", name).Msg("failed to parse template")
		}
		r.Add(name, tpl)
	}

	add("index.html", "base.html", "index.html")
	add("category.html", "base.html", "category.html")
	add("post.html", "base.html", "post.html")
	add("search.html", "base.html", "search.html", "_pagination.html")
	add("admin.html", "base.html", "admin.html", "_pagination.html")
	add("editor.html", "base.html", "editor.html")
	add("settings.html", "base.html", "settings.html")
	add("login.html", "base.html", "login.html")
	add("404.html", "base.html", "404.html")

	return r
}

func main() {
	// Asset loading is handled automatically by build tags.
	unsafe := flag.Bool("unsafe", false, "allow insecure cookies")
	flag.Parse()

	logging.Setup(prettyLogs)
	cfg := config.Load()

	if err := models.ValidateCategories(); err != nil {
		log.Fatal().Err(err).Msg("invalid category table")
	}

	db, err := utils.InitDatabase(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	postRepo := repository.NewPostRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	settingService := services.NewSettingService(settingRepo)
	postService := services.NewPostService(postRepo)
	imageService := services.NewImageService(cfg.ImageUploadURL, cfg.ImageUploadPreset)
	backupService := services.NewBackupService(postRepo, cfg.SnapshotDir)

	scheduler := tasks.NewScheduler(settingService, backupService)
	scheduler.Start()

	blogHandler := handlers.NewBlogHandler(postService)
	adminHandler := handlers.NewAdminHandler(postService, settingService, imageService, backupService, scheduler)
	searchHandler := handlers.NewSearchHandler(postService)
	authHandler := handlers.NewAuthHandler(settingService)
	apiHandler := handlers.NewAPIHandler(postService, settingService, cfg.JWTSecret)

	r := gin.Default()
	r.HTMLRender = createRenderer()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		HttpOnly: true,
		Secure:   !*unsafe,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("dailybuzz_session", store))

	r.Use(handlers.SettingsMiddleware(settingService))

	r.StaticFS("/static", http.FS(staticFS))

	// Reader routes
	r.GET("/", blogHandler.Index)
	r.GET("/news", blogHandler.CategoryFeed("news", "Latest News"))
	r.GET("/quotes", blogHandler.CategoryFeed("quote", "Daily Quotes"))
	r.GET("/captions", blogHandler.CategoryFeed("news", "Latest News")) // alias of the news view
	r.GET("/post/:slug", blogHandler.ShowPost)
	r.GET("/search", searchHandler.Search)

	// Auth routes
	r.GET("/login", authHandler.ShowLoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(handlers.AuthMiddleware())
	{
		admin.GET("/", adminHandler.Dashboard)
		admin.GET("/editor", adminHandler.Editor)
		admin.POST("/save", adminHandler.SavePost)
		admin.POST("/delete/:id", adminHandler.DeletePost)
		admin.GET("/backup", adminHandler.BackupPosts)
		admin.POST("/restore", adminHandler.RestorePosts)
	}

	settings := r.Group("/settings")
	settings.Use(handlers.AuthMiddleware())
	{
		settings.GET("/", adminHandler.ShowSettingsPage)
		settings.POST("/", adminHandler.UpdateSettings)
	}

	// API routes
	api := r.Group("/api/v1")
	{
		api.POST("/login", apiHandler.Login)
		api.GET("/posts", apiHandler.ListPosts)

		protected := api.Group("")
		protected.Use(handlers.APIAuthMiddleware(cfg.JWTSecret))
		{
			protected.POST("/posts", apiHandler.CreatePost)
			protected.PUT("/posts/:id", apiHandler.UpdatePost)
			protected.DELETE("/posts/:id", apiHandler.DeletePost)
		}
	}

	r.NoRoute(blogHandler.NotFound)

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
