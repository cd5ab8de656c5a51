package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dawahnet/outreach-api/internal/config"
	"github.com/dawahnet/outreach-api/internal/constants"
	"github.com/dawahnet/outreach-api/internal/database"
	"github.com/dawahnet/outreach-api/internal/handlers"
	"github.com/dawahnet/outreach-api/internal/logger"
	"github.com/dawahnet/outreach-api/internal/middleware"
	"github.com/dawahnet/outreach-api/internal/models"
	"github.com/dawahnet/outreach-api/internal/repository"
	"github.com/dawahnet/outreach-api/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.GinMode)
	defer log.Sync()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg, log); err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	db := database.GetDB()

	if err := database.SeedDirectory(db); err != nil {
		log.Fatal("failed to seed thana/union directory", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	mosqueRepo := repository.NewMosqueRepository(db)
	halqaRepo := repository.NewHalqaRepository(db)
	takajaRepo := repository.NewTakajaRepository(db)
	directoryRepo := repository.NewDirectoryRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, directoryRepo)
	memberService := services.NewMemberService(userRepo, directoryRepo)
	mosqueService := services.NewMosqueService(mosqueRepo, halqaRepo, directoryRepo)
	halqaService := services.NewHalqaService(halqaRepo, directoryRepo)
	membershipService := services.NewMembershipService(userRepo, mosqueRepo, halqaRepo, membershipRepo)
	takajaService := services.NewTakajaService(takajaRepo, halqaRepo, userRepo)
	settingsService := services.NewSettingsService(settingRepo)
	transferService := services.NewTransferService(db, directoryRepo)

	if err := settingsService.Load(); err != nil {
		log.Fatal("failed to load settings", zap.Error(err))
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	directoryHandler := handlers.NewDirectoryHandler(directoryRepo)
	memberHandler := handlers.NewMemberHandler(memberService, membershipService)
	mosqueHandler := handlers.NewMosqueHandler(mosqueService, membershipService)
	halqaHandler := handlers.NewHalqaHandler(halqaService, membershipService)
	takajaHandler := handlers.NewTakajaHandler(takajaService)
	settingHandler := handlers.NewSettingHandler(settingsService)
	transferHandler := handlers.NewTransferHandler(transferService, settingsService)
	dashboardHandler := handlers.NewDashboardHandler(userRepo, mosqueRepo, halqaRepo, takajaRepo)

	r := gin.Default()

	// Session middleware backed by Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatal("failed to create redis session store", zap.Error(err))
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	r.GET("/health", func(c *gin.Context) {
		payload := gin.H{"status": "ok"}
		if title, ok := settingsService.Get("site_title"); ok {
			payload["site"] = title
		}
		c.JSON(200, payload)
	})

	requireStaff := middleware.RequireRole(models.RoleManager, models.RoleSuperAdmin)
	requireSuperAdmin := middleware.RequireRole(models.RoleSuperAdmin)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.Me)
		}

		// Thana/union directory (public reference data, used by the
		// registration form before any session exists)
		api.GET("/thanas", directoryHandler.ListThanas)
		api.GET("/unions", directoryHandler.ListUnions)

		// Members
		members := api.Group("/members")
		members.Use(middleware.RequireAuth())
		{
			members.GET("", memberHandler.List)
			members.POST("", requireStaff, memberHandler.Create)
			members.GET("/:id", memberHandler.Get)
			members.PUT("/:id", memberHandler.Update) // role rules enforced in the service
			members.DELETE("/:id", requireSuperAdmin, memberHandler.Delete)
			members.POST("/:id/assign-halqa", requireStaff, memberHandler.AssignHalqa)
			members.POST("/:id/assign-mosque", requireStaff, memberHandler.AssignMosque)
		}

		// Mosques
		mosques := api.Group("/mosques")
		mosques.Use(middleware.RequireAuth())
		{
			mosques.GET("", mosqueHandler.List)
			mosques.POST("", requireStaff, mosqueHandler.Create)
			mosques.GET("/:id", mosqueHandler.Get)
			mosques.PUT("/:id", requireStaff, mosqueHandler.Update)
			mosques.DELETE("/:id", requireStaff, mosqueHandler.Delete)
			mosques.POST("/:id/assign-halqa", requireStaff, mosqueHandler.AssignHalqa)
		}

		// Halqas
		halqas := api.Group("/halqas")
		halqas.Use(middleware.RequireAuth())
		{
			halqas.GET("", halqaHandler.List)
			halqas.POST("", requireStaff, halqaHandler.Create)
			halqas.GET("/:id", halqaHandler.Get)
			halqas.PUT("/:id", requireStaff, halqaHandler.Update)
			halqas.DELETE("/:id", requireStaff, halqaHandler.Delete)
			halqas.GET("/:id/candidate-members", requireStaff, halqaHandler.CandidateMembers)
			halqas.GET("/:id/candidate-mosques", requireStaff, halqaHandler.CandidateMosques)
		}

		// Takajas
		takajas := api.Group("/takajas")
		takajas.Use(middleware.RequireAuth())
		{
			takajas.GET("", takajaHandler.List)
			takajas.POST("", requireStaff, takajaHandler.Create)
			takajas.GET("/:id", takajaHandler.Get)
			takajas.POST("/:id/assign", requireStaff, takajaHandler.Assign)
			takajas.POST("/:id/complete", requireStaff, takajaHandler.Complete)
			takajas.DELETE("/:id", requireStaff, takajaHandler.Delete)
		}

		// Settings
		settings := api.Group("/settings")
		settings.Use(middleware.RequireAuth())
		{
			settings.GET("", settingHandler.List)
			settings.PUT("", requireSuperAdmin, settingHandler.Upsert)
		}

		// Dashboard
		api.GET("/dashboard/stats", middleware.RequireAuth(), requireStaff, dashboardHandler.Stats)

		// Bulk transfer
		importGroup := api.Group("/import")
		importGroup.Use(middleware.RequireAuth())
		{
			importGroup.POST("/members", requireStaff, transferHandler.ImportMembers)
			importGroup.POST("/mosques", requireStaff, transferHandler.ImportMosques)
			importGroup.POST("/halqas", requireStaff, transferHandler.ImportHalqas)
		}
		api.GET("/export", middleware.RequireAuth(), requireSuperAdmin, transferHandler.Export)
		api.POST("/import", middleware.RequireAuth(), requireSuperAdmin, transferHandler.Restore)
	}

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
