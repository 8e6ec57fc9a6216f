package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"github.com/aalkhodiry/ikhtibar/config"
	"github.com/aalkhodiry/ikhtibar/database"
	_ "github.com/aalkhodiry/ikhtibar/docs" // Swagger docs - auto-generated
	"github.com/aalkhodiry/ikhtibar/internal/controller"
	adminctrl "github.com/aalkhodiry/ikhtibar/internal/controller/admin"
	userctrl "github.com/aalkhodiry/ikhtibar/internal/controller/user"
	"github.com/aalkhodiry/ikhtibar/internal/logger"
	"github.com/aalkhodiry/ikhtibar/internal/repository"
	"github.com/aalkhodiry/ikhtibar/internal/service"
)

// @title Unified Informatics Exam API
// @version 1.0
// @description Exam lifecycle, question bank and account management API.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			NewStorageRepository, // Provides repository.StorageRepository
			NewGinEngine,         // Provides *gin.Engine
		),

		// Services Layer
		fx.Provide(
			service.NewQuestionBankService,
			service.NewUserStatsService,
			service.NewAuthService,
			service.NewGeminiQuestionGenerator,
			service.NewAcquisitionService,
			service.NewExamSessionService,
			service.NewPDFTextExtractor,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewExamController,
			userctrl.NewBankController,
			userctrl.NewAuthController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(SeedDemoAccounts),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

// NewStorageRepository picks the durable key-value backend: Postgres when
// configured, an in-memory store otherwise so a local boot without a
// database still serves Standard exams.
func NewStorageRepository(cfg *config.Config) (repository.StorageRepository, error) {
	if cfg.Database.Host == "" {
		log.Warn().Msg("DATABASE_HOST is not set. Falling back to in-memory storage; nothing survives a restart.")
		return repository.NewMemoryStorageRepository(), nil
	}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		return nil, err
	}
	return repository.NewStorageRepository(db), nil
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Route gin's request log through zerolog.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func SeedDemoAccounts(authSvc service.AuthService) error {
	return authSvc.SeedDemoAccounts()
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authSvc service.AuthService,
	examCtrl *userctrl.ExamController,
	bankCtrl *userctrl.BankController,
	authCtrl *userctrl.AuthController,
	adminCtrl *adminctrl.AdminController,
) {
	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/logout", authCtrl.Logout)

		me := auth.Group("", controller.AuthRequired(authSvc))
		me.GET("/me", authCtrl.Me)
		me.GET("/me/stats", authCtrl.MyStats)
		me.DELETE("/me/stats", authCtrl.ResetMyStats)

		exam := api.Group("/exam", controller.OptionalAuth(authSvc))
		exam.GET("", examCtrl.GetSession)
		exam.POST("/start", examCtrl.StartExam)
		exam.POST("/answers", examCtrl.SubmitAnswer)
		exam.POST("/submit", examCtrl.SubmitExam)
		exam.POST("/review", examCtrl.ReviewExam)
		exam.POST("/restart", examCtrl.RestartExam)

		bank := api.Group("/bank", controller.AuthRequired(authSvc))
		bank.GET("", bankCtrl.GetBank)
		bank.DELETE("", bankCtrl.ClearBank)

		bankAdmin := bank.Group("", controller.AdminRequired())
		bankAdmin.PUT("", bankCtrl.ReplaceBank)
		bankAdmin.PUT("/:id", bankCtrl.UpdateQuestion)
		bankAdmin.DELETE("/:id", bankCtrl.DeleteQuestion)

		admin := api.Group("/admin", controller.AuthRequired(authSvc), controller.AdminRequired())
		admin.GET("/dashboard", adminCtrl.GetDashboardStats)
		admin.GET("/users", adminCtrl.ListUsers)
		admin.PUT("/users/:id", adminCtrl.UpdateUser)
		admin.DELETE("/users/:id", adminCtrl.DeleteUser)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
