package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/mockinterview/config"
	"github.com/lshigami/mockinterview/database"
	_ "github.com/lshigami/mockinterview/docs" // Swagger docs
	"github.com/lshigami/mockinterview/internal/controller"
	authctrl "github.com/lshigami/mockinterview/internal/controller/auth"
	pagectrl "github.com/lshigami/mockinterview/internal/controller/page"
	userctrl "github.com/lshigami/mockinterview/internal/controller/user"
	"github.com/lshigami/mockinterview/internal/logger"
	"github.com/lshigami/mockinterview/internal/middleware"
	"github.com/lshigami/mockinterview/internal/model"
	"github.com/lshigami/mockinterview/internal/repository"
	"github.com/lshigami/mockinterview/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Mock Interview API
// @version 1.0
// @description AI mock-interview service: accounts, résumé-aware question generation, answer scoring and CV analysis.
// @contact.name API Support
// @host localhost:8000
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	logger.Init()

	app := fx.New(
		// Core
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewUserRepository,
			repository.NewInterviewRepository,
			repository.NewQuestionRepository,
		),

		// Services
		fx.Provide(
			service.NewTokenService,
			service.NewAuthService,
			service.NewResumeService,
			service.NewCVAnalyzerService,
			service.NewScoreSummaryService,
			service.NewGeminiLLMService,
			service.NewInterviewService,
			service.NewHealthService,
		),

		// Controllers
		fx.Provide(
			authctrl.NewAuthController,
			userctrl.NewInterviewController,
			userctrl.NewCVController,
			userctrl.NewProfileController,
			pagectrl.NewPageController,
			controller.NewHealthController,
		),

		fx.Invoke(logger.Configure),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()
	r.MaxMultipartMemory = cfg.Interview.MaxUploadBytes

	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("request_id", fmt.Sprint(param.Keys[middleware.RequestIDKey])).
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CorsAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !allowsAnyOrigin(cfg.Server.CorsAllowOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

// RegisterRoutesAndStartServer configures routes and manages the server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokens service.TokenService,
	authService service.AuthService,
	authCtrl *authctrl.AuthController,
	interviewCtrl *userctrl.InterviewController,
	cvCtrl *userctrl.CVController,
	profileCtrl *userctrl.ProfileController,
	pageCtrl *pagectrl.PageController,
	healthCtrl *controller.HealthController,
) error {
	router.GET("/health", healthCtrl.Health)
	router.GET("/ready", healthCtrl.Ready)

	router.POST("/signup", authCtrl.Signup)
	router.POST("/login", authCtrl.Login)

	authed := router.Group("/", middleware.RequireAuth(tokens, authService))
	{
		authed.GET("/me", profileCtrl.Me)

		authed.POST("/start-interview", interviewCtrl.StartInterview)
		authed.GET("/next-question", interviewCtrl.NextQuestion)
		authed.POST("/submit-answer", interviewCtrl.SubmitAnswer)
		authed.POST("/skip-question", interviewCtrl.SkipQuestion)
		authed.GET("/final-feedback", interviewCtrl.FinalFeedback)
		authed.POST("/end-interview", interviewCtrl.EndInterview)
		authed.GET("/my-interviews", interviewCtrl.MyInterviews)

		authed.POST("/cv-optimization/analyze", cvCtrl.Analyze)
	}

	if err := pageCtrl.RegisterRoutes(router); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Mock interview server starting on port %s", cfg.Server.Port)
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
	return nil
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Interview{},
		&model.Question{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
