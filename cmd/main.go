package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mnhthng/ascent/config"
	"github.com/mnhthng/ascent/database"
	_ "github.com/mnhthng/ascent/docs"
	adminctrl "github.com/mnhthng/ascent/internal/controller/admin"
	userctrl "github.com/mnhthng/ascent/internal/controller/user"
	"github.com/mnhthng/ascent/internal/logger"
	"github.com/mnhthng/ascent/internal/model"
	"github.com/mnhthng/ascent/internal/repository"
	"github.com/mnhthng/ascent/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Ascent Adaptive Assessment API
// @version 1.0
// @description Test session lifecycle, adaptive question selection with AI backfill, objective auto-scoring and result materialization.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewSessionRepository,
			repository.NewAnswerRepository,
			repository.NewResultRepository,
			repository.NewProfileRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewLevelService,
			service.NewGeminiQuestionService,
			service.NewSessionService,
			service.NewAnswerService,
			func(
				sessionRepo repository.SessionRepository,
				questionRepo repository.QuestionRepository,
				answerRepo repository.AnswerRepository,
				resultRepo repository.ResultRepository,
				db *gorm.DB,
			) service.EvaluationService {
				return service.NewEvaluationService(sessionRepo, questionRepo, answerRepo, resultRepo, db)
			},
			service.NewProfileService,
			service.NewAdminQuestionService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewSessionController,
			userctrl.NewResultController,
			userctrl.NewProfileController,
			adminctrl.NewQuestionController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
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
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	sessionCtrl *userctrl.SessionController,
	resultCtrl *userctrl.ResultController,
	profileCtrl *userctrl.ProfileController,
	adminQuestionCtrl *adminctrl.QuestionController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		questionsAdminGroup := adminAPIGroup.Group("/questions")
		questionsAdminGroup.POST("", adminQuestionCtrl.SeedQuestions)
		questionsAdminGroup.GET("", adminQuestionCtrl.ListQuestions)
		questionsAdminGroup.DELETE("/:question_id", adminQuestionCtrl.DeactivateQuestion)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.GET("/profile", profileCtrl.GetProfile)
		userAPIGroup.PUT("/profile", profileCtrl.UpsertProfile)

		userAPIGroup.POST("/sessions", sessionCtrl.StartSession)
		userAPIGroup.GET("/sessions", sessionCtrl.GetMySessions)
		userAPIGroup.GET("/sessions/:session_id", sessionCtrl.GetSessionDetails)
		userAPIGroup.PUT("/sessions/:session_id/answers", sessionCtrl.RecordAnswer)

		userAPIGroup.POST("/sessions/:session_id/submit", resultCtrl.SubmitSession)
		userAPIGroup.POST("/sessions/:session_id/evaluate", resultCtrl.EvaluateSession)
		userAPIGroup.GET("/sessions/:session_id/result", resultCtrl.GetResult)
		userAPIGroup.GET("/sessions/:session_id/counselling", resultCtrl.GetCounsellingBundle)
		userAPIGroup.POST("/sessions/:session_id/counselling", resultCtrl.MarkCounsellingGenerated)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Assessment API server starting on port %s", cfg.Server.Port)
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

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Question{},
		&model.TestSession{},
		&model.Answer{},
		&model.TestResult{},
		&model.UserProfile{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}

	// One open session per user. AutoMigrate cannot express a partial
	// index, so it is created directly.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_in_progress_session_per_user
		 ON test_sessions (user_id)
		 WHERE status = 'in_progress' AND deleted_at IS NULL`,
	).Error; err != nil {
		log.Error().Err(err).Msg("Partial index creation failed")
		return err
	}

	log.Info().Msg("Database migration completed successfully.")
	return nil
}
