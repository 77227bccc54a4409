package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizdrill-api/internal/config"
	"github.com/yourusername/quizdrill-api/internal/handler"
	"github.com/yourusername/quizdrill-api/internal/middleware"
	pgRepo "github.com/yourusername/quizdrill-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizdrill-api/internal/repository/redis"
	"github.com/yourusername/quizdrill-api/internal/service"
	"github.com/yourusername/quizdrill-api/pkg/auth"
	"github.com/yourusername/quizdrill-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	sessionRepo := pgRepo.NewSessionRepo(db)
	answerRepo := pgRepo.NewAnswerRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	quizService := service.NewQuizService(quizRepo, questionRepo)
	sessionService := service.NewSessionService(sessionRepo, questionRepo, answerRepo)
	progressService := service.NewProgressService(answerRepo, questionRepo, sessionRepo, cacheRepo)
	statsService := service.NewStatsService(answerRepo, cacheRepo)

	// Инициализируем JWT и middleware
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	// Инициализируем обработчики
	quizHandler := handler.NewQuizHandler(quizService, sessionService, statsService)
	sessionHandler := handler.NewSessionHandler(sessionService, progressService, statsService, quizService)

	isProduction := gin.Mode() == gin.ReleaseMode

	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())
	{
		// Викторины
		quizzes := api.Group("/quizzes")
		{
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("", quizHandler.ListQuizzes)

			// Группа маршрутов, требующих quiz_id
			quizWithID := quizzes.Group("/:quiz_id")
			quizWithID.Use(middleware.ExtractUintParam("quiz_id", "quizID"))
			{
				quizWithID.GET("", quizHandler.GetQuiz)
				quizWithID.PUT("", quizHandler.RenameQuiz)
				quizWithID.DELETE("", quizHandler.DeleteQuiz)
				quizWithID.GET("/stats", quizHandler.GetQuizStats)
				quizWithID.GET("/sessions", quizHandler.ListSessions)
				quizWithID.POST("/sessions", sessionHandler.StartSession)
			}
		}

		// Сессии прохождения
		sessions := api.Group("/sessions")
		{
			sessions.GET("/resume/:token", sessionHandler.ResumeSession)

			sessionWithID := sessions.Group("/:session_id")
			sessionWithID.Use(middleware.ExtractUintParam("session_id", "sessionID"))
			{
				sessionWithID.GET("", sessionHandler.GetSession)
				sessionWithID.PUT("", sessionHandler.RenameSession)
				sessionWithID.DELETE("", sessionHandler.DeleteSession)
				sessionWithID.POST("/answers", sessionHandler.RecordAnswer)
				sessionWithID.POST("/bookmark", sessionHandler.ToggleBookmark)
				sessionWithID.POST("/retry-incorrect", sessionHandler.RetryIncorrect)
				sessionWithID.POST("/retry-bookmarked", sessionHandler.RetryBookmarked)
				sessionWithID.GET("/results", sessionHandler.GetSessionResults)
				sessionWithID.GET("/questions/:ordinal",
					middleware.ExtractUintParam("ordinal", "ordinal"), sessionHandler.GetQuestionAt)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown с таймаутом
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
