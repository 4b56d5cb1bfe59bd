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

	"github.com/yourusername/quizhub-api/internal/config"
	"github.com/yourusername/quizhub-api/internal/handler"
	"github.com/yourusername/quizhub-api/internal/middleware"
	pgRepo "github.com/yourusername/quizhub-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizhub-api/internal/repository/redis"
	"github.com/yourusername/quizhub-api/internal/service"
	ws "github.com/yourusername/quizhub-api/internal/websocket"
	"github.com/yourusername/quizhub-api/pkg/auth"
	"github.com/yourusername/quizhub-api/pkg/database"
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
	userRepo := pgRepo.NewUserRepo(db)
	followRepo := pgRepo.NewFollowRepo(db)
	badgeRepo := pgRepo.NewBadgeRepo(db)
	keywordRepo := pgRepo.NewKeywordRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)
	reportRepo := pgRepo.NewReportRepo(db)
	chatRepo := pgRepo.NewChatRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT-сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	keywordService := service.NewKeywordService(keywordRepo, cacheRepo, cfg.Moderation.CacheTTLSec)
	badgeService := service.NewBadgeService(badgeRepo, userRepo, resultRepo)
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, followRepo, resultRepo, quizRepo, badgeRepo, keywordService)
	quizService := service.NewQuizService(quizRepo, questionRepo, keywordService)
	resultService := service.NewResultService(resultRepo, quizRepo, questionRepo, userRepo, badgeService)
	categoryService := service.NewCategoryService(categoryRepo, keywordService)
	chatService := service.NewChatService(chatRepo, followRepo, userRepo, keywordService)
	reportService := service.NewReportService(reportRepo, questionRepo, quizRepo, keywordService)
	analyticsService := service.NewAnalyticsService(resultRepo, quizRepo, reportRepo)

	// Сидируем каталоги бейджей и категорий
	if err := badgeService.SeedDefaultBadges(); err != nil {
		log.Printf("Failed to seed badges: %v", err)
		os.Exit(1)
	}
	if err := categoryService.SeedDefaultCategories(); err != nil {
		log.Printf("Failed to seed categories: %v", err)
		os.Exit(1)
	}

	// Контекст жизненного цикла фоновых горутин
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запускаем фоновую задачу автозакрытия просроченных жалоб
	expireInterval := time.Duration(cfg.Reports.ExpireIntervalMin) * time.Minute
	if expireInterval <= 0 {
		expireInterval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(expireInterval)
		defer ticker.Stop()

		log.Printf("Запуск механизма автозакрытия просроченных жалоб (интервал %s)", expireInterval)

		for {
			select {
			case <-ticker.C:
				if _, err := reportService.ExpireOverdue(); err != nil {
					log.Printf("Ошибка автозакрытия жалоб: %v", err)
				}
			case <-ctx.Done():
				log.Println("Завершение работы горутины автозакрытия жалоб")
				return
			}
		}
	}()

	// Запускаем WebSocket-хаб чатов
	hub := ws.NewHub()
	go hub.Run()

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService, badgeService)
	quizHandler := handler.NewQuizHandler(quizService, resultService, userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	reportHandler := handler.NewReportHandler(reportService)
	keywordHandler := handler.NewKeywordHandler(keywordService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, userService)
	chatHandler := handler.NewChatHandler(chatService, hub)

	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.Default()

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
		}

		// Публичный лидерборд и каталог бейджей
		api.GET("/leaderboard", userHandler.Leaderboard)
		api.GET("/badges", userHandler.ListBadgeCatalog)

		// Пользователи и подписки
		users := api.Group("/users", authMiddleware.RequireAuth())
		{
			users.GET("/discover", userHandler.Discover)
			users.PUT("/me", userHandler.UpdateProfile)
			users.GET("/me/results", quizHandler.GetMyResults)

			userWithID := users.Group("/:id", middleware.ExtractUintParam("id", "userID"))
			{
				userWithID.GET("", userHandler.GetProfile)
				userWithID.GET("/badges", userHandler.GetUserBadges)
				userWithID.POST("/follow", userHandler.Follow)
				userWithID.DELETE("/follow", userHandler.Unfollow)
				userWithID.DELETE("/follower", userHandler.RemoveFollower)
				userWithID.GET("/followers", userHandler.GetFollowers)
				userWithID.GET("/following", userHandler.GetFollowing)
			}
		}

		// Викторины
		quizzes := api.Group("/quizzes", authMiddleware.RequireAuth())
		{
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("", quizHandler.ListQuizzes)

			quizWithID := quizzes.Group("/:id", middleware.ExtractUintParam("id", "quizID"))
			{
				quizWithID.GET("", quizHandler.GetQuiz)
				quizWithID.DELETE("", quizHandler.DeleteQuiz)
				quizWithID.POST("/questions", quizHandler.AddQuestion)
				quizWithID.GET("/questions", quizHandler.GetQuestions)
				quizWithID.POST("/submit", quizHandler.SubmitQuiz)
				quizWithID.GET("/results", quizHandler.GetQuizResults)

				// Аналитика для автора
				quizWithID.GET("/stats", analyticsHandler.GetQuizStats)
				quizWithID.GET("/stats/growth", analyticsHandler.GetParticipantGrowth)
				quizWithID.GET("/stats/attempts", analyticsHandler.GetAttemptsOverTime)
				quizWithID.GET("/export", analyticsHandler.ExportQuizResults)
			}
		}

		// Категории
		categories := api.Group("/categories", authMiddleware.RequireAuth())
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("/followed", categoryHandler.ListFollowedCategories)

			categoryWithID := categories.Group("/:id", middleware.ExtractUintParam("id", "categoryID"))
			{
				categoryWithID.POST("/follow", categoryHandler.FollowCategory)
				categoryWithID.DELETE("/follow", categoryHandler.UnfollowCategory)
			}
		}

		// Жалобы на вопросы
		questions := api.Group("/questions", authMiddleware.RequireAuth())
		{
			questions.POST("/:id/report",
				middleware.ExtractUintParam("id", "questionID"), reportHandler.CreateReport)
		}

		reports := api.Group("/reports", authMiddleware.RequireAuth())
		{
			reports.GET("", reportHandler.ListReports)

			reportWithID := reports.Group("/:id", middleware.ExtractUintParam("id", "reportID"))
			{
				reportWithID.POST("/fix", reportHandler.FixQuestion)
				reportWithID.POST("/ignore", reportHandler.IgnoreReport)
				reportWithID.POST("/delete-question", reportHandler.DeleteQuestion)
			}
		}

		// Чаты
		chats := api.Group("/chats", authMiddleware.RequireAuth())
		{
			chats.POST("", chatHandler.OpenChat)
			chats.GET("", chatHandler.ListChats)

			chatWithID := chats.Group("/:id", middleware.ExtractUintParam("id", "chatID"))
			{
				chatWithID.GET("/messages", chatHandler.GetMessages)
				chatWithID.POST("/messages", chatHandler.SendMessage)
				chatWithID.GET("/ws", chatHandler.ServeWS)
			}
		}

		// Административный каталог запрещенных слов
		admin := api.Group("/admin", authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.GET("/keywords", keywordHandler.ListKeywords)
			admin.POST("/keywords", keywordHandler.AddKeyword)
			admin.DELETE("/keywords/:id",
				middleware.ExtractUintParam("id", "keywordID"), keywordHandler.DeleteKeyword)
		}
	}

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

	// Отправляем сигнал завершения фоновым горутинам
	cancel()

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
