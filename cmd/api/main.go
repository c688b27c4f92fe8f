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

	"github.com/yourusername/dailyquiz-api/internal/config"
	"github.com/yourusername/dailyquiz-api/internal/domain/entity"
	"github.com/yourusername/dailyquiz-api/internal/handler"
	"github.com/yourusername/dailyquiz-api/internal/middleware"
	pgRepo "github.com/yourusername/dailyquiz-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/dailyquiz-api/internal/repository/redis"
	"github.com/yourusername/dailyquiz-api/internal/service"
	ws "github.com/yourusername/dailyquiz-api/internal/websocket"
	"github.com/yourusername/dailyquiz-api/pkg/auth"
	"github.com/yourusername/dailyquiz-api/pkg/database"
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
	questionRepo := pgRepo.NewQuestionRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Контекст завершения для фоновых горутин
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем WebSocket hub для живого дашборда преподавателя
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)
	wsManager := ws.NewManager(wsHub)

	// Инициализируем сервис отправки писем
	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
		log.Println("Email service enabled (Resend)")
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	userService := service.NewUserService(userRepo)
	quizService := service.NewQuizService(quizRepo, questionRepo, cacheRepo)
	attemptService := service.NewAttemptService(quizRepo, questionRepo, attemptRepo, cacheRepo, wsManager)
	reportService := service.NewReportService(userRepo, attemptRepo)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	quizHandler := handler.NewQuizHandler(quizService, attemptService)
	reportHandler := handler.NewReportHandler(reportService, emailService)
	wsHandler := handler.NewWSHandler(wsHub, jwtService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

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
			authGroup.POST("/login", rateLimiter.Limit(middleware.LoginRateLimitConfig()), authHandler.Login)

			authedAuth := authGroup.Group("/")
			authedAuth.Use(authMiddleware.RequireAuth())
			{
				authedAuth.POST("/logout", authHandler.Logout)
				authedAuth.GET("/me", authHandler.GetMe)
			}
		}

		// Управление пользователями (только администратор)
		usersGroup := api.Group("/users")
		usersGroup.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin))
		{
			usersGroup.POST("", userHandler.CreateUser)
			usersGroup.GET("", userHandler.ListUsers)
			usersGroup.GET("/:id", middleware.ExtractUintParam("id", "userID"), userHandler.GetUser)
			usersGroup.DELETE("/:id", middleware.ExtractUintParam("id", "userID"), userHandler.DeleteUser)
		}

		// Банк вопросов (только администратор)
		questionsGroup := api.Group("/questions")
		questionsGroup.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleAdmin))
		{
			questionsGroup.POST("", quizHandler.CreateQuestion)
			questionsGroup.GET("", quizHandler.ListQuestions)
			questionsGroup.GET("/:id", middleware.ExtractUintParam("id", "questionID"), quizHandler.GetQuestion)
			questionsGroup.DELETE("/:id", middleware.ExtractUintParam("id", "questionID"), quizHandler.DeleteQuestion)
		}

		// Викторины
		quizzesGroup := api.Group("/quizzes")
		quizzesGroup.Use(authMiddleware.RequireAuth())
		{
			// Дневная викторина и попытка студента
			quizzesGroup.GET("/today", quizHandler.GetTodayQuiz)
			quizzesGroup.POST("/submit", quizHandler.SubmitAttempt)

			// Планирование (только администратор)
			adminOnly := authMiddleware.RequireRole(entity.RoleAdmin)
			quizzesGroup.POST("", adminOnly, quizHandler.ScheduleQuiz)
			quizzesGroup.GET("", adminOnly, quizHandler.ListQuizzes)
			quizzesGroup.GET("/:id", adminOnly, middleware.ExtractUintParam("id", "quizID"), quizHandler.GetQuiz)
			quizzesGroup.DELETE("/:id", adminOnly, middleware.ExtractUintParam("id", "quizID"), quizHandler.DeleteQuiz)
		}

		// Попытки аутентифицированного студента
		api.GET("/attempts/my", authMiddleware.RequireAuth(), quizHandler.MyAttempts)

		// Отчёты (преподаватель и администратор)
		reportsGroup := api.Group("/reports")
		reportsGroup.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(entity.RoleFaculty, entity.RoleAdmin))
		{
			reportsGroup.GET("/performance", reportHandler.GetPerformanceReport)
			reportsGroup.GET("/performance/export", reportHandler.ExportPerformanceReport)
			reportsGroup.POST("/performance/email", reportHandler.EmailPerformanceReport)
		}
	}

	// WebSocket маршрут (токен проверяется в обработчике)
	router.GET("/ws", wsHandler.HandleConnection)

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

	// Отправляем сигнал завершения для всех горутин
	cancel()

	// Контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
