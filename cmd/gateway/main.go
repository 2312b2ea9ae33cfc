package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cms-backend/internal/config"
	delivery "cms-backend/internal/delivery/http"
	"cms-backend/internal/delivery/http/utils"
	"cms-backend/internal/repo"
	kafkarepo "cms-backend/internal/repo/kafka"
	"cms-backend/internal/repo/postgres"
	redisrepo "cms-backend/internal/repo/redis"
	"cms-backend/internal/usecase"
	"cms-backend/internal/usecase/service"
	"cms-backend/pkg/connector"
	"cms-backend/pkg/goosehelper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// postgres
	DBConn, err := connector.GetPostgresConnector(ctx, cfg.DBConnectDSN)
	if err != nil {
		log.Fatalf("Ошибка при подключении к базе данных: %v", err)
	}
	defer func() {
		if err := DBConn.Close(); err != nil {
			log.Errorf("Ошибка при закрытии соединения с базой данных: %v", err)
		}
	}()
	if err := goosehelper.MigrateUp(DBConn.DB, postgres.Migrations, postgres.MigrationsDir); err != nil {
		log.Fatalf("Ошибка при выполнении миграций: %v", err)
	}

	// запускаем сервисы репозиториев (подключение к базе данных)
	userRepo := postgres.NewUser(DBConn)
	postRepo := postgres.NewPost(DBConn)
	commentRepo := postgres.NewComment(DBConn)
	categoryRepo := postgres.NewCategory(DBConn)
	pageRepo := postgres.NewPage(DBConn)
	settingsRepo := postgres.NewSettings(DBConn)

	// kafka необязательна: без неё события не публикуются, а кэш живёт до истечения TTL
	var eventRepo repo.ContentEventRepository
	if len(cfg.KafkaBrokers) > 0 {
		eventRepo, err = kafkarepo.NewContentEventKafkaRepository(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("Ошибка при подключении к Kafka: %v", err)
		}
		defer func() {
			if err := eventRepo.Close(); err != nil {
				log.Errorf("Ошибка при закрытии соединения с Kafka: %v", err)
			}
		}()
	} else {
		log.Warn("KAFKA_BROKERS не задан, события контента не публикуются")
	}

	// запускаем сервисы usecase (бизнес-логика)
	store := repo.NewContentStore(postRepo, commentRepo, categoryRepo, pageRepo, userRepo)
	var dashboardUseCase usecase.Dashboard = service.NewDashboard(store)
	if cfg.RedisURL != "" {
		redisClient, err := connector.GetRedisConnector(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Ошибка при подключении к Redis: %v", err)
		}
		defer func() { _ = redisClient.Close() }()
		dashboardUseCase = service.NewCachedDashboard(dashboardUseCase, redisrepo.NewSnapshotCache(redisClient), cfg.CacheGranularity)
	} else {
		log.Warn("REDIS_URL не задан, снимки дашборда не кэшируются")
	}
	eventPublisher := service.NewEventPublisher(eventRepo)
	postUseCase := service.NewPost(postRepo, commentRepo, categoryRepo, userRepo, eventPublisher)
	commentUseCase := service.NewComment(commentRepo, postRepo, eventPublisher)
	categoryUseCase := service.NewCategory(categoryRepo, eventPublisher)
	pageUseCase := service.NewPage(pageRepo, eventPublisher)
	userUseCase := service.NewUser(userRepo, eventPublisher)
	settingsUseCase := service.NewSettings(settingsRepo, eventPublisher)

	// запускаем сервисы delivery (обработка запросов)
	cookieManager := utils.NewCookieManager(cfg.SecureCookies)
	authManager := utils.NewAuthManager([]byte(cfg.JWTSecret), userRepo, delivery.SessionLifetime)
	dashboardDelivery := delivery.NewDashboard(dashboardUseCase, userUseCase, authManager)
	postDelivery := delivery.NewPost(postUseCase, commentUseCase, authManager)
	categoryDelivery := delivery.NewCategory(categoryUseCase, postUseCase, authManager)
	pageDelivery := delivery.NewPage(pageUseCase, authManager)
	commentDelivery := delivery.NewComment(commentUseCase, authManager)
	userDelivery := delivery.NewUser(userUseCase, postUseCase, authManager, cookieManager)
	settingsDelivery := delivery.NewSettings(settingsUseCase, authManager)

	// REST API
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Logger.SetLevel(cfg.LogLevel)

	// Не более 10 МБ
	echoServer.Use(middleware.BodyLimit("10M"))
	// gzip на прием
	echoServer.Use(middleware.Decompress())
	// gzip на отдачу
	echoServer.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	// request id
	echoServer.Use(middleware.RequestID())
	echoServer.Use(middleware.Recover())

	// CORS
	echoServer.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPut,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderAccept,
			echo.HeaderXRequestedWith,
			echo.HeaderContentType,
			echo.HeaderAccessControlRequestMethod,
			echo.HeaderAccessControlRequestHeaders,
			echo.HeaderCookie,
			"X-Csrf",
		},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Endpoints
	echoServer.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	api := echoServer.Group("/api")
	// dashboard
	dashboardDelivery.Configure(api.Group("/dashboard"))
	dashboardDelivery.ConfigureAdmin(api.Group("/admin"))
	// posts
	postDelivery.Configure(api.Group("/posts"))
	// categories
	categoryDelivery.Configure(api.Group("/categories"))
	// pages
	pageDelivery.Configure(api.Group("/pages"))
	// comments
	commentDelivery.Configure(api.Group("/comments"))
	// users
	userDelivery.Configure(api.Group("/users"))
	// settings
	settingsDelivery.Configure(api.Group("/settings"))
	// uploads
	if cfg.Minio.Enabled() {
		minioClient, err := connector.GetMinioConnector(ctx, cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			log.Fatalf("Ошибка при подключении к MinIO: %v", err)
		}
		uploadRepo, err := postgres.NewUpload(DBConn, minioClient, cfg.Minio.Bucket)
		if err != nil {
			log.Fatalf("Ошибка при создании репозитория Upload: %v", err)
		}
		uploadDelivery := delivery.NewUpload(service.NewUpload(uploadRepo), authManager)
		uploadDelivery.Configure(api.Group("/upload"))
		uploadDelivery.ConfigureMedia(echoServer.Group("/media"))
	} else {
		log.Warn("MinIO не настроен, загрузка изображений отключена")
	}

	go func(server *echo.Echo) {
		if err := server.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Logger.Fatalf("Сервер завершил свою работу по причине: %v\n", err)
		}
	}(echoServer)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(10)*time.Second,
	)
	defer cancel()
	if err := echoServer.Shutdown(shutdownCtx); err != nil {
		echoServer.Logger.Errorf("Во время выключения сервера возникла ошибка: %s\n", err)
	}
	// события, начатые последними запросами, уходят в Kafka до закрытия соединения
	eventPublisher.Close()
}
