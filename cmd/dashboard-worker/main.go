package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/gommon/log"

	"cms-backend/internal/config"
	"cms-backend/internal/repo"
	kafkarepo "cms-backend/internal/repo/kafka"
	"cms-backend/internal/repo/postgres"
	redisrepo "cms-backend/internal/repo/redis"
	"cms-backend/internal/usecase/service"
	"cms-backend/pkg/connector"
	"cms-backend/pkg/retry"
)

func main() {
	// Настройка контекста для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)
	// без кэша воркеру нечего прогревать и сбрасывать
	if cfg.RedisURL == "" {
		log.Fatal("REDIS_URL переменная окружения обязательна")
	}

	log.Infof("Запуск воркера дашборда с ID: %s, интервал: %s", cfg.WorkerID, cfg.WorkerInterval)

	// Подключение к базе данных. Воркер может подняться раньше базы, поэтому пробуем несколько раз
	var dbConn *sqlx.DB
	err = retry.Retry(func() error {
		dbConn, err = connector.GetPostgresConnector(ctx, cfg.DBConnectDSN)
		return err
	})
	if err != nil {
		log.Fatalf("Ошибка при подключении к базе данных: %v", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			log.Errorf("Ошибка при закрытии соединения с базой данных: %v", err)
		}
	}()

	var redisClient *redis.Client
	err = retry.Retry(func() error {
		redisClient, err = connector.GetRedisConnector(ctx, cfg.RedisURL)
		return err
	})
	if err != nil {
		log.Fatalf("Ошибка при подключении к Redis: %v", err)
	}
	defer func() { _ = redisClient.Close() }()

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
		log.Warn("KAFKA_BROKERS не задан, кэш обновляется только по таймеру")
	}

	// Инициализация репозиториев
	store := repo.NewContentStore(
		postgres.NewPost(dbConn),
		postgres.NewComment(dbConn),
		postgres.NewCategory(dbConn),
		postgres.NewPage(dbConn),
		postgres.NewUser(dbConn),
	)
	dashboard := service.NewCachedDashboard(
		service.NewDashboard(store),
		redisrepo.NewSnapshotCache(redisClient),
		cfg.CacheGranularity,
	)

	// Создание и запуск воркера
	dashboardWorker := service.NewDashboardWorker(dashboard, eventRepo, cfg.WorkerID, cfg.WorkerInterval)

	log.Info("Воркер дашборда запущен")
	dashboardWorker.Start(ctx)
	log.Info("Воркер дашборда остановлен")
}
