package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/config"
	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/drinks-service/internal/app/drinks/handler"
	"drinkcatalog/drinks-service/internal/app/drinks/processor"
	"drinkcatalog/drinks-service/internal/app/drinks/repository"
	"drinkcatalog/drinks-service/internal/app/drinks/service"
	"drinkcatalog/drinks-service/internal/app/drinks/util"
	"drinkcatalog/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const serviceName = "drinks-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.App.LogLevel)
	if cfg.App.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.App.LogstashAddr, serviceName, cfg.App.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.App.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	// votes must exist before the pgx repository touches it
	if err := db.AutoMigrate(
		&entity.Brand{},
		&entity.Category{},
		&entity.Drink{},
		&entity.Vote{},
		&entity.FeaturedItem{},
		&entity.Rating{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}
	logger.Info().Str("database", cfg.Database.DBName).Msg("Connected to PostgreSQL")

	pool, err := connectPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create vote connection pool")
	}
	defer pool.Close()

	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().Str("database", cfg.MongoDB.Database).Msg("Connected to MongoDB")

	redisClient, err := util.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	locker := util.NewRedisDayLocker(redisClient, cfg.Redis.LockTTL, cfg.Redis.LockWait, cfg.Redis.LockBackoff)

	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().Str("topic", cfg.Kafka.Topic).Msg("Initialized Kafka producer")

	drinkRepo := repository.NewDrinkRepository(db)
	voteRepo := repository.NewVoteRepository(pool)
	featuredRepo := repository.NewFeaturedRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	reviewRepo := repository.NewReviewRepository(mongoClient.Database(cfg.MongoDB.Database))

	catalogService := service.NewCatalogService(drinkRepo)
	votingService := service.NewVotingService(voteRepo, drinkRepo, kafkaProducer)
	featuredService := service.NewFeaturedService(featuredRepo, drinkRepo, votingService, locker, nil, kafkaProducer)
	ratingService := service.NewRatingService(ratingRepo, kafkaProducer, cfg.Rating.AverageActiveOnly)
	reviewService := service.NewReviewService(reviewRepo, ratingRepo, kafkaProducer)

	scheduler := processor.NewCronScheduler(featuredService, cfg.App.Location)
	if err := scheduler.Start(ctx, cfg.Cron.RotateFeatured); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start cron scheduler")
	}
	defer scheduler.Stop()

	voteLimiter := handler.NewUserRateLimiter(cfg.Vote.RatePerMinute, cfg.Vote.Burst)
	voteLimiter.StartCleanup(10 * time.Minute)
	defer voteLimiter.Stop()

	router := handler.SetupRoutes(handler.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogService),
		Votes:    handler.NewVoteHandler(votingService, cfg.App.Location),
		Featured: handler.NewFeaturedHandler(featuredService, cfg.App.Location),
		Ratings:  handler.NewRatingHandler(ratingService),
		Reviews:  handler.NewReviewHandler(reviewService),
	}, handler.NewAuthMiddleware(cfg.JWT.Secret), voteLimiter)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("timezone", cfg.App.Location.String()).
			Msg("Starting Drinks Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Drinks Service...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Drinks Service stopped gracefully")
}

func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if err = sqlDB.Ping(); err == nil {
				sqlDB.SetMaxOpenConns(int(cfg.MaxConns))
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				return db, nil
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// connectPool opens the pgx pool used by the vote ledger. The schema already
// exists at this point, so one ping is enough.
func connectPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 5 * time.Minute
	poolConfig.MaxConnIdleTime = 1 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping pool: %w", err)
	}
	return pool, nil
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err = mongo.Connect(ctx, clientOptions)
		cancel()
		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = client.Ping(pingCtx, nil)
			pingCancel()
			if err == nil {
				return client, nil
			}
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}
