package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all settings of the drinks service.
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Cron     CronConfig
	Rating   RatingConfig
	Vote     VoteConfig
}

type AppConfig struct {
	LogLevel     string
	LogstashAddr string
	Location     *time.Location // calendar days (votes, drink of the day) are computed in this zone
}

type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig - PostgreSQL holding the catalog, votes, featured items and ratings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	TimeZone string // session zone; must name the same zone as App.Location so date columns match DayOf
	MaxConns int32
}

// MongoDBConfig - document store for reviews.
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig - used only for the drink-of-the-day rotation lock.
type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	LockTTL     time.Duration
	LockWait    time.Duration
	LockBackoff time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string // VOTE_CAST, FEATURED_ROTATED, RATING_CREATED, REVIEW_ADDED
}

type JWTConfig struct {
	Secret string
}

type CronConfig struct {
	RotateFeatured string // five-field cron spec evaluated in App.Location
}

// RatingConfig controls how the average rating of a drink is computed.
type RatingConfig struct {
	AverageActiveOnly bool
}

// VoteConfig - per-user token bucket on POST /votes.
type VoteConfig struct {
	RatePerMinute int
	Burst         int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE value: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	activeOnly, err := strconv.ParseBool(getEnv("RATING_AVERAGE_ACTIVE_ONLY", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATING_AVERAGE_ACTIVE_ONLY value: %w", err)
	}

	return &Config{
		App: AppConfig{
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			LogstashAddr: getEnv("LOGSTASH_ADDR", ""),
			Location:     loc,
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8084"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "drinks_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			TimeZone: getEnv("DB_TIMEZONE", loc.String()),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 25)),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "drinks_reviews"),
		},
		Redis: RedisConfig{
			Host:        getEnv("REDIS_HOST", "localhost"),
			Port:        getEnv("REDIS_PORT", "6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          redisDB,
			LockTTL:     time.Duration(getEnvInt("ROTATION_LOCK_TTL_SECONDS", 30)) * time.Second,
			LockWait:    time.Duration(getEnvInt("ROTATION_LOCK_WAIT_SECONDS", 10)) * time.Second,
			LockBackoff: time.Duration(getEnvInt("ROTATION_LOCK_BACKOFF_MS", 100)) * time.Millisecond,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "drink_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Cron: CronConfig{
			RotateFeatured: getEnv("CRON_ROTATE_FEATURED", "1 0 * * *"),
		},
		Rating: RatingConfig{
			AverageActiveOnly: activeOnly,
		},
		Vote: VoteConfig{
			RatePerMinute: getEnvInt("VOTE_RATE_PER_MINUTE", 10),
			Burst:         getEnvInt("VOTE_RATE_BURST", 3),
		},
	}, nil
}

// DSN returns a libpq key/value connection string for gorm.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// URL returns the postgres:// form expected by pgxpool. Credentials and
// query values are escaped.
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.DBName,
		RawQuery: url.Values{
			"sslmode":  {c.SSLMode},
			"timezone": {c.TimeZone},
		}.Encode(),
	}
	return u.String()
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
