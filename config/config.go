package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	Env      string
	HTTPAddr string
	LogLevel string
	LogFile  string

	Mongo    MongoConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
	Client   ClientConfig
	Admin    AdminConfig

	ContentSvcURL  string
	ActivitySvcURL string
	SiteBaseURL    string
	UploadDir      string
	ListCacheTTL   time.Duration
}

type MongoConfig struct {
	URI       string
	Database  string
	OpTimeout time.Duration
}

type RedisConfig struct {
	Host string
	Port string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type KafkaConfig struct {
	Broker  string
	Topic   string
	GroupID string
}

// ClientConfig selects the resource client backend: "remote" talks to
// content-svc, "local" reads and writes the SQLite mirror only.
type ClientConfig struct {
	Backend    string
	Timeout    time.Duration
	MirrorPath string
}

type AdminConfig struct {
	Email    string
	Password string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8081"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
		Mongo: MongoConfig{
			URI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:  getEnv("MONGO_DB", "bella_vista"),
			OpTimeout: getDuration("MONGO_OP_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			Host: getEnv("REDIS_HOST", "localhost"),
			Port: getEnv("REDIS_PORT", "6379"),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "bella_vista"),
		},
		Kafka: KafkaConfig{
			Broker:  getEnv("KAFKA_BROKER", "localhost:9092"),
			Topic:   getEnv("KAFKA_TOPIC", "content-changes"),
			GroupID: getEnv("KAFKA_GROUP_ID", "activity-svc"),
		},
		Client: ClientConfig{
			Backend:    getEnv("CLIENT_BACKEND", "remote"),
			Timeout:    getDuration("CLIENT_TIMEOUT", 5*time.Second),
			MirrorPath: getEnv("MIRROR_PATH", "bella-vista-mirror.db"),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", "admin@restaurant.com"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		ContentSvcURL:  getEnv("CONTENT_SVC_URL", "http://localhost:8081"),
		ActivitySvcURL: getEnv("ACTIVITY_SVC_URL", "http://localhost:8083"),
		SiteBaseURL:    getEnv("SITE_BASE_URL", "http://localhost:8080"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		ListCacheTTL:   getDuration("LIST_CACHE_TTL", time.Minute),
	}
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Database)
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func OpenPostgres(cfg PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func OpenRedis(cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func NewKafkaReader(cfg KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
}

func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.Broker),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
