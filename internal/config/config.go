package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL"`

	Mongo struct {
		URL      string `env:"MONGO_URL"`
		Database string `env:"MONGO_DATABASE" envDefault:"exercisetracker"`
	}

	ServerPort     string        `env:"SERVER_PORT" envDefault:"8080"`
	APIPrefix      string        `env:"API_PREFIX" envDefault:"/api/exercise"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"exercise_logged_queue"`
	}

	// Настройки для MinIO (архив упражнений)
	Minio struct {
		Endpoint        string `env:"MINIO_ENDPOINT"`
		AccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
		UseSSL          bool   `env:"MINIO_USE_SSL"`
		BucketName      string `env:"MINIO_BUCKET_NAME" envDefault:"exercise-archive"`
		Region          string `env:"MINIO_REGION" envDefault:"us-east-1"`
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
// Проверка зависит от режима запуска: Validate для сервера, ValidateWorker для воркера
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	return &cfg, nil
}

// Validate проверяет, что для выбранного бэкенда хранилища заданы параметры подключения.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for postgres storage backend")
		}
	case BackendMongo:
		if c.Mongo.URL == "" {
			return errors.New("MONGO_URL is required for mongo storage backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (use %q, %q or %q)", c.StorageBackend, BackendPostgres, BackendMongo, BackendMemory)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// RabbitMQEnabled сообщает, настроена ли публикация событий
func (c *Config) RabbitMQEnabled() bool {
	return c.RabbitMQ.RabbitMQURL != ""
}

// ValidateWorker проверяет параметры, обязательные для режима worker.
func (c *Config) ValidateWorker() error {
	if !c.RabbitMQEnabled() {
		return errors.New("RABBITMQ_URL is required in worker mode")
	}
	if c.Minio.Endpoint == "" || c.Minio.AccessKeyID == "" || c.Minio.SecretAccessKey == "" || c.Minio.BucketName == "" {
		return errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY_ID, MINIO_SECRET_ACCESS_KEY and MINIO_BUCKET_NAME are required in worker mode")
	}
	return nil
}
