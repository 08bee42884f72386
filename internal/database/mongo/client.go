// Package mongo — хранилище пользователей и упражнений в MongoDB
// (документная база, на которой изначально работал сервис).
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection     = "users"
	exercisesCollection = "exercises"
)

// Client держит подключение к MongoDB и выбранную базу
type Client struct {
	client *mongo.Client
	DB     *mongo.Database
	logger *slog.Logger
}

// NewClient подключается к MongoDB и создаёт необходимые индексы
func NewClient(ctx context.Context, uri, database string, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		return nil, fmt.Errorf("ошибка подключения к MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		logger.Error("failed to ping MongoDB", "error", err)
		return nil, fmt.Errorf("MongoDB недоступна: %w", err)
	}

	c := &Client{client: client, DB: client.Database(database), logger: logger}
	if err := c.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("MongoDB connection established successfully",
		"database", database,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return c, nil
}

// EnsureIndexes создаёт уникальный индекс по username и индекс журнала упражнений.
// Операция идемпотентна
func (c *Client) EnsureIndexes(ctx context.Context) error {
	_, err := c.DB.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ошибка создания индекса users.username: %w", err)
	}

	_, err = c.DB.Collection(exercisesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("ошибка создания индекса exercises.userId: %w", err)
	}

	c.logger.Info("mongo indexes ensured")
	return nil
}

// Ping проверяет доступность MongoDB
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.client.Disconnect(ctx); err != nil {
		c.logger.Error("failed to disconnect from MongoDB", "error", err)
		return err
	}
	c.logger.Info("MongoDB connection closed")
	return nil
}
