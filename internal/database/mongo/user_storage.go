package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ExerciseTracker/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Username  string             `bson:"username"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d userDocument) toDomain() domain.User {
	return domain.User{ID: d.ID.Hex(), Username: d.Username, CreatedAt: d.CreatedAt}
}

// UserStorage реализует ports.UserStorage поверх коллекции users
type UserStorage struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

func NewUserStorage(db *mongo.Database, logger *slog.Logger) *UserStorage {
	return &UserStorage{coll: db.Collection(usersCollection), logger: logger}
}

// CreateUser вставляет документ пользователя; ID генерируется как ObjectID
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Username:  user.Username,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			s.logger.Warn("username already taken", "username", user.Username)
			return domain.ErrUsernameTaken
		}
		s.logger.Error("failed to insert user", "username", user.Username, "error", err)
		return fmt.Errorf("ошибка при сохранении пользователя в MongoDB: %w", err)
	}

	*user = doc.toDomain()
	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListUsers возвращает всех пользователей в порядке вставки (_id монотонен)
func (s *UserStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.D{{Key: "username", Value: 1}})

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("ошибка при получении списка пользователей из MongoDB: %w", err)
	}

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("ошибка чтения курсора пользователей: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

// GetUserByID ищет пользователя по hex-представлению ObjectID
func (s *UserStorage) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		s.logger.Warn("malformed user id", "user_id", id)
		return nil, nil
	}

	var doc userDocument
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warn("user not found by id", "user_id", id)
			return nil, nil
		}
		s.logger.Error("failed to get user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении пользователя из MongoDB: %w", err)
	}

	user := doc.toDomain()
	return &user, nil
}
