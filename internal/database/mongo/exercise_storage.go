package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/ExerciseTracker/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	UserID      string             `bson:"userId"`
	Description string             `bson:"description"`
	Duration    float64            `bson:"duration"`
	Date        time.Time          `bson:"date"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// ExerciseStorage реализует ports.ExerciseStorage поверх коллекции exercises
type ExerciseStorage struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

func NewExerciseStorage(db *mongo.Database, logger *slog.Logger) *ExerciseStorage {
	return &ExerciseStorage{coll: db.Collection(exercisesCollection), logger: logger}
}

func (s *ExerciseStorage) CreateExercise(ctx context.Context, exercise *domain.Exercise) error {
	start := time.Now()

	doc := exerciseDocument{
		ID:          primitive.NewObjectID(),
		UserID:      exercise.UserID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date.UTC(),
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		s.logger.Error("failed to save exercise", "user_id", exercise.UserID, "error", err)
		return fmt.Errorf("ошибка при сохранении упражнения в MongoDB: %w", err)
	}

	exercise.ID = doc.ID.Hex()
	exercise.CreatedAt = doc.CreatedAt
	s.logger.Info("exercise saved successfully",
		"id", exercise.ID,
		"user_id", exercise.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *ExerciseStorage) ListExercisesByUser(ctx context.Context, userID string, filter domain.LogFilter) ([]domain.LogEntry, error) {
	query := bson.D{{Key: "userId", Value: userID}}

	dateRange := bson.D{}
	if from := filter.LowerBound(); from != nil {
		dateRange = append(dateRange, bson.E{Key: "$gte", Value: *from})
	}
	if to := filter.UpperBound(); to != nil {
		dateRange = append(dateRange, bson.E{Key: "$lt", Value: *to})
	}
	if len(dateRange) > 0 {
		query = append(query, bson.E{Key: "date", Value: dateRange})
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.D{{Key: "_id", Value: 0}, {Key: "description", Value: 1}, {Key: "duration", Value: 1}, {Key: "date", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		s.logger.Error("failed to list exercises", "user_id", userID, "error", err)
		return nil, fmt.Errorf("ошибка при получении журнала упражнений из MongoDB: %w", err)
	}

	var docs []exerciseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("ошибка чтения курсора упражнений: %w", err)
	}

	entries := make([]domain.LogEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, domain.LogEntry{
			Description: d.Description,
			Duration:    d.Duration,
			Date:        d.Date.UTC(),
		})
	}
	return entries, nil
}
