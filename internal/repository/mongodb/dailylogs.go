package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

// InsertDailyLog persists a field entry and returns it with the generated id.
func (r *Repository) InsertDailyLog(ctx context.Context, log models.DailyLog) (models.DailyLog, error) {
	res, err := r.collection(dailyLogsCollection).InsertOne(ctx, log)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("insert daily log: %w", mapError(err))
	}
	log.ID = res.InsertedID.(primitive.ObjectID)
	return log, nil
}

// FindDailyLogByID looks a field entry up by hex id.
func (r *Repository) FindDailyLogByID(ctx context.Context, id string) (*models.DailyLog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid daily log id %q: %w", id, apperrors.ErrNotFound)
	}

	var log models.DailyLog
	if err := r.collection(dailyLogsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&log); err != nil {
		return nil, fmt.Errorf("find daily log %s: %w", id, mapError(err))
	}
	return &log, nil
}

// ListDailyLogsByOwners returns the field entries of the given owners,
// date-ascending, optionally bounded to a window.
func (r *Repository) ListDailyLogsByOwners(ctx context.Context, ownerIDs []string, start, end time.Time) ([]models.DailyLog, error) {
	filter := ownedInWindow(ownerIDs, start, end)
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection(dailyLogsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", mapError(err))
	}
	defer cursor.Close(ctx)

	var logs []models.DailyLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decode daily logs: %w", err)
	}
	return logs, nil
}

// UpdateDailyLog replaces the mutable field-entry values.
func (r *Repository) UpdateDailyLog(ctx context.Context, log models.DailyLog) error {
	set := bson.M{
		"date":           log.Date,
		"pen_id":         log.PenID,
		"eggs_collected": log.EggsCollected,
		"poultry_deaths": log.PoultryDeaths,
		"poultry_sold":   log.PoultrySold,
		"sales_amount":   log.SalesAmount,
	}
	res, err := r.collection(dailyLogsCollection).UpdateByID(ctx, log.ID, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update daily log %s: %w", log.ID.Hex(), mapError(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update daily log %s: %w", log.ID.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// DeleteDailyLog removes a field entry by hex id.
func (r *Repository) DeleteDailyLog(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid daily log id %q: %w", id, apperrors.ErrNotFound)
	}

	res, err := r.collection(dailyLogsCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete daily log %s: %w", id, mapError(err))
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete daily log %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
