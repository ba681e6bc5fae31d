package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

// InsertPen persists a new pen and returns it with the generated id.
func (r *Repository) InsertPen(ctx context.Context, pen models.Pen) (models.Pen, error) {
	res, err := r.collection(pensCollection).InsertOne(ctx, pen)
	if err != nil {
		return models.Pen{}, fmt.Errorf("insert pen: %w", mapError(err))
	}
	pen.ID = res.InsertedID.(primitive.ObjectID)
	return pen, nil
}

// FindPenByID looks a pen up by hex id.
func (r *Repository) FindPenByID(ctx context.Context, id string) (*models.Pen, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid pen id %q: %w", id, apperrors.ErrNotFound)
	}

	var pen models.Pen
	if err := r.collection(pensCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&pen); err != nil {
		return nil, fmt.Errorf("find pen %s: %w", id, mapError(err))
	}
	return &pen, nil
}

// ListPensByOwner returns every pen owned by the farmer, newest first.
func (r *Repository) ListPensByOwner(ctx context.Context, ownerID string) ([]models.Pen, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection(pensCollection).Find(ctx, bson.M{"owner": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list pens of %s: %w", ownerID, mapError(err))
	}
	defer cursor.Close(ctx)

	var pens []models.Pen
	if err := cursor.All(ctx, &pens); err != nil {
		return nil, fmt.Errorf("decode pens: %w", err)
	}
	return pens, nil
}

// UpdatePen replaces the mutable pen fields.
func (r *Repository) UpdatePen(ctx context.Context, pen models.Pen) error {
	set := bson.M{
		"name":          pen.Name,
		"bird_count":    pen.BirdCount,
		"type":          pen.Type,
		"age_weeks":     pen.AgeWeeks,
		"daily_egg_avg": pen.DailyEggAvg,
		"mortality":     pen.Mortality,
		"status":        pen.Status,
	}
	res, err := r.collection(pensCollection).UpdateByID(ctx, pen.ID, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update pen %s: %w", pen.ID.Hex(), mapError(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update pen %s: %w", pen.ID.Hex(), apperrors.ErrNotFound)
	}
	return nil
}

// DeletePen removes a pen by hex id.
func (r *Repository) DeletePen(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid pen id %q: %w", id, apperrors.ErrNotFound)
	}

	res, err := r.collection(pensCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete pen %s: %w", id, mapError(err))
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete pen %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
