package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

// InsertAccessCode persists a freshly generated invitation code.
func (r *Repository) InsertAccessCode(ctx context.Context, code models.AccessCode) (models.AccessCode, error) {
	res, err := r.collection(accessCodesCollection).InsertOne(ctx, code)
	if err != nil {
		return models.AccessCode{}, fmt.Errorf("insert access code: %w", mapError(err))
	}
	code.ID = res.InsertedID.(primitive.ObjectID)
	return code, nil
}

// FindUnusedCode returns the matching code only if it has not been redeemed.
// A used or unknown code is apperrors.ErrNotFound either way; callers cannot
// distinguish them, which keeps redeemed codes unguessable.
func (r *Repository) FindUnusedCode(ctx context.Context, code string) (*models.AccessCode, error) {
	filter := bson.M{"code": code, "used": false}

	var found models.AccessCode
	if err := r.collection(accessCodesCollection).FindOne(ctx, filter).Decode(&found); err != nil {
		return nil, fmt.Errorf("find access code: %w", mapError(err))
	}
	return &found, nil
}

// ConsumeCode atomically flips an unused, unexpired code to used and returns
// it. The used=false condition in the filter is what makes concurrent
// redemptions safe: exactly one caller wins, the rest get ErrNotFound.
func (r *Repository) ConsumeCode(ctx context.Context, code string, userID string, now time.Time) (*models.AccessCode, error) {
	filter := bson.M{
		"code":       code,
		"used":       false,
		"expires_at": bson.M{"$gt": now},
	}
	update := bson.M{"$set": bson.M{
		"used":    true,
		"used_by": userID,
		"used_at": now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var consumed models.AccessCode
	err := r.collection(accessCodesCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&consumed)
	if err != nil {
		return nil, fmt.Errorf("consume access code: %w", mapError(err))
	}
	return &consumed, nil
}

// ListCodesByFarmer returns every code the farmer has issued, newest first.
func (r *Repository) ListCodesByFarmer(ctx context.Context, farmerID string) ([]models.AccessCode, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection(accessCodesCollection).Find(ctx, bson.M{"generated_by": farmerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list access codes of %s: %w", farmerID, mapError(err))
	}
	defer cursor.Close(ctx)

	var codes []models.AccessCode
	if err := cursor.All(ctx, &codes); err != nil {
		return nil, fmt.Errorf("decode access codes: %w", err)
	}
	return codes, nil
}
