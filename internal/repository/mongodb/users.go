package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
	"github.com/mamadbah2/farmtrack/internal/domain/models"
)

// InsertUser persists a new user and returns it with the generated id.
// Duplicate email or username surfaces as apperrors.ErrConflict through the
// unique indexes.
func (r *Repository) InsertUser(ctx context.Context, user models.User) (models.User, error) {
	res, err := r.collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", mapError(err))
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

// FindUserByID looks a user up by hex id.
func (r *Repository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, apperrors.ErrNotFound)
	}

	var user models.User
	if err := r.collection(usersCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, mapError(err))
	}
	return &user, nil
}

// FindUserByEmail looks a user up by email.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, fmt.Errorf("find user by email: %w", mapError(err))
	}
	return &user, nil
}

// UpdateLastLogin stamps the login timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", id, err)
	}

	update := bson.M{"$set": bson.M{"last_login": at}}
	if _, err := r.collection(usersCollection).UpdateByID(ctx, oid, update); err != nil {
		return fmt.Errorf("update last login for %s: %w", id, mapError(err))
	}
	return nil
}

// AttachCapability stamps a redeemed access code's capability flag and the
// ownership link onto the user.
func (r *Repository) AttachCapability(ctx context.Context, userID string, codeType models.AccessCodeType, farmerID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	set := bson.M{"registered_by": farmerID}
	switch codeType {
	case models.AccessCodeWorker:
		set["is_worker"] = true
	case models.AccessCodeVet:
		set["is_vet"] = true
	default:
		return fmt.Errorf("unknown access code type %q", codeType)
	}

	if _, err := r.collection(usersCollection).UpdateByID(ctx, oid, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("attach capability to user %s: %w", userID, mapError(err))
	}
	return nil
}

// TeamMemberIDs returns the hex ids of every staff account the farmer
// registered. This is the farmer->staff adjacency built once per request.
func (r *Repository) TeamMemberIDs(ctx context.Context, farmerID string) ([]string, error) {
	cursor, err := r.collection(usersCollection).Find(ctx, bson.M{"registered_by": farmerID})
	if err != nil {
		return nil, fmt.Errorf("list team members of %s: %w", farmerID, mapError(err))
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var member models.User
		if err := cursor.Decode(&member); err != nil {
			return nil, fmt.Errorf("decode team member: %w", err)
		}
		ids = append(ids, member.ID.Hex())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate team members: %w", err)
	}
	return ids, nil
}

// ListFarmerIDs returns every primary account owner. Used by the daily
// roll-up job to iterate all farms.
func (r *Repository) ListFarmerIDs(ctx context.Context) ([]string, error) {
	filter := bson.M{"is_worker": false, "is_vet": false}
	cursor, err := r.collection(usersCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list farmers: %w", mapError(err))
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var farmer models.User
		if err := cursor.Decode(&farmer); err != nil {
			return nil, fmt.Errorf("decode farmer: %w", err)
		}
		ids = append(ids, farmer.ID.Hex())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate farmers: %w", err)
	}
	return ids, nil
}
