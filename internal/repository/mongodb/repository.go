package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/farmtrack/internal/apperrors"
)

const (
	usersCollection       = "users"
	pensCollection        = "pens"
	recordsCollection     = "records"
	dailyLogsCollection   = "daily_logs"
	accessCodesCollection = "access_codes"
	reportsCollection     = "daily_reports"
)

// Repository bundles all MongoDB-backed stores behind one connection.
type Repository struct {
	client *mongo.Client
	dbName string
}

// NewRepository connects to MongoDB and verifies the connection.
func NewRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, dbName: dbName}, nil
}

// EnsureIndexes creates the unique indexes the data model relies on. Safe to
// call on every startup.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	users := r.collection(usersCollection)
	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "registered_by", Value: 1}}},
	}
	if _, err := users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	codes := r.collection(accessCodesCollection)
	codeIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
	}
	if _, err := codes.Indexes().CreateMany(ctx, codeIndexes); err != nil {
		return fmt.Errorf("create access code indexes: %w", err)
	}

	for _, name := range []string{recordsCollection, dailyLogsCollection} {
		coll := r.collection(name)
		ownerDate := []mongo.IndexModel{
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "date", Value: 1}}},
		}
		if _, err := coll.Indexes().CreateMany(ctx, ownerDate); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}

	return nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// mapError translates driver errors into the application error taxonomy.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return apperrors.ErrConflict
	default:
		return err
	}
}
