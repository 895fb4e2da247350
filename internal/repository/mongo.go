package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names, matching the documents the platform has always written.
const (
	collUsers       = "users"
	collEnterprise  = "enterprise"
	collProfiles    = "profiles"
	collArticles    = "submitted_articles"
	collCards       = "article_cards"
	collFeatured    = "featured_articles"
	collMCQ         = "mcq_questions"
	collProgress    = "training_progress"
	collJDs         = "jd_questions"
	collResponses   = "interview_responses"
	collAssignments = "interview_user"
)

// Connect establishes and verifies the MongoDB client.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the store-level constraints the services rely on.
// The unique index on users.email is the authoritative defense against
// duplicate-account races; the application-level existence check is only a
// fast path.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := []struct {
		coll  string
		field string
	}{
		{collUsers, "email"},
		{collProfiles, "email"},
		{collProgress, "email"},
		{collArticles, "article_id"},
	}

	for _, idx := range unique {
		_, err := db.Collection(idx.coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: idx.field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("create unique index %s.%s: %w", idx.coll, idx.field, err)
		}
	}
	return nil
}
