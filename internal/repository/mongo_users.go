package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
)

// MongoUserRepo implements UserRepository over the users collection.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs the users repository.
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection(collUsers)}
}

var _ UserRepository = (*MongoUserRepo)(nil)

// userDoc mirrors domain.User but keeps the password field loosely typed:
// records written before the hash encoding was unified store it as raw bytes
// rather than a string.
type userDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	FirstName string        `bson:"firstName"`
	LastName  string        `bson:"lastName"`
	Email     string        `bson:"email"`
	Password  any           `bson:"password"`
	UserType  string        `bson:"userType"`
	Phone     string        `bson:"phone"`
	CreatedAt time.Time     `bson:"created_at"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: storedHash(d.Password),
		UserType:     d.UserType,
		Phone:        d.Phone,
		CreatedAt:    d.CreatedAt,
	}
}

func storedHash(v any) string {
	switch h := v.(type) {
	case string:
		return h
	case bson.Binary:
		return string(h.Data)
	case []byte:
		return string(h)
	}
	return ""
}

func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrUnknownAccount
		}
		return domain.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoUserRepo) FindByID(ctx context.Context, id bson.ObjectID) (domain.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrUnknownAccount
		}
		return domain.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoUserRepo) Insert(ctx context.Context, user domain.User) (bson.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bson.ObjectID{}, domain.ErrDuplicateAccount
		}
		return bson.ObjectID{}, fmt.Errorf("insert user: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	return id, nil
}

func (r *MongoUserRepo) UpdatePasswordHash(ctx context.Context, email, hash string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUnknownAccount
	}
	return nil
}

func (r *MongoUserRepo) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (r *MongoUserRepo) Count(ctx context.Context, userType string) (int64, error) {
	filter := bson.M{}
	if userType != "" {
		filter["userType"] = userType
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// MongoEnterpriseRepo implements EnterpriseRepository.
type MongoEnterpriseRepo struct {
	coll *mongo.Collection
}

// NewMongoEnterpriseRepo constructs the enterprise repository.
func NewMongoEnterpriseRepo(db *mongo.Database) *MongoEnterpriseRepo {
	return &MongoEnterpriseRepo{coll: db.Collection(collEnterprise)}
}

var _ EnterpriseRepository = (*MongoEnterpriseRepo)(nil)

func (r *MongoEnterpriseRepo) Insert(ctx context.Context, ent domain.Enterprise) error {
	if _, err := r.coll.InsertOne(ctx, ent); err != nil {
		return fmt.Errorf("insert enterprise: %w", err)
	}
	return nil
}

// MongoProfileRepo implements ProfileRepository.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo constructs the profiles repository.
func NewMongoProfileRepo(db *mongo.Database) *MongoProfileRepo {
	return &MongoProfileRepo{coll: db.Collection(collProfiles)}
}

var _ ProfileRepository = (*MongoProfileRepo)(nil)

func (r *MongoProfileRepo) Insert(ctx context.Context, profile domain.Profile) error {
	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *MongoProfileRepo) FindByEmail(ctx context.Context, email string) (domain.Profile, error) {
	var profile domain.Profile
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, fmt.Errorf("find profile: %w", err)
	}
	return profile, nil
}

// UpsertSection merges one wizard section into the caller's profile document,
// creating the document if the account predates profile seeding.
func (r *MongoProfileRepo) UpsertSection(ctx context.Context, email string, fields map[string]any) error {
	now := time.Now().UTC()
	set := bson.M{"updated_at": now}
	for k, v := range fields {
		set[k] = v
	}

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert profile section: %w", err)
	}
	return nil
}
