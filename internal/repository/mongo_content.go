package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
)

// MongoArticleRepo implements ArticleRepository over submitted_articles.
type MongoArticleRepo struct {
	coll *mongo.Collection
}

// NewMongoArticleRepo constructs the article repository.
func NewMongoArticleRepo(db *mongo.Database) *MongoArticleRepo {
	return &MongoArticleRepo{coll: db.Collection(collArticles)}
}

var _ ArticleRepository = (*MongoArticleRepo)(nil)

func (r *MongoArticleRepo) Upsert(ctx context.Context, article domain.Article) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"article_id": article.ArticleID},
		bson.M{"$set": bson.M{
			"article_id": article.ArticleID,
			"title":      article.Title,
			"content":    article.Content,
			"status":     article.Status,
		}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert article: %w", err)
	}
	return nil
}

func (r *MongoArticleRepo) FindByArticleID(ctx context.Context, articleID string) (domain.Article, error) {
	var article domain.Article
	err := r.coll.FindOne(ctx, bson.M{"article_id": articleID}).Decode(&article)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Article{}, domain.ErrNotFound
		}
		return domain.Article{}, fmt.Errorf("find article: %w", err)
	}
	return article, nil
}

func (r *MongoArticleRepo) UpdateContent(ctx context.Context, articleID, content string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"article_id": articleID},
		bson.M{"$set": bson.M{"content": content}},
	)
	if err != nil {
		return fmt.Errorf("update article content: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoArticleRepo) List(ctx context.Context) ([]domain.Article, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	var articles []domain.Article
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}
	return articles, nil
}

// MongoCardRepo implements CardRepository over article_cards and
// featured_articles.
type MongoCardRepo struct {
	cards    *mongo.Collection
	featured *mongo.Collection
}

// NewMongoCardRepo constructs the card repository.
func NewMongoCardRepo(db *mongo.Database) *MongoCardRepo {
	return &MongoCardRepo{
		cards:    db.Collection(collCards),
		featured: db.Collection(collFeatured),
	}
}

var _ CardRepository = (*MongoCardRepo)(nil)

func (r *MongoCardRepo) InsertCard(ctx context.Context, card domain.ArticleCard) error {
	if _, err := r.cards.InsertOne(ctx, card); err != nil {
		return fmt.Errorf("insert article card: %w", err)
	}
	return nil
}

func (r *MongoCardRepo) ListCards(ctx context.Context) ([]domain.ArticleCard, error) {
	cursor, err := r.cards.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list article cards: %w", err)
	}
	var cards []domain.ArticleCard
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("decode article cards: %w", err)
	}
	return cards, nil
}

func (r *MongoCardRepo) InsertFeatured(ctx context.Context, card domain.FeaturedCard) (bson.ObjectID, error) {
	res, err := r.featured.InsertOne(ctx, card)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("insert featured card: %w", err)
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("insert featured card: unexpected id type %T", res.InsertedID)
	}
	return id, nil
}

func (r *MongoCardRepo) ListFeatured(ctx context.Context) ([]domain.FeaturedCard, error) {
	cursor, err := r.featured.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list featured cards: %w", err)
	}
	var cards []domain.FeaturedCard
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("decode featured cards: %w", err)
	}
	return cards, nil
}

// MongoMCQRepo implements MCQRepository over the question bank.
type MongoMCQRepo struct {
	coll *mongo.Collection
}

// NewMongoMCQRepo constructs the MCQ repository.
func NewMongoMCQRepo(db *mongo.Database) *MongoMCQRepo {
	return &MongoMCQRepo{coll: db.Collection(collMCQ)}
}

var _ MCQRepository = (*MongoMCQRepo)(nil)

func (r *MongoMCQRepo) FindByCategory(ctx context.Context, category string) ([]domain.MCQQuestion, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	return r.find(ctx, filter)
}

func (r *MongoMCQRepo) All(ctx context.Context) ([]domain.MCQQuestion, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoMCQRepo) find(ctx context.Context, filter bson.M) ([]domain.MCQQuestion, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("find mcq questions: %w", err)
	}
	var questions []domain.MCQQuestion
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("decode mcq questions: %w", err)
	}
	return questions, nil
}

// MongoProgressRepo implements ProgressRepository over training_progress.
type MongoProgressRepo struct {
	coll *mongo.Collection
}

// NewMongoProgressRepo constructs the training-progress repository.
func NewMongoProgressRepo(db *mongo.Database) *MongoProgressRepo {
	return &MongoProgressRepo{coll: db.Collection(collProgress)}
}

var _ ProgressRepository = (*MongoProgressRepo)(nil)

func (r *MongoProgressRepo) Upsert(ctx context.Context, progress domain.TrainingProgress) (domain.TrainingProgress, error) {
	set := bson.M{
		"completedVideos":   progress.CompletedVideos,
		"watchedVideos":     progress.WatchedVideos,
		"certificateIssued": progress.CertificateIssued,
	}
	if progress.CertificateID != "" {
		set["certificate_id"] = progress.CertificateID
	}

	var updated domain.TrainingProgress
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"email": progress.Email},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return domain.TrainingProgress{}, fmt.Errorf("upsert training progress: %w", err)
	}
	return updated, nil
}

func (r *MongoProgressRepo) FindByEmail(ctx context.Context, email string) (domain.TrainingProgress, error) {
	var progress domain.TrainingProgress
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&progress)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.TrainingProgress{}, domain.ErrNotFound
		}
		return domain.TrainingProgress{}, fmt.Errorf("find training progress: %w", err)
	}
	return progress, nil
}

func (r *MongoProgressRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count training progress: %w", err)
	}
	return n, nil
}
