package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/service"
)

func newContentService(articles *memoryArticleRepo, mcq *memoryMCQRepo) *service.ContentService {
	if articles == nil {
		articles = newMemoryArticleRepo()
	}
	if mcq == nil {
		mcq = &memoryMCQRepo{}
	}
	return service.NewContentService(articles, &memoryCardRepo{}, mcq, zap.NewNop())
}

func TestSubmitArticleAssignsShortID(t *testing.T) {
	ctx := context.Background()
	articles := newMemoryArticleRepo()
	svc := newContentService(articles, nil)

	id, err := svc.SubmitArticle(ctx, domain.Article{Title: "Interview prep 101", Content: "..."})
	require.NoError(t, err)
	require.Len(t, id, 8)

	stored, err := svc.GetArticle(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Interview prep 101", stored.Title)
	require.Equal(t, "draft", stored.Status)

	// Resubmitting under the same id replaces, not duplicates.
	_, err = svc.SubmitArticle(ctx, domain.Article{ArticleID: id, Title: "Interview prep 101", Content: "v2"})
	require.NoError(t, err)
	all, err := svc.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "v2", all[0].Content)
}

func TestSubmitArticleRequiresTitle(t *testing.T) {
	svc := newContentService(nil, nil)
	_, err := svc.SubmitArticle(context.Background(), domain.Article{Content: "body only"})
	require.Error(t, err)
}

func TestDrawQuestionsLimitsCount(t *testing.T) {
	ctx := context.Background()
	bank := &memoryMCQRepo{questions: []domain.MCQQuestion{
		{Category: "go", Question: "Q1", Options: []string{"a", "b"}, Answer: "a"},
		{Category: "go", Question: "Q2", Options: []string{"a", "b"}, Answer: "b"},
		{Category: "sql", Question: "Q3", Options: []string{"a", "b"}, Answer: "a"},
	}}
	svc := newContentService(nil, bank)

	questions, err := svc.DrawQuestions(ctx, "go", 1)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, "go", questions[0].Category)

	_, err = svc.DrawQuestions(ctx, "missing-category", 5)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGradeQuizScoresCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	bank := &memoryMCQRepo{questions: []domain.MCQQuestion{
		{Question: "What closes a channel?", Answer: "close"},
		{Question: "Zero value of a pointer?", Answer: "nil"},
	}}
	svc := newContentService(nil, bank)

	result, err := svc.GradeQuiz(ctx, map[string]string{
		"What closes a channel?":  "CLOSE",
		"Zero value of a pointer?": "zero",
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	require.Equal(t, 1, result.Correct)
	require.InDelta(t, 50.0, result.ScorePct, 0.01)
}

type memoryArticleRepo struct {
	mu       sync.Mutex
	articles map[string]domain.Article
}

func newMemoryArticleRepo() *memoryArticleRepo {
	return &memoryArticleRepo{articles: map[string]domain.Article{}}
}

func (m *memoryArticleRepo) Upsert(ctx context.Context, article domain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles[article.ArticleID] = article
	return nil
}

func (m *memoryArticleRepo) FindByArticleID(ctx context.Context, articleID string) (domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	article, ok := m.articles[articleID]
	if !ok {
		return domain.Article{}, domain.ErrNotFound
	}
	return article, nil
}

func (m *memoryArticleRepo) UpdateContent(ctx context.Context, articleID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	article, ok := m.articles[articleID]
	if !ok {
		return domain.ErrNotFound
	}
	article.Content = content
	m.articles[articleID] = article
	return nil
}

func (m *memoryArticleRepo) List(ctx context.Context) ([]domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Article, 0, len(m.articles))
	for _, article := range m.articles {
		out = append(out, article)
	}
	return out, nil
}

type memoryCardRepo struct {
	mu       sync.Mutex
	cards    []domain.ArticleCard
	featured []domain.FeaturedCard
}

func (m *memoryCardRepo) InsertCard(ctx context.Context, card domain.ArticleCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards = append(m.cards, card)
	return nil
}

func (m *memoryCardRepo) ListCards(ctx context.Context) ([]domain.ArticleCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ArticleCard(nil), m.cards...), nil
}

func (m *memoryCardRepo) InsertFeatured(ctx context.Context, card domain.FeaturedCard) (bson.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	card.ID = bson.NewObjectID()
	m.featured = append(m.featured, card)
	return card.ID, nil
}

func (m *memoryCardRepo) ListFeatured(ctx context.Context) ([]domain.FeaturedCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.FeaturedCard(nil), m.featured...), nil
}

type memoryMCQRepo struct {
	questions []domain.MCQQuestion
}

func (m *memoryMCQRepo) FindByCategory(ctx context.Context, category string) ([]domain.MCQQuestion, error) {
	var out []domain.MCQQuestion
	for _, q := range m.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memoryMCQRepo) All(ctx context.Context) ([]domain.MCQQuestion, error) {
	return append([]domain.MCQQuestion(nil), m.questions...), nil
}
