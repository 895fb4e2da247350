package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kishorefa/Sainxt-platform-backend/internal/domain"
	"github.com/kishorefa/Sainxt-platform-backend/internal/repository"
)

// ContentService covers editorial articles, landing-page cards, and the MCQ
// question bank.
type ContentService struct {
	articles repository.ArticleRepository
	cards    repository.CardRepository
	mcq      repository.MCQRepository
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewContentService wires dependencies.
func NewContentService(articles repository.ArticleRepository, cards repository.CardRepository, mcq repository.MCQRepository, logger *zap.Logger) *ContentService {
	return &ContentService{
		articles: articles,
		cards:    cards,
		mcq:      mcq,
		logger:   logger,
		tracer:   otel.Tracer("github.com/kishorefa/Sainxt-platform-backend/internal/service"),
	}
}

// SubmitArticle stores or replaces a draft. A missing article_id gets a fresh
// short id so the editor can keep addressing the draft.
func (s *ContentService) SubmitArticle(ctx context.Context, article domain.Article) (string, error) {
	ctx, span := s.startSpan(ctx, "ContentService.SubmitArticle")
	defer span.End()

	if strings.TrimSpace(article.Title) == "" {
		return "", fmt.Errorf("article title is required: %w", domain.ErrNotFound)
	}
	if article.ArticleID == "" {
		article.ArticleID = uuid.NewString()[:8]
	}
	if article.Status == "" {
		article.Status = "draft"
	}
	if err := s.articles.Upsert(ctx, article); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("store article: %w", err)
	}
	s.log().Info("article submitted", zap.String("article_id", article.ArticleID))
	return article.ArticleID, nil
}

// UpdateArticleContent replaces the body of an existing draft.
func (s *ContentService) UpdateArticleContent(ctx context.Context, articleID, content string) error {
	ctx, span := s.startSpan(ctx, "ContentService.UpdateArticleContent")
	defer span.End()
	return s.articles.UpdateContent(ctx, articleID, content)
}

// GetArticle returns one draft by its short id.
func (s *ContentService) GetArticle(ctx context.Context, articleID string) (domain.Article, error) {
	return s.articles.FindByArticleID(ctx, articleID)
}

// ListArticles returns every stored draft.
func (s *ContentService) ListArticles(ctx context.Context) ([]domain.Article, error) {
	return s.articles.List(ctx)
}

// PublishCard stores a published article card with its cover image.
func (s *ContentService) PublishCard(ctx context.Context, card domain.ArticleCard) error {
	ctx, span := s.startSpan(ctx, "ContentService.PublishCard")
	defer span.End()

	if card.ArticleID == "" {
		card.ArticleID = uuid.NewString()[:8]
	}
	if err := s.cards.InsertCard(ctx, card); err != nil {
		span.RecordError(err)
		return fmt.Errorf("store article card: %w", err)
	}
	s.log().Info("article card published", zap.String("article_id", card.ArticleID), zap.String("category", card.Category))
	return nil
}

// ListCards returns all published cards.
func (s *ContentService) ListCards(ctx context.Context) ([]domain.ArticleCard, error) {
	return s.cards.ListCards(ctx)
}

// AddFeatured stores an admin-curated landing-page card.
func (s *ContentService) AddFeatured(ctx context.Context, card domain.FeaturedCard) (string, error) {
	ctx, span := s.startSpan(ctx, "ContentService.AddFeatured")
	defer span.End()

	id, err := s.cards.InsertFeatured(ctx, card)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("store featured card: %w", err)
	}
	return id.Hex(), nil
}

// ListFeatured returns the curated landing-page cards.
func (s *ContentService) ListFeatured(ctx context.Context) ([]domain.FeaturedCard, error) {
	return s.cards.ListFeatured(ctx)
}

// DrawQuestions returns up to count random questions, optionally limited to a
// category. Answer keys stay in the result; handlers strip them before
// sending questions to candidates.
func (s *ContentService) DrawQuestions(ctx context.Context, category string, count int) ([]domain.MCQQuestion, error) {
	ctx, span := s.startSpan(ctx, "ContentService.DrawQuestions")
	defer span.End()

	var (
		bank []domain.MCQQuestion
		err  error
	)
	if category == "" {
		bank, err = s.mcq.All(ctx)
	} else {
		bank, err = s.mcq.FindByCategory(ctx, category)
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	if len(bank) == 0 {
		return nil, domain.ErrNotFound
	}

	rand.Shuffle(len(bank), func(i, j int) { bank[i], bank[j] = bank[j], bank[i] })
	if count > 0 && count < len(bank) {
		bank = bank[:count]
	}
	return bank, nil
}

// GradeQuiz scores submitted answers against the question bank. Answers are
// matched case-insensitively by question text.
func (s *ContentService) GradeQuiz(ctx context.Context, answers map[string]string) (QuizResult, error) {
	ctx, span := s.startSpan(ctx, "ContentService.GradeQuiz")
	defer span.End()

	bank, err := s.mcq.All(ctx)
	if err != nil {
		span.RecordError(err)
		return QuizResult{}, fmt.Errorf("load question bank: %w", err)
	}

	key := make(map[string]string, len(bank))
	for _, q := range bank {
		key[strings.ToLower(strings.TrimSpace(q.Question))] = strings.TrimSpace(q.Answer)
	}

	result := QuizResult{Total: len(answers)}
	for question, answer := range answers {
		expected, ok := key[strings.ToLower(strings.TrimSpace(question))]
		if ok && strings.EqualFold(strings.TrimSpace(answer), expected) {
			result.Correct++
		}
	}
	if result.Total > 0 {
		result.ScorePct = float64(result.Correct) / float64(result.Total) * 100
	}
	return result, nil
}

func (s *ContentService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}

func (s *ContentService) log() *zap.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return zap.L()
}
