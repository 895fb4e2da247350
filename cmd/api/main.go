package main

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cacheadapter "github.com/kishorefa/Sainxt-platform-backend/internal/adapter/cache"
	"github.com/kishorefa/Sainxt-platform-backend/internal/adapter/llm"
	"github.com/kishorefa/Sainxt-platform-backend/internal/adapter/mail"
	"github.com/kishorefa/Sainxt-platform-backend/internal/bootstrap"
	"github.com/kishorefa/Sainxt-platform-backend/internal/config"
	httptransport "github.com/kishorefa/Sainxt-platform-backend/internal/http"
	"github.com/kishorefa/Sainxt-platform-backend/internal/http/handler"
	httpmiddleware "github.com/kishorefa/Sainxt-platform-backend/internal/http/middleware"
	"github.com/kishorefa/Sainxt-platform-backend/internal/repository"
	"github.com/kishorefa/Sainxt-platform-backend/internal/server"
	"github.com/kishorefa/Sainxt-platform-backend/internal/service"
	"github.com/kishorefa/Sainxt-platform-backend/internal/telemetry"
	"github.com/kishorefa/Sainxt-platform-backend/internal/token"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newSnowflake,
			newMongoClient,
			newMongoDatabase,
			newUserRepository,
			newEnterpriseRepository,
			newProfileRepository,
			newArticleRepository,
			newCardRepository,
			newMCQRepository,
			newProgressRepository,
			newInterviewRepository,
			newResetTokenStore,
			newTokenCodec,
			newMailSender,
			newLLMClient,
			service.NewAccountService,
			service.NewResetService,
			service.NewProfileService,
			service.NewContentService,
			service.NewTrainingService,
			service.NewInterviewService,
			newHandlers,
			newAuthMiddleware,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, ensureIndexes, bootstrap.EnsureAdmin, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func newMongoClient(lc fx.Lifecycle, cfg config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := repository.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return client, nil
}

func newMongoDatabase(client *mongo.Client, cfg config.Config) *mongo.Database {
	return client.Database(cfg.MongoDBName)
}

func newUserRepository(db *mongo.Database) repository.UserRepository {
	return repository.NewMongoUserRepo(db)
}

func newEnterpriseRepository(db *mongo.Database) repository.EnterpriseRepository {
	return repository.NewMongoEnterpriseRepo(db)
}

func newProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return repository.NewMongoProfileRepo(db)
}

func newArticleRepository(db *mongo.Database) repository.ArticleRepository {
	return repository.NewMongoArticleRepo(db)
}

func newCardRepository(db *mongo.Database) repository.CardRepository {
	return repository.NewMongoCardRepo(db)
}

func newMCQRepository(db *mongo.Database) repository.MCQRepository {
	return repository.NewMongoMCQRepo(db)
}

func newProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return repository.NewMongoProgressRepo(db)
}

func newInterviewRepository(db *mongo.Database) repository.InterviewRepository {
	return repository.NewMongoInterviewRepo(db)
}

// newResetTokenStore prefers Redis; without a configured address it falls
// back to the in-process store.
func newResetTokenStore(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (repository.ResetTokenStore, error) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, reset token reuse is only blocked per process")
		return cacheadapter.NewMemoryResetStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return cacheadapter.NewRedisResetStore(client), nil
}

func newTokenCodec(cfg config.Config) *token.Codec {
	return token.NewCodec(cfg.JWTSecret)
}

func newMailSender(cfg config.Config) mail.Sender {
	addr := fmt.Sprintf("%s:%d", cfg.MailServer, cfg.MailPort)
	return mail.NewSMTPSender(addr, cfg.MailUsername, cfg.MailPassword, cfg.MailFrom, cfg.MailUseTLS)
}

func newLLMClient(cfg config.Config) *llm.Client {
	return llm.NewClient(cfg.OllamaURL, cfg.OllamaModel, cfg.OllamaTimeout)
}

func newHandlers(accounts *service.AccountService, resets *service.ResetService, profiles *service.ProfileService, content *service.ContentService, training *service.TrainingService, interviews *service.InterviewService) httptransport.Handlers {
	return httptransport.Handlers{
		Auth:      &handler.AuthHandler{Accounts: accounts, Resets: resets},
		Profile:   &handler.ProfileHandler{Profiles: profiles},
		Content:   &handler.ContentHandler{Content: content},
		Training:  &handler.TrainingHandler{Training: training},
		Interview: &handler.InterviewHandler{Interviews: interviews},
		Admin:     &handler.AdminHandler{Accounts: accounts},
	}
}

func newAuthMiddleware(codec *token.Codec, users repository.UserRepository) *httpmiddleware.Auth {
	return &httpmiddleware.Auth{Codec: codec, Users: users}
}

func ensureIndexes(lc fx.Lifecycle, db *mongo.Database) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repository.EnsureIndexes(ctx, db)
		},
	})
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
