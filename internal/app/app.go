// Package app conecta configuracion, almacenamiento, oraculo y servicios del pipeline.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"career-compass/internal/config"
	"career-compass/internal/db"
	"career-compass/internal/llm"
	"career-compass/internal/repository"
	"career-compass/internal/service"
)

// Services agrupa las etapas del pipeline ya cableadas.
type Services struct {
	Users    *service.UserService
	Quiz     *service.QuizService
	Profiles *service.ProfileService
	Careers  *service.CareerService
	Skills   *service.SkillGapService
}

// App mantiene los recursos abiertos para poder cerrarlos al apagar.
type App struct {
	Services Services
	Store    repository.DocumentStore

	pool  *pgxpool.Pool
	redis *redis.Client
}

// New arma el grafo de dependencias a partir de la configuracion.
// Si client es nil se construye el proveedor LLM configurado.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, client llm.LLMClient) (*App, error) {
	a := &App{}

	if cfg.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := a.redis.Ping(ctxPing).Err()
		cancel()
		if err != nil {
			if cfg.StoreBackend == config.StoreRedis {
				a.Close()
				return nil, fmt.Errorf("redis ping: %w", err)
			}
			logger.Warn("redis ping failed, skill cache falls back to memory", zap.Error(err))
			_ = a.redis.Close()
			a.redis = nil
		}
	}

	switch cfg.StoreBackend {
	case config.StorePostgres:
		pool, err := db.Open(ctx, cfg.DatabaseURL, cfg.MigrateOnStart, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		a.pool = pool
		a.Store = repository.NewPgDocumentStore(pool)
	case config.StoreRedis:
		a.Store = repository.NewRedisDocumentStore(a.redis)
	default:
		logger.Warn("using in-memory document store; data is lost on restart")
		a.Store = repository.NewMemoryDocumentStore()
	}

	var cache service.SkillCache
	if a.redis != nil {
		cache = service.NewRedisSkillCache(a.redis, cfg.SkillCacheTTL)
	} else {
		cache = service.NewMemorySkillCache(cfg.SkillCacheTTL)
	}

	if client == nil {
		var err error
		if client, err = NewLLMClient(ctx, cfg); err != nil {
			a.Close()
			return nil, err
		}
	}
	oracle := service.NewOracleClient(client, logger)

	users := repository.NewDocUserRepository(a.Store)
	quiz := service.NewQuizService(logger, users, repository.NewDocTranscriptRepository(a.Store), oracle, nil)
	quiz.SetScriptBypass(cfg.QuizScriptBypass)
	careers := service.NewCareerService(logger, oracle, repository.NewDocCareerAdviceRepository(a.Store))
	careers.SetRetryPolicy(cfg.CareerMaxAttempts, cfg.CareerBackoffBase)

	a.Services = Services{
		Users:    service.NewUserService(logger, users),
		Quiz:     quiz,
		Profiles: service.NewProfileService(logger, oracle, repository.NewDocProfileRepository(a.Store)),
		Careers:  careers,
		Skills:   service.NewSkillGapService(logger, oracle, repository.NewDocSkillAnalysisRepository(a.Store), cache),
	}

	logger.Info("app wired",
		zap.String("store", cfg.StoreBackend),
		zap.String("llm_provider", cfg.LLMProvider),
		zap.String("llm_model", cfg.LLMModel),
		zap.Bool("redis_cache", a.redis != nil),
		zap.Bool("script_bypass", cfg.QuizScriptBypass),
	)
	return a, nil
}

// NewLLMClient construye el proveedor configurado con sus parametros de generacion.
func NewLLMClient(ctx context.Context, cfg *config.Config) (llm.LLMClient, error) {
	client, err := llm.NewFromConfig(ctx, llm.ProviderConfig{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		BaseURL:  cfg.LLMBaseURL,
		Model:    cfg.LLMModel,
		Timeout:  cfg.LLMTimeout,
		Generation: llm.GenerationConfig{
			Temperature:     cfg.LLMTemperature,
			TopK:            cfg.LLMTopK,
			TopP:            cfg.LLMTopP,
			MaxOutputTokens: cfg.LLMMaxOutputTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("init llm: %w", err)
	}
	return client, nil
}

// Close libera pool y cliente redis. Es seguro llamarlo mas de una vez.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	if a.redis != nil {
		_ = a.redis.Close()
		a.redis = nil
	}
}

// NewLogger elige el logger de zap segun LOG_MODE.
func NewLogger(mode string) (*zap.Logger, error) {
	if mode == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
