package builder

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pantrypal/onboarding-backend/internal/api"
	onboardingapi "github.com/pantrypal/onboarding-backend/internal/api/onboarding"
	userapi "github.com/pantrypal/onboarding-backend/internal/api/user"
	"github.com/pantrypal/onboarding-backend/internal/config"
	"github.com/pantrypal/onboarding-backend/internal/generator"
	"github.com/pantrypal/onboarding-backend/internal/monitor"
	"github.com/pantrypal/onboarding-backend/internal/pkg/formatter"
	"github.com/pantrypal/onboarding-backend/internal/pkg/metrics"
	"github.com/pantrypal/onboarding-backend/internal/usecase/onboarding"
	"github.com/pantrypal/onboarding-backend/internal/usecase/user"
	"go.uber.org/zap"
)

func Build(environment string) (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("storage_driver", cfg.StorageDriver),
		zap.String("llm_provider", cfg.LLMCfg.Provider),
	)

	m := metrics.New()

	store, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Repositories initialized")

	provider, closeProvider, err := setupCompletion(ctx, cfg.LLMCfg, m, logger)
	if err != nil {
		store.close()
		return nil, fmt.Errorf("setup completion provider: %w", err)
	}

	questionGenerator := generator.NewQuestionGenerator(provider, cfg.LLMCfg.MaxTokens)
	profileGenerator := generator.NewProfileGenerator(provider, cfg.LLMCfg.MaxTokens)

	// Initialize use cases
	onboardingUC := onboarding.NewUsecase(
		store.sessions,
		questionGenerator,
		profileGenerator,
		formatter.NewFactory(),
		m,
	)
	userUC := user.NewUsecase(store.users, cfg.BcryptCost)
	logger.Info("Use cases initialized")

	router := api.SetupRouter(
		onboardingapi.NewHandler(onboardingUC),
		userapi.NewHandler(userUC),
		m,
		cfg.AppName,
		cfg.Environment,
		logger,
	)
	logger.Info("HTTP router configured")

	heartbeat, err := monitor.NewHeartbeat(cfg.HeartbeatSchedule, cfg.AppName, cfg.Environment, logger)
	if err != nil {
		closeProvider()
		store.close()
		return nil, fmt.Errorf("setup heartbeat: %w", err)
	}

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	logger.Info("Application built successfully")

	return &App{
		server:          server,
		heartbeat:       heartbeat,
		closers:         []func(){closeProvider, store.close},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}
