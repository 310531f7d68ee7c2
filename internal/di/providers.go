// Package di wires the application together. Providers are plain functions
// composed by google/wire; wire_gen.go holds the generated graph.
package di

import (
	"context"
	"fmt"

	"claimgraph-backend/internal/config"
	"claimgraph-backend/internal/eligibility"
	"claimgraph-backend/internal/handlers"
	"claimgraph-backend/internal/infrastructure/events"
	dynamoStore "claimgraph-backend/internal/infrastructure/persistence/dynamodb"
	"claimgraph-backend/internal/repository"
	"claimgraph-backend/internal/repository/memory"
	"claimgraph-backend/internal/rules"
	"claimgraph-backend/internal/scoring"
	"claimgraph-backend/internal/service/casefile"
	"claimgraph-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	awsDynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// App is the assembled application.
type App struct {
	Router  *chi.Mux
	Config  *config.Config
	Logger  *zap.Logger
	Watcher *config.Watcher
}

// NewApp bundles the top-level pieces.
func NewApp(router *chi.Mux, cfg *config.Config, logger *zap.Logger, watcher *config.Watcher) *App {
	return &App{Router: router, Config: cfg, Logger: logger, Watcher: watcher}
}

// ProvideConfig loads and validates the configuration.
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger builds the zap logger for the configured environment.
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	var zapCfg zap.Config
	if cfg.Environment == config.Production {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = logger.Sync()
	}
	return logger, cleanup, nil
}

// ProvideWatcher starts the config hot-reload watcher and subscribes the
// evaluation engines to it, so ceiling changes take effect without a restart.
func ProvideWatcher(cfg *config.Config, engine *rules.Engine, checker *eligibility.Checker, logger *zap.Logger) (*config.Watcher, func(), error) {
	watcher, err := config.NewWatcher(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	watcher.OnChange(func(fresh *config.Config) {
		applyTunables(fresh, engine, checker, logger)
	})
	return watcher, watcher.Stop, nil
}

// applyTunables pushes reloaded config values into the running engines.
func applyTunables(cfg *config.Config, engine *rules.Engine, checker *eligibility.Checker, logger *zap.Logger) {
	engine.SetCeiling(cfg.CeilingAmount)
	checker.SetCeiling(cfg.CeilingAmount)
	logger.Info("jurisdictional ceiling updated", zap.Float64("ceiling", cfg.CeilingAmount))
}

// ProvideAWSConfig loads the default AWS SDK configuration.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.Region))
}

// ProvideDynamoClient creates the DynamoDB client.
func ProvideDynamoClient(awsCfg aws.Config) *awsDynamodb.Client {
	return awsDynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates the EventBridge client, or nil when
// event publishing is disabled.
func ProvideEventBridgeClient(awsCfg aws.Config, cfg *config.Config) *eventbridge.Client {
	if !cfg.Features.EnableEvents || cfg.EventBusName == "" {
		return nil
	}
	return eventbridge.NewFromConfig(awsCfg)
}

// ProvideGraphRepository selects the graph store: DynamoDB when a table is
// configured, in-memory otherwise (local development and tests).
func ProvideGraphRepository(client *awsDynamodb.Client, cfg *config.Config, logger *zap.Logger) repository.GraphRepository {
	if cfg.TableName == "" {
		logger.Warn("no table configured, using in-memory graph store")
		return memory.New()
	}
	return dynamoStore.NewGraphStore(client, cfg.TableName, logger)
}

// ProvidePublisher creates the EventBridge publisher.
func ProvidePublisher(client *eventbridge.Client, cfg *config.Config, logger *zap.Logger) *events.Publisher {
	return events.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideRulesEngine creates the rules engine with the configured ceiling.
func ProvideRulesEngine(cfg *config.Config) *rules.Engine {
	return rules.NewEngine(cfg.CeilingAmount)
}

// ProvideScorer creates the canonical graph scorer.
func ProvideScorer(rulesEngine *rules.Engine) *scoring.Scorer {
	return scoring.NewScorer(rulesEngine)
}

// ProvideEligibilityChecker creates the eligibility checker.
func ProvideEligibilityChecker(cfg *config.Config) *eligibility.Checker {
	return eligibility.NewChecker(cfg.CeilingAmount)
}

// ProvideValidator creates the request validator.
func ProvideValidator() *validator.Validate {
	return validator.New()
}

// ProvideMetrics creates the prometheus collectors.
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics()
}

// AppSet is the full provider set for the application.
var AppSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideWatcher,
	ProvideAWSConfig,
	ProvideDynamoClient,
	ProvideEventBridgeClient,
	ProvideGraphRepository,
	ProvidePublisher,
	ProvideRulesEngine,
	ProvideScorer,
	ProvideEligibilityChecker,
	ProvideValidator,
	ProvideMetrics,
	casefile.NewService,
	handlers.NewCaseHandler,
	handlers.NewEligibilityHandler,
	setupRouter,
	NewApp,
)
