package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"risk-advisor/config"
	_ "risk-advisor/docs" // Swagger docs
	advisoryHTTP "risk-advisor/internal/advisory/delivery/http"
	summaryRepo "risk-advisor/internal/advisory/repository/memory"
	"risk-advisor/internal/advisory/usecase"
	"risk-advisor/internal/agent"
	"risk-advisor/internal/agent/runner"
	"risk-advisor/internal/agent/tools"
	"risk-advisor/internal/httpserver"
	"risk-advisor/internal/memory"
	"risk-advisor/internal/memory/inmem"
	"risk-advisor/internal/memory/vector"
	"risk-advisor/internal/middleware"
	"risk-advisor/internal/model"
	"risk-advisor/internal/session"
	"risk-advisor/pkg/llmprovider"
	"risk-advisor/pkg/log"
	"risk-advisor/pkg/qdrant"
	"risk-advisor/pkg/voyage"
)

// @title       Risk Advisor API
// @description Risk profiling, market sentiment and advisory agents behind one chat API.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Risk Advisor...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM providers
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	llm := llmprovider.NewManager(providers, managerConfig(cfg.LLM), logger)
	logger.Infof(ctx, "LLM providers ready: %d", len(providers))

	// 4. Stores
	sessions := session.New(session.Config{
		AppName: cfg.App.Name,
		UserID:  cfg.App.DefaultUserID,
		MaxSize: cfg.Session.MaxSize,
		TTL:     cfg.Session.TTL,
	})
	summaries := summaryRepo.New(cfg.Summary.MaxSize, cfg.Summary.TTL)

	sink, err := newMemorySink(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize memory: ", err)
		return
	}
	logger.Infof(ctx, "Memory backend: %s", cfg.Memory.Backend)

	// 5. Agents
	registry := agent.NewToolRegistry(tools.NewLoadMemoryTool(sink, cfg.Memory.SearchLimit, logger))
	defs := agent.Definitions(cfg.Agent)
	newRunner := func(lane model.Lane) *runner.Runner {
		return runner.New(logger, defs[lane], llm, sessions, registry, cfg.Agent.MaxSteps)
	}

	// 6. Advisory domain
	uc := usecase.New(logger, sessions, summaries, sink, usecase.Invokers{
		Risk:      newRunner(model.LaneRisk),
		Sentiment: newRunner(model.LaneSentiment),
		Advisor:   newRunner(model.LaneAdvisor),
	})

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		Middleware:      middleware.New(logger, cfg.RateLimit),
		AdvisoryHandler: advisoryHTTP.New(logger, uc),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// managerConfig converts the validated duration strings of the LLM section.
func managerConfig(cfg config.LLMConfig) *llmprovider.Config {
	retryDelay, _ := time.ParseDuration(cfg.RetryDelay)
	maxTotal, _ := time.ParseDuration(cfg.MaxTotalTimeout)
	return &llmprovider.Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
	}
}

func newMemorySink(ctx context.Context, cfg *config.Config, l log.Logger) (memory.Sink, error) {
	if cfg.Memory.Backend != config.MemoryBackendQdrant {
		return inmem.New(l, cfg.Memory.MaxSessions)
	}

	embedder, err := voyage.New(voyage.Config{APIKey: cfg.Voyage.APIKey, Model: cfg.Voyage.Model})
	if err != nil {
		return nil, fmt.Errorf("voyage: %w", err)
	}
	client := qdrant.New(cfg.Qdrant.URL, nil)
	if err := vector.EnsureCollection(ctx, client, cfg.Qdrant.CollectionName, cfg.Qdrant.VectorSize); err != nil {
		return nil, err
	}
	return vector.New(client, embedder, cfg.Qdrant.CollectionName, l), nil
}
