package app

import (
	"context"
	"fmt"

	"github.com/foxworks/reface/internal/config"
	"github.com/foxworks/reface/internal/domains/agent"
	"github.com/foxworks/reface/internal/domains/lead"
	"github.com/foxworks/reface/internal/domains/visualizer"
	leadrepo "github.com/foxworks/reface/internal/repository/lead"
	"github.com/foxworks/reface/internal/server"
	"github.com/foxworks/reface/pkg/Logger"
	"github.com/foxworks/reface/pkg/ai/reface"
	"github.com/foxworks/reface/pkg/ai/speech"
	"github.com/foxworks/reface/pkg/notify"
	"github.com/foxworks/reface/pkg/rtc"
	"github.com/foxworks/reface/pkg/storage"
	"github.com/go-redis/redis"
	"gorm.io/gorm"
)

// App represents the application with all its dependencies
type App struct {
	Config *config.Settings
	Logger *Logger.Logger
	DB     *gorm.DB
	RC     *redis.Client

	Dispatcher    *notify.Dispatcher
	VoiceRegistry *agent.Registry
	Renderer      *reface.GeminiRenderer

	// repos
	LeadRepo   lead.Repository
	ServerDeps server.Dependencies
}

// NewApp creates a new application instance with all dependencies properly wired
func NewApp(ctx context.Context, cfg *config.Settings, logger *Logger.Logger, db *gorm.DB, rc *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		RC:     rc,
	}

	if err := app.setupDependencies(ctx); err != nil {
		return nil, err
	}

	return app, nil
}

// setupDependencies initializes all application dependencies
func (a *App) setupDependencies(ctx context.Context) error {
	// 1. provider clients
	transcriber, completer, synthesizer := speech.NewOpenAIProvider(a.Config.OpenAI)
	if a.Config.Ollama.Enabled {
		// keep replies on self-hosted hardware; STT/TTS stay on the provider
		completer = speech.NewOllamaCompleter(a.Config.Ollama)
		a.Logger.Info("using ollama completer")
	}

	renderer, err := reface.NewGeminiRenderer(ctx, a.Config.Gemini, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to set up renderer: %w", err)
	}
	a.Renderer = renderer

	uploader := storage.New(a.Config.Storage.BaseURL, a.Config.Storage.ServiceKey, a.Logger)

	// 2. outbound notification queue
	sender := notify.NewWebhookSender(a.Config.Notify.WebhookURL, a.Config.Notify.Channel)
	a.Dispatcher = notify.NewDispatcher(sender, a.Logger)

	// 3. repositories
	a.LeadRepo = leadrepo.NewGormLeadRepo(a.DB, a.RC, a.Config.Lead.SessionCacheTTL())

	// 4. domain services
	engine := visualizer.NewEngine(
		uploader,
		renderer,
		a.LeadRepo,
		a.Dispatcher,
		a.Config.Storage.PhotoBucket,
		a.Logger,
	)
	leadService := lead.NewService(a.LeadRepo, a.Dispatcher, a.Logger)

	a.VoiceRegistry = agent.NewRegistry(
		a.Config.Agent.SessionTTL(),
		a.Config.Agent.HistoryBound,
		transcriber,
		completer,
		synthesizer,
		a.Logger,
	)

	issuer := rtc.NewTokenIssuer(a.Config.RTC.APIKey, a.Config.RTC.APISecret, a.Config.RTC.URL)

	a.ServerDeps = server.NewServerDependencies(
		engine,
		leadService,
		a.VoiceRegistry,
		issuer,
		a.Logger,
	)

	return nil
}

// Run starts the background workers (notification queue, session sweeper).
func (a *App) Run(ctx context.Context) {
	go a.Dispatcher.Run(ctx)
	go a.VoiceRegistry.RunSweeper(ctx)
}

// Close releases provider clients.
func (a *App) Close() {
	if a.Renderer != nil {
		a.Renderer.Close()
	}
}

// GetServerDependencies returns the server dependencies
func (a *App) GetServerDependencies() server.Dependencies {
	return a.ServerDeps
}
