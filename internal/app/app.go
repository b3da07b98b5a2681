// Package app wires configuration, storage, clients, and services into a
// single application core shared by the server binary and tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sjcallan/paperdesk/internal/clients/gemini"
	"github.com/sjcallan/paperdesk/internal/clients/marketfeed"
	"github.com/sjcallan/paperdesk/internal/common"
	"github.com/sjcallan/paperdesk/internal/interfaces"
	"github.com/sjcallan/paperdesk/internal/services/alerts"
	"github.com/sjcallan/paperdesk/internal/services/assistant"
	"github.com/sjcallan/paperdesk/internal/services/journal"
	"github.com/sjcallan/paperdesk/internal/services/market"
	"github.com/sjcallan/paperdesk/internal/services/portfolio"
	storage "github.com/sjcallan/paperdesk/internal/storage/surrealdb"
)

// App holds all initialized services and clients.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	MarketFeedClient interfaces.MarketFeedClient
	GeminiClient     interfaces.GeminiClient
	PortfolioService interfaces.PortfolioService
	JournalService   interfaces.JournalService
	AlertService     interfaces.AlertService
	MarketService    interfaces.MarketService
	AssistantService interfaces.AssistantService
	StartupTime      time.Time

	alertSchedulerStop func()
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients, and services from configuration.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Config resolution: provided path, PAPERDESK_CONFIG, binary dir, dev fallback
	if configPath == "" {
		configPath = os.Getenv("PAPERDESK_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "paperdesk.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/paperdesk.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	if config.IsProduction() {
		if missing := config.ValidateRequired(); len(missing) > 0 {
			return nil, fmt.Errorf("missing required production settings: %v", missing)
		}
	}

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		StartupTime: startupStart,
	}

	a.initClients()
	a.initServices()

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// initClients constructs external API clients. Clients without configured
// keys stay nil and the dependent services degrade gracefully.
func (a *App) initClients() {
	feedCfg := a.Config.Clients.MarketFeed
	if feedCfg.APIKey != "" {
		a.MarketFeedClient = marketfeed.NewClient(feedCfg.APIKey,
			marketfeed.WithBaseURL(feedCfg.BaseURL),
			marketfeed.WithLogger(a.Logger),
			marketfeed.WithRateLimit(feedCfg.RateLimit),
			marketfeed.WithTimeout(feedCfg.GetTimeout()),
		)
	} else {
		a.Logger.Warn().Msg("Market feed API key not configured - quotes limited to cached and seeded data")
	}

	geminiCfg := a.Config.Clients.Gemini
	if geminiCfg.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), geminiCfg.APIKey,
			gemini.WithLogger(a.Logger),
			gemini.WithModel(geminiCfg.Model),
		)
		if err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			a.GeminiClient = client
		}
	} else {
		a.Logger.Warn().Msg("Gemini API key not configured - assistant will use fallback replies")
	}
}

// initServices constructs the service layer on top of storage and clients.
func (a *App) initServices() {
	portfolioService := portfolio.NewService(a.Storage, a.Config.Portfolio.StartingCash, a.Logger)
	a.PortfolioService = portfolioService
	a.JournalService = journal.NewService(a.Storage, a.Logger)
	a.AlertService = alerts.NewService(a.Storage, a.Logger)
	a.MarketService = market.NewService(a.Storage, a.MarketFeedClient, a.Config.Clients.MarketFeed.GetCacheTTL(), a.Logger)
	a.AssistantService = assistant.NewService(portfolioService, a.GeminiClient, a.Logger)
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.alertSchedulerStop != nil {
		a.alertSchedulerStop()
		a.alertSchedulerStop = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
