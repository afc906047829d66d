package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/desertthunder/chorus/internal/api"
	"github.com/desertthunder/chorus/internal/repositories"
	"github.com/desertthunder/chorus/internal/session"
	"github.com/desertthunder/chorus/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to parse config, using defaults", "error", err)
		}
	}

	var store session.Store
	if config.Session.TokenFile != "" {
		fileStore, err := session.OpenFileStore(config.Session.TokenFile, logger)
		if err != nil {
			logger.Warn("failed to open token file, session will not persist", "error", err)
			store = session.NewMemoryStore()
		} else {
			store = fileStore
		}
	} else {
		store = session.NewMemoryStore()
	}

	strategy := api.ParseStrategy(config.Auth.Strategy)
	client := api.NewClient(api.ClientOpts{
		BaseURL:  config.API.BaseURL,
		Strategy: strategy,
		Creds:    store,
		Logger:   logger,
	})

	var oauthConf *oauth2.Config
	if kc := config.Auth.Keycloak; kc.AuthURL != "" && kc.TokenURL != "" {
		oauthConf = &oauth2.Config{
			ClientID:     kc.ClientID,
			ClientSecret: kc.ClientSecret,
			RedirectURL:  config.Auth.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:  kc.AuthURL,
				TokenURL: kc.TokenURL,
			},
		}
	}

	controller := session.NewController(session.ControllerOpts{
		Client:      client,
		Store:       store,
		Strategy:    strategy,
		RedirectURI: config.Auth.RedirectURI,
		OAuthConfig: oauthConf,
		Logger:      logger,
	})

	// The cache is optional; every command that needs it degrades or errors
	// on its own terms.
	var cache *repositories.CatalogCache
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err == nil {
			cache = repositories.NewCatalogCache(db)
		} else {
			logger.Warn("cache migrations failed, running without offline cache", "error", err)
			db.Close()
		}
	} else {
		logger.Warn("cache database unavailable, running without offline cache", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Client:     client,
		Session:    controller,
		Store:      store,
		Cache:      cache,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "chorus",
		Usage:    "Browse and manage a shared music catalog from the terminal",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
