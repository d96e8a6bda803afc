package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jakechorley/eeep-admissions/internal/config"
	"github.com/jakechorley/eeep-admissions/pkg/clients/formsclient"
	"github.com/jakechorley/eeep-admissions/pkg/clients/gmailclient"
	"github.com/jakechorley/eeep-admissions/pkg/clients/sheetsclient"
	"github.com/jakechorley/eeep-admissions/pkg/postgres"
)

// DatabaseURLEnv overrides the databaseURL of the config file when set
const DatabaseURLEnv = "DATABASE_URL"

// AppContext holds the application dependencies shared across all commands.
// Sheets and database connections are opened on first use so an offline
// CSV run never asks for OAuth consent or a database.
type AppContext struct {
	Env    string
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context
	Out    io.Writer

	oauthCfg     *config.OAuthClientConfig
	sheetsClient *sheetsclient.Client
	formsClient  *formsclient.Client
	gmailClient  *gmailclient.Client
	database     *postgres.DB
}

// SheetsClient returns the Google Sheets client, authenticating on first call
func (a *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if a.sheetsClient != nil {
		return a.sheetsClient, nil
	}

	a.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(a.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	a.oauthCfg = oauthCfg

	a.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(a.Ctx, oauthCfg, a.Env, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	a.Logger.Debug("Sheets client initialized successfully")

	a.sheetsClient = client
	return client, nil
}

// FormsClient returns the Google Forms client, reusing the sheets OAuth token
func (a *AppContext) FormsClient() (*formsclient.Client, error) {
	if a.formsClient != nil {
		return a.formsClient, nil
	}

	sheets, err := a.SheetsClient()
	if err != nil {
		return nil, err
	}

	a.Logger.Info("Initializing forms client")
	client, err := formsclient.NewClient(a.Ctx, a.oauthCfg, sheets.Token())
	if err != nil {
		return nil, fmt.Errorf("failed to create forms client: %w", err)
	}

	a.formsClient = client
	return client, nil
}

// GmailClient returns the Gmail client, reusing the sheets OAuth token
func (a *AppContext) GmailClient() (*gmailclient.Client, error) {
	if a.gmailClient != nil {
		return a.gmailClient, nil
	}

	sheets, err := a.SheetsClient()
	if err != nil {
		return nil, err
	}

	a.Logger.Info("Initializing gmail client")
	client, err := gmailclient.NewClient(a.Ctx, a.oauthCfg, sheets.Token())
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	a.gmailClient = client
	return client, nil
}

// Database returns the run archive, connecting and migrating on first call
func (a *AppContext) Database() (*postgres.DB, error) {
	if a.database != nil {
		return a.database, nil
	}

	url := os.Getenv(DatabaseURLEnv)
	if url == "" {
		url = a.Cfg.DatabaseURL
	}
	if url == "" {
		return nil, fmt.Errorf("no database configured: set databaseURL in the config or %s", DatabaseURLEnv)
	}

	a.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(a.Ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a.Logger.Info("Running database migrations")
	if err := database.RunMigrations(a.Ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	a.Logger.Debug("Database initialized successfully")

	a.database = database
	return database, nil
}

// Close releases the connections opened during the command
func (a *AppContext) Close() {
	if a.database != nil {
		a.database.Close()
		a.database = nil
	}
}
