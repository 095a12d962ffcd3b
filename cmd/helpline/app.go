// ABOUTME: Wires config, logging, local state, the API client, and the session
// ABOUTME: Every subcommand builds one app and closes it on exit

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/2389/helpline/internal/api"
	"github.com/2389/helpline/internal/assistant"
	"github.com/2389/helpline/internal/chat"
	"github.com/2389/helpline/internal/config"
	"github.com/2389/helpline/internal/session"
	"github.com/2389/helpline/internal/store"
)

// commonFlags are accepted by every subcommand.
type commonFlags struct {
	configPath string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "config file path")
}

// app holds the collaborators shared by subcommands.
type app struct {
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	store      store.Store
	client     *api.Client
	session    *session.Manager

	logCloser io.Closer
}

// newApp loads config, opens local state, and restores the session. Set tui
// to keep log output off the terminal.
func newApp(ctx context.Context, flags commonFlags, tui bool) (*app, error) {
	cfg, path, err := config.Resolve(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	logger, logCloser, err := setupLogger(cfg.Logging, tui)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o700); err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	st, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("opening local state: %w", err)
	}

	client := api.New(cfg.API.BaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		api.WithTokenSource(session.StoredToken{Store: st}),
		api.WithLogger(logger.With("component", "api")),
	)

	sess := session.NewManager(client.Auth, st, logger.With("component", "session"))
	if cfg.API.BaseURL != "" {
		sess.Restore(ctx)
	} else {
		logger.Warn("api.base_url is not set, backend features are offline")
	}

	logger.Debug("helpline started",
		"config", path,
		"api", cfg.API.BaseURL,
		"storage", cfg.Storage.Path,
	)

	return &app{
		cfg:        cfg,
		configPath: path,
		logger:     logger,
		store:      st,
		client:     client,
		session:    sess,
		logCloser:  logCloser,
	}, nil
}

// Close releases local state and the log file.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing local state", "error", err)
	}
	_ = a.logCloser.Close()
}

// assistantClient builds the assistant for the configured mode. Direct mode
// talks to the assistant base without credentials; backend mode reuses the
// authenticated API client.
func (a *app) assistantClient() *assistant.Client {
	mode := a.cfg.AssistantMode()
	logger := a.logger.With("component", "assistant")
	if mode == assistant.ModeBackend {
		return assistant.NewClient(a.client, mode, logger)
	}
	remote := api.New(a.cfg.Assistant.BaseURL,
		api.WithHTTPClient(&http.Client{Timeout: a.cfg.Assistant.Timeout}),
		api.WithLogger(logger),
	)
	return assistant.NewClient(remote, mode, logger)
}

// newFlow builds the chat flow over the app's collaborators.
func (a *app) newFlow(ctx context.Context) (*chat.Flow, error) {
	flow, err := chat.New(ctx, chat.Deps{
		Tickets:   a.client.Tickets,
		Messages:  a.client.TicketMessages,
		Assistant: a.assistantClient(),
		Store:     a.store,
		Logger:    a.logger.With("component", "chat"),
	}, chat.WithPacing(chat.Pacing{
		Min:     a.cfg.Chat.MinDelay,
		Max:     a.cfg.Chat.MaxDelay,
		PerChar: a.cfg.Chat.PerChar,
	}))
	if err != nil {
		return nil, fmt.Errorf("starting chat: %w", err)
	}
	return flow, nil
}
