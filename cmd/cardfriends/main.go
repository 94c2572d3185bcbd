package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/cardfriends/internal/app"
	"github.com/jask/cardfriends/internal/config"
	"github.com/jask/cardfriends/internal/friends"
	"github.com/jask/cardfriends/internal/logging"
	"github.com/jask/cardfriends/internal/platform"
	"github.com/jask/cardfriends/internal/secrets"
	"github.com/jask/cardfriends/internal/usersapi"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cli carries what the persistent pre-run resolves for every subcommand.
type cli struct {
	configPath string
	endpoint   string
	start      string

	cfg    config.Config
	logger *zap.Logger
	store  *secrets.Store
}

func newRootCmd() *cobra.Command {
	root, _ := newRootCmdWith(nil)
	return root
}

// newRootCmdWith builds the command tree around a secret store; nil uses the
// default one under the user config directory.
func newRootCmdWith(store *secrets.Store) (*cobra.Command, *cli) {
	c := &cli{store: store}
	root := &cobra.Command{
		Use:   "cardfriends",
		Short: "Article card editor and friends list in the terminal",
		Long: `cardfriends shows two screens under one shell:

  Article Form    edit a preview card with live validation
  Friends List    browse users from a reqres-compatible API

Run without arguments to start the interactive interface.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/cardfriends/config.toml)")
	root.Flags().StringVar(&c.endpoint, "endpoint", "", "users API endpoint, overriding api.endpoint")
	root.Flags().StringVar(&c.start, "start", "", "screen to open first: article or facebook")

	root.AddCommand(newServeFixtureCmd(c), newConfigCmd(c))
	return root, c
}

func (c *cli) setup() error {
	if c.configPath != "" {
		if err := os.Setenv("CARDFRIENDS_CONFIG", c.configPath); err != nil {
			return fmt.Errorf("set config path: %w", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.endpoint != "" {
		cfg.API.Endpoint = c.endpoint
	}
	if c.start != "" {
		cfg.UI.StartScreen = c.start
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger
	return nil
}

func (c *cli) runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	apiKey, err := c.apiKey()
	if err != nil {
		return err
	}
	client, err := usersapi.New(usersapi.Options{
		Endpoint: c.cfg.API.Endpoint,
		APIKey:   apiKey,
		Timeout:  c.cfg.API.Timeout,
	})
	if err != nil {
		return fmt.Errorf("users api: %w", err)
	}

	model := app.NewModel(c.deps(ctx, client), c.cfg.UI.StartScreen)
	c.logger.Info("starting", zap.String("endpoint", c.cfg.API.Endpoint), zap.String("start", c.cfg.UI.StartScreen))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func (c *cli) deps(ctx context.Context, src friends.Source) app.Deps {
	seed := uint64(time.Now().UnixNano())
	return app.Deps{
		Context: ctx,
		Loader: &friends.Loader{
			Source: src,
			Rand:   friends.NewLockedRand(rand.New(rand.NewPCG(seed, seed>>1))),
			Log:    c.logger.Named("loader"),
		},
		History: platform.NewHistory(platform.Entry{State: friends.StateList, URL: friends.URLList}),
		Actions: platform.NewOpener(c.logger.Named("opener")),
		Log:     c.logger,
	}
}

func (c *cli) secretStore() (secrets.Store, error) {
	if c.store != nil {
		return *c.store, nil
	}
	return secrets.DefaultStore()
}

// apiKey prefers the configured key (file or CARDFRIENDS_API_KEY) and
// falls back to the one saved with "config set-key".
func (c *cli) apiKey() (string, error) {
	if c.cfg.API.Key != "" {
		return c.cfg.API.Key, nil
	}
	store, err := c.secretStore()
	if err != nil {
		return "", err
	}
	key, err := store.Get(secrets.UsersAPI)
	switch {
	case errors.Is(err, secrets.ErrNotFound):
		return "", nil
	case err != nil:
		c.logger.Warn("stored api key unreadable", zap.Error(err))
		return "", nil
	}
	return key, nil
}
