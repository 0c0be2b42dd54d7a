package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"assetman/internal/config"
	"assetman/internal/logging"
	"assetman/internal/manifest"
	"assetman/internal/registry"
	"assetman/internal/schema"
	"assetman/internal/setting"
	"assetman/internal/store"
)

type commandContext struct {
	configFlag *string
	sessionID  string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		sessionID:  uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, c.sessionID)
	})
	return c.logger, c.loggerErr
}

// workspace is everything a settings command needs, opened for one command
// run.
type workspace struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *store.Store
	registry  *registry.Registry
	manifests []*manifest.Declared
	validator *schema.Validator
	repo      *setting.Repository
}

// withWorkspace opens the database, builds the registry from the interface
// manifests and runs fn. Writers hold the database lock until fn returns.
func (c *commandContext) withWorkspace(cmd *cobra.Command, write bool, fn func(context.Context, *workspace) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if write {
		lock, err := store.AcquireLock(cfg.LockPath())
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("release database lock failed", logging.Error(err))
			}
		}()
	}

	st, err := store.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open settings database: %w", err)
	}
	defer st.Close()

	decls, err := manifest.Load(cfg.Paths.InterfacesDir, logger)
	if err != nil {
		return fmt.Errorf("load interfaces: %w", err)
	}
	modelIDs, err := st.NotetypeIDs(ctx)
	if err != nil {
		return err
	}
	reg := registry.New()
	if err := manifest.Install(reg, decls, modelIDs); err != nil {
		return fmt.Errorf("install interfaces: %w", err)
	}

	validator, err := schema.New()
	if err != nil {
		return err
	}
	codec := setting.NewCodec(reg, logger)

	return fn(ctx, &workspace{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		registry:  reg,
		manifests: decls,
		validator: validator,
		repo:      setting.NewRepository(st, codec, validator, logger),
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
