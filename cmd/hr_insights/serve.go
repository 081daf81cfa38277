package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/hr-insights/internal/config"
	"github.com/jonathan/hr-insights/internal/llm"
	"github.com/jonathan/hr-insights/internal/logger"
	"github.com/jonathan/hr-insights/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the analysis, screening, skill gap and assistant endpoints.
Requirement sets and analyses are kept in PostgreSQL when a database URL is configured, in memory otherwise.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("catalog", "", "Path to a catalog file (defaults to the embedded catalog)")
	serveCmd.Flags().Bool("log-json", false, "Write JSON log lines")
	serveCmd.Flags().Bool("debug", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	for key, flag := range map[string]string{
		"port":         "port",
		"catalog_path": "catalog",
		"log.json":     "log-json",
		"log.debug":    "debug",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", flag, err)
		}
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	c, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			store.Close()
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		log.Info("generative replies enabled")
	} else {
		log.Info("GEMINI_API_KEY not set, assistant uses templated replies")
	}

	srv, err := server.New(server.Options{
		Config:  cfg,
		JWT:     jwtCfg,
		Store:   store,
		Catalog: c,
		LLM:     client,
		Logger:  log,
	})
	if err != nil {
		store.Close()
		if client != nil {
			_ = client.Close()
		}
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Info("catalog loaded", zap.String("version", c.Version), zap.Int("skill_categories", len(c.SkillCategories)))
	return srv.Start()
}
