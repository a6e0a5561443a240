package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"career-compass/internal/app"
	"career-compass/internal/config"
	"career-compass/internal/llm"
)

const (
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

type rootOptions struct {
	envFile string
	verbose bool
	memory  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "quizctl",
		Short:         "Terminal tools for the career assessment pipeline",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading configuration")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline events to stderr")
	cmd.PersistentFlags().BoolVar(&opts.memory, "memory", true, "use the in-memory document store instead of STORE_BACKEND")

	cmd.AddCommand(newPlayCmd(opts), newCheckCmd(opts))
	return cmd
}

// loadConfig carga .env y la configuracion; --memory reemplaza STORE_BACKEND.
func loadConfig(opts *rootOptions) (*config.Config, *zap.Logger, error) {
	if err := godotenv.Load(opts.envFile); err != nil {
		log.Printf("warning: loading %s: %v", opts.envFile, err)
	}
	if opts.memory {
		if err := os.Setenv("STORE_BACKEND", config.StoreMemory); err != nil {
			return nil, nil, err
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := zap.NewNop()
	if opts.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, nil, err
		}
	}
	return cfg, logger, nil
}

// bootstrap arma la app con el cliente dado (nil = proveedor configurado); el llamador la cierra.
func bootstrap(ctx context.Context, opts *rootOptions, client llm.LLMClient) (*app.App, *config.Config, error) {
	cfg, logger, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(ctx, cfg, logger, client)
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}
