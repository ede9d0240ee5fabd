package app

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/KeliLabs/cryptoview/internal/config"
	"github.com/KeliLabs/cryptoview/internal/server"

	"github.com/joho/godotenv"
)

const cfgPath = "./config/config.json"

func Start() error {
	var (
		port     = flag.Int("port", 0, "Port number")
		helpFlag = flag.Bool("help", false, "Show help message")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  cryptoview [--port <N>]\n")
		fmt.Fprintf(os.Stderr, "  cryptoview --help\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  --port N     Port number\n")
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0) // Exit cleanly when help is requested
	}

	// Local development keeps secrets in .env; its absence is normal.
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on process environment")
	}

	slog.Info("Loading configuration...")
	cfg, err := config.GetConfig(cfgPath)
	if err != nil {
		slog.Error("failed to get config", "error", err)
		return fmt.Errorf("failed to get config: %w", err)
	}

	if *port > 0 {
		cfg.App.Port = *port
	}
	slog.Info("Configuration loaded", "port", cfg.App.Port)

	slog.Info("Creating application instance...")
	app := server.NewApp(cfg)

	slog.Info("Initializing application...")
	if err := app.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	slog.Info("Starting server...")
	app.Run()

	slog.Info("Server stopped")
	return nil
}
