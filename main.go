package main

import (
	"flag"
	"fmt"
	"os"

	"apex-client/api"
	"apex-client/db"
	"apex-client/ui"
	"apex-client/utils"
)

var (
	version = "0.1.0"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	baseURL := flag.String("api", "", "Override the API base URL")
	logLevel := flag.String("log-level", "", "Override the log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Apex Client v%s\n", version)
		os.Exit(0)
	}

	// Load or create default configuration
	actualConfigPath := *configPath
	if actualConfigPath == "" {
		var err error
		actualConfigPath, err = utils.EnsureDefaultConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create default config: %v\n", err)
			os.Exit(1)
		}
	}
	config, err := utils.LoadConfig(actualConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		config.API.BaseURL = *baseURL
	}
	if *logLevel != "" {
		config.Log.Level = *logLevel
	}

	logger, err := utils.NewLogger(config.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting Apex Client v%s", version)
	logger.Info("Using config file: %s", actualConfigPath)

	database, err := db.New(config.Data.DBPath)
	if err != nil {
		logger.Error("Failed to initialize database: %v", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Info("Database initialized: %s", config.Data.DBPath)

	client := api.NewClient(api.Config{
		BaseURL:           config.API.BaseURL,
		Timeout:           config.API.Timeout(),
		RequestsPerSecond: config.API.RequestsPerSecond,
		Burst:             config.API.Burst,
	})
	logger.Info("API endpoint: %s", config.API.BaseURL)

	app := ui.NewApp(config, actualConfigPath, database, client, logger)
	defer app.Cleanup()

	logger.Info("Application started")
	app.Run()
	logger.Info("Application stopped")
}
