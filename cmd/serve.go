package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arinadev/recipebook/api"
	"github.com/arinadev/recipebook/config"
	"github.com/arinadev/recipebook/database"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recipebook server",
	Long:  `Start the recipebook web server and serve the recipe site until interrupted.`,
	Example: `recipebook serve --config config.yml
recipebook serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if rootCmdPersistentFlags.LogLevel == "" && cfg.LogLevel != "" {
		setLogLevel(cfg.LogLevel)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	server, err := api.New(cfg, db)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	go func() {
		log.Info("starting server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("recipebook started successfully")
	<-c
	log.Info("shutting down gracefully...")

	// Give in-flight requests a moment to finish
	time.Sleep(2 * time.Second)

	if err := db.Close(); err != nil {
		log.Error("failed to close database", "error", err)
	}
}
