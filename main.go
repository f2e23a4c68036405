package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"RoboScan360/config"
	"RoboScan360/config/db"
	"RoboScan360/config/logger"
	"RoboScan360/jobs"
	"RoboScan360/migrations"
	"RoboScan360/server"
)

// conferenceRetryTimeout bounds one pass of the conference retry job.
const conferenceRetryTimeout = 5 * time.Minute

var (
	startServer = server.Start
	isTest      = false
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "roboscan",
		Short: "Robotic scan appointment API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	root.AddCommand(serveCmd(), indexesCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server with its jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
}

func indexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the mongo indexes and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			database, err := db.Connect(cmd.Context(), cfg.MongoURI, cfg.MongoDatabase)
			if err != nil {
				return err
			}
			defer db.Disconnect(context.Background())
			return migrations.EnsureIndexes(cmd.Context(), database)
		},
	}
}

/*
* Load .env when present
* Read the config and set up the logger
 */
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file loaded")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return nil, err
	}
	logger.Setup(cfg.LogLevel, cfg.IsDev())
	return cfg, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	options := serverOptions(cfg)
	return startServer(options)
}

func serverOptions(cfg *config.Config) server.Options {
	options := server.GetDefaultOptions(cfg)
	options.JobsEnabled = !isTest
	options.MigrationEnabled = !isTest

	options.MigrationHandler = func(ctx context.Context, database *mongo.Database) error {
		return migrations.EnsureIndexes(ctx, database)
	}
	options.JobsHandler = func(app *server.App) (func(), error) {
		c, err := jobs.StartConferenceRetry(cfg.ConferenceRetrySpec, conferenceRetryTimeout, app.Appointments)
		if err != nil {
			return nil, err
		}
		return func() { <-c.Stop().Done() }, nil
	}
	options.WebServerPreHandler = func(r *gin.Engine, app *server.App) {
		if isTest {
			return
		}
		log.Info().Strs("origins", cfg.CORSOrigins).Msg("cors configured")
	}
	return options
}
