package main

import (
	"fmt"
	"os"

	"license-manager/internal/api/routes"
	"license-manager/internal/config"
	"license-manager/internal/models"
	"license-manager/internal/seed"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const version = "1.0.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "license-manager",
	Short: "License Manager - track software licenses across rooms and computers",
	// Default to serve command if no subcommand provided
	Run: func(cmd *cobra.Command, args []string) {
		runServe(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Run:   runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with sample data",
	Run:   runSeed,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("license-manager " + version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "path to config file")
	rootCmd.AddCommand(serveCmd, seedCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// setup loads .env, config and the database, the shared prologue of every
// subcommand.
func setup() (*config.Config, *gorm.DB) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.Server.Mode == "debug" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	return cfg, db
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, db := setup()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	routes.SetupRoutes(r, db, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("starting License Manager API")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func runSeed(cmd *cobra.Command, args []string) {
	cfg, db := setup()

	if err := seed.Run(db, cfg); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("database seeded with sample data")
}
