package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bookshelf/internal/cache"
	"bookshelf/internal/config"
	"bookshelf/internal/db"
	"bookshelf/internal/logger"
	"bookshelf/internal/repository"
	"bookshelf/internal/seed"
	"bookshelf/internal/service"
)

var (
	resetDemo bool
	withItems bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo account",
	Long: `Creates the demo account (` + seed.DemoEmail + `) with a reading goal for
the current year. Running it again leaves an existing account untouched.`,
	RunE: runSeed,
}

func init() {
	rootCmd.Flags().BoolVar(&resetDemo, "reset", false, "Delete the demo account and everything it owns first")
	rootCmd.Flags().BoolVar(&withItems, "with-items", false, "Add sample items when the account has none")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	cacheClient := cache.New(cache.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPass,
		DB:          cfg.RedisDB,
		DialTimeout: 2 * time.Second,
	}, log)
	defer cacheClient.Close()

	userRepo := repository.NewUserRepository(gormDB)
	seeder := seed.New(
		userRepo,
		service.NewUserService(userRepo, cacheClient, log),
		repository.NewItemRepository(gormDB),
		log,
	)
	res, err := seeder.Run(cmd.Context(), seed.Options{Reset: resetDemo, WithItems: withItems})
	if err != nil {
		return err
	}

	log.WithField("user_id", res.UserID.String()).
		WithField("created", res.Created).
		WithField("reset", res.Reset).
		WithField("items_created", res.ItemsCreated).
		Info("seed completed")
	fmt.Fprintf(cmd.OutOrStdout(), "demo account: %s / %s\n", seed.DemoEmail, seed.DemoPassword)
	return nil
}
