package cli

import (
	"context"
	"log"

	"github.com/Mishnah7/quiz-bot/internal/config"
	"github.com/Mishnah7/quiz-bot/internal/infra/sqlite"
	"github.com/spf13/cobra"
)

// NewMigrateCmd applies database migrations without starting the bot.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	log.Printf("migrations applied")
	return nil
}
