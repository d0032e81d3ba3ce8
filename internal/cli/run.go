package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mishnah7/quiz-bot/internal/app"
	"github.com/Mishnah7/quiz-bot/internal/config"
	"github.com/Mishnah7/quiz-bot/internal/infra/memory"
	"github.com/Mishnah7/quiz-bot/internal/infra/opentdb"
	redissession "github.com/Mishnah7/quiz-bot/internal/infra/redis"
	"github.com/Mishnah7/quiz-bot/internal/infra/sqlite"
	"github.com/Mishnah7/quiz-bot/internal/infra/translate"
	"github.com/Mishnah7/quiz-bot/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewRunCmd builds the CLI subcommand that starts the bot.
func NewRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the quiz bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context(), *configPath)
		},
	}
}

func runBot(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
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
	log.Printf("database ready at %s", cfg.Database.Path)

	var sessions app.SessionRepository = memory.NewSessionStore()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessions = redissession.NewSessionStore(client, config.Duration(cfg.Redis.TTL, 30*time.Minute))
		log.Printf("pending sessions stored in redis at %s", cfg.Redis.Addr)
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	questions := opentdb.NewClient(httpClient)
	translator := translate.NewCachedTranslator(translate.NewGoogleTranslator(httpClient), time.Hour)

	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return err
	}

	service := app.NewQuizService(
		sessions,
		questions,
		store,
		translator,
		telegram.NewSender(api),
		config.Duration(cfg.Quiz.AnswerDelay, 3*time.Second),
	)
	scheduler := app.NewScheduler(
		service,
		config.Duration(cfg.Quiz.ScheduleFirst, 5*time.Second),
		config.Duration(cfg.Quiz.ScheduleInterval, 30*time.Minute),
	)
	defer scheduler.StopAll()

	bot := telegram.NewBot(api, service, scheduler, store, translator, cfg.Bot.AdminID)

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("starting quiz bot...")
	if err := bot.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Printf("shutting down")
	return nil
}
