package telegram

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Mishnah7/quiz-bot/internal/app"
	"github.com/Mishnah7/quiz-bot/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	answerCallbackPrefix     = "quiz_"
	difficultyCallbackPrefix = "difficulty_"
	languageCallbackPrefix   = "lang_"
)

// Bot routes Telegram updates into the quiz use cases.
type Bot struct {
	api        *tgbotapi.BotAPI
	quiz       *app.QuizService
	scheduler  *app.Scheduler
	users      app.UserStore
	translator app.Translator
	adminID    int64
}

func NewBot(api *tgbotapi.BotAPI, quiz *app.QuizService, scheduler *app.Scheduler, users app.UserStore, translator app.Translator, adminID int64) *Bot {
	return &Bot{
		api:        api,
		quiz:       quiz,
		scheduler:  scheduler,
		users:      users,
		translator: translator,
		adminID:    adminID,
	}
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	log.Printf("authorized on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message != nil && update.Message.IsCommand() {
				b.handleCommand(ctx, update.Message)
			}
			if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	user := msg.From
	if user == nil {
		return
	}
	if _, err := b.users.EnsureUser(ctx, user.ID, user.UserName); err != nil {
		log.Printf("telegram: ensure user %d: %v", user.ID, err)
	}
	lang := b.language(ctx, user.ID)

	switch msg.Command() {
	case "start":
		b.reply(ctx, user.ID, lang, "Welcome to the Quiz Bot! Type /help for commands.")
	case "help":
		b.reply(ctx, user.ID, lang, helpText)
	case "quiz":
		b.sendDifficultyKeyboard(ctx, user.ID, lang)
	case "leaderboard":
		b.sendLeaderboard(ctx, user.ID, lang)
	case "user_info":
		b.sendUserInfo(ctx, user.ID, lang)
	case "all_users":
		b.sendAllUsers(ctx, user.ID, lang)
	case "set_language":
		b.sendLanguageKeyboard(user.ID)
	case "my_quizzes":
		b.sendQuizHistory(ctx, user.ID, lang)
	case "schedule_quiz":
		b.scheduler.Start(user.ID)
		b.reply(ctx, user.ID, lang, "✅ Automatic quizzes scheduled! You'll receive a new question every 30 minutes.")
	case "stop_schedule":
		if b.scheduler.Stop(user.ID) {
			b.reply(ctx, user.ID, lang, "✅ Automatic quizzes stopped.")
		} else {
			b.reply(ctx, user.ID, lang, "❌ No scheduled quizzes found.")
		}
	case "score_history":
		b.sendScoreHistory(ctx, user.ID, lang)
	case "my_score":
		b.sendScore(ctx, user.ID, lang)
	case "reset":
		if err := b.users.ResetScore(ctx, user.ID); err != nil {
			log.Printf("telegram: reset score for %d: %v", user.ID, err)
			return
		}
		b.reply(ctx, user.ID, lang, "Your score has been reset to 0.")
	default:
		b.reply(ctx, user.ID, lang, "Unknown command. Type /help for commands.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	user := query.From
	if user == nil {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("telegram: answer callback: %v", err)
	}
	if _, err := b.users.EnsureUser(ctx, user.ID, user.UserName); err != nil {
		log.Printf("telegram: ensure user %d: %v", user.ID, err)
	}
	lang := b.language(ctx, user.ID)
	data := query.Data

	switch {
	case strings.HasPrefix(data, difficultyCallbackPrefix):
		difficulty := domain.Difficulty(strings.TrimPrefix(data, difficultyCallbackPrefix))
		if !difficulty.Valid() {
			return
		}
		b.editCallbackMessage(query, b.translator.Translate(ctx, "Fetching question...", lang))
		if err := b.quiz.PresentNewQuestion(ctx, user.ID, difficulty); err != nil {
			log.Printf("telegram: present question to %d: %v", user.ID, err)
		}
	case strings.HasPrefix(data, answerCallbackPrefix):
		chosen := strings.TrimPrefix(data, answerCallbackPrefix)
		if _, err := b.quiz.SubmitAnswer(ctx, user.ID, chosen); err != nil && !errors.Is(err, domain.ErrNoPendingSession) {
			log.Printf("telegram: submit answer for %d: %v", user.ID, err)
		}
	case strings.HasPrefix(data, languageCallbackPrefix):
		code := strings.TrimPrefix(data, languageCallbackPrefix)
		if _, ok := domain.Languages[code]; !ok {
			return
		}
		if err := b.users.SetLanguage(ctx, user.ID, code); err != nil {
			log.Printf("telegram: set language for %d: %v", user.ID, err)
			return
		}
		b.editCallbackMessage(query, b.translator.Translate(ctx, "Language updated successfully!", code))
	}
}

func (b *Bot) sendDifficultyKeyboard(ctx context.Context, userID int64, lang string) {
	msg := tgbotapi.NewMessage(userID, b.translator.Translate(ctx, "Choose difficulty level:", lang))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟢 Easy", difficultyCallbackPrefix+"easy"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟡 Medium", difficultyCallbackPrefix+"medium"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔴 Hard", difficultyCallbackPrefix+"hard"),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("telegram: send difficulty keyboard: %v", err)
	}
}

func (b *Bot) sendLanguageKeyboard(userID int64) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(domain.Languages))
	for _, code := range languageOrder() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(domain.Languages[code], languageCallbackPrefix+code),
		))
	}
	msg := tgbotapi.NewMessage(userID, "Choose your language:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("telegram: send language keyboard: %v", err)
	}
}

func (b *Bot) sendLeaderboard(ctx context.Context, userID int64, lang string) {
	entries, err := b.users.TopScores(ctx, 10)
	if err != nil {
		log.Printf("telegram: load leaderboard: %v", err)
		return
	}
	if len(entries) == 0 {
		b.reply(ctx, userID, lang, "No scores yet!")
		return
	}
	b.send(userID, leaderboardText(entries))
}

func (b *Bot) sendUserInfo(ctx context.Context, userID int64, lang string) {
	user, err := b.users.User(ctx, userID)
	if err != nil {
		b.reply(ctx, userID, lang, "User information not found.")
		return
	}
	b.send(userID, userInfoText(user))
}

func (b *Bot) sendAllUsers(ctx context.Context, userID int64, lang string) {
	if userID != b.adminID {
		b.reply(ctx, userID, lang, "❌ This command is only available to administrators.")
		return
	}
	users, err := b.users.AllUsers(ctx)
	if err != nil {
		log.Printf("telegram: list users: %v", err)
		return
	}
	if len(users) == 0 {
		b.reply(ctx, userID, lang, "No users found.")
		return
	}
	b.send(userID, allUsersText(users))
}

func (b *Bot) sendQuizHistory(ctx context.Context, userID int64, lang string) {
	attempts, err := b.users.RecentAttempts(ctx, userID, 5)
	if err != nil {
		log.Printf("telegram: load quiz history: %v", err)
		return
	}
	if len(attempts) == 0 {
		b.reply(ctx, userID, lang, "You haven't taken any quizzes yet!")
		return
	}
	b.send(userID, attemptsText(attempts))
}

func (b *Bot) sendScoreHistory(ctx context.Context, userID int64, lang string) {
	entries, err := b.users.RecentScoreHistory(ctx, userID, 10)
	if err != nil {
		log.Printf("telegram: load score history: %v", err)
		return
	}
	if len(entries) == 0 {
		b.reply(ctx, userID, lang, "No score history available yet!")
		return
	}
	b.send(userID, scoreHistoryText(entries))
}

func (b *Bot) sendScore(ctx context.Context, userID int64, lang string) {
	score, err := b.users.Score(ctx, userID)
	if err != nil {
		log.Printf("telegram: load score: %v", err)
		return
	}
	b.send(userID, b.translator.Translate(ctx, scoreText(score), lang))
}

func (b *Bot) editCallbackMessage(query *tgbotapi.CallbackQuery, text string) {
	if query.Message == nil {
		return
	}
	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, text)
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("telegram: edit message: %v", err)
	}
}

// reply translates the text to the user's language and sends it.
func (b *Bot) reply(ctx context.Context, userID int64, lang, text string) {
	b.send(userID, b.translator.Translate(ctx, text, lang))
}

func (b *Bot) send(userID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(userID, text)); err != nil {
		log.Printf("telegram: send message to %d: %v", userID, err)
	}
}

func (b *Bot) language(ctx context.Context, userID int64) string {
	lang, err := b.users.Language(ctx, userID)
	if err != nil || lang == "" {
		return domain.DefaultLanguage
	}
	return lang
}
