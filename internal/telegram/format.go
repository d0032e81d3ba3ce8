package telegram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Mishnah7/quiz-bot/internal/domain"
)

const helpText = `Available Commands:

/start - Initialize or reset your profile
/quiz - Choose quiz difficulty and start
/leaderboard - See top scorers
/user_info - Check your own information
/all_users - List all users who have interacted with the bot
/set_language - Change the bot's language
/my_quizzes - See your quiz history
/schedule_quiz - Schedule automatic quizzes
/stop_schedule - Stop automatic quizzes
/score_history - View your score history
/my_score - View your current score
/reset - Reset your score to 0
/help - Show this help message`

func leaderboardText(entries []domain.LeaderboardEntry) string {
	var b strings.Builder
	b.WriteString("🏆 Leaderboard 🏆\n\n")
	for i, entry := range entries {
		fmt.Fprintf(&b, "%d. %s: %d points\n", i+1, entry.Username, entry.Score)
	}
	return b.String()
}

func userInfoText(user domain.User) string {
	language := user.Language
	if name, ok := domain.Languages[language]; ok {
		language = name
	}
	return fmt.Sprintf("Your Information:\nUsername: %s\nScore: %d\nLanguage: %s\nMember since: %s",
		user.Username, user.Score, language, user.CreatedAt.Format("2006-01-02 15:04"))
}

func allUsersText(users []domain.User) string {
	var b strings.Builder
	b.WriteString("👥 All Users:\n\n")
	for _, user := range users {
		language := user.Language
		if name, ok := domain.Languages[language]; ok {
			language = name
		}
		fmt.Fprintf(&b, "%s\nScore: %d\nLanguage: %s\nLast seen: %s\n\n",
			user.Username, user.Score, language, user.LastInteraction.Format("2006-01-02 15:04"))
	}
	return b.String()
}

func attemptsText(attempts []domain.QuizAttempt) string {
	var b strings.Builder
	b.WriteString("📚 Your Recent Quizzes:\n\n")
	for _, attempt := range attempts {
		fmt.Fprintf(&b, "Question: %s\nAnswer: %s\nCategory: %s\nDate: %s\n\n",
			attempt.Question, attempt.Answer, attempt.QuizType, attempt.CreatedAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

func scoreHistoryText(entries []domain.ScoreHistoryEntry) string {
	var b strings.Builder
	b.WriteString("📈 Your Score History:\n\n")
	for _, entry := range entries {
		fmt.Fprintf(&b, "Score: %d points\nDate: %s\n\n", entry.Score, entry.Timestamp.Format("2006-01-02 15:04"))
	}
	return b.String()
}

func scoreText(score int) string {
	return fmt.Sprintf("Your current score is: %d points", score)
}

// languageOrder returns the supported language codes in a stable order for
// keyboard layout.
func languageOrder() []string {
	codes := make([]string, 0, len(domain.Languages))
	for code := range domain.Languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
