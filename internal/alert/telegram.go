// Package alert pushes operational events to a Telegram ops chat. Alerts
// never carry user-written text, only event metadata.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"

	"github.com/serenity-health/serenity/internal/config"
)

const sendTimeout = 10 * time.Second
const maxAlertLen = 4000

type Kind string

const (
	KindOps    Kind = "ops"
	KindCrisis Kind = "crisis"
)

type Notifier struct {
	bot         *bot.Bot
	chatID      int64
	topicOps    int
	topicCrisis int
}

// New builds the notifier, or returns nil when alerts are not configured.
// A nil *Notifier is safe to call.
func New(cfg *config.Config) (*Notifier, error) {
	if !cfg.AlertsEnabled() {
		return nil, nil
	}
	b, err := bot.New(cfg.AlertBotToken)
	if err != nil {
		return nil, fmt.Errorf("create alert bot: %w", err)
	}
	return &Notifier{
		bot:         b,
		chatID:      cfg.AlertChatID,
		topicOps:    cfg.AlertTopicOps,
		topicCrisis: cfg.AlertTopicCrisis,
	}, nil
}

func (n *Notifier) send(kind Kind, message string) {
	if n == nil || n.bot == nil {
		return
	}

	if len([]rune(message)) > maxAlertLen {
		message = string([]rune(message)[:maxAlertLen-20]) + "\n\n... (truncated)"
	}

	topicID := n.topicOps
	if kind == KindCrisis {
		topicID = n.topicCrisis
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          n.chatID,
		Text:            message,
		ParseMode:       "Markdown",
		MessageThreadID: topicID,
	})
	if err != nil {
		slog.Error("failed to send alert", "kind", kind, "error", err)
	}
}

func (n *Notifier) Startup(addr string) {
	if n == nil {
		return
	}
	n.send(KindOps, fmt.Sprintf("🟢 *Server started*\n\n*Addr:* `%s`\n*Time:* %s",
		addr, time.Now().Format("2006-01-02 15:04:05")))
}

func (n *Notifier) Shutdown() {
	if n == nil {
		return
	}
	n.send(KindOps, fmt.Sprintf("🔴 *Server stopping*\n\n*Time:* %s",
		time.Now().Format("2006-01-02 15:04:05")))
}

func (n *Notifier) Error(err error, where string) {
	if n == nil {
		return
	}
	n.send(KindOps, fmt.Sprintf("❌ *Error*\n\n*Where:* %s\n*Error:* `%s`\n*Time:* %s",
		where, err.Error(), time.Now().Format("2006-01-02 15:04:05")))
}

// NotifyCrisis reports that the crisis screen tripped. Only the severity
// level is sent; the message itself never leaves the server. The send runs
// detached so the reply to the person is not delayed.
func (n *Notifier) NotifyCrisis(_ context.Context, severity string) {
	if n == nil {
		return
	}
	go n.send(KindCrisis, fmt.Sprintf("🚨 *Crisis screen tripped*\n\n*Severity:* %s\n*Time:* %s",
		severity, time.Now().Format("2006-01-02 15:04:05")))
}
