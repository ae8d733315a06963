package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskman/internal/model"
)

// TelegramNotifier pushes reminder summaries to a single chat.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier authenticates against the Bot API.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

func (n *TelegramNotifier) NotifyOverdue(ctx context.Context, tasks []model.Task) error {
	return n.send(ctx, "⚠️ <b>Overdue tasks</b>", tasks)
}

func (n *TelegramNotifier) NotifyUpcoming(ctx context.Context, tasks []model.Task) error {
	return n.send(ctx, "⏳ <b>Due soon</b>", tasks)
}

func (n *TelegramNotifier) send(ctx context.Context, header string, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')
	for _, t := range tasks {
		sb.WriteString(fmt.Sprintf("• %s — %s\n",
			html.EscapeString(strings.TrimSpace(t.Title)),
			t.DueTime.Format("2006-01-02 15:04")))
	}

	msg := tgbotapi.NewMessage(n.chatID, strings.TrimSpace(sb.String()))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
