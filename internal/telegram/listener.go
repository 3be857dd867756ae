package telegram

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go-gig-router/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Checker starts an out-of-schedule full check.
type Checker interface {
	TriggerCheck()
}

// Listen long-polls Telegram for button presses and commands until ctx is
// done.
func (b *Bot) Listen(ctx context.Context, checker Checker) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	b.logger.Info("listening for telegram updates")
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update, checker)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update, checker Checker) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message, checker)
	}
}

func (b *Bot) handleCallback(q *tgbotapi.CallbackQuery) {
	id, ok := strings.CutPrefix(q.Data, showMorePrefix)
	if !ok {
		b.answer(q.ID, "")
		return
	}

	p, found := b.store.Posting(id)
	if !found || q.Message == nil || q.Message.Chat == nil {
		b.answer(q.ID, "Job description not available.")
		return
	}

	edit := tgbotapi.NewEditMessageText(q.Message.Chat.ID, q.Message.MessageID, expandPosting(q.Message.Text, p.Description))
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = true
	if kb, ok := postingKeyboard(p, false); ok {
		edit.ReplyMarkup = &kb
	}

	if _, err := b.api.Request(edit); err != nil {
		b.logger.Error("failed to expand job message",
			zap.String("job_id", p.ShortID()),
			zap.Error(err))
		b.answer(q.ID, "An error occurred while showing the full description.")
		return
	}
	b.answer(q.ID, "")
}

func (b *Bot) answer(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger.Warn("failed to answer callback", zap.Error(err))
	}
}

func (b *Bot) handleCommand(ctx context.Context, m *tgbotapi.Message, checker Checker) {
	var reply string
	switch m.Command() {
	case "check":
		reply = "Checking for new Upwork jobs..."
		if checker != nil {
			checker.TriggerCheck()
		}
	case "status":
		reply = formatStatus(b.store.Snapshot(), b.channels)
	case "filter":
		reply = b.filterCommand(m.CommandArguments())
	case "filtered":
		ids := b.store.Filtered()
		if len(ids) == 0 {
			reply = "No jobs have been manually filtered."
		} else {
			reply = "Manually Filtered Jobs\n- " + strings.Join(ids, "\n- ")
		}
	case "start", "help":
		reply = "Commands: /check, /status, /filter <job_id>, /filtered"
	default:
		return
	}

	b.logger.Info("command received",
		zap.String("command", m.Command()),
		zap.Int64("chat_id", m.Chat.ID))

	msg := tgbotapi.NewMessage(m.Chat.ID, reply)
	msg.ReplyToMessageID = m.MessageID
	if _, err := b.send(ctx, msg); err != nil {
		b.logger.Error("failed to reply to command", zap.String("command", m.Command()), zap.Error(err))
	}
}

// filterCommand accepts a numeric job id or a job link containing one.
func (b *Bot) filterCommand(arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "Please provide a job ID to filter. Usage: /filter <job_id>"
	}
	id := models.JobIDFromURL(arg)
	if !isDigits(id) {
		return "Invalid job ID. Please provide a numeric ID."
	}
	if !b.store.AddFiltered(id) {
		return fmt.Sprintf("Job ID %s is already filtered.", id)
	}
	b.logger.Info("job filtered manually", zap.String("job_id", id))
	return fmt.Sprintf("Job ID %s has been added to the filter list.", id)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
