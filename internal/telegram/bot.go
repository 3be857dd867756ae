package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-gig-router/internal/models"
	"go-gig-router/internal/state"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// botAPI is the subset of *tgbotapi.BotAPI the bot uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Options struct {
	AdminChatID  int64
	MaxRetries   int
	RetryDelay   time.Duration
	SendInterval time.Duration
}

// Bot posts job postings to one chat per category and serves the
// "Show More" button and the operator commands.
type Bot struct {
	api         botAPI
	channels    map[models.Category]int64
	adminChatID int64
	store       *state.Store
	limiter     *rate.Limiter
	retry       retrypolicy.RetryPolicy[tgbotapi.Message]
	logger      *zap.Logger
	// unit of Telegram's retry_after hint
	retryAfterUnit time.Duration
}

func NewBot(token string, channels map[models.Category]int64, store *state.Store, opts Options, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	logger.Info("telegram bot authorized", zap.String("username", api.Self.UserName))
	return newBot(api, channels, store, opts, logger), nil
}

func newBot(api botAPI, channels map[models.Category]int64, store *state.Store, opts Options, logger *zap.Logger) *Bot {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 5 * time.Second
	}
	if opts.SendInterval <= 0 {
		opts.SendInterval = time.Second
	}

	retry := retrypolicy.NewBuilder[tgbotapi.Message]().
		HandleIf(func(_ tgbotapi.Message, err error) bool {
			return err != nil && isRetryable(err)
		}).
		WithMaxAttempts(opts.MaxRetries).
		WithDelay(opts.RetryDelay).
		OnRetry(func(e failsafe.ExecutionEvent[tgbotapi.Message]) {
			logger.Warn("retrying telegram send",
				zap.Int("attempt", e.Attempts()),
				zap.Error(e.LastError()))
		}).
		Build()

	return &Bot{
		api:            api,
		channels:       channels,
		adminChatID:    opts.AdminChatID,
		store:          store,
		limiter:        rate.NewLimiter(rate.Every(opts.SendInterval), 1),
		retry:          retry,
		logger:         logger,
		retryAfterUnit: time.Second,
	}
}

// SendPosting posts p to the chat of category. Categories without a chat
// are skipped without error.
func (b *Bot) SendPosting(ctx context.Context, category models.Category, p models.Posting) error {
	chatID, ok := b.channels[category]
	if !ok {
		b.logger.Warn("no channel configured for category", zap.String("category", category.String()))
		return nil
	}

	msg := tgbotapi.NewMessage(chatID, formatPosting(category, p))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if kb, ok := postingKeyboard(p, true); ok {
		msg.ReplyMarkup = kb
	}

	sent, err := b.send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send job %s to %s: %w", p.ShortID(), category, err)
	}
	b.logger.Info("sent job",
		zap.String("job_id", p.ShortID()),
		zap.String("title", p.Title),
		zap.String("category", category.String()),
		zap.Int("message_id", sent.MessageID))
	return nil
}

// ReportError tells the admin chat about a failed cycle.
func (b *Bot) ReportError(ctx context.Context, errReq error) error {
	if b.adminChatID == 0 {
		return nil
	}
	_, err := b.send(ctx, tgbotapi.NewMessage(b.adminChatID, fmt.Sprintf("❌ Error: %v", errReq)))
	return err
}

func (b *Bot) SendStatus(ctx context.Context, message string) error {
	if b.adminChatID == 0 {
		return nil
	}
	_, err := b.send(ctx, tgbotapi.NewMessage(b.adminChatID, "ℹ️ "+message))
	return err
}

// send paces and retries a message. A 429 answer waits for Telegram's
// retry_after before the next attempt.
func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return failsafe.With(b.retry).WithContext(ctx).Get(func() (tgbotapi.Message, error) {
		if err := b.limiter.Wait(ctx); err != nil {
			return tgbotapi.Message{}, err
		}
		msg, err := b.api.Send(c)
		if err == nil {
			return msg, nil
		}

		var tgErr *tgbotapi.Error
		if errors.As(err, &tgErr) && tgErr.RetryAfter > 0 {
			wait := time.Duration(tgErr.RetryAfter) * b.retryAfterUnit
			b.logger.Warn("rate limited by telegram", zap.Duration("retry_after", wait))
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return tgbotapi.Message{}, ctx.Err()
			case <-timer.C:
			}
		}
		return msg, err
	})
}

// 400 and 403 mean the request itself is wrong or the bot was removed from
// the chat; repeating it cannot help.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		return tgErr.Code != 400 && tgErr.Code != 403
	}
	return true
}
