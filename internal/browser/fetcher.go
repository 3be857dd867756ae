package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// ErrBlocked is returned when the page is a Cloudflare challenge or captcha
// that did not clear on its own.
var ErrBlocked = errors.New("page blocked by challenge")

var blockedTitles = []string{"Attention Required", "Just a moment", "Cloudflare"}

const captchaSelector = ".captcha, .recaptcha, [data-captcha], #challenge-form"

func isBlockedTitle(title string) bool {
	for _, marker := range blockedTitles {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

// PageFetcher loads URLs in a single browser page and returns the rendered
// HTML. Calls are serialized since a page cannot navigate twice at once.
type PageFetcher struct {
	mu            sync.Mutex
	page          playwright.Page
	screenshots   *ScreenshotDebugger
	logger        *zap.Logger
	navTimeout    time.Duration
	challengeWait time.Duration
	humanize      bool
}

type FetcherOption func(*PageFetcher)

// WithChallengeWait sets how long to wait for a challenge page to clear.
func WithChallengeWait(d time.Duration) FetcherOption {
	return func(f *PageFetcher) { f.challengeWait = d }
}

// WithoutHumanize disables scrolling and mouse movement after load.
func WithoutHumanize() FetcherOption {
	return func(f *PageFetcher) { f.humanize = false }
}

func NewPageFetcher(page playwright.Page, screenshots *ScreenshotDebugger, logger *zap.Logger, opts ...FetcherOption) *PageFetcher {
	f := &PageFetcher{
		page:          page,
		screenshots:   screenshots,
		logger:        logger,
		navTimeout:    30 * time.Second,
		challengeWait: 7 * time.Second,
		humanize:      true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := f.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(f.navTimeout.Milliseconds())),
	}); err != nil {
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}

	if f.blocked() {
		f.logger.Info("challenge detected, waiting", zap.String("url", url), zap.Duration("wait", f.challengeWait))
		if err := RandomDelay(ctx, f.challengeWait, f.challengeWait); err != nil {
			return "", err
		}
		if f.blocked() {
			if f.screenshots != nil {
				_, _ = f.screenshots.Capture(f.page, "upwork-blocked")
			}
			return "", fmt.Errorf("%s: %w", url, ErrBlocked)
		}
	}

	if f.humanize {
		if err := MouseJiggle(ctx, f.page); err != nil {
			f.logger.Debug("mouse jiggle", zap.Error(err))
		}
		if err := HumanScroll(ctx, f.page); err != nil {
			f.logger.Debug("human scroll", zap.Error(err))
		}
	}

	html, err := f.page.Content()
	if err != nil {
		return "", fmt.Errorf("read content %s: %w", url, err)
	}
	return html, nil
}

func (f *PageFetcher) blocked() bool {
	title, _ := f.page.Title()
	if isBlockedTitle(title) {
		return true
	}
	count, _ := f.page.Locator(captchaSelector).Count()
	return count > 0
}
