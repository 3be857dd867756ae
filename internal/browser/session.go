package browser

import (
	"errors"
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Session is a launched browser with one cookie-loaded page behind a
// PageFetcher.
type Session struct {
	Fetcher *PageFetcher

	manager *PlaywrightManager
	bctx    playwright.BrowserContext
}

// OpenSession launches chromium and opens a page. A missing cookie file is
// logged and the session starts without cookies.
func OpenSession(headless bool, cookieFile string, logger *zap.Logger, opts ...FetcherOption) (*Session, error) {
	cookies, err := LoadCookies(cookieFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Warn("cookie file not found, continuing without cookies", zap.String("path", cookieFile))
	case err != nil:
		return nil, err
	default:
		logger.Info("loaded cookies", zap.String("path", cookieFile), zap.Int("count", len(cookies)))
	}

	pm, err := NewPlaywright(headless, logger)
	if err != nil {
		return nil, err
	}

	bctx, err := pm.NewContext(cookies)
	if err != nil {
		_ = pm.Close()
		return nil, err
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = pm.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}

	return &Session{
		Fetcher: NewPageFetcher(page, NewScreenshotDebugger("", logger), logger, opts...),
		manager: pm,
		bctx:    bctx,
	}, nil
}

func (s *Session) Close() error {
	if err := s.bctx.Close(); err != nil {
		s.manager.logger.Warn("close browser context", zap.Error(err))
	}
	return s.manager.Close()
}
