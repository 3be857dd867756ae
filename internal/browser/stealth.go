package browser

import (
	"context"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay waits a random duration in [min, max], or until ctx is done.
func RandomDelay(ctx context.Context, min, max time.Duration) error {
	d := min
	if max > min {
		d += time.Duration(rand.Int63n(int64(max - min + 1)))
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// HumanScroll scrolls down in steps, then back up a little.
func HumanScroll(ctx context.Context, page playwright.Page) error {
	for i := 0; i < 3; i++ {
		if err := page.Mouse().Wheel(0, 400); err != nil {
			return err
		}
		if err := RandomDelay(ctx, 300*time.Millisecond, 800*time.Millisecond); err != nil {
			return err
		}
	}
	return page.Mouse().Wheel(0, -200)
}

// MouseJiggle moves the mouse to a few random points of the viewport.
func MouseJiggle(ctx context.Context, page playwright.Page) error {
	size := page.ViewportSize()
	if size == nil || size.Width <= 0 || size.Height <= 0 {
		return nil
	}
	for i := 0; i < 3; i++ {
		x := float64(rand.Intn(size.Width))
		y := float64(rand.Intn(size.Height))
		if err := page.Mouse().Move(x, y); err != nil {
			return err
		}
		if err := RandomDelay(ctx, 100*time.Millisecond, 300*time.Millisecond); err != nil {
			return err
		}
	}
	return nil
}
