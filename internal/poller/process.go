package poller

import (
	"context"
	"time"

	"go-gig-router/internal/models"

	"go.uber.org/zap"
)

func (p *Poller) process(ctx context.Context, posting models.Posting, report *Report) Result {
	log := p.logger.With(
		zap.String("job_id", posting.ShortID()),
		zap.String("title", posting.Title))

	if p.store.IsFiltered(posting.ID) {
		log.Info("skipping manually filtered job")
		report.Skipped++
		return Result{Posting: posting, Skipped: true}
	}

	decision := p.classifier.Evaluate(posting.Title, posting.Description)
	if decision.Rejected {
		log.Info("filtered job by content",
			zap.String("topic", decision.Topic),
			zap.String("term", decision.Term))
		p.store.AddFiltered(posting.ID)
		p.store.RecordRejected()
		report.Rejected++
		return Result{Posting: posting, Decision: decision}
	}

	log.Info("processing job",
		zap.Stringers("categories", decision.Categories),
		zap.String("rule", decision.Rule))

	for _, category := range decision.Categories {
		if err := p.dispatcher.SendPosting(ctx, category, posting); err != nil {
			log.Error("failed to dispatch job",
				zap.String("category", category.String()),
				zap.Error(err))
			p.store.RecordFailed()
			report.Failed++
			continue
		}
		p.store.RecordDispatched()
		report.Dispatched++
	}
	return Result{Posting: posting, Decision: decision}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
