// Package results assembles the post-interview view from two independent
// backend resources keyed by the same interview identifier.
package results

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/interviewdost/interviewdost-cli/internal/interviewdost"
)

// View is the merged results view. It is rebuilt on every load and never
// persisted.
type View struct {
	InterviewID  int
	OverallScore *int
	Items        []interviewdost.SummaryItem
	Feedback     *interviewdost.Feedback
}

type fetcher interface {
	GetSummary(ctx context.Context, interviewID int) (*interviewdost.InterviewSummary, error)
	GetFeedback(ctx context.Context, interviewID int) (*interviewdost.Feedback, error)
}

type Aggregator struct {
	api    fetcher
	logger *zap.Logger
}

func NewAggregator(api fetcher, logger *zap.Logger) *Aggregator {
	return &Aggregator{api: api, logger: logger}
}

// Load fetches the scoring summary and the feedback concurrently and merges
// them. The join is all-or-nothing: if either fetch fails the whole load
// fails with that single error and no partial view is returned. Summary items
// keep the exact order the backend produced.
func (a *Aggregator) Load(ctx context.Context, interviewID int) (*View, error) {
	var (
		summary  *interviewdost.InterviewSummary
		feedback *interviewdost.Feedback
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s, err := a.api.GetSummary(gctx, interviewID)
		if err != nil {
			return err
		}
		summary = s
		return nil
	})

	g.Go(func() error {
		f, err := a.api.GetFeedback(gctx, interviewID)
		if err != nil {
			return err
		}
		feedback = f
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// A load abandoned mid-flight must not surface a stale view.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.logger.Debug("results loaded",
		zap.Int("interview_id", interviewID),
		zap.Int("items", len(summary.Items)),
	)

	return &View{
		InterviewID:  summary.InterviewID,
		OverallScore: summary.OverallScore,
		Items:        summary.Items,
		Feedback:     feedback,
	}, nil
}
