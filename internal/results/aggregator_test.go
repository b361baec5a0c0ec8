package results

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/interviewdost/interviewdost-cli/internal/interviewdost"
)

type fakeFetcher struct {
	summaryCalls  atomic.Int32
	feedbackCalls atomic.Int32

	summary     *interviewdost.InterviewSummary
	summaryErr  error
	feedback    *interviewdost.Feedback
	feedbackErr error
}

func (f *fakeFetcher) GetSummary(ctx context.Context, _ int) (*interviewdost.InterviewSummary, error) {
	f.summaryCalls.Add(1)
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return f.summary, nil
}

func (f *fakeFetcher) GetFeedback(ctx context.Context, _ int) (*interviewdost.Feedback, error) {
	f.feedbackCalls.Add(1)
	if f.feedbackErr != nil {
		return nil, f.feedbackErr
	}
	return f.feedback, nil
}

func sampleSummary() *interviewdost.InterviewSummary {
	score := 80
	return &interviewdost.InterviewSummary{
		InterviewID:  42,
		OverallScore: &score,
		Items: []interviewdost.SummaryItem{
			{Question: "Q1"},
			{Question: "Q2"},
			{Question: "Q3"},
		},
	}
}

func TestLoadMergesBothResources(t *testing.T) {
	api := &fakeFetcher{
		summary:  sampleSummary(),
		feedback: &interviewdost.Feedback{FeedbackID: 1, InterviewID: 42, Comments: "solid"},
	}
	a := NewAggregator(api, zap.NewNop())

	view, err := a.Load(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, 42, view.InterviewID)
	assert.Equal(t, 80, *view.OverallScore)
	assert.Equal(t, "solid", view.Feedback.Comments)
	assert.Equal(t, int32(1), api.summaryCalls.Load())
	assert.Equal(t, int32(1), api.feedbackCalls.Load())
}

func TestLoadKeepsSummaryItemOrder(t *testing.T) {
	api := &fakeFetcher{
		summary:  sampleSummary(),
		feedback: &interviewdost.Feedback{InterviewID: 42},
	}
	a := NewAggregator(api, zap.NewNop())

	view, err := a.Load(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, view.Items, 3)
	for i, expect := range []string{"Q1", "Q2", "Q3"} {
		assert.Equal(t, expect, view.Items[i].Question)
	}
}

func TestFeedbackFailureFailsTheWholeLoad(t *testing.T) {
	api := &fakeFetcher{
		summary:     sampleSummary(),
		feedbackErr: &interviewdost.StatusError{StatusCode: 500},
	}
	a := NewAggregator(api, zap.NewNop())

	view, err := a.Load(context.Background(), 42)

	require.EqualError(t, err, "request failed with status code 500")
	assert.Nil(t, view, "no partial view may be returned")
}

func TestSummaryFailureFailsTheWholeLoad(t *testing.T) {
	api := &fakeFetcher{
		summaryErr: &interviewdost.StatusError{StatusCode: 404, Body: "Interview not found"},
		feedback:   &interviewdost.Feedback{InterviewID: 42},
	}
	a := NewAggregator(api, zap.NewNop())

	view, err := a.Load(context.Background(), 42)

	require.EqualError(t, err, "Interview not found")
	assert.Nil(t, view)
}

func TestAbandonedLoadReturnsNoView(t *testing.T) {
	api := &fakeFetcher{
		summary:  sampleSummary(),
		feedback: &interviewdost.Feedback{InterviewID: 42},
	}
	a := NewAggregator(api, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	view, err := a.Load(ctx, 42)

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, view)
}
