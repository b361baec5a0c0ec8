package interviewdost

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

type SummaryItem struct {
	Question        string  `json:"question"`
	Answer          *string `json:"answer"`
	RelevanceScore  *int    `json:"relevance_score"`
	ConfidenceLevel *int    `json:"confidence_level"`
}

type InterviewSummary struct {
	InterviewID  int           `json:"interview_id"`
	OverallScore *int          `json:"overall_score"`
	Items        []SummaryItem `json:"items"`
	CompletedAt  string        `json:"completed_at,omitempty"`
}

type Feedback struct {
	FeedbackID  int    `mapstructure:"feedback_id"`
	InterviewID int    `mapstructure:"interview_id"`
	Comments    string `mapstructure:"comments"`
	Suggestions string `mapstructure:"suggestions"`
	ReportURL   string `mapstructure:"report_url"`
}

// GetSummary fetches the scoring summary for a completed interview. Item
// order is returned exactly as the backend produced it.
func (c *Client) GetSummary(ctx context.Context, interviewID int) (*InterviewSummary, error) {
	url := fmt.Sprintf("%s/interview/%d/summary", c.APIURL, interviewID)

	var summary InterviewSummary
	if err := c.getJSON(ctx, url, &summary); err != nil {
		return nil, err
	}

	return &summary, nil
}

// GetFeedback fetches the feedback artifact. The backend returns a loose
// dict here, so the payload is decoded leniently.
func (c *Client) GetFeedback(ctx context.Context, interviewID int) (*Feedback, error) {
	url := fmt.Sprintf("%s/interview/%d/feedback", c.APIURL, interviewID)

	var raw map[string]any
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, err
	}

	var feedback Feedback
	if err := mapstructure.WeakDecode(raw, &feedback); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}

	return &feedback, nil
}
