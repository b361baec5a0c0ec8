package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/interviewdost/interviewdost-cli/internal/results"
	"github.com/interviewdost/interviewdost-cli/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Advisor produces improvement advice from a merged results view. It is a
// best-effort companion to the results display and must never block it.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewAdvisor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Advisor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Advisor) Advise(ctx context.Context, view *results.View) (string, error) {
	if view == nil {
		return "", fmt.Errorf("results view is required")
	}

	payload, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal results payload: %w", err)
	}

	prompt := buildPrompt(string(payload))

	a.logger.Debug("gemini advice request",
		zap.Int("interview_id", view.InterviewID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	advice, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	a.logger.Debug("gemini advice response",
		zap.Int("interview_id", view.InterviewID),
		zap.Int("response_length", utf8.RuneCountInString(advice)),
		zap.String("response_preview", utils.TruncateForLog(advice, a.maxLogLen)),
	)

	return strings.TrimSpace(advice), nil
}

func buildPrompt(resultsJSON string) string {
	return strings.ReplaceAll(promptTemplate, "{{RESULTS_JSON}}", resultsJSON)
}
