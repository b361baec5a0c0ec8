package ai

import (
	"context"

	"github.com/interviewdost/interviewdost-cli/internal/results"
)

// Advisor turns a merged results view into human-readable improvement advice.
type Advisor interface {
	Advise(ctx context.Context, view *results.View) (string, error)
}
