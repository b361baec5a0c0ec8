// Package interview starts interview sessions against the backend. The
// embedded Tavus avatar channel is best-effort: a session is considered
// created whenever the response parses, whether or not the channel came up.
package interview

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/interviewdost/interviewdost-cli/internal/interviewdost"
	"github.com/interviewdost/interviewdost-cli/internal/session"
)

// ErrStartInFlight is returned when a start is triggered while a previous one
// is still outstanding.
var ErrStartInFlight = errors.New("an interview start is already in progress")

// ErrAnswerInFlight is returned when an answer is submitted while another
// interview operation is still outstanding.
var ErrAnswerInFlight = errors.New("an answer submission is already in progress")

// ErrNoSession is returned when an answer is submitted without an active
// interview session.
var ErrNoSession = errors.New("no active interview session")

// ChannelState describes the avatar channel of a created session.
type ChannelState int

const (
	// ChannelReady means the Tavus conversation is up and joinable.
	ChannelReady ChannelState = iota
	// ChannelFailed means the avatar channel is unavailable and the
	// interview degrades to question-only mode.
	ChannelFailed
)

// Session is the launcher's view of a created interview session.
type Session struct {
	ID              int
	Question        interviewdost.Question
	ConversationURL string
	ChannelError    string
}

// Channel reports the avatar channel state. The channel is considered up only
// when a conversation URL is present; the error text alone never blocks
// anything.
func (s *Session) Channel() ChannelState {
	if s.ConversationURL != "" {
		return ChannelReady
	}

	return ChannelFailed
}

// ResultsAllowed reports whether navigation to results is permitted. It is
// keyed solely on the session identifier existing; a failed avatar channel
// never blocks text-based progression.
func (s *Session) ResultsAllowed() bool {
	return s.ID != 0
}

type StartOptions struct {
	InterviewerID int
	InterviewType string
}

type starter interface {
	StartInterview(ctx context.Context, req interviewdost.StartInterviewRequest) (*interviewdost.InterviewSession, error)
	AnswerQuestion(ctx context.Context, interviewID, questionID int, answerText string) (*interviewdost.AnswerOutcome, error)
}

type Launcher struct {
	api    starter
	store  *session.Store
	logger *zap.Logger

	inflight sync.Mutex
}

func NewLauncher(api starter, store *session.Store, logger *zap.Logger) *Launcher {
	return &Launcher{api: api, store: store, logger: logger}
}

// Start creates a new interview session from the stored user and enrichment
// artifact. Every call produces a fresh session with a new identifier. On
// success the session handle is recorded in the store.
func (l *Launcher) Start(ctx context.Context, opts StartOptions) (*Session, error) {
	if !l.inflight.TryLock() {
		return nil, ErrStartInFlight
	}
	defer l.inflight.Unlock()

	state := l.store.Snapshot()
	if !state.Authenticated() {
		return nil, session.ErrNotAuthenticated
	}

	req := interviewdost.StartInterviewRequest{
		Candidate: interviewdost.Candidate{
			Name:          state.User.Name,
			Email:         state.User.Email,
			Role:          state.User.Role,
			ResumeSummary: state.ResumeSummary,
		},
		InterviewerID: opts.InterviewerID,
		InterviewType: opts.InterviewType,
		Skills:        state.Skills,
	}

	// The message chosen by the backend (or the status-code fallback) is the
	// display contract, so the error passes through undecorated.
	created, err := l.api.StartInterview(ctx, req)
	if err != nil {
		return nil, err
	}

	// Discard stale responses: an abandoned start must not record a handle.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := &Session{
		ID:              created.InterviewID,
		Question:        created.Question,
		ConversationURL: created.ConversationURL,
		ChannelError:    created.TavusError,
	}

	l.store.SetInterview(s.ID)

	fields := []zap.Field{
		zap.Int("interview_id", s.ID),
		zap.Int("question_id", s.Question.QuestionID),
	}
	if s.Channel() == ChannelFailed {
		fields = append(fields, zap.String("tavus_error", s.ChannelError))
		l.logger.Warn("avatar channel unavailable, continuing in question-only mode", fields...)
	} else {
		l.logger.Info("interview session created", fields...)
	}

	return s, nil
}

// AnswerResult reports what happened after an answer was scored.
type AnswerResult struct {
	FollowUp *interviewdost.Question
	Done     bool
}

// Answer submits the candidate's answer to the session's current question.
// When the backend hands back a follow-up question it becomes the session's
// current question, so repeated Answer calls walk the whole interview.
func (l *Launcher) Answer(ctx context.Context, s *Session, answerText string) (*AnswerResult, error) {
	if !l.inflight.TryLock() {
		return nil, ErrAnswerInFlight
	}
	defer l.inflight.Unlock()

	if s == nil || s.ID == 0 {
		return nil, ErrNoSession
	}

	if strings.TrimSpace(answerText) == "" {
		return nil, errors.New("answer text is required")
	}

	outcome, err := l.api.AnswerQuestion(ctx, s.ID, s.Question.QuestionID, answerText)
	if err != nil {
		return nil, err
	}

	// An abandoned submission must not advance the current question.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &AnswerResult{Done: outcome.Done}
	if outcome.FollowUpQuestion != nil {
		s.Question = *outcome.FollowUpQuestion
		result.FollowUp = outcome.FollowUpQuestion
	}

	l.logger.Info("answer recorded",
		zap.Int("interview_id", s.ID),
		zap.Int("question_id", outcome.QuestionID),
		zap.Bool("done", outcome.Done),
	)

	return result, nil
}
