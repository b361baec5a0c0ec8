// Package profile submits the candidate profile for enrichment and keeps the
// resulting artifact in the session store.
package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/interviewdost/interviewdost-cli/internal/interviewdost"
	"github.com/interviewdost/interviewdost-cli/internal/session"
)

// ErrEnrichmentInFlight is returned when an enrichment is triggered while a
// previous one is still outstanding. Operations are serialized, never
// interleaved.
var ErrEnrichmentInFlight = errors.New("an enrichment is already in progress")

// FormInput carries the raw form state. List-valued fields stay as the
// delimited free text the user entered; derivation happens at submit time.
type FormInput struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Role            string
	Age             *int `validate:"omitempty,gt=0"`
	TechStack       string
	WorkExperiences string
	Projects        string
	CompaniesWorked string
	TargetRole      string
	TargetCompany   string
	ResumeText      string
	ResumeFile      string
}

type enricher interface {
	EnrichProfile(ctx context.Context, profile interviewdost.CandidateProfile) (*interviewdost.EnrichmentArtifact, error)
}

type ingestor interface {
	Ingest(ctx context.Context, typedText, documentPath string) (string, error)
}

type Coordinator struct {
	api      enricher
	resumes  ingestor
	store    *session.Store
	logger   *zap.Logger
	validate *validator.Validate

	inflight sync.Mutex
}

func NewCoordinator(api enricher, resumes ingestor, store *session.Store, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		api:      api,
		resumes:  resumes,
		store:    store,
		logger:   logger,
		validate: validator.New(),
	}
}

// Result is the outcome of a successful enrichment. ResumeText carries the
// canonical resume text so the caller can echo extracted text back into the
// visible field.
type Result struct {
	Artifact   *interviewdost.EnrichmentArtifact
	ResumeText string
}

// Enrich resolves the resume text, derives the list fields, submits the
// profile and stores the returned artifact. On any failure no state is
// mutated. The stored artifact is overwritten wholesale on success.
func (c *Coordinator) Enrich(ctx context.Context, in FormInput) (*Result, error) {
	if !c.inflight.TryLock() {
		return nil, ErrEnrichmentInFlight
	}
	defer c.inflight.Unlock()

	if !c.store.Snapshot().Authenticated() {
		return nil, session.ErrNotAuthenticated
	}

	if err := c.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	resumeText, err := c.resumes.Ingest(ctx, in.ResumeText, in.ResumeFile)
	if err != nil {
		return nil, err
	}

	candidate := BuildProfile(in, resumeText)

	// The message chosen by the backend (or the status-code fallback) is the
	// display contract, so the error passes through undecorated.
	artifact, err := c.api.EnrichProfile(ctx, candidate)
	if err != nil {
		return nil, err
	}

	// The caller may have navigated away while the request was in flight;
	// a stale response must not touch the store.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.store.SetEnrichment(artifact.ResumeSummary, artifact.Skills)

	c.logger.Info("profile enriched",
		zap.Int("user_id", artifact.UserID),
		zap.Int("skills", len(artifact.Skills)),
	)

	return &Result{Artifact: artifact, ResumeText: resumeText}, nil
}

// BuildProfile derives the wire payload from form state. The derivation is
// pure and never fails.
func BuildProfile(in FormInput, resumeText string) interviewdost.CandidateProfile {
	return interviewdost.CandidateProfile{
		Name:            in.Name,
		Email:           in.Email,
		Role:            in.Role,
		Age:             in.Age,
		TechStack:       SplitCommaList(in.TechStack),
		WorkExperiences: SplitLineList(in.WorkExperiences),
		Projects:        SplitLineList(in.Projects),
		CompaniesWorked: SplitLineList(in.CompaniesWorked),
		TargetRole:      in.TargetRole,
		TargetCompany:   in.TargetCompany,
		ResumeText:      resumeText,
	}
}
