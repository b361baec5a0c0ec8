package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/interviewdost/interviewdost-cli/internal/interviewdost"
	"github.com/interviewdost/interviewdost-cli/internal/session"
)

type fakeEnricher struct {
	calls       int
	lastProfile interviewdost.CandidateProfile
	artifact    *interviewdost.EnrichmentArtifact
	err         error
	onCall      func(ctx context.Context)
}

func (f *fakeEnricher) EnrichProfile(ctx context.Context, profile interviewdost.CandidateProfile) (*interviewdost.EnrichmentArtifact, error) {
	f.calls++
	f.lastProfile = profile
	if f.onCall != nil {
		f.onCall(ctx)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.artifact, nil
}

type fakeIngestor struct {
	calls int
	text  string
	err   error
}

func (f *fakeIngestor) Ingest(_ context.Context, typedText, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if typedText != "" {
		return typedText, nil
	}
	return f.text, nil
}

func loggedInStore(t *testing.T) *session.Store {
	t.Helper()

	store := session.NewStore()
	store.Login(session.User{ID: 1, Name: "A", Email: "a@x.com"})
	return store
}

func validInput() FormInput {
	return FormInput{
		Name:      "A",
		Email:     "a@x.com",
		Role:      "candidate",
		TechStack: "Go, Rust",
	}
}

func TestEnrichFailsFastWithoutAuthentication(t *testing.T) {
	enricher := &fakeEnricher{}
	ingestor := &fakeIngestor{}
	c := NewCoordinator(enricher, ingestor, session.NewStore(), zap.NewNop())

	_, err := c.Enrich(context.Background(), validInput())

	require.ErrorIs(t, err, session.ErrNotAuthenticated)
	assert.Zero(t, enricher.calls, "no network call may happen on a violated precondition")
	assert.Zero(t, ingestor.calls, "no document processing may happen on a violated precondition")
}

func TestEnrichRejectsInvalidEmail(t *testing.T) {
	enricher := &fakeEnricher{}
	c := NewCoordinator(enricher, &fakeIngestor{}, loggedInStore(t), zap.NewNop())

	in := validInput()
	in.Email = "not-an-email"

	_, err := c.Enrich(context.Background(), in)

	require.Error(t, err)
	assert.Zero(t, enricher.calls)
}

func TestEnrichDerivesFieldsAndStoresArtifact(t *testing.T) {
	enricher := &fakeEnricher{
		artifact: &interviewdost.EnrichmentArtifact{UserID: 1, ResumeSummary: "S", Skills: []string{"Go"}},
	}
	store := loggedInStore(t)
	c := NewCoordinator(enricher, &fakeIngestor{}, store, zap.NewNop())

	in := validInput()
	in.WorkExperiences = "Built a payments service\nLed a migration"

	result, err := c.Enrich(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Rust"}, enricher.lastProfile.TechStack)
	assert.Equal(t, []string{"Built a payments service", "Led a migration"}, enricher.lastProfile.WorkExperiences)
	assert.Equal(t, "S", result.Artifact.ResumeSummary)

	state := store.Snapshot()
	assert.Equal(t, "S", state.ResumeSummary)
	assert.Equal(t, []string{"Go"}, state.Skills)
}

func TestEnrichOverwritesPreviousArtifact(t *testing.T) {
	enricher := &fakeEnricher{
		artifact: &interviewdost.EnrichmentArtifact{UserID: 1, ResumeSummary: "first", Skills: []string{"Go", "Rust"}},
	}
	store := loggedInStore(t)
	c := NewCoordinator(enricher, &fakeIngestor{}, store, zap.NewNop())

	_, err := c.Enrich(context.Background(), validInput())
	require.NoError(t, err)

	enricher.artifact = &interviewdost.EnrichmentArtifact{UserID: 1, ResumeSummary: "second", Skills: []string{"Python"}}

	_, err = c.Enrich(context.Background(), validInput())
	require.NoError(t, err)

	state := store.Snapshot()
	assert.Equal(t, "second", state.ResumeSummary)
	assert.Equal(t, []string{"Python"}, state.Skills)
}

func TestEnrichFailureLeavesStoreUntouched(t *testing.T) {
	store := loggedInStore(t)
	store.SetEnrichment("kept", []string{"Go"})

	enricher := &fakeEnricher{err: &interviewdost.StatusError{StatusCode: 500, Body: "boom"}}
	c := NewCoordinator(enricher, &fakeIngestor{}, store, zap.NewNop())

	_, err := c.Enrich(context.Background(), validInput())

	// The raw body text surfaces undecorated.
	require.EqualError(t, err, "boom")

	state := store.Snapshot()
	assert.Equal(t, "kept", state.ResumeSummary)
	assert.Equal(t, []string{"Go"}, state.Skills)
}

func TestEnrichSkipsEnrichmentWhenExtractionFails(t *testing.T) {
	enricher := &fakeEnricher{}
	ingestor := &fakeIngestor{err: errors.New("resume extraction failed: 502")}
	c := NewCoordinator(enricher, ingestor, loggedInStore(t), zap.NewNop())

	_, err := c.Enrich(context.Background(), validInput())

	require.Error(t, err)
	assert.Zero(t, enricher.calls)
}

func TestEnrichAbandonedOperationDoesNotMutateState(t *testing.T) {
	store := loggedInStore(t)
	store.SetEnrichment("kept", []string{"Go"})

	ctx, cancel := context.WithCancel(context.Background())
	enricher := &fakeEnricher{
		artifact: &interviewdost.EnrichmentArtifact{UserID: 1, ResumeSummary: "stale", Skills: []string{"Rust"}},
		// The user navigates away while the request is in flight; the
		// response still arrives but must be discarded.
		onCall: func(context.Context) { cancel() },
	}
	c := NewCoordinator(enricher, &fakeIngestor{}, store, zap.NewNop())

	_, err := c.Enrich(ctx, validInput())

	require.ErrorIs(t, err, context.Canceled)

	state := store.Snapshot()
	assert.Equal(t, "kept", state.ResumeSummary)
	assert.Equal(t, []string{"Go"}, state.Skills)
}

func TestEnrichSerializesInFlightOperations(t *testing.T) {
	store := loggedInStore(t)

	started := make(chan struct{})
	release := make(chan struct{})
	enricher := &fakeEnricher{
		artifact: &interviewdost.EnrichmentArtifact{UserID: 1, ResumeSummary: "S", Skills: []string{"Go"}},
		onCall: func(context.Context) {
			close(started)
			<-release
		},
	}
	c := NewCoordinator(enricher, &fakeIngestor{}, store, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := c.Enrich(context.Background(), validInput())
		done <- err
	}()

	<-started

	_, err := c.Enrich(context.Background(), validInput())
	require.ErrorIs(t, err, ErrEnrichmentInFlight)

	close(release)
	require.NoError(t, <-done)
}
