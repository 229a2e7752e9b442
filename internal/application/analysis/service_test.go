package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/progcheck/progcheck/internal/domain/analysis"
)

type stubClient struct {
	completion string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubClient) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.completion, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newService(client *stubClient) *Service {
	return &Service{
		Client: client,
		Clock:  fixedClock{t: time.Date(2025, 6, 11, 9, 30, 0, 0, time.UTC)},
	}
}

func bundle() domain.AnalysisRequest {
	return domain.AnalysisRequest{
		ProgramMeta: domain.ProgramMeta{Title: "T"},
		CodeFiles:   []domain.CodeFile{{FileName: "a.js", Content: "console.log(1)"}},
	}
}

func TestAnalyzeRejectsEmptyBundle(t *testing.T) {
	client := &stubClient{completion: "{}"}
	svc := newService(client)

	_, err := svc.Analyze(context.Background(), domain.AnalysisRequest{
		ProgramMeta: domain.ProgramMeta{Title: "T"},
	})

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, client.calls, "the model must never be called for an invalid bundle")
}

func TestAnalyzeRejectsUnnamedFile(t *testing.T) {
	client := &stubClient{completion: "{}"}
	svc := newService(client)

	req := bundle()
	req.CodeFiles = append(req.CodeFiles, domain.CodeFile{Content: "orphan"})
	_, err := svc.Analyze(context.Background(), req)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, client.calls)
}

func TestAnalyzeRelaysParsedVerdict(t *testing.T) {
	verdict := `{"status":"SUCCESS","finalDecision":"CLEAN","summary":"nothing suspicious"}`
	client := &stubClient{completion: verdict}
	svc := newService(client)

	got, err := svc.Analyze(context.Background(), bundle())
	require.NoError(t, err)
	assert.JSONEq(t, verdict, string(got))
	assert.Equal(t, 1, client.calls)

	// the rendered prompt reached the model with the file embedded
	assert.Contains(t, client.lastPrompt, "a.js")
	assert.Contains(t, client.lastPrompt, "console.log(1)")
}

func TestAnalyzeNonJSONCompletion(t *testing.T) {
	raw := "not json " + strings.Repeat("x", 141)
	client := &stubClient{completion: raw}
	svc := newService(client)

	_, err := svc.Analyze(context.Background(), bundle())

	var fe *domain.ResponseFormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, raw, fe.Raw)
	assert.Equal(t, raw[:100]+"...", fe.Excerpt())
}

func TestAnalyzeShortNonJSONExcerpt(t *testing.T) {
	client := &stubClient{completion: "not json"}
	svc := newService(client)

	_, err := svc.Analyze(context.Background(), bundle())

	var fe *domain.ResponseFormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "not json...", fe.Excerpt())
}

func TestAnalyzeCommunicationFailure(t *testing.T) {
	client := &stubClient{err: domain.ErrCommunication}
	svc := newService(client)

	_, err := svc.Analyze(context.Background(), bundle())
	assert.ErrorIs(t, err, domain.ErrCommunication)
}

func TestAnalyzeIdempotent(t *testing.T) {
	verdict := `{"finalDecision":"CLEAN"}`
	client := &stubClient{completion: verdict}
	svc := newService(client)

	first, err := svc.Analyze(context.Background(), bundle())
	require.NoError(t, err)
	firstPrompt := client.lastPrompt

	second, err := svc.Analyze(context.Background(), bundle())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, firstPrompt, client.lastPrompt, "pinned clock must make the prompt reproducible")
}

func TestValidateErrorMessages(t *testing.T) {
	err := validate(domain.AnalysisRequest{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "codeFiles")

	if !errors.As(err, new(*domain.ValidationError)) {
		t.Fatalf("expected a validation error, got %T", err)
	}
}
