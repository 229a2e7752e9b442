package analysis

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	domain "github.com/progcheck/progcheck/internal/domain/analysis"
	"github.com/progcheck/progcheck/internal/infra/ai/prompt"
)

// Clock abstraction so the prompt timestamp can be pinned in tests
type Clock interface {
	Now() time.Time
}

// Service implements the analyze use case. Each call runs the three
// steps in strict sequence: validate the bundle shape, render the
// prompt and call the model, then confirm the completion parses as
// JSON. No state survives a call; the Service is safe for concurrent
// use.
type Service struct {
	Client domain.Client
	Clock  Clock
}

// Analyze returns the model verdict as the raw parsed JSON document.
// The verdict is opaque here: it is checked for parseability only and
// relayed without inspecting or filtering any field.
func (s *Service) Analyze(ctx context.Context, req domain.AnalysisRequest) (json.RawMessage, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	rendered := prompt.Render(req.ProgramMeta, req.CodeFiles, s.Clock.Now())
	log.Printf("analysis started id=%s title=%q files=%d prompt_bytes=%d",
		id, req.ProgramMeta.Title, len(req.CodeFiles), len(rendered))

	completion, err := s.Client.Complete(ctx, rendered)
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(completion)) {
		log.Printf("analysis unparseable id=%s raw=%q", id, completion)
		return nil, &domain.ResponseFormatError{Raw: completion}
	}

	log.Printf("analysis done id=%s result_bytes=%d", id, len(completion))
	return json.RawMessage(completion), nil
}

func validate(req domain.AnalysisRequest) error {
	if len(req.CodeFiles) == 0 {
		return &domain.ValidationError{Message: "codeFiles must be a non-empty array"}
	}
	for _, f := range req.CodeFiles {
		if f.FileName == "" {
			return &domain.ValidationError{Message: "every code file needs a fileName"}
		}
	}
	return nil
}
