package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"alcyxob/vitality-planner/internal/domain"
	"alcyxob/vitality-planner/internal/genai"
)

// ContentGenerator is the external generation service. *genai.GeminiClient
// satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, apiKey string, req genai.Request) (string, error)
}

// PlanGenerator turns a profile into a validated plan in a single attempt.
type PlanGenerator interface {
	Generate(ctx context.Context, profile domain.Profile) (*domain.WellnessPlan, error)
}

// generationService implements the PlanGenerator interface.
type generationService struct {
	transport ContentGenerator
	apiKey    string
	model     string
}

// NewGenerationService creates a new instance of generationService. An empty
// apiKey is accepted here and reported by every Generate call instead.
func NewGenerationService(transport ContentGenerator, apiKey, model string) PlanGenerator {
	return &generationService{
		transport: transport,
		apiKey:    strings.TrimSpace(apiKey),
		model:     model,
	}
}

// Generate performs exactly one request. No retries, no partial results.
func (s *generationService) Generate(ctx context.Context, profile domain.Profile) (*domain.WellnessPlan, error) {
	// 1. Credential check happens before any network attempt
	if s.apiKey == "" {
		log.Printf("ERROR: Plan generation refused: %v", ErrMissingCredential)
		return nil, &ConfigurationError{Err: ErrMissingCredential}
	}

	// 2. Prompt and schema
	req := genai.BuildRequest(profile, s.model)
	requestID := uuid.NewString()
	log.Printf("INFO: Generating wellness plan (request %s, model %s)", requestID, req.Model)

	// 3. Single call
	text, err := s.transport.GenerateContent(ctx, s.apiKey, req)
	if err != nil {
		return nil, s.protocolError(requestID, err)
	}

	// 4. Explicit parse into the typed plan
	plan, err := domain.ParseWellnessPlan([]byte(text))
	if err != nil {
		return nil, s.protocolError(requestID, err)
	}

	log.Printf("INFO: Wellness plan generated (request %s): %d diet days, %d exercise slots, %d habits",
		requestID, len(plan.DietPlan), len(plan.ExercisePlan), len(plan.Habits))
	return plan, nil
}

func (s *generationService) protocolError(requestID string, cause error) error {
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		log.Printf("WARN: Plan generation abandoned (request %s): %v", requestID, cause)
	} else {
		log.Printf("ERROR: Plan generation failed (request %s): %v", requestID, cause)
	}
	return &ProtocolError{RequestID: requestID, Err: cause}
}
