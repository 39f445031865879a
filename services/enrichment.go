package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"church-community-api/config"
	"church-community-api/models"

	"gorm.io/gorm"
)

// ErrEnrichmentFailed marks a best-effort enrichment that did not produce a
// usable result. It never fails the submission that triggered it.
var ErrEnrichmentFailed = errors.New("enrichment failed")

const enrichmentTimeout = 20 * time.Second

// nextStepIcons is the closed set of icon tags the site can render.
var nextStepIcons = map[string]bool{
	"book":     true,
	"users":    true,
	"heart":    true,
	"message":  true,
	"calendar": true,
	"gift":     true,
}

// TestimonyEnrichment is the AI augmentation of a testimony.
type TestimonyEnrichment struct {
	SuggestedQuote string `json:"suggested_quote"`
	Summary        string `json:"summary"`
}

// NextStep is one suggested follow-up action for a new decision.
type NextStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Icon        string `json:"icon"`
}

// DecisionEnrichment is the AI augmentation of a faith decision.
type DecisionEnrichment struct {
	Greeting  string     `json:"greeting"`
	NextSteps []NextStep `json:"next_steps"`
}

// EnrichmentService wraps the external text-generation endpoint. Calls are
// single best-effort attempts with a bounded timeout; failures fall back.
type EnrichmentService struct {
	db      *gorm.DB
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewEnrichmentService(db *gorm.DB, client *http.Client) *EnrichmentService {
	if db == nil {
		db = config.DB
	}
	if client == nil {
		client = &http.Client{Timeout: enrichmentTimeout}
	}
	return &EnrichmentService{
		db:      db,
		client:  client,
		baseURL: os.Getenv("ENRICHMENT_API_URL"),
		apiKey:  os.Getenv("ENRICHMENT_API_KEY"),
	}
}

type enrichmentRequest struct {
	Kind  string                 `json:"kind"`
	Input map[string]interface{} `json:"input"`
}

// call posts one prompt to the text-generation endpoint and decodes the JSON
// result into out.
func (s *EnrichmentService) call(ctx context.Context, kind string, input map[string]interface{}, out interface{}) error {
	if s.baseURL == "" {
		return fmt.Errorf("%w: ENRICHMENT_API_URL not configured", ErrEnrichmentFailed)
	}

	body, err := json.Marshal(enrichmentRequest{Kind: kind, Input: input})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEnrichmentFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEnrichmentFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEnrichmentFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: enrichment api status %d", ErrEnrichmentFailed, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrEnrichmentFailed, err)
	}
	return nil
}

// EnrichTestimony requests a short quote and summary for a testimony story.
func (s *EnrichmentService) EnrichTestimony(ctx context.Context, t *models.Testimony) (*TestimonyEnrichment, error) {
	var result TestimonyEnrichment
	input := map[string]interface{}{
		"name":  t.SubmitterName,
		"story": t.Story,
	}
	if err := s.call(ctx, models.KindTestimony, input, &result); err != nil {
		return nil, err
	}
	if result.SuggestedQuote == "" {
		return nil, fmt.Errorf("%w: empty suggested quote", ErrEnrichmentFailed)
	}
	return &result, nil
}

// EnrichDecision requests a personalized greeting and 1-3 next steps for a
// new decision. The response is schema-checked before use.
func (s *EnrichmentService) EnrichDecision(ctx context.Context, d *models.Decision) (*DecisionEnrichment, error) {
	var result DecisionEnrichment
	input := map[string]interface{}{
		"name":          d.SubmitterName,
		"decision_type": d.DecisionType,
	}
	if d.Message != nil {
		input["message"] = *d.Message
	}
	if err := s.call(ctx, models.KindDecision, input, &result); err != nil {
		return nil, err
	}
	if err := validateDecisionEnrichment(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func validateDecisionEnrichment(e *DecisionEnrichment) error {
	if e.Greeting == "" {
		return fmt.Errorf("%w: empty greeting", ErrEnrichmentFailed)
	}
	if len(e.NextSteps) < 1 || len(e.NextSteps) > 3 {
		return fmt.Errorf("%w: expected 1-3 next steps, got %d", ErrEnrichmentFailed, len(e.NextSteps))
	}
	for i, step := range e.NextSteps {
		if step.Title == "" || step.Description == "" {
			return fmt.Errorf("%w: next step %d missing title or description", ErrEnrichmentFailed, i)
		}
		if !nextStepIcons[step.Icon] {
			return fmt.Errorf("%w: next step %d has unknown icon %q", ErrEnrichmentFailed, i, step.Icon)
		}
	}
	return nil
}

// FallbackDecisionEnrichment is the generic next-step payload used when the
// enrichment call fails. The user-facing flow always completes with at least
// one suggested step.
func FallbackDecisionEnrichment(name string) *DecisionEnrichment {
	greeting := "We are so glad you reached out!"
	if name != "" {
		greeting = fmt.Sprintf("%s, we are so glad you reached out!", name)
	}
	return &DecisionEnrichment{
		Greeting: greeting,
		NextSteps: []NextStep{
			{
				Title:       "Join us this Sunday",
				Description: "Worship with the church family at our weekend service.",
				Link:        "/visit",
				Icon:        "calendar",
			},
			{
				Title:       "Start reading the Gospel of John",
				Description: "A great first step for exploring what you just decided.",
				Link:        "/courses/foundations",
				Icon:        "book",
			},
		},
	}
}

// EnrichDecisionWithFallback never fails: on any enrichment error it logs and
// returns the generic fallback so the submitter still gets next steps.
func (s *EnrichmentService) EnrichDecisionWithFallback(ctx context.Context, d *models.Decision) *DecisionEnrichment {
	enrichment, err := s.EnrichDecision(ctx, d)
	if err != nil {
		log.Printf("Warning: decision %d enrichment failed, using fallback: %v", d.DecisionID, err)
		return FallbackDecisionEnrichment(d.SubmitterName)
	}
	return enrichment
}

// ApplyTestimonyEnrichment writes enrichment fields back with partial-update
// semantics: only enrichment columns are touched, so a slow enrichment can
// never overwrite a staff decision, and the guard on delete_at keeps it from
// resurrecting a deleted record.
func (s *EnrichmentService) ApplyTestimonyEnrichment(testimonyID int, e *TestimonyEnrichment) error {
	now := time.Now()
	return s.db.Model(&models.Testimony{}).
		Where("testimony_id = ? AND delete_at IS NULL", testimonyID).
		Updates(map[string]interface{}{
			"suggested_quote": e.SuggestedQuote,
			"ai_summary":      e.Summary,
			"enriched_at":     now,
		}).Error
}

// ApplyDecisionEnrichment writes decision enrichment fields back, enrichment
// columns only.
func (s *EnrichmentService) ApplyDecisionEnrichment(decisionID int, e *DecisionEnrichment) error {
	steps, err := json.Marshal(e.NextSteps)
	if err != nil {
		return err
	}
	now := time.Now()
	return s.db.Model(&models.Decision{}).
		Where("decision_id = ? AND delete_at IS NULL", decisionID).
		Updates(map[string]interface{}{
			"greeting":    e.Greeting,
			"next_steps":  string(steps),
			"enriched_at": now,
		}).Error
}

// EnrichTestimonyDetached runs the testimony enrichment as a fire-and-forget
// attempt. The submitter's success response never waits on it.
func (s *EnrichmentService) EnrichTestimonyDetached(t *models.Testimony) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), enrichmentTimeout)
		defer cancel()

		enrichment, err := s.EnrichTestimony(ctx, t)
		if err != nil {
			log.Printf("Warning: testimony %d enrichment failed: %v", t.TestimonyID, err)
			return
		}
		if err := s.ApplyTestimonyEnrichment(t.TestimonyID, enrichment); err != nil {
			log.Printf("Warning: testimony %d enrichment write failed: %v", t.TestimonyID, err)
		}
	}()
}
