package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"church-community-api/models"
)

func newTestEnrichmentService(handler http.Handler) (*EnrichmentService, *httptest.Server) {
	srv := httptest.NewServer(handler)
	svc := &EnrichmentService{
		client:  srv.Client(),
		baseURL: srv.URL,
		apiKey:  "test-key",
	}
	return svc, srv
}

func TestEnrichDecision_Success(t *testing.T) {
	svc, srv := newTestEnrichmentService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer key, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"greeting": "Karibu, Amani!",
			"next_steps": [
				{"title": "Join a small group", "description": "Meet people walking the same road.", "link": "/groups", "icon": "users"}
			]
		}`))
	}))
	defer srv.Close()

	decision := &models.Decision{SubmitterName: "Amani", DecisionType: models.DecisionTypeFaith}
	enrichment, err := svc.EnrichDecision(context.Background(), decision)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enrichment.Greeting != "Karibu, Amani!" {
		t.Errorf("unexpected greeting: %q", enrichment.Greeting)
	}
	if len(enrichment.NextSteps) != 1 || enrichment.NextSteps[0].Icon != "users" {
		t.Errorf("unexpected next steps: %+v", enrichment.NextSteps)
	}
}

func TestEnrichDecision_RejectsUnknownIcon(t *testing.T) {
	svc, srv := newTestEnrichmentService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"greeting": "Hello",
			"next_steps": [
				{"title": "Step", "description": "Do the step.", "link": "/x", "icon": "rocket"}
			]
		}`))
	}))
	defer srv.Close()

	decision := &models.Decision{SubmitterName: "Amani", DecisionType: models.DecisionTypeFaith}
	if _, err := svc.EnrichDecision(context.Background(), decision); err == nil {
		t.Fatal("expected unknown icon to fail schema validation")
	}
}

func TestEnrichDecision_RejectsTooManySteps(t *testing.T) {
	step := `{"title": "Step", "description": "Do it.", "link": "/x", "icon": "book"}`
	svc, srv := newTestEnrichmentService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"greeting": "Hi", "next_steps": [` + step + `,` + step + `,` + step + `,` + step + `]}`))
	}))
	defer srv.Close()

	decision := &models.Decision{SubmitterName: "Amani", DecisionType: models.DecisionTypeFaith}
	if _, err := svc.EnrichDecision(context.Background(), decision); err == nil {
		t.Fatal("expected more than three steps to fail schema validation")
	}
}

func TestEnrichDecisionWithFallback_ServerError(t *testing.T) {
	svc, srv := newTestEnrichmentService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	decision := &models.Decision{SubmitterName: "Amani", DecisionType: models.DecisionTypeFaith}
	enrichment := svc.EnrichDecisionWithFallback(context.Background(), decision)

	if enrichment == nil {
		t.Fatal("fallback must never be nil")
	}
	if enrichment.Greeting == "" {
		t.Error("fallback greeting must be non-empty")
	}
	if len(enrichment.NextSteps) < 1 {
		t.Error("fallback must carry at least one next step")
	}
}

func TestEnrichDecisionWithFallback_Unconfigured(t *testing.T) {
	svc := &EnrichmentService{client: http.DefaultClient}

	decision := &models.Decision{SubmitterName: "", DecisionType: models.DecisionTypeBaptism}
	enrichment := svc.EnrichDecisionWithFallback(context.Background(), decision)
	if len(enrichment.NextSteps) < 1 {
		t.Fatal("fallback must carry at least one next step")
	}
}

func TestFallbackDecisionEnrichment_ValidSchema(t *testing.T) {
	if err := validateDecisionEnrichment(FallbackDecisionEnrichment("Neema")); err != nil {
		t.Fatalf("fallback payload must satisfy the schema: %v", err)
	}
	if err := validateDecisionEnrichment(FallbackDecisionEnrichment("")); err != nil {
		t.Fatalf("anonymous fallback payload must satisfy the schema: %v", err)
	}
}

func TestEnrichTestimony_Success(t *testing.T) {
	svc, srv := newTestEnrichmentService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"suggested_quote": "From ashes to altar", "summary": "An account of restoration."}`))
	}))
	defer srv.Close()

	testimony := &models.Testimony{SubmitterName: "Neema", Story: "story"}
	enrichment, err := svc.EnrichTestimony(context.Background(), testimony)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enrichment.SuggestedQuote != "From ashes to altar" {
		t.Errorf("unexpected quote: %q", enrichment.SuggestedQuote)
	}
}

func TestEnrichTestimony_EmptyQuoteFails(t *testing.T) {
	svc, srv := newTestEnrichmentService(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"suggested_quote": "", "summary": "s"}`))
	}))
	defer srv.Close()

	testimony := &models.Testimony{SubmitterName: "Neema", Story: "story"}
	if _, err := svc.EnrichTestimony(context.Background(), testimony); err == nil {
		t.Fatal("expected empty quote to fail schema validation")
	}
}
