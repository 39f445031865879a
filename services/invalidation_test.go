package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"church-community-api/models"
)

func TestStaleViews_Table(t *testing.T) {
	views := StaleViews(models.KindTestimony, TransitionApprove)
	if len(views) == 0 {
		t.Fatal("approving a testimony must invalidate at least one view")
	}

	found := map[string]bool{}
	for _, view := range views {
		found[view] = true
	}
	if !found["views/testimonies"] || !found["views/staff/testimony-queue"] {
		t.Errorf("expected public listing and staff queue to go stale, got %v", views)
	}

	if views := StaleViews(models.KindTestimony, "archive"); views != nil {
		t.Errorf("unknown transition must map to no views, got %v", views)
	}
}

func TestWebhookInvalidator_PostsTagAndSecret(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	inv := &webhookInvalidator{client: srv.Client(), url: srv.URL, secret: "s3cret"}
	if err := inv.Invalidate("views/testimonies"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["tag"] != "views/testimonies" || got["secret"] != "s3cret" {
		t.Errorf("unexpected payload: %v", got)
	}
}

func TestWebhookInvalidator_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	inv := &webhookInvalidator{client: srv.Client(), url: srv.URL}
	if err := inv.Invalidate("views/home"); err == nil {
		t.Fatal("expected non-200 response to surface as an error")
	}
}

type recordingInvalidator struct {
	views []string
}

func (r *recordingInvalidator) Invalidate(view string) error {
	r.views = append(r.views, view)
	return nil
}

func TestInvalidationService_SignalFansOut(t *testing.T) {
	rec := &recordingInvalidator{}
	svc := NewInvalidationService(rec)

	svc.Signal(models.KindTestimony, TransitionApprove)

	want := StaleViews(models.KindTestimony, TransitionApprove)
	if len(rec.views) != len(want) {
		t.Fatalf("expected %d invalidations, got %d (%v)", len(want), len(rec.views), rec.views)
	}
}

func TestInvalidationService_NoInvalidatorIsNoop(t *testing.T) {
	svc := &InvalidationService{}
	// Must not panic when no signal target is configured.
	svc.Signal(models.KindDecision, TransitionContact)
}
