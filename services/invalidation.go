package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"
)

// Moderation transitions used as keys in the stale-view table.
const (
	TransitionApprove      = "approve"
	TransitionReject       = "reject"
	TransitionContact      = "contact"
	TransitionResolve      = "resolve"
	TransitionStatusChange = "status_change"
)

// staleViews declares which downstream views go stale for each
// (kind, transition) pair. This is a fixed lookup table, not inferred.
var staleViews = map[string][]string{
	"testimony/approve":            {"views/testimonies", "views/home", "views/staff/testimony-queue"},
	"testimony/reject":             {"views/staff/testimony-queue"},
	"decision/contact":             {"views/staff/decision-queue"},
	"decision/resolve":             {"views/staff/decision-queue"},
	"community_need/status_change": {"views/staff/needs-board"},
}

// StaleViews returns the view identifiers invalidated by a transition.
func StaleViews(kind, transition string) []string {
	return staleViews[kind+"/"+transition]
}

// ViewInvalidator marks one downstream view stale for its next read.
type ViewInvalidator interface {
	Invalidate(view string) error
}

// webhookInvalidator posts view tags to the site's revalidation endpoint.
type webhookInvalidator struct {
	client *http.Client
	url    string
	secret string
}

func (w *webhookInvalidator) Invalidate(view string) error {
	body, err := json.Marshal(map[string]string{
		"tag":    view,
		"secret": w.secret,
	})
	if err != nil {
		return err
	}
	resp, err := w.client.Post(w.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &invalidationStatusError{status: resp.StatusCode}
	}
	return nil
}

type invalidationStatusError struct {
	status int
}

func (e *invalidationStatusError) Error() string {
	return http.StatusText(e.status)
}

// InvalidationService signals stale views after moderation transitions.
// Failures are warnings; the transition that triggered them has already
// been persisted.
type InvalidationService struct {
	invalidator ViewInvalidator
}

func NewInvalidationService(invalidator ViewInvalidator) *InvalidationService {
	if invalidator == nil {
		url := os.Getenv("REVALIDATE_URL")
		if url == "" {
			return &InvalidationService{}
		}
		invalidator = &webhookInvalidator{
			client: &http.Client{Timeout: 10 * time.Second},
			url:    url,
			secret: os.Getenv("REVALIDATE_SECRET"),
		}
	}
	return &InvalidationService{invalidator: invalidator}
}

// Signal marks every view invalidated by the transition as stale.
func (s *InvalidationService) Signal(kind, transition string) {
	if s == nil || s.invalidator == nil {
		return
	}
	for _, view := range StaleViews(kind, transition) {
		if err := s.invalidator.Invalidate(view); err != nil {
			log.Printf("Warning: failed to invalidate view %s after %s/%s: %v", view, kind, transition, err)
		}
	}
}
