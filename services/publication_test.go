package services

import (
	"testing"
	"time"

	"church-community-api/models"
)

func TestBuildPublishedTestimony_PrefersSuggestedQuote(t *testing.T) {
	quote := "He carried me through"
	location := "Dar es Salaam"
	now := time.Now()

	testimony := &models.Testimony{
		TestimonyID:    7,
		SubmitterName:  "Neema",
		Location:       &location,
		Story:          "A long story about provision and faithfulness over many years.",
		SuggestedQuote: &quote,
	}

	published := buildPublishedTestimony(testimony, 42, now)

	if published.Quote != quote {
		t.Errorf("expected AI quote to win, got %q", published.Quote)
	}
	if published.TestimonyID != 7 {
		t.Errorf("expected source back-reference 7, got %d", published.TestimonyID)
	}
	if published.DisplayName != "Neema" {
		t.Errorf("expected display name copied, got %q", published.DisplayName)
	}
	if published.Location == nil || *published.Location != location {
		t.Errorf("expected location copied, got %v", published.Location)
	}
	if !published.PublishedAt.Equal(now) {
		t.Errorf("expected publishedAt = %v, got %v", now, published.PublishedAt)
	}
	if published.PublishedBy == nil || *published.PublishedBy != 42 {
		t.Errorf("expected publishedBy = 42, got %v", published.PublishedBy)
	}
}

func TestBuildPublishedTestimony_Fallbacks(t *testing.T) {
	testimony := &models.Testimony{
		TestimonyID:   3,
		SubmitterName: "Amani",
		Story:         "Story text",
	}

	published := buildPublishedTestimony(testimony, 1, time.Now())

	if published.Quote != DefaultQuoteFallback {
		t.Errorf("expected fallback quote, got %q", published.Quote)
	}
	if published.ImageURL != PlaceholderImageURL {
		t.Errorf("expected placeholder image, got %q", published.ImageURL)
	}
}

func TestBuildPublishedTestimony_EmptyQuoteUsesFallback(t *testing.T) {
	empty := ""
	testimony := &models.Testimony{
		TestimonyID:    4,
		SubmitterName:  "Baraka",
		Story:          "Story text",
		SuggestedQuote: &empty,
	}

	published := buildPublishedTestimony(testimony, 1, time.Now())
	if published.Quote != DefaultQuoteFallback {
		t.Errorf("expected fallback for empty suggested quote, got %q", published.Quote)
	}
}
