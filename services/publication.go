package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"church-community-api/config"
	"church-community-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAlreadyPublished short-circuits a duplicate publication of the same
// source testimony.
var ErrAlreadyPublished = errors.New("testimony already published")

const (
	// DefaultQuoteFallback is used when no AI quote was suggested.
	DefaultQuoteFallback = "God has been faithful in my life."
	// PlaceholderImageURL is used when the submitter supplied no image.
	PlaceholderImageURL = "/images/testimony-placeholder.jpg"
)

// PublicationService derives public records from approved submissions.
type PublicationService struct {
	db *gorm.DB

	// publishMu serializes the display-order read with the insert so two
	// concurrent approvals cannot observe the same MAX(display_order).
	publishMu sync.Mutex
}

func NewPublicationService(db *gorm.DB) *PublicationService {
	if db == nil {
		db = config.DB
	}
	return &PublicationService{db: db}
}

// buildPublishedTestimony builds the public projection of an approved
// testimony: AI-suggested quote over the generic fallback, submitter display
// fields copied, placeholder image when none was uploaded.
func buildPublishedTestimony(t *models.Testimony, staffID int, now time.Time) models.PublishedTestimony {
	quote := DefaultQuoteFallback
	if t.SuggestedQuote != nil && *t.SuggestedQuote != "" {
		quote = *t.SuggestedQuote
	}

	imageURL := PlaceholderImageURL
	if t.ImageURL != nil && *t.ImageURL != "" {
		imageURL = *t.ImageURL
	}

	return models.PublishedTestimony{
		TestimonyID: t.TestimonyID,
		DisplayName: t.SubmitterName,
		Location:    t.Location,
		Quote:       quote,
		Story:       t.Story,
		ImageURL:    imageURL,
		PublishedAt: now,
		PublishedBy: &staffID,
	}
}

// Publish creates the public projection for an approved testimony inside the
// caller's transaction. The process-wide lock closes the check-then-act
// window between the existence check, the display-order read and the insert;
// the unique index on testimony_id and the locking read on
// MAX(display_order) backstop concurrent processes.
func (s *PublicationService) Publish(tx *gorm.DB, t *models.Testimony, staffID int, now time.Time) (*models.PublishedTestimony, error) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	var existing models.PublishedTestimony
	err := tx.Where("testimony_id = ?", t.TestimonyID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyPublished
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var maxOrder int
	if err := tx.Model(&models.PublishedTestimony{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&maxOrder).Error; err != nil {
		return nil, err
	}

	published := buildPublishedTestimony(t, staffID, now)
	published.DisplayOrder = maxOrder + 1

	if err := tx.Create(&published).Error; err != nil {
		// A concurrent approve that committed between our check and this
		// insert trips the unique index on testimony_id.
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
			return nil, ErrAlreadyPublished
		}
		return nil, err
	}
	return &published, nil
}

// ListPublished returns the public testimony wall ordered for display.
func (s *PublicationService) ListPublished(limit int) ([]models.PublishedTestimony, error) {
	if limit <= 0 {
		limit = 50
	}
	var published []models.PublishedTestimony
	if err := s.db.
		// Secondary key keeps the wall deterministic if orders ever collide.
		Order("display_order ASC, published_id ASC").
		Limit(limit).
		Find(&published).Error; err != nil {
		return nil, err
	}
	return published, nil
}
