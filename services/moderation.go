package services

import (
	"errors"
	"fmt"
	"time"

	"church-community-api/config"
	"church-community-api/models"

	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound is returned when the referenced submission is missing.
	ErrRecordNotFound = errors.New("record not found")
	// ErrAlreadyApproved short-circuits a repeated testimony approval.
	ErrAlreadyApproved = errors.New("testimony already approved")
)

// InvalidTransitionError names the attempted and current states of an illegal
// status change.
type InvalidTransitionError struct {
	Kind string
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition: %s -> %s", e.Kind, e.From, e.To)
}

// transitionPolicy is the legal state graph for one submission kind.
// Permissive kinds allow staff to set any known state directly.
type transitionPolicy struct {
	states     map[string]bool
	edges      map[string][]string
	permissive bool
}

var transitionPolicies = map[string]transitionPolicy{
	models.KindTestimony: {
		states: map[string]bool{
			models.TestimonyStatusPendingReview: true,
			models.TestimonyStatusApproved:      true,
			models.TestimonyStatusRejected:      true,
		},
		edges: map[string][]string{
			models.TestimonyStatusPendingReview: {
				models.TestimonyStatusApproved,
				models.TestimonyStatusRejected,
			},
		},
	},
	models.KindDecision: {
		states: map[string]bool{
			models.DecisionStatusNew:       true,
			models.DecisionStatusContacted: true,
			models.DecisionStatusResolved:  true,
		},
		edges: map[string][]string{
			models.DecisionStatusNew: {models.DecisionStatusContacted},
			// contacted is re-enterable so repeat contacts can be logged.
			models.DecisionStatusContacted: {
				models.DecisionStatusContacted,
				models.DecisionStatusResolved,
			},
		},
	},
	models.KindCommunityNeed: {
		states: map[string]bool{
			models.NeedStatusNew:        true,
			models.NeedStatusInProgress: true,
			models.NeedStatusResolved:   true,
		},
		permissive: true,
	},
}

// CanTransition validates a status change against the legal edge set for the
// kind. It is pure; the caller supplies the current stored status.
func CanTransition(kind, from, to string) error {
	policy, ok := transitionPolicies[kind]
	if !ok {
		return fmt.Errorf("unknown submission kind: %s", kind)
	}
	if !policy.states[to] {
		return &InvalidTransitionError{Kind: kind, From: from, To: to}
	}
	if policy.permissive {
		return nil
	}
	for _, next := range policy.edges[from] {
		if next == to {
			return nil
		}
	}
	return &InvalidTransitionError{Kind: kind, From: from, To: to}
}

// ModerationService applies staff actions to submissions.
type ModerationService struct {
	db           *gorm.DB
	publications *PublicationService
	invalidation *InvalidationService
}

func NewModerationService(db *gorm.DB, publications *PublicationService, invalidation *InvalidationService) *ModerationService {
	if db == nil {
		db = config.DB
	}
	if publications == nil {
		publications = NewPublicationService(db)
	}
	return &ModerationService{
		db:           db,
		publications: publications,
		invalidation: invalidation,
	}
}

// ApproveTestimony transitions a pending testimony to approved and creates
// its public projection in the same transaction. Callers observe either both
// the status change and the publication, or neither.
func (s *ModerationService) ApproveTestimony(testimonyID, staffID int) (*models.Testimony, *models.PublishedTestimony, error) {
	var testimony models.Testimony
	if err := s.db.Where("testimony_id = ? AND delete_at IS NULL", testimonyID).
		First(&testimony).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRecordNotFound
		}
		return nil, nil, err
	}

	// Idempotency guard: a second approve must not re-run side effects.
	if testimony.Status == models.TestimonyStatusApproved {
		return nil, nil, ErrAlreadyApproved
	}
	if err := CanTransition(models.KindTestimony, testimony.Status, models.TestimonyStatusApproved); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	var published *models.PublishedTestimony

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Testimony{}).
			Where("testimony_id = ?", testimonyID).
			Updates(map[string]interface{}{
				"status":      models.TestimonyStatusApproved,
				"reviewed_by": staffID,
				"reviewed_at": now,
				"update_at":   now,
			}).Error; err != nil {
			return fmt.Errorf("failed to update testimony status: %w", err)
		}

		p, err := s.publications.Publish(tx, &testimony, staffID, now)
		if err != nil {
			return err
		}
		published = p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	testimony.Status = models.TestimonyStatusApproved
	testimony.ReviewedBy = &staffID
	testimony.ReviewedAt = &now

	if s.invalidation != nil {
		s.invalidation.Signal(models.KindTestimony, TransitionApprove)
	}
	return &testimony, published, nil
}

// RejectTestimony transitions a pending testimony to the terminal rejected
// status. The record is kept; rejection is a status, not removal.
func (s *ModerationService) RejectTestimony(testimonyID, staffID int, note string) (*models.Testimony, error) {
	var testimony models.Testimony
	if err := s.db.Where("testimony_id = ? AND delete_at IS NULL", testimonyID).
		First(&testimony).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := CanTransition(models.KindTestimony, testimony.Status, models.TestimonyStatusRejected); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      models.TestimonyStatusRejected,
		"reviewed_by": staffID,
		"reviewed_at": now,
		"update_at":   now,
	}
	if note != "" {
		updates["review_note"] = note
	}
	if err := s.db.Model(&models.Testimony{}).
		Where("testimony_id = ?", testimonyID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update testimony status: %w", err)
	}

	testimony.Status = models.TestimonyStatusRejected
	testimony.ReviewedBy = &staffID
	testimony.ReviewedAt = &now
	if note != "" {
		testimony.ReviewNote = &note
	}

	if s.invalidation != nil {
		s.invalidation.Signal(models.KindTestimony, TransitionReject)
	}
	return &testimony, nil
}

// AddContactLog appends a pastoral contact entry to a decision. Every append
// bumps last_contacted_at and forces the status to contacted when it is new.
func (s *ModerationService) AddContactLog(decisionID int, actor *models.User, note string) (*models.Decision, error) {
	var decision models.Decision
	if err := s.db.Where("decision_id = ? AND delete_at IS NULL", decisionID).
		First(&decision).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	nextStatus := decision.Status
	if decision.Status == models.DecisionStatusNew {
		nextStatus = models.DecisionStatusContacted
	}
	if err := CanTransition(models.KindDecision, decision.Status, nextStatus); err != nil {
		return nil, err
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry := models.DecisionContactLog{
			DecisionID: decisionID,
			ActorID:    actor.UserID,
			ActorName:  actor.FullName(),
			Note:       note,
			CreatedAt:  now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append contact log: %w", err)
		}

		return tx.Model(&models.Decision{}).
			Where("decision_id = ?", decisionID).
			Updates(map[string]interface{}{
				"status":            nextStatus,
				"last_contacted_at": now,
				"update_at":         now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	decision.Status = nextStatus
	decision.LastContactedAt = &now

	if s.invalidation != nil {
		s.invalidation.Signal(models.KindDecision, TransitionContact)
	}
	return &decision, nil
}

// SetDecisionStatus applies a staff status change to a decision. The decision
// graph is strict; regressions are rejected.
func (s *ModerationService) SetDecisionStatus(decisionID int, status string) (*models.Decision, error) {
	var decision models.Decision
	if err := s.db.Where("decision_id = ? AND delete_at IS NULL", decisionID).
		First(&decision).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := CanTransition(models.KindDecision, decision.Status, status); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(&models.Decision{}).
		Where("decision_id = ?", decisionID).
		Updates(map[string]interface{}{
			"status":    status,
			"update_at": now,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to update decision status: %w", err)
	}

	decision.Status = status
	if s.invalidation != nil {
		transition := TransitionContact
		if status == models.DecisionStatusResolved {
			transition = TransitionResolve
		}
		s.invalidation.Signal(models.KindDecision, transition)
	}
	return &decision, nil
}

// SetCommunityNeedStatus applies a staff status change to a community need.
// The board is permissive, but the target must still be a known state.
func (s *ModerationService) SetCommunityNeedStatus(needID int, status string, assigneeID *int) (*models.CommunityNeed, error) {
	var need models.CommunityNeed
	if err := s.db.Where("need_id = ? AND delete_at IS NULL", needID).
		First(&need).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if err := CanTransition(models.KindCommunityNeed, need.Status, status); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":    status,
		"update_at": now,
	}
	if assigneeID != nil {
		updates["assigned_to"] = *assigneeID
	}
	if status == models.NeedStatusResolved {
		updates["resolved_at"] = now
	}
	if err := s.db.Model(&models.CommunityNeed{}).
		Where("need_id = ?", needID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update community need status: %w", err)
	}

	need.Status = status
	if assigneeID != nil {
		need.AssignedTo = assigneeID
	}
	if status == models.NeedStatusResolved {
		need.ResolvedAt = &now
	}
	if s.invalidation != nil {
		s.invalidation.Signal(models.KindCommunityNeed, TransitionStatusChange)
	}
	return &need, nil
}
