package models

import "time"

// Decision statuses. new -> contacted -> resolved; contacted is re-enterable
// so repeat follow-up calls can be logged.
const (
	DecisionStatusNew       = "new"
	DecisionStatusContacted = "contacted"
	DecisionStatusResolved  = "resolved"
)

// Decision types accepted at intake.
const (
	DecisionTypeFaith        = "faith"
	DecisionTypeRededication = "rededication"
	DecisionTypeBaptism      = "baptism"
	DecisionTypeMembership   = "membership"
	DecisionTypeOther        = "other"
)

// Decision represents the decisions table: a faith decision submitted from
// the public site and followed up by the pastoral team.
type Decision struct {
	DecisionID      int        `gorm:"primaryKey;column:decision_id" json:"decision_id"`
	SubmitterID     *int       `gorm:"column:submitter_id" json:"submitter_id,omitempty"`
	SubmitterName   string     `gorm:"column:submitter_name" json:"submitter_name"`
	ContactPhone    *string    `gorm:"column:contact_phone" json:"contact_phone,omitempty"`
	ContactEmail    *string    `gorm:"column:contact_email" json:"contact_email,omitempty"`
	DecisionType    string     `gorm:"column:decision_type" json:"decision_type"`
	Message         *string    `gorm:"column:message" json:"message,omitempty"`
	Status          string     `gorm:"column:status" json:"status"`
	LastContactedAt *time.Time `gorm:"column:last_contacted_at" json:"last_contacted_at,omitempty"`
	CreateAt        time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt        time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Enrichment fields. NextSteps holds the suggested next actions as JSON.
	Greeting   *string    `gorm:"column:greeting" json:"greeting,omitempty"`
	NextSteps  *string    `gorm:"column:next_steps;type:json" json:"next_steps,omitempty"`
	EnrichedAt *time.Time `gorm:"column:enriched_at" json:"enriched_at,omitempty"`

	// Relations
	ContactLogs []DecisionContactLog `gorm:"foreignKey:DecisionID" json:"contact_logs,omitempty"`
}

// DecisionContactLog is the append-only log of pastoral contacts for a
// decision.
type DecisionContactLog struct {
	LogID      int       `gorm:"primaryKey;column:log_id" json:"log_id"`
	DecisionID int       `gorm:"column:decision_id" json:"decision_id"`
	ActorID    int       `gorm:"column:actor_id" json:"actor_id"`
	ActorName  string    `gorm:"column:actor_name" json:"actor_name"`
	Note       string    `gorm:"column:note;type:text" json:"note"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (Decision) TableName() string {
	return "decisions"
}

func (DecisionContactLog) TableName() string {
	return "decision_contact_logs"
}

// ValidDecisionType reports whether t is a member of the decision type enum.
func ValidDecisionType(t string) bool {
	switch t {
	case DecisionTypeFaith, DecisionTypeRededication, DecisionTypeBaptism,
		DecisionTypeMembership, DecisionTypeOther:
		return true
	}
	return false
}
