package models

import "time"

// Testimony statuses. pending_review is the intake status; approved and
// rejected are terminal.
const (
	TestimonyStatusPendingReview = "pending_review"
	TestimonyStatusApproved      = "approved"
	TestimonyStatusRejected      = "rejected"
)

// Testimony represents the testimonies table. Guest submissions leave
// SubmitterID nil and carry only the display fields.
type Testimony struct {
	TestimonyID    int        `gorm:"primaryKey;column:testimony_id" json:"testimony_id"`
	SubmitterID    *int       `gorm:"column:submitter_id" json:"submitter_id,omitempty"`
	SubmitterName  string     `gorm:"column:submitter_name" json:"submitter_name"`
	SubmitterEmail *string    `gorm:"column:submitter_email" json:"submitter_email,omitempty"`
	Location       *string    `gorm:"column:location" json:"location,omitempty"`
	Story          string     `gorm:"column:story;type:text" json:"story"`
	Tags           *string    `gorm:"column:tags" json:"tags,omitempty"`
	ImageURL       *string    `gorm:"column:image_url" json:"image_url,omitempty"`
	Status         string     `gorm:"column:status" json:"status"`
	ReviewedBy     *int       `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	ReviewNote     *string    `gorm:"column:review_note" json:"review_note,omitempty"`
	CreateAt       time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt       time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Enrichment fields, written asynchronously and independently of status.
	SuggestedQuote *string    `gorm:"column:suggested_quote" json:"suggested_quote,omitempty"`
	AISummary      *string    `gorm:"column:ai_summary" json:"ai_summary,omitempty"`
	EnrichedAt     *time.Time `gorm:"column:enriched_at" json:"enriched_at,omitempty"`

	// Relations
	Reviewer *User `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
}

// PublishedTestimony is the public projection created when a testimony is
// approved. At most one row per source testimony (unique index).
type PublishedTestimony struct {
	PublishedID  int       `gorm:"primaryKey;column:published_id" json:"published_id"`
	TestimonyID  int       `gorm:"column:testimony_id;uniqueIndex" json:"testimony_id"`
	DisplayOrder int       `gorm:"column:display_order" json:"display_order"`
	DisplayName  string    `gorm:"column:display_name" json:"display_name"`
	Location     *string   `gorm:"column:location" json:"location,omitempty"`
	Quote        string    `gorm:"column:quote" json:"quote"`
	Story        string    `gorm:"column:story;type:text" json:"story"`
	ImageURL     string    `gorm:"column:image_url" json:"image_url"`
	PublishedAt  time.Time `gorm:"column:published_at" json:"published_at"`
	PublishedBy  *int      `gorm:"column:published_by" json:"published_by,omitempty"`
}

// TableName overrides
func (Testimony) TableName() string {
	return "testimonies"
}

func (PublishedTestimony) TableName() string {
	return "published_testimonies"
}
