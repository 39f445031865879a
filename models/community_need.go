package models

import "time"

// Community need statuses. The board is permissive: staff may move a need to
// any known status directly.
const (
	NeedStatusNew        = "new"
	NeedStatusInProgress = "in_progress"
	NeedStatusResolved   = "resolved"
)

// Community need categories accepted at intake.
const (
	NeedCategoryFood      = "food"
	NeedCategoryHousing   = "housing"
	NeedCategoryPrayer    = "prayer"
	NeedCategoryVisit     = "visit"
	NeedCategoryFinancial = "financial"
	NeedCategoryOther     = "other"
)

// CommunityNeed represents the community_needs table.
type CommunityNeed struct {
	NeedID        int        `gorm:"primaryKey;column:need_id" json:"need_id"`
	SubmitterID   *int       `gorm:"column:submitter_id" json:"submitter_id,omitempty"`
	SubmitterName string     `gorm:"column:submitter_name" json:"submitter_name"`
	ContactInfo   *string    `gorm:"column:contact_info" json:"contact_info,omitempty"`
	Category      string     `gorm:"column:category" json:"category"`
	Description   string     `gorm:"column:description;type:text" json:"description"`
	Status        string     `gorm:"column:status" json:"status"`
	AssignedTo    *int       `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	ResolvedAt    *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	CreateAt      time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt      time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Assignee *User `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}

// TableName specifies the table for CommunityNeed.
func (CommunityNeed) TableName() string {
	return "community_needs"
}

// ValidNeedCategory reports whether c is a known need category.
func ValidNeedCategory(c string) bool {
	switch c {
	case NeedCategoryFood, NeedCategoryHousing, NeedCategoryPrayer,
		NeedCategoryVisit, NeedCategoryFinancial, NeedCategoryOther:
		return true
	}
	return false
}
