package services

import (
	"fmt"
	"log"

	"church-community-api/config"
	"church-community-api/models"

	"gorm.io/gorm"
)

// NotificationService emails the staff team about new intake. Sends are
// fire-and-forget from controllers; a mail failure never affects the
// submission.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	if db == nil {
		db = config.DB
	}
	return &NotificationService{db: db}
}

func (s *NotificationService) staffEmails() ([]string, error) {
	var users []models.User
	if err := s.db.
		Where("role_id IN ? AND delete_at IS NULL", []int{models.RolePastoralTeam, models.RoleAdmin}).
		Find(&users).Error; err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(users))
	for _, user := range users {
		if user.Email != "" {
			emails = append(emails, user.Email)
		}
	}
	return emails, nil
}

// NotifyStaffNewSubmission sends one heads-up email to the staff team.
func (s *NotificationService) NotifyStaffNewSubmission(kind, submitterName, summary string) {
	emails, err := s.staffEmails()
	if err != nil {
		log.Printf("Warning: failed to load staff emails: %v", err)
		return
	}

	subject := fmt.Sprintf("New %s submission from %s", kind, submitterName)
	html := fmt.Sprintf(`<p>A new <strong>%s</strong> submission is waiting in the staff queue.</p>
<p>From: %s</p>
<p>%s</p>`, kind, submitterName, summary)

	if err := config.SendMail(emails, subject, html); err != nil {
		log.Printf("Warning: failed to send staff notification: %v", err)
	}
}
