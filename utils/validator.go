// utils/validator.go - Intake validation
package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"church-community-api/models"
)

const (
	// MinStoryLength is the minimum testimony story length in characters.
	MinStoryLength = 50
	// MinNeedDescriptionLength is the minimum community need description length.
	MinNeedDescriptionLength = 10
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationErrors maps field names to a user-correctable message so callers
// can render field-level feedback.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	return fmt.Sprintf("validation failed for fields: %s", strings.Join(fields, ", "))
}

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateURL checks that raw parses as an absolute http(s) URL or a
// site-relative path.
func ValidateURL(raw string) bool {
	if strings.HasPrefix(raw, "/") {
		return !strings.Contains(raw, "..")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}

// NormalizeTags turns a freeform comma-separated string into an ordered list
// of trimmed, non-empty tags.
func NormalizeTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// TestimonyInput is the raw testimony submission payload.
type TestimonyInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Story    string `json:"story"`
	Tags     string `json:"tags"`
	ImageURL string `json:"image_url"`
}

// ValidateTestimonyInput checks and normalizes a testimony submission.
// The returned input has sanitized fields; errors are keyed by field name.
func ValidateTestimonyInput(in TestimonyInput) (TestimonyInput, ValidationErrors) {
	errs := ValidationErrors{}

	in.Name = SanitizeInput(in.Name)
	in.Email = SanitizeInput(in.Email)
	in.Location = SanitizeInput(in.Location)
	in.Story = SanitizeInput(in.Story)
	in.ImageURL = SanitizeInput(in.ImageURL)
	in.Tags = strings.Join(NormalizeTags(in.Tags), ",")

	if in.Name == "" {
		errs["name"] = "Name is required"
	}
	if utf8.RuneCountInString(in.Story) < MinStoryLength {
		errs["story"] = fmt.Sprintf("Story must be at least %d characters", MinStoryLength)
	}
	if in.Email != "" && !ValidateEmail(in.Email) {
		errs["email"] = "Invalid email address"
	}
	if in.ImageURL != "" && !ValidateURL(in.ImageURL) {
		errs["image_url"] = "Invalid image URL"
	}

	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}

// DecisionInput is the raw faith decision payload.
type DecisionInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	DecisionType string `json:"decision_type"`
	Message      string `json:"message"`
}

// ValidateDecisionInput checks and normalizes a faith decision submission.
func ValidateDecisionInput(in DecisionInput) (DecisionInput, ValidationErrors) {
	errs := ValidationErrors{}

	in.Name = SanitizeInput(in.Name)
	in.Phone = SanitizeInput(in.Phone)
	in.Email = SanitizeInput(in.Email)
	in.DecisionType = strings.ToLower(SanitizeInput(in.DecisionType))
	in.Message = SanitizeInput(in.Message)

	if in.Name == "" {
		errs["name"] = "Name is required"
	}
	if !models.ValidDecisionType(in.DecisionType) {
		errs["decision_type"] = "Unknown decision type"
	}
	if in.Phone == "" && in.Email == "" {
		errs["phone"] = "A phone number or email is required"
	}
	if in.Email != "" && !ValidateEmail(in.Email) {
		errs["email"] = "Invalid email address"
	}

	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}

// CommunityNeedInput is the raw community need payload.
type CommunityNeedInput struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// ValidateCommunityNeedInput checks and normalizes a community need.
func ValidateCommunityNeedInput(in CommunityNeedInput) (CommunityNeedInput, ValidationErrors) {
	errs := ValidationErrors{}

	in.Name = SanitizeInput(in.Name)
	in.ContactInfo = SanitizeInput(in.ContactInfo)
	in.Category = strings.ToLower(SanitizeInput(in.Category))
	in.Description = SanitizeInput(in.Description)

	if in.Name == "" {
		errs["name"] = "Name is required"
	}
	if in.Category == "" {
		in.Category = models.NeedCategoryOther
	} else if !models.ValidNeedCategory(in.Category) {
		errs["category"] = "Unknown need category"
	}
	if utf8.RuneCountInString(in.Description) < MinNeedDescriptionLength {
		errs["description"] = fmt.Sprintf("Description must be at least %d characters", MinNeedDescriptionLength)
	}

	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}
