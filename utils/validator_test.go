package utils

import (
	"strings"
	"testing"
)

func TestValidateTestimonyInput_StoryLengthBoundary(t *testing.T) {
	base := TestimonyInput{Name: "Neema"}

	base.Story = strings.Repeat("a", 49)
	if _, errs := ValidateTestimonyInput(base); errs == nil {
		t.Fatal("expected 49-character story to be rejected")
	} else if _, ok := errs["story"]; !ok {
		t.Fatalf("expected error keyed by story, got %v", errs)
	}

	base.Story = strings.Repeat("a", 50)
	if _, errs := ValidateTestimonyInput(base); errs != nil {
		t.Fatalf("expected 50-character story to be accepted, got %v", errs)
	}
}

func TestValidateTestimonyInput_FieldErrors(t *testing.T) {
	in := TestimonyInput{
		Name:     "",
		Email:    "not-an-email",
		Story:    strings.Repeat("x", 60),
		ImageURL: "ftp://example.com/pic.png",
	}

	_, errs := ValidateTestimonyInput(in)
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	for _, field := range []string{"name", "email", "image_url"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error for field %s, got %v", field, errs)
		}
	}
	if _, ok := errs["story"]; ok {
		t.Errorf("did not expect story error, got %v", errs)
	}
}

func TestValidateTestimonyInput_NormalizesTags(t *testing.T) {
	in := TestimonyInput{
		Name:  "Neema",
		Story: strings.Repeat("x", 60),
		Tags:  "  healing , , provision,  family  ",
	}

	out, errs := ValidateTestimonyInput(in)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out.Tags != "healing,provision,family" {
		t.Fatalf("unexpected normalized tags: %q", out.Tags)
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{" , ,", nil},
		{"one", []string{"one"}},
		{"a, b ,c", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		got := NormalizeTags(tt.raw)
		if len(got) != len(tt.want) {
			t.Errorf("NormalizeTags(%q) = %v, want %v", tt.raw, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("NormalizeTags(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
			}
		}
	}
}

func TestValidateDecisionInput(t *testing.T) {
	valid := DecisionInput{
		Name:         "Amani",
		Phone:        "+255700000000",
		DecisionType: "Faith",
	}
	out, errs := ValidateDecisionInput(valid)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out.DecisionType != "faith" {
		t.Fatalf("expected decision type normalized to lower case, got %q", out.DecisionType)
	}

	invalid := DecisionInput{Name: "Amani", Phone: "123", DecisionType: "miracle"}
	if _, errs := ValidateDecisionInput(invalid); errs == nil {
		t.Fatal("expected unknown decision type to be rejected")
	}

	noContact := DecisionInput{Name: "Amani", DecisionType: "faith"}
	if _, errs := ValidateDecisionInput(noContact); errs == nil {
		t.Fatal("expected missing contact info to be rejected")
	}
}

func TestValidateCommunityNeedInput(t *testing.T) {
	short := CommunityNeedInput{Name: "Baraka", Description: "help"}
	if _, errs := ValidateCommunityNeedInput(short); errs == nil {
		t.Fatal("expected short description to be rejected")
	}

	ok := CommunityNeedInput{Name: "Baraka", Description: "Need groceries for the week"}
	out, errs := ValidateCommunityNeedInput(ok)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out.Category != "other" {
		t.Fatalf("expected empty category to default to other, got %q", out.Category)
	}

	bad := CommunityNeedInput{Name: "Baraka", Category: "transport", Description: "Need a ride to the clinic"}
	if _, errs := ValidateCommunityNeedInput(bad); errs == nil {
		t.Fatal("expected unknown category to be rejected")
	}
}

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("person@example.com") {
		t.Error("expected valid email to pass")
	}
	if ValidateEmail("person@") {
		t.Error("expected invalid email to fail")
	}
}
