package models

import "testing"

func TestFileUploadIsValidImageType(t *testing.T) {
	tests := []struct {
		mimeType string
		valid    bool
	}{
		{"image/jpeg", true},
		{"image/jpg", true},
		{"image/png", true},
		{"image/gif", true},
		{"image/webp", true},
		{"image/svg+xml", false},
		{"application/pdf", false},
		{"text/html", false},
		{"", false},
	}

	for _, tt := range tests {
		f := &FileUpload{MimeType: tt.mimeType}
		if f.IsValidImageType() != tt.valid {
			t.Errorf("IsValidImageType(%q) = %v, want %v", tt.mimeType, !tt.valid, tt.valid)
		}
	}
}

func TestFileUploadGetFileSizeInMB(t *testing.T) {
	f := &FileUpload{FileSize: 5 * 1024 * 1024}
	if f.GetFileSizeInMB() != 5.0 {
		t.Errorf("expected 5.0 MB, got %f", f.GetFileSizeInMB())
	}

	f = &FileUpload{FileSize: 512 * 1024}
	if f.GetFileSizeInMB() != 0.5 {
		t.Errorf("expected 0.5 MB, got %f", f.GetFileSizeInMB())
	}
}
