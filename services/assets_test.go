package services

import (
	"os"
	"path/filepath"
	"testing"

	"church-community-api/utils"
)

func TestAssetToDelete(t *testing.T) {
	tests := []struct {
		name   string
		oldURL string
		newURL string
		want   string
		ok     bool
	}{
		{"managed superseded", "/uploads/a.jpg", "/uploads/b.jpg", "/uploads/a.jpg", true},
		{"managed removed", "/uploads/a.jpg", "", "/uploads/a.jpg", true},
		{"unchanged", "/uploads/a.jpg", "/uploads/a.jpg", "", false},
		{"external old url", "https://cdn.example.com/a.jpg", "/uploads/b.jpg", "", false},
		{"no previous", "", "/uploads/b.jpg", "", false},
	}

	for _, tt := range tests {
		got, ok := assetToDelete(tt.oldURL, tt.newURL)
		if got != tt.want || ok != tt.ok {
			t.Errorf("%s: assetToDelete(%q, %q) = (%q, %v), want (%q, %v)",
				tt.name, tt.oldURL, tt.newURL, got, ok, tt.want, tt.ok)
		}
	}
}

func TestReconcile_DeletesSupersededObject(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_PATH", dir)

	oldPath := filepath.Join(dir, "a.jpg")
	newPath := filepath.Join(dir, "b.jpg")
	for _, p := range []string{oldPath, newPath} {
		if err := os.WriteFile(p, []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// nil db: no other records can reference the object
	svc := &AssetService{}
	svc.Reconcile("/uploads/a.jpg", "/uploads/b.jpg")

	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("expected superseded object to be deleted")
	}
	if _, err := os.Stat(newPath); err != nil {
		t.Errorf("expected new object untouched, got %v", err)
	}
}

func TestReconcile_MissingObjectIsSuccess(t *testing.T) {
	t.Setenv("UPLOAD_PATH", t.TempDir())

	svc := &AssetService{}
	// Must not panic or error; absence counts as already deleted.
	svc.Reconcile("/uploads/gone.jpg", "")
}

func TestReconcile_IgnoresUnmanagedURL(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_PATH", dir)

	path := filepath.Join(dir, "keep.jpg")
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := &AssetService{}
	svc.Reconcile("https://cdn.example.com/keep.jpg", "")

	if _, err := os.Stat(path); err != nil {
		t.Errorf("unmanaged URL must never trigger a local delete: %v", err)
	}
}

func TestStoredPathForURL_RejectsTraversal(t *testing.T) {
	t.Setenv("UPLOAD_PATH", t.TempDir())

	if _, ok := utils.StoredPathForURL("/uploads/../etc/passwd"); ok {
		t.Error("expected traversal URL to be rejected")
	}
	if _, ok := utils.StoredPathForURL("/elsewhere/a.jpg"); ok {
		t.Error("expected non-managed URL to be rejected")
	}
	if _, ok := utils.StoredPathForURL("/uploads/a.jpg"); !ok {
		t.Error("expected managed URL to resolve")
	}
}
