package services

import (
	"log"
	"os"

	"church-community-api/config"
	"church-community-api/models"
	"church-community-api/utils"

	"gorm.io/gorm"
)

// AssetService deletes managed binary objects that are no longer referenced
// by any record. Deletion failures are warnings, never fatal.
type AssetService struct {
	db *gorm.DB
}

func NewAssetService(db *gorm.DB) *AssetService {
	if db == nil {
		db = config.DB
	}
	return &AssetService{db: db}
}

// assetToDelete reports which managed object, if any, is orphaned by moving
// an upload field from oldURL to newURL.
func assetToDelete(oldURL, newURL string) (string, bool) {
	if oldURL == "" || oldURL == newURL {
		return "", false
	}
	if !utils.IsManagedAssetURL(oldURL) {
		return "", false
	}
	return oldURL, true
}

// imageReferenced reports whether any live record still points at url.
// Published projections copy the source image URL, so a superseded testimony
// image may still be on the public wall.
func (s *AssetService) imageReferenced(url string) bool {
	if s.db == nil {
		return false
	}

	var count int64
	if err := s.db.Model(&models.Testimony{}).
		Where("image_url = ? AND delete_at IS NULL", url).
		Count(&count).Error; err != nil {
		log.Printf("Warning: asset reference check failed for %s: %v", url, err)
		return true
	}
	if count > 0 {
		return true
	}

	if err := s.db.Model(&models.PublishedTestimony{}).
		Where("image_url = ?", url).
		Count(&count).Error; err != nil {
		log.Printf("Warning: asset reference check failed for %s: %v", url, err)
		return true
	}
	return count > 0
}

// removeStoredObject deletes one managed object from disk. A missing object
// counts as success.
func removeStoredObject(url string) {
	storedPath, ok := utils.StoredPathForURL(url)
	if !ok {
		return
	}
	if err := os.Remove(storedPath); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to delete stored object %s: %v", storedPath, err)
	}
}

// Reconcile deletes the managed object superseded by an upload field change,
// unless another record still references it. Call after the record update
// has been persisted so the reference check sees the new state.
func (s *AssetService) Reconcile(oldURL, newURL string) {
	url, ok := assetToDelete(oldURL, newURL)
	if !ok {
		return
	}
	if s.imageReferenced(url) {
		return
	}
	removeStoredObject(url)
}

// CleanupRecordAssets deletes all managed objects owned by a removed record.
func (s *AssetService) CleanupRecordAssets(urls ...string) {
	for _, url := range urls {
		s.Reconcile(url, "")
	}
}
