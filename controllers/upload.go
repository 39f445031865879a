package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"church-community-api/config"
	"church-community-api/models"
	"church-community-api/utils"

	"github.com/gin-gonic/gin"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// UploadImage stores one image in managed storage and returns its public URL.
// Submitters call this before attaching the URL to a testimony.
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	now := time.Now()
	fileUpload := models.FileUpload{
		OriginalName: file.Filename,
		FileSize:     file.Size,
		MimeType:     file.Header.Get("Content-Type"),
		UploadedAt:   now,
		CreateAt:     now,
		UpdateAt:     now,
	}

	// Validate file size
	maxSize := int64(5 * 1024 * 1024) // 5MB
	if file.Size > maxSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File size %.1fMB exceeds the 5MB limit", fileUpload.GetFileSizeInMB()),
		})
		return
	}

	// Both the extension and the declared content type must name an image.
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] || !fileUpload.IsValidImageType() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	storedName := utils.StoredFilename(file.Filename)
	fullPath := filepath.Join(utils.UploadPath(), storedName)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	fileUpload.StoredPath = fullPath
	fileUpload.PublicURL = utils.PublicURLForFilename(storedName)
	if userID, exists := c.Get("userID"); exists {
		uid := userID.(int)
		fileUpload.UploadedBy = &uid
	}

	if err := config.DB.Create(&fileUpload).Error; err != nil {
		// Delete the stored object if the database save fails
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file info"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded successfully",
		"url":     fileUpload.PublicURL,
		"file":    fileUpload,
	})
}

// ReplaceTestimonyImage swaps a testimony's image for a newly uploaded one
// and reconciles the superseded managed object.
func ReplaceTestimonyImage(c *gin.Context) {
	ensureServices()

	testimonyID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid testimony ID"})
		return
	}

	var req struct {
		ImageURL string `json:"image_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image URL is required"})
		return
	}
	if !utils.ValidateURL(req.ImageURL) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ValidationErrors{"image_url": "Invalid image URL"}})
		return
	}

	var testimony models.Testimony
	if err := config.DB.Where("testimony_id = ? AND delete_at IS NULL", testimonyID).
		First(&testimony).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Testimony not found"})
		return
	}

	oldURL := ""
	if testimony.ImageURL != nil {
		oldURL = *testimony.ImageURL
	}

	if err := config.DB.Model(&models.Testimony{}).
		Where("testimony_id = ?", testimonyID).
		Updates(map[string]interface{}{
			"image_url": req.ImageURL,
			"update_at": time.Now(),
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update testimony"})
		return
	}

	// Reconcile after the update so the reference check sees the new state.
	assetSvc.Reconcile(oldURL, req.ImageURL)

	testimony.ImageURL = &req.ImageURL
	c.JSON(http.StatusOK, gin.H{
		"message":   "Testimony image updated",
		"testimony": testimony,
	})
}
