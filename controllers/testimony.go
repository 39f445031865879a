package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"church-community-api/config"
	"church-community-api/models"
	"church-community-api/services"
	"church-community-api/utils"

	"github.com/gin-gonic/gin"
)

// CreateTestimony handles a public testimony submission. The submission is
// complete the moment the record is stored; enrichment and the staff
// notification run detached.
func CreateTestimony(c *gin.Context) {
	ensureServices()

	var input utils.TestimonyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	input, validationErrs := utils.ValidateTestimonyInput(input)
	if validationErrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrs})
		return
	}

	now := time.Now()
	testimony := models.Testimony{
		SubmitterName: input.Name,
		Story:         input.Story,
		Status:        models.TestimonyStatusPendingReview,
		CreateAt:      now,
		UpdateAt:      now,
	}
	if userID, exists := c.Get("userID"); exists {
		uid := userID.(int)
		testimony.SubmitterID = &uid
	}
	if input.Email != "" {
		testimony.SubmitterEmail = &input.Email
	}
	if input.Location != "" {
		testimony.Location = &input.Location
	}
	if input.Tags != "" {
		testimony.Tags = &input.Tags
	}
	if input.ImageURL != "" {
		testimony.ImageURL = &input.ImageURL
	}

	if err := config.DB.Create(&testimony).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save testimony"})
		return
	}

	// Best-effort side effects; the submitter's success never waits on them.
	enrichmentSvc.EnrichTestimonyDetached(&testimony)
	go notificationSvc.NotifyStaffNewSubmission(models.KindTestimony, testimony.SubmitterName, "A testimony is waiting for review.")

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Testimony submitted successfully",
		"testimony": testimony,
	})
}

// GetPublishedTestimonies returns the public testimony wall.
func GetPublishedTestimonies(c *gin.Context) {
	ensureServices()

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	published, err := publicationSvc.ListPublished(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load testimonies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"testimonies": published,
		"total":       len(published),
	})
}

// ListTestimonies returns the staff review queue, optionally filtered by
// status.
func ListTestimonies(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var testimonies []models.Testimony
	if err := query.Preload("Reviewer").
		Order("create_at DESC").
		Find(&testimonies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load testimonies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"testimonies": testimonies,
		"total":       len(testimonies),
	})
}

// ApproveTestimony transitions a testimony to approved and publishes it.
func ApproveTestimony(c *gin.Context) {
	ensureServices()

	testimonyID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid testimony ID"})
		return
	}
	userID, _ := c.Get("userID")

	testimony, published, err := moderationSvc.ApproveTestimony(testimonyID, userID.(int))
	if err != nil {
		respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Testimony approved and published",
		"testimony": testimony,
		"published": published,
	})
}

// RejectTestimony transitions a testimony to the terminal rejected status.
func RejectTestimony(c *gin.Context) {
	ensureServices()

	testimonyID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid testimony ID"})
		return
	}
	userID, _ := c.Get("userID")

	var req struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&req)

	testimony, err := moderationSvc.RejectTestimony(testimonyID, userID.(int), utils.SanitizeInput(req.Note))
	if err != nil {
		respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Testimony rejected",
		"testimony": testimony,
	})
}

// respondModerationError maps lifecycle errors onto staff-facing responses.
func respondModerationError(c *gin.Context, err error) {
	var invalid *services.InvalidTransitionError
	switch {
	case errors.Is(err, services.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, services.ErrAlreadyApproved), errors.Is(err, services.ErrAlreadyPublished):
		c.JSON(http.StatusConflict, gin.H{"error": "Testimony is already approved"})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Action failed"})
	}
}
