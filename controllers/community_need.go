package controllers

import (
	"net/http"
	"strconv"
	"time"

	"church-community-api/config"
	"church-community-api/models"
	"church-community-api/utils"

	"github.com/gin-gonic/gin"
)

// CreateCommunityNeed logs a new community need from the public site.
func CreateCommunityNeed(c *gin.Context) {
	ensureServices()

	var input utils.CommunityNeedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	input, validationErrs := utils.ValidateCommunityNeedInput(input)
	if validationErrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrs})
		return
	}

	now := time.Now()
	need := models.CommunityNeed{
		SubmitterName: input.Name,
		Category:      input.Category,
		Description:   input.Description,
		Status:        models.NeedStatusNew,
		CreateAt:      now,
		UpdateAt:      now,
	}
	if userID, exists := c.Get("userID"); exists {
		uid := userID.(int)
		need.SubmitterID = &uid
	}
	if input.ContactInfo != "" {
		need.ContactInfo = &input.ContactInfo
	}

	if err := config.DB.Create(&need).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save community need"})
		return
	}

	go notificationSvc.NotifyStaffNewSubmission(models.KindCommunityNeed, need.SubmitterName, "A community need was logged on the board.")

	c.JSON(http.StatusCreated, gin.H{
		"message": "Community need logged",
		"need":    need,
	})
}

// ListCommunityNeeds returns the staff needs board, optionally filtered by
// status.
func ListCommunityNeeds(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var needs []models.CommunityNeed
	if err := query.Preload("Assignee").
		Order("create_at DESC").
		Find(&needs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load community needs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"needs": needs,
		"total": len(needs),
	})
}

// UpdateCommunityNeedStatus sets a need's status directly. The board is
// permissive; any known status is accepted.
func UpdateCommunityNeedStatus(c *gin.Context) {
	ensureServices()

	needID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid need ID"})
		return
	}

	var req struct {
		Status     string `json:"status" binding:"required"`
		AssignedTo *int   `json:"assigned_to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A target status is required"})
		return
	}

	need, err := moderationSvc.SetCommunityNeedStatus(needID, req.Status, req.AssignedTo)
	if err != nil {
		respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Community need updated",
		"need":    need,
	})
}
