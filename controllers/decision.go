package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"church-community-api/config"
	"church-community-api/models"
	"church-community-api/utils"

	"github.com/gin-gonic/gin"
)

// CreateDecision handles a public faith decision submission. The response
// always carries next steps: personalized when enrichment succeeds within the
// request, the generic fallback otherwise. The enrichment write-back is
// detached and touches enrichment fields only.
func CreateDecision(c *gin.Context) {
	ensureServices()

	var input utils.DecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	input, validationErrs := utils.ValidateDecisionInput(input)
	if validationErrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrs})
		return
	}

	now := time.Now()
	decision := models.Decision{
		SubmitterName: input.Name,
		DecisionType:  input.DecisionType,
		Status:        models.DecisionStatusNew,
		CreateAt:      now,
		UpdateAt:      now,
	}
	if userID, exists := c.Get("userID"); exists {
		uid := userID.(int)
		decision.SubmitterID = &uid
	}
	if input.Phone != "" {
		decision.ContactPhone = &input.Phone
	}
	if input.Email != "" {
		decision.ContactEmail = &input.Email
	}
	if input.Message != "" {
		decision.Message = &input.Message
	}

	if err := config.DB.Create(&decision).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save decision"})
		return
	}

	// The submission is already durable; enrichment is best effort and falls
	// back to the generic next steps on any failure.
	enrichment := enrichmentSvc.EnrichDecisionWithFallback(c.Request.Context(), &decision)

	go func() {
		// Advisory fields; a failed write-back leaves the record intact.
		if err := enrichmentSvc.ApplyDecisionEnrichment(decision.DecisionID, enrichment); err != nil {
			log.Printf("Warning: decision %d enrichment write failed: %v", decision.DecisionID, err)
		}
	}()
	go notificationSvc.NotifyStaffNewSubmission(models.KindDecision, decision.SubmitterName, "A faith decision is waiting for pastoral follow-up.")

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Decision recorded",
		"decision":   decision,
		"greeting":   enrichment.Greeting,
		"next_steps": enrichment.NextSteps,
	})
}

// ListDecisions returns the pastoral follow-up queue, optionally filtered by
// status.
func ListDecisions(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var decisions []models.Decision
	if err := query.Preload("ContactLogs").
		Order("create_at DESC").
		Find(&decisions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load decisions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"decisions": decisions,
		"total":     len(decisions),
	})
}

// AddDecisionContactLog appends a pastoral contact note to a decision.
func AddDecisionContactLog(c *gin.Context) {
	ensureServices()

	decisionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid decision ID"})
		return
	}
	userID, _ := c.Get("userID")

	var req struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A contact note is required"})
		return
	}

	var actor models.User
	if err := config.DB.Where("user_id = ?", userID).First(&actor).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	// The route guard trusts token claims; the log entry checks the stored role.
	if !actor.IsStaff() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Staff role required"})
		return
	}

	decision, err := moderationSvc.AddContactLog(decisionID, &actor, utils.SanitizeInput(req.Note))
	if err != nil {
		respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Contact logged",
		"decision": decision,
	})
}

// UpdateDecisionStatus applies a staff status change to a decision.
func UpdateDecisionStatus(c *gin.Context) {
	ensureServices()

	decisionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid decision ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A target status is required"})
		return
	}

	decision, err := moderationSvc.SetDecisionStatus(decisionID, req.Status)
	if err != nil {
		respondModerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Decision status updated",
		"decision": decision,
	})
}
