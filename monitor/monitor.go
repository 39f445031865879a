package monitor

import (
	"net/http"
	"time"

	"church-community-api/config"
	"church-community-api/models"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// RegisterMonitorPage exposes a small ops page with queue depths for the
// staff team.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>Server Monitor</title>
  <style>
    body { background: #0f0f0f; color: #e0e0e0; font-family: -apple-system, sans-serif; padding: 40px; }
    h1 { margin-bottom: 20px; }
    pre { background: #1a1a2e; padding: 20px; border-radius: 8px; }
  </style>
</head>
<body>
  <h1>Church Community API</h1>
  <pre id="stats">loading...</pre>
  <script>
    fetch('/monitor/stats')
      .then(r => r.json())
      .then(d => { document.getElementById('stats').textContent = JSON.stringify(d, null, 2); });
  </script>
</body>
</html>`))
	})

	router.GET("/monitor/stats", func(c *gin.Context) {
		var pendingTestimonies, newDecisions, openNeeds, published int64

		config.DB.Model(&models.Testimony{}).
			Where("status = ? AND delete_at IS NULL", models.TestimonyStatusPendingReview).
			Count(&pendingTestimonies)
		config.DB.Model(&models.Decision{}).
			Where("status = ? AND delete_at IS NULL", models.DecisionStatusNew).
			Count(&newDecisions)
		config.DB.Model(&models.CommunityNeed{}).
			Where("status <> ? AND delete_at IS NULL", models.NeedStatusResolved).
			Count(&openNeeds)
		config.DB.Model(&models.PublishedTestimony{}).Count(&published)

		c.JSON(http.StatusOK, gin.H{
			"uptime_seconds":        int(time.Since(startedAt).Seconds()),
			"pending_testimonies":   pendingTestimonies,
			"new_decisions":         newDecisions,
			"open_community_needs":  openNeeds,
			"published_testimonies": published,
		})
	})
}
