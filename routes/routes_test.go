package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router)
	return router
}

func TestUploadImageRequiresAuthentication(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/image", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an unauthenticated upload, got %d", w.Code)
	}
}

func TestIntakeRoutesStayPublic(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/api/v1/testimonies", "/api/v1/decisions", "/api/v1/community-needs"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code == http.StatusUnauthorized {
			t.Errorf("POST %s must not require authentication", path)
		}
	}
}
