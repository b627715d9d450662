package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/middleware"
)

func newOwnerTestRouter(owner, sessionEmail string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/training",
		func(c *gin.Context) { c.Set("email", sessionEmail) },
		middleware.OwnerMiddleware(owner),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "ok"}) },
	)
	return router
}

func TestOwnerMiddlewareAllowsOwner(t *testing.T) {
	router := newOwnerTestRouter("owner@example.com", "owner@example.com")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/training", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestOwnerMiddlewareCaseInsensitive(t *testing.T) {
	router := newOwnerTestRouter("owner@example.com", "Owner@Example.Com")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/training", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestOwnerMiddlewareRejectsOthers(t *testing.T) {
	router := newOwnerTestRouter("owner@example.com", "user@example.com")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/training", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestOwnerMiddlewareRejectsEmptyIdentity(t *testing.T) {
	router := newOwnerTestRouter("owner@example.com", "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/training", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
