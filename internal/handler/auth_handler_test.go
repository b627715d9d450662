package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/models"
)

func newProfileTestRouter(loadUser func(string) (models.User, error)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	authHandler := &AuthHandler{loadUser: loadUser}

	router := gin.New()
	router.GET("/api/profile",
		func(c *gin.Context) {
			c.Set("email", "user@example.com")
			c.Set("name", "Test User")
			c.Set("provider", "google")
		},
		authHandler.HandleProfile,
	)
	return router
}

func getProfile(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHandleProfileIncludesMemberSince(t *testing.T) {
	router := newProfileTestRouter(func(email string) (models.User, error) {
		if email != "user@example.com" {
			t.Fatalf("unexpected email lookup: %s", email)
		}
		return models.User{ID: 1, Email: email, CreatedAt: 1700000000}, nil
	})

	w := getProfile(router)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["email"] != "user@example.com" {
		t.Errorf("expected email in profile, got %v", resp["email"])
	}
	if since, ok := resp["member_since"].(float64); !ok || int64(since) != 1700000000 {
		t.Errorf("expected member_since 1700000000, got %v", resp["member_since"])
	}
}

// 가입 시점 조회가 실패해도 프로필 응답 자체는 내려가야 함
func TestHandleProfileSurvivesUserLookupFailure(t *testing.T) {
	router := newProfileTestRouter(func(string) (models.User, error) {
		return models.User{}, errors.New("database unreachable")
	})

	w := getProfile(router)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["provider"] != "google" {
		t.Errorf("expected provider in profile, got %v", resp["provider"])
	}
	if _, ok := resp["member_since"]; ok {
		t.Error("member_since should be omitted when the user row cannot be loaded")
	}
}
