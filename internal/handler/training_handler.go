package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/models"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/storage"
)

// /api/training 요청 바디
type TrainingRequest struct {
	Content string `json:"content" example:"Q: ... A: ..."`
	Tags    string `json:"tags,omitempty" example:"faq,billing"`
}

// 학습 데이터 목록 응답 (Wrapper)
type TrainingListResponse struct {
	Records []models.TrainingRecord `json:"records"`
}

type TrainingHandler struct{}

func NewTrainingHandler() *TrainingHandler {
	return &TrainingHandler{}
}

// HandleCreateTraining godoc
// @Summary      학습 데이터 제출 (오너 전용)
// @Description  설정된 오너 계정만 학습 데이터를 제출할 수 있습니다. 라이브 응답에는 반영되지 않습니다.
// @Tags         Training (Owner)
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body handler.TrainingRequest true "학습 데이터"
// @Success      200 {object} object{message=string, id=int}
// @Failure      400 {object} handler.ErrorResponse "빈 내용"
// @Failure      403 {object} handler.ErrorResponse "오너 계정 아님"
// @Router       /api/training [post]
func (h *TrainingHandler) HandleCreateTraining(c *gin.Context) {
	var req TrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content cannot be empty"})
		return
	}

	owner := c.GetString("email")
	id, err := storage.CreateTrainingRecord(owner, req.Content, req.Tags)
	if err != nil {
		log.Printf("HandleCreateTraining(): failed to store record for %s: %v", owner, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store training record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Training record stored", "id": id})
}

// HandleListTraining godoc
// @Summary      학습 데이터 목록 조회 (오너 전용)
// @Description  저장된 학습 데이터를 최신순으로 반환합니다.
// @Tags         Training (Owner)
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} handler.TrainingListResponse
// @Failure      403 {object} handler.ErrorResponse "오너 계정 아님"
// @Failure      500 {object} handler.ErrorResponse "DB 조회 실패"
// @Router       /api/training [get]
func (h *TrainingHandler) HandleListTraining(c *gin.Context) {
	records, err := storage.GetTrainingRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
		return
	}
	c.JSON(http.StatusOK, TrainingListResponse{Records: records})
}
