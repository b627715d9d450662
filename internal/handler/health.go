package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleHealth godoc
// @Summary      헬스 체크
// @Tags         Ops
// @Produce      json
// @Success      200 {object} object{status=string}
// @Router       /health [get]
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
