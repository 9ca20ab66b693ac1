package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"taskly-be/internal/service"
)

type QRCodeController struct {
	taskService service.TaskService
	frontendURL string
}

func NewQRCodeController(taskService service.TaskService, frontendURL string) *QRCodeController {
	return &QRCodeController{
		taskService: taskService,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// GenerateTaskQRCode handles GET /api/tasks/:id/qrcode - a PNG linking to the task in the frontend
func (qc *QRCodeController) GenerateTaskQRCode(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	task, err := qc.taskService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	// 256x256 pixels, medium error recovery
	pngData, err := qrcode.Encode(qc.frontendURL+"/tasks/"+task.ID, qrcode.Medium, 256)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=task-qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
