package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/foxworks/reface/internal/domains/lead"
	"github.com/foxworks/reface/internal/domains/visualizer"
	"github.com/foxworks/reface/pkg/Logger"
	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps kitchen photo uploads at 15MB.
const maxUploadBytes = 15 << 20

type VisualizerHandler struct {
	engine *visualizer.Engine
	logger *Logger.Logger
}

func NewVisualizerHandler(engine *visualizer.Engine, logger *Logger.Logger) *VisualizerHandler {
	return &VisualizerHandler{
		engine: engine,
		logger: logger,
	}
}

// VisualizeRequest is the multipart form for one visualizer run.
type VisualizeRequest struct {
	Style     string `form:"style" example:"shaker"`
	Color     string `form:"color" example:"flour"`
	Hardware  string `form:"hardware" example:"bar-brushed-nickel"`
	Prompt    string `form:"prompt" example:"keep the open shelving"`
	Email     string `form:"email" binding:"required,email" example:"dana@example.com"`
	Phone     string `form:"phone" binding:"required" example:"+15553334444"`
	Name      string `form:"name" binding:"required" example:"Dana Wright"`
	SessionID string `form:"sessionId"`
}

// Visualize runs the refacing pipeline on an uploaded kitchen photo
// @Summary Generate a refaced kitchen image
// @Description Normalizes the uploaded photo, generates the refaced version and records the lead/session/image pair
// @Tags Visualizer
// @Accept mpfd
// @Produce json
// @Param image formData file true "Kitchen photo (JPEG or PNG)"
// @Param email formData string true "Customer email"
// @Param phone formData string true "Customer phone"
// @Param name formData string true "Customer name"
// @Param style formData string false "Door style id"
// @Param color formData string false "Color id"
// @Param hardware formData string false "Hardware id"
// @Param prompt formData string false "Free-text customer request"
// @Param sessionId formData string false "Existing session id for batch uploads"
// @Success 200 {object} VisualizeResponse "Render result"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 500 {object} ErrorResponse "Pipeline failure"
// @Router /visualizer [post]
func (h *VisualizerHandler) Visualize(c *gin.Context) {
	var req VisualizeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image file is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "couldn't read image file"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "couldn't read image file"})
		return
	}

	result, err := h.engine.Run(c, visualizer.RunInput{
		Image:     imageData,
		Prompt:    req.Prompt,
		Style:     req.Style,
		Color:     req.Color,
		Hardware:  req.Hardware,
		Email:     req.Email,
		Phone:     req.Phone,
		Name:      req.Name,
		SessionID: req.SessionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, visualizer.ErrEmailRequired):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email is required"})
		case errors.Is(err, lead.ErrSessionNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session"})
		default:
			h.logger.Errorf("visualizer run error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "couldn't generate your design, try again!"})
		}
		return
	}

	c.JSON(http.StatusOK, VisualizeResponse{Result: *result})
}

// RegisterVisualizerRoutes registers visualizer routes
func (h *VisualizerHandler) RegisterVisualizerRoutes(r *gin.RouterGroup) {
	r.POST("/visualizer", h.Visualize)
}
