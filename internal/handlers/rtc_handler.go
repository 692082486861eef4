package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/foxworks/reface/pkg/Logger"
	"github.com/foxworks/reface/pkg/rtc"
	"github.com/gin-gonic/gin"
)

type RTCHandler struct {
	issuer *rtc.TokenIssuer
	logger *Logger.Logger
}

func NewRTCHandler(issuer *rtc.TokenIssuer, logger *Logger.Logger) *RTCHandler {
	return &RTCHandler{
		issuer: issuer,
		logger: logger,
	}
}

// RTCTokenRequest asks for a transport access token.
type RTCTokenRequest struct {
	Identity string `json:"identity" binding:"required" example:"visitor-285"`
	Room     string `json:"room" binding:"required" example:"fox-den"`
	TTLMins  int    `json:"ttlMins" example:"10"`
}

// IssueToken signs a real-time transport access token
// @Summary Issue an RTC access token
// @Tags RTC
// @Accept json
// @Produce json
// @Param request body RTCTokenRequest true "Identity and room"
// @Success 200 {object} RTCTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /rtc/token [post]
func (h *RTCHandler) IssueToken(c *gin.Context) {
	var req RTCTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	token, url, err := h.issuer.Issue(req.Identity, req.Room, time.Duration(req.TTLMins)*time.Minute)
	if err != nil {
		if errors.Is(err, rtc.ErrMissingCredentials) {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "RTC not configured"})
			return
		}
		h.logger.Errorf("rtc token error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, RTCTokenResponse{Token: token, URL: url})
}

// RegisterRTCRoutes registers RTC routes
func (h *RTCHandler) RegisterRTCRoutes(r *gin.RouterGroup) {
	r.POST("/rtc/token", h.IssueToken)
}
