package handlers

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/foxworks/reface/internal/domains/agent"
	"github.com/foxworks/reface/pkg/Logger"
	"github.com/foxworks/reface/pkg/io/playback"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxAudioBytes caps one utterance upload at 5MB.
const maxAudioBytes = 5 << 20

type VoiceHandler struct {
	registry *agent.Registry
	logger   *Logger.Logger
}

func NewVoiceHandler(registry *agent.Registry, logger *Logger.Logger) *VoiceHandler {
	return &VoiceHandler{
		registry: registry,
		logger:   logger,
	}
}

// ProcessTurn runs one full voice-agent exchange
// @Summary Process one voice turn
// @Description Transcribes the uploaded utterance, generates Felix's reply and synthesizes it
// @Tags Voice
// @Accept mpfd
// @Produce json
// @Param audio formData file true "Utterance audio"
// @Param sessionId formData string false "Session id; omitted creates a new session"
// @Success 200 {object} VoiceTurnResponse "Turn artifacts"
// @Failure 400 {object} ErrorResponse "Invalid request data"
// @Failure 500 {object} ErrorResponse "Provider failure"
// @Router /voice/turn [post]
func (h *VoiceHandler) ProcessTurn(c *gin.Context) {
	sessionID := c.PostForm("sessionId")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "audio file is required"})
		return
	}
	if fileHeader.Size > maxAudioBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "audio too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "couldn't read audio file"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "couldn't read audio file"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	manager := h.registry.GetOrCreate(sessionID)
	result, err := manager.ProcessTurn(c, audio, mimeType)
	if err != nil {
		h.logger.Errorf("voice turn error for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "couldn't process your message, try again!"})
		return
	}

	c.Header("X-Session-Id", sessionID)
	c.JSON(http.StatusOK, VoiceTurnResponse{
		Transcript: result.Transcript,
		Response:   result.Response,
		Audio:      base64.StdEncoding.EncodeToString(result.Audio),
		Amplitudes: playback.Envelope(result.Audio),
	})
}

// Greeting synthesizes the fixed session opener
// @Summary Synthesize the greeting line
// @Tags Voice
// @Produce json
// @Param sessionId formData string false "Session id"
// @Success 200 {object} VoiceAudioResponse
// @Failure 500 {object} ErrorResponse
// @Router /voice/greeting [post]
func (h *VoiceHandler) Greeting(c *gin.Context) {
	sessionID := c.PostForm("sessionId")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	manager := h.registry.GetOrCreate(sessionID)
	audio, err := manager.Greeting(c)
	if err != nil {
		h.logger.Errorf("greeting error for session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "couldn't synthesize greeting"})
		return
	}

	c.Header("X-Session-Id", sessionID)
	c.JSON(http.StatusOK, VoiceAudioResponse{
		Audio:      base64.StdEncoding.EncodeToString(audio),
		Amplitudes: playback.Envelope(audio),
	})
}

// EndSession removes a voice session
// @Summary End a voice session
// @Tags Voice
// @Produce json
// @Param sessionId formData string true "Session id"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /voice/end [post]
func (h *VoiceHandler) EndSession(c *gin.Context) {
	sessionID := c.PostForm("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "sessionId is required"})
		return
	}

	h.registry.Remove(sessionID)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Session ended"})
}

// RegisterVoiceRoutes registers voice-agent routes
func (h *VoiceHandler) RegisterVoiceRoutes(r *gin.RouterGroup) {
	voice := r.Group("/voice")
	{
		voice.POST("/turn", h.ProcessTurn)
		voice.POST("/greeting", h.Greeting)
		voice.POST("/end", h.EndSession)
	}
}
