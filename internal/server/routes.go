package server

import (
	"github.com/foxworks/reface/internal/domains/agent"
	"github.com/foxworks/reface/internal/domains/lead"
	"github.com/foxworks/reface/internal/domains/visualizer"
	"github.com/foxworks/reface/internal/handlers"
	"github.com/foxworks/reface/pkg/Logger"
	"github.com/foxworks/reface/pkg/rtc"
	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Engine        *visualizer.Engine
	LeadService   lead.Service
	VoiceRegistry *agent.Registry
	RTCIssuer     *rtc.TokenIssuer
	Logger        *Logger.Logger
}

func NewServerDependencies(
	engine *visualizer.Engine,
	leadService lead.Service,
	voiceRegistry *agent.Registry,
	rtcIssuer *rtc.TokenIssuer,
	logger *Logger.Logger,
) Dependencies {
	return Dependencies{
		Engine:        engine,
		LeadService:   leadService,
		VoiceRegistry: voiceRegistry,
		RTCIssuer:     rtcIssuer,
		Logger:        logger,
	}
}

func InitializeRoutes(r *gin.Engine, dep Dependencies) {
	r.GET("/", func(ctx *gin.Context) { ctx.JSON(200, gin.H{"message": "Server healthy"}) })
	r.GET("/health", func(ctx *gin.Context) { ctx.JSON(200, gin.H{"status": "ok"}) })

	api := r.Group("/api/v1")
	{
		handlers.NewVisualizerHandler(dep.Engine, dep.Logger).RegisterVisualizerRoutes(api)
		handlers.NewLeadHandler(dep.LeadService, dep.Logger).RegisterLeadRoutes(api)
		handlers.NewVoiceHandler(dep.VoiceRegistry, dep.Logger).RegisterVoiceRoutes(api)
		handlers.NewRTCHandler(dep.RTCIssuer, dep.Logger).RegisterRTCRoutes(api)
	}

	// Streaming voice endpoint with server-side VAD
	vm := NewVoiceManager(dep)
	r.GET("/ws/voice", vm.HandleVoiceWebSocket)
}
