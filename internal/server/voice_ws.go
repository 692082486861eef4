package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/foxworks/reface/internal/domains/agent"
	"github.com/foxworks/reface/pkg/io/playback"
	"github.com/foxworks/reface/pkg/io/vad"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Message types for WebSocket communication
type MessageType string

const (
	MessageTypeState       MessageType = "state"
	MessageTypeSession     MessageType = "session"
	MessageTypeTurn        MessageType = "turn"
	MessageTypeError       MessageType = "error"
	MessageTypePlaybackEnd MessageType = "playback_end"
	MessageTypeEnd         MessageType = "end"
)

// WSMessage is the JSON control envelope; audio travels as binary frames.
type WSMessage struct {
	Type       MessageType `json:"type"`
	State      string      `json:"state,omitempty"`
	SessionID  string      `json:"sessionId,omitempty"`
	Transcript string      `json:"transcript,omitempty"`
	Response   string      `json:"response,omitempty"`
	Amplitudes []float64   `json:"amplitudes,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// recorderCapacity holds ~30s of 16kHz mono 16-bit speech.
const recorderCapacity = 1 << 20

// voiceConn is the per-connection state of one streaming voice caller.
type voiceConn struct {
	sessionID string
	conn      *websocket.Conn
	detector  *vad.Detector
	recorder  *vad.Recorder
	state     *agent.TurnState
	manager   *agent.Manager
	writeMu   sync.Mutex
}

// VoiceManager upgrades and drives streaming voice connections.
type VoiceManager struct {
	deps Dependencies
}

func NewVoiceManager(deps Dependencies) *VoiceManager {
	return &VoiceManager{deps: deps}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // dev-only
}

// HandleVoiceWebSocket runs the full voice loop: binary PCM frames in,
// state labels and synthesized audio out. Utterance boundaries are found by
// the server-side energy gate.
func (vm *VoiceManager) HandleVoiceWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		vm.deps.Logger.Errorf("voice ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := c.Query("sessionId")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	vc := &voiceConn{
		sessionID: sessionID,
		conn:      conn,
		detector:  vad.NewDetector(vad.DefaultConfig()),
		recorder:  vad.NewRecorder(recorderCapacity),
		manager:   vm.deps.VoiceRegistry.GetOrCreate(sessionID),
	}
	vc.state = agent.NewTurnState(func(state string) {
		vc.send(WSMessage{Type: MessageTypeState, State: state})
	})

	vm.deps.Logger.Infof("voice ws connected - session %s", sessionID)
	vc.send(WSMessage{Type: MessageTypeSession, SessionID: sessionID})
	vc.state.Fire(c, agent.EventWake)

	for {
		messageType, msgBytes, err := conn.ReadMessage()
		if err != nil {
			vm.deps.Logger.Infof("voice ws closed for session %s: %v", sessionID, err)
			break
		}

		switch messageType {
		case websocket.BinaryMessage:
			vm.handleAudioFrame(c, vc, msgBytes)
		case websocket.TextMessage:
			if vm.handleControlMessage(c, vc, msgBytes) {
				return
			}
		default:
			vm.deps.Logger.Warnf("unknown message type %d from session %s", messageType, sessionID)
		}
	}
}

// handleAudioFrame feeds one PCM frame through the energy gate and records
// between the speech boundaries it raises.
func (vm *VoiceManager) handleAudioFrame(ctx context.Context, vc *voiceConn, frame []byte) {
	if len(frame) == 0 {
		return
	}

	events := vc.detector.Process(vad.Frame{Data: frame, Timestamp: time.Now()})
	if vc.detector.Recording() {
		vc.recorder.Write(frame)
	}

	for _, ev := range events {
		switch ev.Type {
		case vad.SpeechStart:
			// speech over playback counts as a barge-in
			if vc.state.Current() == agent.StateTalking {
				vc.state.Fire(ctx, agent.EventWake)
			}
		case vad.SpeechEnd:
			utterance, ok := vc.recorder.Flush()
			if !ok {
				vm.deps.Logger.Debugf("discarding sub-minimum capture for session %s", vc.sessionID)
				continue
			}
			vm.processUtterance(ctx, vc, utterance)
		}
	}
}

// processUtterance runs the full turn and streams the reply back.
func (vm *VoiceManager) processUtterance(ctx context.Context, vc *voiceConn, pcm []byte) {
	vc.state.Fire(ctx, agent.EventSpeechEnd)

	result, err := vc.manager.ProcessTurn(ctx, pcmToWAV(pcm, 16000), "audio/wav")
	if err != nil {
		vm.deps.Logger.Errorf("voice turn failed for session %s: %v", vc.sessionID, err)
		vc.send(WSMessage{Type: MessageTypeError, Error: "couldn't process your message"})
		vc.state.Fire(ctx, agent.EventTurnFailed)
		return
	}

	vc.send(WSMessage{
		Type:       MessageTypeTurn,
		SessionID:  vc.sessionID,
		Transcript: result.Transcript,
		Response:   result.Response,
		Amplitudes: playback.Envelope(result.Audio),
	})
	vc.state.Fire(ctx, agent.EventReplyReady)
	vc.sendBinary(result.Audio)
}

// handleControlMessage applies a JSON control event; returns true when the
// connection should close.
func (vm *VoiceManager) handleControlMessage(ctx context.Context, vc *voiceConn, msgBytes []byte) bool {
	var msg WSMessage
	if err := json.Unmarshal(msgBytes, &msg); err != nil {
		vm.deps.Logger.Warnf("bad control message from session %s: %v", vc.sessionID, err)
		return false
	}

	switch msg.Type {
	case MessageTypePlaybackEnd:
		vc.state.Fire(ctx, agent.EventPlaybackEnd)
	case MessageTypeEnd:
		vc.state.Fire(ctx, agent.EventSleep)
		vm.deps.VoiceRegistry.Remove(vc.sessionID)
		return true
	default:
		vm.deps.Logger.Warnf("unhandled control message type %s from session %s", msg.Type, vc.sessionID)
	}
	return false
}

func (vc *voiceConn) send(msg WSMessage) {
	vc.writeMu.Lock()
	defer vc.writeMu.Unlock()
	_ = vc.conn.WriteJSON(msg)
}

func (vc *voiceConn) sendBinary(data []byte) {
	vc.writeMu.Lock()
	defer vc.writeMu.Unlock()
	_ = vc.conn.WriteMessage(websocket.BinaryMessage, data)
}
