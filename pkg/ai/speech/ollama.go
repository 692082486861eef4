package speech

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/foxworks/reface/internal/config"
	"github.com/ollama/ollama/api"
	"github.com/presbrey/ollamafarm"
)

// OllamaCompleter is a self-hosted chat fallback for deployments that keep
// the agent's replies off third-party APIs. STT/TTS still run on provider
// services.
type OllamaCompleter struct {
	farm  *ollamafarm.Farm
	model string
}

func NewOllamaCompleter(cfg config.OllamaConfig) *OllamaCompleter {
	farm := ollamafarm.New()
	for _, raw := range cfg.URLs {
		if err := farm.RegisterURL(raw, nil); err != nil {
			log.Printf("ollama register %s: %v", raw, err)
		}
	}
	return &OllamaCompleter{farm: farm, model: cfg.Model}
}

// Complete implements Completer.
func (o *OllamaCompleter) Complete(ctx context.Context, history []Message) (string, error) {
	client := o.farm.First(&ollamafarm.Where{Offline: false})
	if client == nil {
		return "", fmt.Errorf("no ollama server online")
	}

	msgs := make([]api.Message, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, api.Message{Role: string(m.Role), Content: m.Content})
	}

	stream := false
	req := api.ChatRequest{
		Model:    o.model,
		Messages: msgs,
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": completionTemperature,
			"num_predict": completionMaxTokens,
		},
	}

	var reply strings.Builder
	err := client.Client().Chat(ctx, &req, func(resp api.ChatResponse) error {
		reply.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	return reply.String(), nil
}
