package reface

import (
	"context"
	"fmt"

	"github.com/foxworks/reface/internal/config"
	"github.com/foxworks/reface/pkg/Logger"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// StyleParams is the structured selection set handed to the image-editing
// model. It is built from the catalog, never from free text.
type StyleParams struct {
	DoorStyle       string
	ColorName       string
	ColorHex        string
	WoodGrain       bool
	HardwareStyle   string
	HardwareFinish  string
	CustomerRequest string
}

// Renderer turns a normalized kitchen photo into its refaced counterpart.
type Renderer interface {
	Reface(ctx context.Context, image []byte, params StyleParams) ([]byte, error)
}

// GeminiRenderer drives an image-editing Gemini model.
type GeminiRenderer struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *Logger.Logger
}

func NewGeminiRenderer(ctx context.Context, cfg config.GeminiConfig, logger *Logger.Logger) (*GeminiRenderer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-2.5-flash-image-preview"
	}
	model := client.GenerativeModel(modelName)
	// Low temperature keeps the room geometry stable between runs.
	model.Temperature = &[]float32{0.2}[0]

	return &GeminiRenderer{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Reface implements Renderer. The model receives the normalized photo plus
// an instruction constructed here; the record-keeping instruction shown to
// the customer is built separately by the visualizer domain.
func (g *GeminiRenderer) Reface(ctx context.Context, image []byte, params StyleParams) ([]byte, error) {
	prompt := g.buildInstruction(params)
	g.logger.Debugf("reface instruction: %s", prompt)

	resp, err := g.model.GenerateContent(ctx,
		genai.ImageData("jpeg", image),
		genai.Text(prompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refaced image: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates received")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
			return blob.Data, nil
		}
	}
	return nil, fmt.Errorf("model returned no image data")
}

func (g *GeminiRenderer) buildInstruction(p StyleParams) string {
	grain := "a smooth painted finish"
	if p.WoodGrain {
		grain = "visible wood grain"
	}
	instruction := fmt.Sprintf(
		"Edit this kitchen photo. Replace only the cabinet door and drawer fronts with %s style doors "+
			"painted %s (%s) with %s. Replace the hardware with %s pulls in a %s finish. "+
			"Keep the countertops, backsplash, walls, floor, appliances, lighting and camera angle exactly as they are.",
		p.DoorStyle, p.ColorName, p.ColorHex, grain, p.HardwareStyle, p.HardwareFinish,
	)
	if p.CustomerRequest != "" {
		instruction += " Additional customer request: " + p.CustomerRequest
	}
	return instruction
}

// Close releases the underlying client.
func (g *GeminiRenderer) Close() error {
	return g.client.Close()
}
