package visualizer

import (
	"context"
)

// DoorParams is the geometry the door-profile renderer works from. Values
// are inches on a standard 15x30 door face.
type DoorParams struct {
	StyleID      string  `json:"styleId"`
	RailWidth    float64 `json:"railWidth"`
	StileWidth   float64 `json:"stileWidth"`
	PanelInset   float64 `json:"panelInset"`
	PanelRaised  bool    `json:"panelRaised"`
	EdgeProfile  string  `json:"edgeProfile"`
	Confidence   float64 `json:"confidence"`
}

// ParamExtractor is an optional model-backed source of richer door geometry.
type ParamExtractor interface {
	Extract(ctx context.Context, styleID string) (DoorParams, error)
}

// defaultDoorParams is the deterministic fallback table. Every supported
// style id has an entry with Confidence 1.0 so the system degrades cleanly
// when the extractor model is unavailable.
var defaultDoorParams = map[string]DoorParams{
	"shaker":       {StyleID: "shaker", RailWidth: 2.25, StileWidth: 2.25, PanelInset: 0.375, PanelRaised: false, EdgeProfile: "square", Confidence: 1.0},
	"slab":         {StyleID: "slab", RailWidth: 0, StileWidth: 0, PanelInset: 0, PanelRaised: false, EdgeProfile: "eased", Confidence: 1.0},
	"raised-panel": {StyleID: "raised-panel", RailWidth: 2.5, StileWidth: 2.5, PanelInset: 0.25, PanelRaised: true, EdgeProfile: "ogee", Confidence: 1.0},
	"beadboard":    {StyleID: "beadboard", RailWidth: 2.25, StileWidth: 2.25, PanelInset: 0.375, PanelRaised: false, EdgeProfile: "square", Confidence: 1.0},
	"inset":        {StyleID: "inset", RailWidth: 2.0, StileWidth: 2.0, PanelInset: 0.375, PanelRaised: false, EdgeProfile: "square", Confidence: 1.0},
}

// ResolveDoorParams consults the extractor when present and falls back to
// the static table on any failure. Unknown style ids resolve to the shaker
// baseline.
func ResolveDoorParams(ctx context.Context, extractor ParamExtractor, styleID string) DoorParams {
	if extractor != nil {
		if params, err := extractor.Extract(ctx, styleID); err == nil && params.Confidence > 0 {
			return params
		}
	}
	return FallbackDoorParams(styleID)
}

// FallbackDoorParams returns the deterministic table entry for a style id.
func FallbackDoorParams(styleID string) DoorParams {
	if params, ok := defaultDoorParams[styleID]; ok {
		return params
	}
	return defaultDoorParams[DefaultStyleID]
}
