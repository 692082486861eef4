package visualizer

import (
	"fmt"
	"strings"

	"github.com/foxworks/reface/pkg/ai/reface"
)

// BuildInstruction renders the human-readable instruction stored against the
// image pair. It is record-keeping only; the refacing model receives its own
// internally constructed instruction.
func BuildInstruction(styleID, colorID, hardwareID, customerPrompt string) string {
	style := LookupStyle(styleID)
	color := LookupColor(colorID)
	hardware := LookupHardware(hardwareID)

	var b strings.Builder
	fmt.Fprintf(&b, "Reface cabinets with %s doors (%s) in %s (%s)",
		style.Label, style.Description, color.Label, color.Hex)
	if color.WoodGrain {
		b.WriteString(" with visible wood grain")
	}
	fmt.Fprintf(&b, ", hardware: %s.", hardware.Label)
	if customerPrompt != "" {
		fmt.Fprintf(&b, " Customer notes: %s", customerPrompt)
	}
	return b.String()
}

// BuildStyleParams maps catalog selections onto the structured parameter set
// the refacing model consumes.
func BuildStyleParams(styleID, colorID, hardwareID, customerPrompt string) reface.StyleParams {
	style := LookupStyle(styleID)
	color := LookupColor(colorID)
	hardware := LookupHardware(hardwareID)
	return reface.StyleParams{
		DoorStyle:       style.Label + ", " + style.Description,
		ColorName:       color.Label,
		ColorHex:        color.Hex,
		WoodGrain:       color.WoodGrain,
		HardwareStyle:   hardware.Style,
		HardwareFinish:  hardware.Finish,
		CustomerRequest: customerPrompt,
	}
}
