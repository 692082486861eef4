package visualizer

// Static style/color/hardware catalog. Unknown identifiers fall back to the
// baseline shaker/flour/brushed-nickel selections instead of erroring, so a
// stale front-end can never break the pipeline.

const (
	DefaultStyleID    = "shaker"
	DefaultColorID    = "flour"
	DefaultHardwareID = "bar-brushed-nickel"
)

type DoorStyle struct {
	ID          string
	Label       string
	Description string
}

type DoorColor struct {
	ID        string
	Label     string
	Hex       string
	WoodGrain bool
}

type Hardware struct {
	ID     string
	Label  string
	Style  string
	Finish string
}

var doorStyles = map[string]DoorStyle{
	"shaker": {
		ID:    "shaker",
		Label: "Shaker",
		Description: "five-piece door with a flat recessed center panel and " +
			"square rails and stiles",
	},
	"slab": {
		ID:          "slab",
		Label:       "Slab",
		Description: "flat frameless single-panel door with crisp square edges",
	},
	"raised-panel": {
		ID:          "raised-panel",
		Label:       "Raised Panel",
		Description: "traditional door with a raised center panel and profiled edge detail",
	},
	"beadboard": {
		ID:          "beadboard",
		Label:       "Beadboard",
		Description: "cottage-style door with vertical beadboard grooves in the center panel",
	},
	"inset": {
		ID:          "inset",
		Label:       "Inset Shaker",
		Description: "shaker door set flush inside the face frame with a visible reveal",
	},
}

var doorColors = map[string]DoorColor{
	"flour":       {ID: "flour", Label: "Flour", Hex: "#F4F1EA", WoodGrain: false},
	"snow":        {ID: "snow", Label: "Snow", Hex: "#FAFAF7", WoodGrain: false},
	"dove-gray":   {ID: "dove-gray", Label: "Dove Gray", Hex: "#C9C9C4", WoodGrain: false},
	"storm":       {ID: "storm", Label: "Storm", Hex: "#5C6670", WoodGrain: false},
	"sage":        {ID: "sage", Label: "Sage", Hex: "#9CAF88", WoodGrain: false},
	"navy":        {ID: "navy", Label: "Navy", Hex: "#1F3A5F", WoodGrain: false},
	"espresso":    {ID: "espresso", Label: "Espresso", Hex: "#3B2F2F", WoodGrain: true},
	"natural-oak": {ID: "natural-oak", Label: "Natural Oak", Hex: "#C8A165", WoodGrain: true},
}

var hardwareOptions = map[string]Hardware{
	"bar-brushed-nickel":     {ID: "bar-brushed-nickel", Label: "Bar Pull, Brushed Nickel", Style: "bar pull", Finish: "brushed nickel"},
	"bar-matte-black":        {ID: "bar-matte-black", Label: "Bar Pull, Matte Black", Style: "bar pull", Finish: "matte black"},
	"knob-brushed-brass":     {ID: "knob-brushed-brass", Label: "Round Knob, Brushed Brass", Style: "round knob", Finish: "brushed brass"},
	"cup-oil-rubbed-bronze":  {ID: "cup-oil-rubbed-bronze", Label: "Cup Pull, Oil-Rubbed Bronze", Style: "cup pull", Finish: "oil-rubbed bronze"},
	"edge-stainless":         {ID: "edge-stainless", Label: "Edge Pull, Stainless", Style: "edge pull", Finish: "stainless steel"},
	"knob-polished-chrome":   {ID: "knob-polished-chrome", Label: "Round Knob, Polished Chrome", Style: "round knob", Finish: "polished chrome"},
}

// LookupStyle resolves a style id, falling back to shaker.
func LookupStyle(id string) DoorStyle {
	if s, ok := doorStyles[id]; ok {
		return s
	}
	return doorStyles[DefaultStyleID]
}

// LookupColor resolves a color id, falling back to flour.
func LookupColor(id string) DoorColor {
	if c, ok := doorColors[id]; ok {
		return c
	}
	return doorColors[DefaultColorID]
}

// LookupHardware resolves a hardware id, falling back to brushed-nickel bar pulls.
func LookupHardware(id string) Hardware {
	if h, ok := hardwareOptions[id]; ok {
		return h
	}
	return hardwareOptions[DefaultHardwareID]
}

// StyleIDs lists every supported style identifier.
func StyleIDs() []string {
	ids := make([]string, 0, len(doorStyles))
	for id := range doorStyles {
		ids = append(ids, id)
	}
	return ids
}
