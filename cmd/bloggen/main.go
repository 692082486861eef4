package main

import (
	"context"
	"flag"
	"log"

	"github.com/foxworks/reface/internal/config"
	"github.com/foxworks/reface/pkg/ai/speech"
	"github.com/foxworks/reface/pkg/blog"
)

// Standalone post generator. Safe to re-run: progress is tracked in the
// output directory and titles with existing files are skipped.

var postTitles = []string{
	"Cabinet Refacing vs. Full Replacement: What Actually Changes",
	"How Long Does Cabinet Refacing Take?",
	"Shaker, Slab or Raised Panel: Picking a Door Style",
	"The Case for Painted Cabinet Doors",
	"What Refacing Costs (and What Drives the Price)",
	"Hardware 101: Pulls, Knobs and Finishes",
	"Can You Reface Laminate Cabinets?",
	"Living in Your Kitchen During a Reface",
	"Why Wood Grain Still Wins in Modern Kitchens",
	"Five Signs Your Cabinet Boxes Are Worth Keeping",
	"Matching Cabinet Color to Your Countertops",
	"What to Expect From an In-Home Estimate",
}

func main() {
	outDir := flag.String("out", "content/blog", "output directory for generated posts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	_, completer, _ := speech.NewOpenAIProvider(cfg.OpenAI)
	generator := blog.NewGenerator(completer, *outDir)

	if err := generator.Run(context.Background(), postTitles); err != nil {
		log.Fatalf("generation stopped: %v", err)
	}
	log.Printf("all %d titles processed", len(postTitles))
}
