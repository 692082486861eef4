package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/foxworks/reface/pkg/ai/speech"
)

// Generator writes one markdown post per title, tracking its position in a
// progress file so an interrupted run resumes from the last unprocessed
// title. Titles whose output file already exists are skipped.
type Generator struct {
	completer speech.Completer
	outDir    string
	indexPath string
}

type progress struct {
	Index int `json:"index"`
}

func NewGenerator(completer speech.Completer, outDir string) *Generator {
	return &Generator{
		completer: completer,
		outDir:    outDir,
		indexPath: filepath.Join(outDir, ".progress.json"),
	}
}

// Run generates posts for titles starting at the saved index.
func (g *Generator) Run(ctx context.Context, titles []string) error {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	start := g.loadIndex()
	for i := start; i < len(titles); i++ {
		title := titles[i]
		outPath := filepath.Join(g.outDir, Slugify(title)+".md")

		if _, err := os.Stat(outPath); err == nil {
			if err := g.saveIndex(i + 1); err != nil {
				return err
			}
			continue
		}

		post, err := g.generate(ctx, title)
		if err != nil {
			return fmt.Errorf("failed to generate %q: %w", title, err)
		}
		if err := os.WriteFile(outPath, []byte(post), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		if err := g.saveIndex(i + 1); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generate(ctx context.Context, title string) (string, error) {
	history := []speech.Message{
		{Role: speech.SYSTEM, Content: "You write practical, friendly blog posts for a kitchen " +
			"cabinet refacing company. 600-900 words, markdown, H2 sections, no preamble."},
		{Role: speech.USER, Content: "Write a post titled: " + title},
	}
	body, err := g.completer.Complete(ctx, history)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("# %s\n\n%s\n", title, body), nil
}

func (g *Generator) loadIndex() int {
	data, err := os.ReadFile(g.indexPath)
	if err != nil {
		return 0
	}
	var p progress
	if err := json.Unmarshal(data, &p); err != nil || p.Index < 0 {
		return 0
	}
	return p.Index
}

func (g *Generator) saveIndex(i int) error {
	data, err := json.Marshal(progress{Index: i})
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.indexPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// Slugify converts a post title into a filesystem-safe file stem.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
