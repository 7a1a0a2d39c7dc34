// Package output persists generated analysis results.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kaikyMoura/sentinel-cli/internal/domain"
	"github.com/kaikyMoura/sentinel-cli/internal/utils"
)

// Writer handles writing analysis results to the filesystem
type Writer struct {
	frontmatter bool
	model       string
	now         func() time.Time
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	// Frontmatter enables a YAML metadata header on Markdown outputs
	Frontmatter bool
	// Model is recorded in the frontmatter
	Model string
	// Now overrides the clock; nil uses time.Now
	Now func() time.Time
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Writer{
		frontmatter: opts.Frontmatter,
		model:       opts.Model,
		now:         now,
	}
}

// frontmatterDoc is the YAML metadata header for Markdown outputs
type frontmatterDoc struct {
	Task        string `yaml:"task"`
	Model       string `yaml:"model,omitempty"`
	GeneratedAt string `yaml:"generated_at"`
}

// Write saves the output for a task to path and returns the path
// actually written. Patch outputs always land in a .diff file so they
// can be applied directly; the path is adjusted when needed.
func (w *Writer) Write(path string, task domain.Task, content string) (string, error) {
	path = utils.ExpandPath(path)
	path = w.adjustExtension(path, task)

	if err := utils.EnsureDir(path); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	body := content
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}

	if w.frontmatter && filepath.Ext(path) == ".md" {
		header, err := w.renderFrontmatter(task)
		if err != nil {
			return "", err
		}
		body = header + body
	}

	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return path, nil
}

// adjustExtension forces the .diff suffix for patch outputs
func (w *Writer) adjustExtension(path string, task domain.Task) string {
	if task != domain.TaskApplyImprovements {
		return path
	}
	if filepath.Ext(path) == ".diff" {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".diff"
}

func (w *Writer) renderFrontmatter(task domain.Task) (string, error) {
	doc := frontmatterDoc{
		Task:        task.String(),
		Model:       w.model,
		GeneratedAt: w.now().UTC().Format(time.RFC3339),
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return "", fmt.Errorf("render frontmatter: %w", err)
	}
	return "---\n" + string(data) + "---\n\n", nil
}
