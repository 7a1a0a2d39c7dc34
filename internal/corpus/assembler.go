// Package corpus turns resolved context into the single text value
// handed to the generation backend. Assembly is pure and deterministic:
// identical input maps produce byte-identical corpora.
package corpus

import (
	"fmt"
	"strings"

	"github.com/kaikyMoura/sentinel-cli/internal/domain"
)

// Assembler concatenates a context map into one delimited text block
type Assembler struct {
	maxChars int
}

// NewAssembler creates an Assembler. maxChars bounds the corpus size;
// zero or negative means unbounded.
func NewAssembler(maxChars int) *Assembler {
	return &Assembler{maxChars: maxChars}
}

// Assemble produces the corpus for a context map, one delimited block
// per file in map order. When the size bound is hit the corpus is cut
// at a file boundary, never mid-file; the second return reports whether
// files were dropped.
func (a *Assembler) Assemble(files *domain.ContextMap) (string, bool) {
	var sb strings.Builder
	for i, file := range files.Files() {
		block := fileBlock(file)
		if a.maxChars > 0 && i > 0 && sb.Len()+len(block) > a.maxChars {
			return sb.String(), true
		}
		sb.WriteString(block)
	}
	return sb.String(), false
}

// FromDiff returns the corpus for a diff: the diff text unmodified
func FromDiff(diff string) string {
	return diff
}

func fileBlock(file domain.FileContent) string {
	return fmt.Sprintf("\n\n--- Start of file: %s ---\n%s\n--- End of file: %s ---\n",
		file.Path, file.Content, file.Path)
}
