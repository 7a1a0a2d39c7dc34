package app

import (
	"strings"

	"github.com/kaikyMoura/sentinel-cli/internal/domain"
)

// findingMarkers are phrases a review without actionable findings tends
// to carry. The heuristic is deliberately conservative: absence of all
// markers means findings are assumed present.
var findingMarkers = []string{
	"no improvements",
	"no issues found",
	"no significant issues",
	"looks good",
	"lgtm",
}

// detectFindings reports whether a generated review appears to contain
// actionable findings. Only the improvements task participates; other
// tasks never gate an exit code.
func detectFindings(task domain.Task, output string) bool {
	if task != domain.TaskImprovements {
		return false
	}
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, marker := range findingMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}
