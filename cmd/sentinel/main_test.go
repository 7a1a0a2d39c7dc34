package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaikyMoura/sentinel-cli/internal/app"
	"github.com/kaikyMoura/sentinel-cli/internal/config"
	"github.com/kaikyMoura/sentinel-cli/internal/domain"
	"github.com/kaikyMoura/sentinel-cli/internal/utils"
)

func testWriteCmd(t *testing.T) (*cobra.Command, *config.Config) {
	t.Helper()

	log = utils.NewLogger(utils.LoggerOptions{Level: "error", Format: "json"})

	cmd := &cobra.Command{Use: "analyze"}
	cmd.Flags().StringP("output", "o", "", "")

	cfg := config.Default()
	cfg.Output.File = filepath.Join(t.TempDir(), "out.md")
	return cmd, cfg
}

func TestWriteResult_CIFindingsReturnsError(t *testing.T) {
	cmd, cfg := testWriteCmd(t)

	result := &app.Result{
		Task:        domain.TaskImprovements,
		Output:      "Consider extracting the retry loop into a helper.",
		HasFindings: true,
	}

	// The CI contract surfaces as an error so deferred cleanup in the
	// caller still runs before the process exits
	err := writeResult(cmd, cfg, result, true)
	assert.ErrorIs(t, err, errFindings)
	assert.True(t, cmd.SilenceErrors)

	// The output file is still written before the error is raised
	assert.FileExists(t, cfg.Output.File)
}

func TestWriteResult_FindingsWithoutCI(t *testing.T) {
	cmd, cfg := testWriteCmd(t)

	result := &app.Result{
		Task:        domain.TaskImprovements,
		Output:      "Consider extracting the retry loop into a helper.",
		HasFindings: true,
	}

	require.NoError(t, writeResult(cmd, cfg, result, false))
}

func TestWriteResult_CICleanReview(t *testing.T) {
	cmd, cfg := testWriteCmd(t)

	result := &app.Result{
		Task:   domain.TaskImprovements,
		Output: "No issues found.",
	}

	require.NoError(t, writeResult(cmd, cfg, result, true))
}
