package corpus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaikyMoura/sentinel-cli/internal/domain"
)

func contextMap(entries ...[2]string) *domain.ContextMap {
	m := domain.NewContextMap()
	for _, e := range entries {
		m.Set(e[0], e[1])
	}
	return m
}

func TestAssemble_Delimiters(t *testing.T) {
	a := NewAssembler(0)
	text, truncated := a.Assemble(contextMap([2]string{"main.go", "package main"}))

	require.False(t, truncated)
	assert.Contains(t, text, "--- Start of file: main.go ---")
	assert.Contains(t, text, "package main")
	assert.Contains(t, text, "--- End of file: main.go ---")
}

func TestAssemble_PreservesMapOrder(t *testing.T) {
	a := NewAssembler(0)
	text, _ := a.Assemble(contextMap(
		[2]string{"z.go", "zzz"},
		[2]string{"a.go", "aaa"},
	))

	first := strings.Index(text, "Start of file: z.go")
	second := strings.Index(text, "Start of file: a.go")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestAssemble_Deterministic(t *testing.T) {
	a := NewAssembler(0)
	m := contextMap(
		[2]string{"src/app.py", "print('hi')"},
		[2]string{"README.md", "# Project"},
	)

	first, _ := a.Assemble(m)
	second, _ := a.Assemble(m)
	assert.Equal(t, first, second, "identical input must produce byte-identical corpora")
}

func TestAssemble_TruncatesAtFileBoundary(t *testing.T) {
	a := NewAssembler(100)
	big := strings.Repeat("x", 200)
	text, truncated := a.Assemble(contextMap(
		[2]string{"first.go", "small"},
		[2]string{"second.go", big},
	))

	assert.True(t, truncated)
	assert.Contains(t, text, "first.go")
	assert.NotContains(t, text, "second.go", "a file never appears partially")
}

func TestAssemble_FirstFileAlwaysIncluded(t *testing.T) {
	a := NewAssembler(10)
	text, truncated := a.Assemble(contextMap(
		[2]string{"only.go", strings.Repeat("y", 500)},
	))

	assert.False(t, truncated)
	assert.Contains(t, text, "only.go")
}

func TestAssemble_Empty(t *testing.T) {
	a := NewAssembler(0)
	text, truncated := a.Assemble(domain.NewContextMap())
	assert.Equal(t, "", text)
	assert.False(t, truncated)
}

func TestFromDiff(t *testing.T) {
	diff := "diff --git a/main.go b/main.go\n+added line\n"
	assert.Equal(t, diff, FromDiff(diff))
}
