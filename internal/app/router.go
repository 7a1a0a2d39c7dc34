// Package app coordinates a single analysis run: task/source
// compatibility, context resolution, corpus assembly, caching, and
// generation.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kaikyMoura/sentinel-cli/internal/archive"
	"github.com/kaikyMoura/sentinel-cli/internal/cache"
	"github.com/kaikyMoura/sentinel-cli/internal/config"
	"github.com/kaikyMoura/sentinel-cli/internal/corpus"
	"github.com/kaikyMoura/sentinel-cli/internal/domain"
	"github.com/kaikyMoura/sentinel-cli/internal/gitx"
	"github.com/kaikyMoura/sentinel-cli/internal/llm"
	"github.com/kaikyMoura/sentinel-cli/internal/utils"
)

// TextGenerator produces the analysis text for a task and corpus
type TextGenerator interface {
	Generate(ctx context.Context, task domain.Task, corpus string) (string, error)
	Provider() domain.LLMProvider
	Close() error
}

// Router routes an analysis request to the right context resolver,
// assembles the corpus, and hands it to the generation backend.
// Compatibility is checked before any extraction I/O runs.
type Router struct {
	config    *config.Config
	generator TextGenerator
	cache     domain.Cache
	assembler *corpus.Assembler
	logger    *utils.Logger

	// openRepo is swappable for tests
	openRepo func(dir string) (domain.GitSource, error)
	// loader is swappable for tests
	loader domain.ArchiveSource
}

// RouterOptions contains options for creating a Router
type RouterOptions struct {
	Config    *config.Config
	Generator TextGenerator
	Cache     domain.Cache
	Logger    *utils.Logger

	// OpenRepo overrides repository opening; nil uses the real object
	// store
	OpenRepo func(dir string) (domain.GitSource, error)
	// Loader overrides archive loading; nil uses the real extractor
	Loader domain.ArchiveSource
	// Progress enables progress reporting during archive reads
	Progress bool
}

// NewRouter creates a new Router
func NewRouter(opts RouterOptions) (*Router, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	logger = logger.WithComponent("router")

	openRepo := opts.OpenRepo
	if openRepo == nil {
		openRepo = func(dir string) (domain.GitSource, error) {
			return gitx.OpenResolver(dir, logger)
		}
	}

	loader := opts.Loader
	if loader == nil {
		loader = archive.NewLoader(archive.LoaderOptions{
			AllowExtensions: cfg.Context.AllowExtensions,
			IgnoreDirs:      cfg.Context.IgnoreDirs,
			Logger:          logger,
			Progress:        opts.Progress,
		})
	}

	return &Router{
		config:    cfg,
		generator: opts.Generator,
		cache:     opts.Cache,
		assembler: corpus.NewAssembler(cfg.Context.MaxChars),
		logger:    logger,
		openRepo:  openRepo,
		loader:    loader,
	}, nil
}

// Request describes one analysis run
type Request struct {
	Task domain.Task
	// ArchivePath selects the archive source when non-empty; otherwise
	// the repository containing RepoDir is used
	ArchivePath string
	// RepoDir is the directory to discover the repository from. Empty
	// means the current directory.
	RepoDir string
}

// Source returns the source kind the request resolves against
func (r Request) Source() domain.SourceKind {
	if r.ArchivePath != "" {
		return domain.SourceArchive
	}
	return domain.SourceGit
}

// Result is the outcome of a completed analysis run
type Result struct {
	Task   domain.Task
	Source domain.SourceKind
	// Output is the generated text
	Output string
	// Corpus is the assembled context handed to the model
	Corpus string
	// Truncated reports whether files were dropped to fit the corpus
	// size bound
	Truncated bool
	// FromCache reports whether the output was served without a model
	// call
	FromCache bool
	// HasFindings reports whether the output appears to contain
	// actionable findings (improvements task only)
	HasFindings bool
}

// Run executes the request end to end. It returns
// domain.ErrIncompatibleTask (wrapped) before touching any source when
// the task cannot run against the selected source, and
// domain.ErrEmptyContext when resolution yields nothing to analyze.
func (r *Router) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	source := req.Source()

	if !req.Task.Valid() {
		return nil, domain.NewUnknownTaskError(req.Task.String())
	}

	// Reject before any extraction I/O: no scratch directory, no
	// repository handle
	if source == domain.SourceArchive && req.Task.RequiresGit() {
		return nil, domain.NewIncompatibleTaskError(req.Task, source)
	}

	r.logger.Info().
		Str("task", req.Task.String()).
		Str("source", string(source)).
		Msg("Starting analysis")

	text, truncated, err := r.resolveCorpus(req, source)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyContext
	}

	if truncated {
		r.logger.Warn().
			Int("max_chars", r.config.Context.MaxChars).
			Msg("Context exceeds size bound; trailing files were dropped")
	}

	result := &Result{
		Task:      req.Task,
		Source:    source,
		Corpus:    text,
		Truncated: truncated,
	}

	output, fromCache, err := r.generate(ctx, req.Task, text)
	if err != nil {
		return nil, err
	}
	result.Output = output
	result.FromCache = fromCache
	result.HasFindings = detectFindings(req.Task, output)

	r.logger.Info().
		Dur("duration", time.Since(start)).
		Bool("from_cache", fromCache).
		Int("output_chars", len(output)).
		Msg("Analysis completed")

	return result, nil
}

// resolveCorpus extracts context for the request and assembles the
// corpus text
func (r *Router) resolveCorpus(req Request, source domain.SourceKind) (string, bool, error) {
	if source == domain.SourceArchive {
		files, err := r.loader.Load(req.ArchivePath)
		if err != nil {
			return "", false, err
		}
		text, truncated := r.assembler.Assemble(files)
		return text, truncated, nil
	}

	repo, err := r.openRepo(req.RepoDir)
	if err != nil {
		return "", false, err
	}

	if req.Task.UsesDiff() {
		diff, err := repo.StagedDiff()
		if err != nil {
			return "", false, err
		}
		return corpus.FromDiff(diff), false, nil
	}

	var files *domain.ContextMap
	switch req.Task {
	case domain.TaskDocumentation:
		// Documentation describes what the project contains, so it
		// reads the last committed state
		files, err = repo.TrackedContent()
	default:
		// Review tasks read what is about to be committed
		files, err = repo.StagedContent()
	}
	if err != nil {
		return "", false, err
	}

	text, truncated := r.assembler.Assemble(files)
	return text, truncated, nil
}

// generate returns the analysis text, consulting the response cache
// first when one is configured
func (r *Router) generate(ctx context.Context, task domain.Task, text string) (string, bool, error) {
	var key string
	if r.cache != nil {
		key = cache.ResponseKey(
			r.generator.Provider().Name(),
			r.config.LLM.Model,
			task.String(),
			text,
		)
		if cached, err := r.cache.Get(ctx, key); err == nil {
			r.logger.Debug().Str("key", key).Msg("Serving response from cache")
			return string(cached), true, nil
		}
	}

	output, err := r.generator.Generate(ctx, task, text)
	if err != nil {
		return "", false, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, []byte(output), r.config.Cache.TTL); err != nil {
			r.logger.Warn().Err(err).Msg("Failed to cache response")
		}
	}

	return output, false, nil
}

// Close releases generator and cache resources
func (r *Router) Close() error {
	var firstErr error
	if r.generator != nil {
		if err := r.generator.Close(); err != nil {
			firstErr = err
		}
	}
	if r.cache != nil {
		if err := r.cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ TextGenerator = (*llm.Generator)(nil)
