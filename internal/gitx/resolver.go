package gitx

import (
	"github.com/kaikyMoura/sentinel-cli/internal/converter"
	"github.com/kaikyMoura/sentinel-cli/internal/domain"
	"github.com/kaikyMoura/sentinel-cli/internal/utils"
)

// Resolver derives staged and tracked context from a repository's
// object store. It never reads through the working directory, so two
// resolutions of the same staged state are byte-identical regardless of
// later edits to the working tree.
type Resolver struct {
	store  ObjectStore
	logger *utils.Logger
}

// NewResolver creates a Resolver over the given object store
func NewResolver(store ObjectStore, logger *utils.Logger) *Resolver {
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	return &Resolver{
		store:  store,
		logger: logger.WithComponent("gitx"),
	}
}

// OpenResolver opens the repository containing dir and returns a
// Resolver over its object store
func OpenResolver(dir string, logger *utils.Logger) (*Resolver, error) {
	store, err := Open(dir)
	if err != nil {
		return nil, err
	}
	return NewResolver(store, logger), nil
}

var _ domain.GitSource = (*Resolver)(nil)

// StagedContent returns the staged-version content of every normally
// merged index entry, read from the corresponding blob. Conflict
// entries (non-zero stage) are skipped deliberately; undecodable
// entries are skipped with a warning.
func (r *Resolver) StagedContent() (*domain.ContextMap, error) {
	entries, err := r.store.IndexEntries()
	if err != nil {
		return nil, err
	}

	files := domain.NewContextMap()
	for _, entry := range entries {
		if entry.Stage != StageMerged {
			r.logger.Debug().
				Str("path", entry.Path).
				Int("stage", entry.Stage).
				Msg("Skipping unresolved conflict entry")
			continue
		}

		raw, err := r.store.ReadBlob(entry.Hash)
		if err != nil {
			return nil, err
		}

		text, err := converter.DecodeText(entry.Path, raw)
		if err != nil {
			r.logger.Warn().Err(err).Str("path", entry.Path).Msg("Skipping undecodable file")
			continue
		}
		files.Set(entry.Path, text)
	}
	return files, nil
}

// TrackedContent returns the content of every file recorded in the
// most recent commit, in canonical tree order. A repository without
// commits yields an empty map.
func (r *Resolver) TrackedContent() (*domain.ContextMap, error) {
	tracked, err := r.store.HeadFiles()
	if err != nil {
		return nil, err
	}

	files := domain.NewContextMap()
	for _, entry := range tracked {
		raw, err := r.store.ReadBlob(entry.Hash)
		if err != nil {
			return nil, err
		}

		text, err := converter.DecodeText(entry.Path, raw)
		if err != nil {
			r.logger.Warn().Err(err).Str("path", entry.Path).Msg("Skipping undecodable file")
			continue
		}
		files.Set(entry.Path, text)
	}
	return files, nil
}

// StagedDiff renders the changes between the index and the last commit
// as a unified diff. With no commits the index is diffed against the
// empty tree. An empty string means nothing is staged.
func (r *Resolver) StagedDiff() (string, error) {
	changes, err := stagedChanges(r.store)
	if err != nil {
		return "", err
	}
	if len(changes) == 0 {
		return "", nil
	}
	return encodeUnified(changes)
}
