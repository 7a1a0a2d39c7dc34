package gitx

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/kaikyMoura/sentinel-cli/internal/domain"
)

// IndexEntry is one entry of the staging area
type IndexEntry struct {
	Path string
	Hash plumbing.Hash
	Mode filemode.FileMode
	// Stage is zero for normally merged entries; a non-zero stage marks
	// an unresolved merge conflict side
	Stage int
}

// TreeEntry is one blob of the last commit's tree
type TreeEntry struct {
	Path string
	Hash plumbing.Hash
	Mode filemode.FileMode
}

// ObjectStore is the narrow read-only capability surface the resolver
// needs from a version-control backend: enumerate index entries,
// enumerate the head tree, read a blob by identifier. Keeping the
// resolver behind this interface lets tests substitute a fake store
// without touching a real repository.
type ObjectStore interface {
	// IndexEntries enumerates the current index in index order
	IndexEntries() ([]IndexEntry, error)
	// HeadFiles enumerates the blobs of the last commit's tree in
	// canonical tree order; empty (not an error) when no commit exists
	HeadFiles() ([]TreeEntry, error)
	// ReadBlob reads a blob's raw content from the object store
	ReadBlob(id plumbing.Hash) ([]byte, error)
}

// Store implements ObjectStore using go-git
type Store struct {
	repo *git.Repository
}

// Open opens the repository containing dir, searching parent
// directories for the .git directory the way the git CLI does
func Open(dir string) (*Store, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRepoUnavailable, err)
	}
	return &Store{repo: repo}, nil
}

// NewStore wraps an already opened repository
func NewStore(repo *git.Repository) *Store {
	return &Store{repo: repo}
}

// IndexEntries enumerates the staging area
func (s *Store) IndexEntries() ([]IndexEntry, error) {
	idx, err := s.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	entries := make([]IndexEntry, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		entries = append(entries, IndexEntry{
			Path:  e.Name,
			Hash:  e.Hash,
			Mode:  e.Mode,
			Stage: int(e.Stage),
		})
	}
	return entries, nil
}

// HeadFiles enumerates the blobs reachable from HEAD's tree. A
// repository without commits yields an empty slice, not an error.
func (s *Store) HeadFiles() ([]TreeEntry, error) {
	head, err := s.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	commit, err := s.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("read HEAD commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("read HEAD tree: %w", err)
	}

	var files []TreeEntry
	iter := tree.Files()
	defer iter.Close()
	err = iter.ForEach(func(f *object.File) error {
		// Submodule links are commit references, not file content
		if f.Mode == filemode.Submodule {
			return nil
		}
		files = append(files, TreeEntry{
			Path: f.Name,
			Hash: f.Blob.Hash,
			Mode: f.Mode,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk HEAD tree: %w", err)
	}
	return files, nil
}

// ReadBlob reads a blob's content directly from the object store
func (s *Store) ReadBlob(id plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(id)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", id, err)
	}

	r, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("open blob %s: %w", id, err)
	}
	defer r.Close()

	return io.ReadAll(r)
}

// StageMerged is the stage number of a normally merged index entry
const StageMerged = int(index.Merged)
