package gitx

import (
	"bytes"
	"sort"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/utils/diff"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/kaikyMoura/sentinel-cli/internal/converter"
)

// fileVersion is one side of a staged change, loaded from the object store
type fileVersion struct {
	path    string
	hash    plumbing.Hash
	mode    filemode.FileMode
	content string
	binary  bool
}

// stagedChange pairs the HEAD version of a path with its index version.
// A nil from means the file was added; a nil to means it was deleted.
type stagedChange struct {
	path string
	from *fileVersion
	to   *fileVersion
}

// stagedChanges computes the set of paths whose index version differs
// from the HEAD tree version, sorted by path. Conflict entries are
// excluded, matching StagedContent.
func stagedChanges(store ObjectStore) ([]stagedChange, error) {
	headFiles, err := store.HeadFiles()
	if err != nil {
		return nil, err
	}
	head := make(map[string]TreeEntry, len(headFiles))
	for _, f := range headFiles {
		head[f.Path] = f
	}

	entries, err := store.IndexEntries()
	if err != nil {
		return nil, err
	}

	var changes []stagedChange
	staged := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.Stage != StageMerged {
			staged[entry.Path] = true
			continue
		}
		staged[entry.Path] = true

		prev, tracked := head[entry.Path]
		if tracked && prev.Hash == entry.Hash {
			continue
		}

		change := stagedChange{path: entry.Path}
		if tracked {
			from, err := loadVersion(store, entry.Path, prev.Hash, prev.Mode)
			if err != nil {
				return nil, err
			}
			change.from = from
		}
		to, err := loadVersion(store, entry.Path, entry.Hash, entry.Mode)
		if err != nil {
			return nil, err
		}
		change.to = to
		changes = append(changes, change)
	}

	// Paths in HEAD but absent from the index are staged deletions
	for _, f := range headFiles {
		if staged[f.Path] {
			continue
		}
		from, err := loadVersion(store, f.Path, f.Hash, f.Mode)
		if err != nil {
			return nil, err
		}
		changes = append(changes, stagedChange{path: f.Path, from: from})
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].path < changes[j].path })
	return changes, nil
}

func loadVersion(store ObjectStore, path string, hash plumbing.Hash, mode filemode.FileMode) (*fileVersion, error) {
	raw, err := store.ReadBlob(hash)
	if err != nil {
		return nil, err
	}
	return &fileVersion{
		path:    path,
		hash:    hash,
		mode:    mode,
		content: string(raw),
		binary:  converter.IsBinary(raw),
	}, nil
}

// encodeUnified renders changes with go-git's unified diff encoder, the
// same machinery the library uses for commit patches
func encodeUnified(changes []stagedChange) (string, error) {
	patches := make([]fdiff.FilePatch, 0, len(changes))
	for _, c := range changes {
		patches = append(patches, newFilePatch(c))
	}

	var buf bytes.Buffer
	encoder := fdiff.NewUnifiedEncoder(&buf, fdiff.DefaultContextLines)
	if err := encoder.Encode(&stagedPatch{filePatches: patches}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// stagedPatch implements fdiff.Patch
type stagedPatch struct {
	filePatches []fdiff.FilePatch
}

func (p *stagedPatch) FilePatches() []fdiff.FilePatch {
	return p.filePatches
}

func (p *stagedPatch) Message() string {
	return ""
}

// filePatch implements fdiff.FilePatch
type filePatch struct {
	from, to fdiff.File
	chunks   []fdiff.Chunk
	binary   bool
}

func newFilePatch(c stagedChange) *filePatch {
	fp := &filePatch{}

	var fromContent, toContent string
	if c.from != nil {
		fp.from = &diffFile{version: c.from}
		fromContent = c.from.content
		fp.binary = fp.binary || c.from.binary
	}
	if c.to != nil {
		fp.to = &diffFile{version: c.to}
		toContent = c.to.content
		fp.binary = fp.binary || c.to.binary
	}

	if fp.binary {
		return fp
	}

	for _, d := range diff.Do(fromContent, toContent) {
		var op fdiff.Operation
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = fdiff.Equal
		case diffmatchpatch.DiffDelete:
			op = fdiff.Delete
		case diffmatchpatch.DiffInsert:
			op = fdiff.Add
		}
		fp.chunks = append(fp.chunks, &diffChunk{content: d.Text, op: op})
	}
	return fp
}

func (fp *filePatch) IsBinary() bool {
	return fp.binary
}

func (fp *filePatch) Files() (from, to fdiff.File) {
	return fp.from, fp.to
}

func (fp *filePatch) Chunks() []fdiff.Chunk {
	return fp.chunks
}

// diffFile implements fdiff.File
type diffFile struct {
	version *fileVersion
}

func (f *diffFile) Hash() plumbing.Hash {
	return f.version.hash
}

func (f *diffFile) Mode() filemode.FileMode {
	return f.version.mode
}

func (f *diffFile) Path() string {
	return f.version.path
}

// diffChunk implements fdiff.Chunk
type diffChunk struct {
	content string
	op      fdiff.Operation
}

func (c *diffChunk) Content() string {
	return c.content
}

func (c *diffChunk) Type() fdiff.Operation {
	return c.op
}
