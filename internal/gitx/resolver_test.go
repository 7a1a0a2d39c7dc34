package gitx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
}

func initRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) write(path, content string) {
	r.t.Helper()
	full := filepath.Join(r.dir, path)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0644))
}

func (r *testRepo) stage(path string) {
	r.t.Helper()
	_, err := r.wt.Add(path)
	require.NoError(r.t, err)
}

func (r *testRepo) commit(msg string) {
	r.t.Helper()
	_, err := r.wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "test",
			Email: "test@example.com",
			When:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(r.t, err)
}

func (r *testRepo) resolver() *Resolver {
	return NewResolver(NewStore(r.repo), nil)
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.Error(t, err)
}

func TestOpen_DetectsDotGitFromSubdirectory(t *testing.T) {
	r := initRepo(t)
	sub := filepath.Join(r.dir, "pkg", "deep")
	require.NoError(t, os.MkdirAll(sub, 0755))

	_, err := Open(sub)
	assert.NoError(t, err)
}

func TestResolver_StagedContent_ReadsStagedVersionNotWorktree(t *testing.T) {
	r := initRepo(t)
	r.write("hello.txt", "hello\n")
	r.stage("hello.txt")
	r.commit("initial")

	r.write("hello.txt", "hello world\n")
	r.stage("hello.txt")

	// Dirty the working tree after staging; the staged blob must win
	r.write("hello.txt", "dirty edit\n")

	files, err := r.resolver().StagedContent()
	require.NoError(t, err)

	content, ok := files.Get("hello.txt")
	require.True(t, ok)
	assert.Equal(t, "hello world\n", content)
}

func TestResolver_StagedContent_EmptyRepo(t *testing.T) {
	r := initRepo(t)

	files, err := r.resolver().StagedContent()
	require.NoError(t, err)
	assert.Equal(t, 0, files.Len())
}

func TestResolver_StagedContent_SkipsBinary(t *testing.T) {
	r := initRepo(t)
	r.write("code.go", "package main\n")
	require.NoError(t, os.WriteFile(filepath.Join(r.dir, "blob.bin"), []byte{0x00, 0x01, 0x02}, 0644))
	r.stage("code.go")
	r.stage("blob.bin")

	files, err := r.resolver().StagedContent()
	require.NoError(t, err)

	assert.Equal(t, 1, files.Len())
	assert.True(t, files.Has("code.go"))
}

func TestResolver_StagedContent_SkipsConflictEntries(t *testing.T) {
	r := initRepo(t)
	r.write("ok.txt", "fine\n")
	r.stage("ok.txt")

	// Fabricate an unresolved conflict side in the index
	obj := r.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	require.NoError(t, err)
	_, err = w.Write([]byte("their side\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	require.NoError(t, err)

	idx, err := r.repo.Storer.Index()
	require.NoError(t, err)
	idx.Entries = append(idx.Entries, &index.Entry{
		Name:  "conflict.txt",
		Hash:  hash,
		Mode:  filemode.Regular,
		Stage: index.TheirMode,
	})
	require.NoError(t, r.repo.Storer.SetIndex(idx))

	files, err := r.resolver().StagedContent()
	require.NoError(t, err)

	assert.True(t, files.Has("ok.txt"))
	assert.False(t, files.Has("conflict.txt"))
}

func TestResolver_TrackedContent(t *testing.T) {
	r := initRepo(t)
	r.write("a.txt", "alpha\n")
	r.write("sub/b.txt", "beta\n")
	r.stage("a.txt")
	r.stage("sub/b.txt")
	r.commit("initial")

	// Staged but uncommitted files are not tracked content
	r.write("c.txt", "gamma\n")
	r.stage("c.txt")

	files, err := r.resolver().TrackedContent()
	require.NoError(t, err)

	assert.Equal(t, 2, files.Len())
	content, _ := files.Get("sub/b.txt")
	assert.Equal(t, "beta\n", content)
	assert.False(t, files.Has("c.txt"))
}

func TestResolver_TrackedContent_EmptyRepo(t *testing.T) {
	r := initRepo(t)

	files, err := r.resolver().TrackedContent()
	require.NoError(t, err)
	assert.Equal(t, 0, files.Len())
}

func TestResolver_StagedDiff_Modification(t *testing.T) {
	r := initRepo(t)
	r.write("hello.txt", "hello\n")
	r.stage("hello.txt")
	r.commit("initial")

	r.write("hello.txt", "hello world\n")
	r.stage("hello.txt")

	diff, err := r.resolver().StagedDiff()
	require.NoError(t, err)

	assert.Contains(t, diff, "hello.txt")
	assert.Contains(t, diff, "-hello\n")
	assert.Contains(t, diff, "+hello world\n")
}

func TestResolver_StagedDiff_NothingStaged(t *testing.T) {
	r := initRepo(t)
	r.write("hello.txt", "hello\n")
	r.stage("hello.txt")
	r.commit("initial")

	// Worktree edits without staging do not count
	r.write("hello.txt", "unstaged\n")

	diff, err := r.resolver().StagedDiff()
	require.NoError(t, err)
	assert.Equal(t, "", diff)
}

func TestResolver_StagedDiff_AddedInEmptyRepo(t *testing.T) {
	r := initRepo(t)
	r.write("new.txt", "first content\n")
	r.stage("new.txt")

	diff, err := r.resolver().StagedDiff()
	require.NoError(t, err)

	assert.Contains(t, diff, "new.txt")
	assert.Contains(t, diff, "+first content\n")
}

func TestResolver_StagedDiff_Deletion(t *testing.T) {
	r := initRepo(t)
	r.write("gone.txt", "obsolete\n")
	r.stage("gone.txt")
	r.commit("initial")

	_, err := r.wt.Remove("gone.txt")
	require.NoError(t, err)

	diff, err := r.resolver().StagedDiff()
	require.NoError(t, err)

	assert.Contains(t, diff, "gone.txt")
	assert.Contains(t, diff, "-obsolete\n")
}

func TestResolver_StagedDiff_EmptyRepoNoIndex(t *testing.T) {
	r := initRepo(t)

	diff, err := r.resolver().StagedDiff()
	require.NoError(t, err)
	assert.Equal(t, "", diff)
}

func TestResolver_Deterministic(t *testing.T) {
	r := initRepo(t)
	r.write("a.go", "package a\n")
	r.write("b.go", "package b\n")
	r.stage("a.go")
	r.stage("b.go")
	r.commit("initial")

	r.write("a.go", "package a // changed\n")
	r.stage("a.go")

	res := r.resolver()

	first, err := res.StagedDiff()
	require.NoError(t, err)
	second, err := res.StagedDiff()
	require.NoError(t, err)
	assert.Equal(t, first, second, "repeated resolution must be byte-identical")

	c1, err := res.StagedContent()
	require.NoError(t, err)
	c2, err := res.StagedContent()
	require.NoError(t, err)
	assert.Equal(t, c1.Paths(), c2.Paths())
}
