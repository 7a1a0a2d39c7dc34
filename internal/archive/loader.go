package archive

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/kaikyMoura/sentinel-cli/internal/domain"
	"github.com/kaikyMoura/sentinel-cli/internal/utils"
)

// Loader extracts an uploaded archive into an isolated scratch
// directory and collects the text files eligible for analysis. The
// scratch directory is reclaimed on every exit path.
type Loader struct {
	allowExts  map[string]bool
	ignoreDirs map[string]bool
	logger     *utils.Logger
	progress   bool
}

// LoaderOptions contains options for creating a Loader
type LoaderOptions struct {
	// AllowExtensions is the extension allow-list; files with any other
	// extension are excluded
	AllowExtensions []string
	// IgnoreDirs is the directory deny-list; matching directories are
	// pruned from the walk entirely
	IgnoreDirs []string
	Logger     *utils.Logger
	// Progress enables a per-file progress bar while reading
	Progress bool
}

// NewLoader creates a new Loader
func NewLoader(opts LoaderOptions) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}

	allow := make(map[string]bool, len(opts.AllowExtensions))
	for _, ext := range opts.AllowExtensions {
		allow[strings.ToLower(ext)] = true
	}
	ignore := make(map[string]bool, len(opts.IgnoreDirs))
	for _, dir := range opts.IgnoreDirs {
		ignore[dir] = true
	}

	return &Loader{
		allowExts:  allow,
		ignoreDirs: ignore,
		logger:     logger.WithComponent("archive"),
		progress:   opts.Progress,
	}
}

var _ domain.ArchiveSource = (*Loader)(nil)

// Load validates the archive, extracts it to a fresh scratch directory,
// and walks the result applying the allow/deny rules
func (l *Loader) Load(archivePath string) (*domain.ContextMap, error) {
	if _, err := os.Stat(archivePath); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrArchiveUnavailable, archivePath)
	}

	scratch, err := os.MkdirTemp("", "sentinel-extract-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	l.logger.Debug().Str("archive", archivePath).Str("scratch", scratch).Msg("Extracting archive")

	if err := l.extract(archivePath, scratch); err != nil {
		return nil, err
	}

	return l.collect(scratch)
}

func (l *Loader) extract(archivePath, destDir string) error {
	lower := strings.ToLower(archivePath)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return l.extractZip(archivePath, destDir)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return l.extractTarGz(archivePath, destDir)
	default:
		return fmt.Errorf("%w: unsupported archive format %s", domain.ErrArchiveUnavailable, filepath.Ext(archivePath))
	}
}

func (l *Loader) extractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: invalid or corrupted zip: %v", domain.ErrArchiveUnavailable, err)
	}
	defer reader.Close()

	var bar interface{ Add(int) error }
	if l.progress {
		bar = utils.NewProgressBar(len(reader.File), utils.DescExtracting)
	}

	for _, entry := range reader.File {
		if bar != nil {
			_ = bar.Add(1)
		}

		target, ok := l.safeTarget(destDir, entry.Name)
		if !ok {
			continue
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("mkdir failed: %w", err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("mkdir failed: %w", err)
		}

		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("open zip entry failed: %w", err)
		}
		if err := writeFile(target, rc, entry.Mode()); err != nil {
			rc.Close()
			return err
		}
		rc.Close()
	}
	return nil
}

func (l *Loader) extractTarGz(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrArchiveUnavailable, err)
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("%w: invalid or corrupted gzip: %v", domain.ErrArchiveUnavailable, err)
	}
	defer gzr.Close()

	// Entry count is unknown up front, so the bar runs in spinner mode
	var bar interface{ Add(int) error }
	if l.progress {
		bar = utils.NewProgressBar(-1, utils.DescExtracting)
	}

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: tar read failed: %v", domain.ErrArchiveUnavailable, err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}

		target, ok := l.safeTarget(destDir, header.Name)
		if !ok {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("mkdir failed: %w", err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("mkdir failed: %w", err)
			}
			if err := writeFile(target, tr, os.FileMode(header.Mode)); err != nil {
				return err
			}
		}
	}
	return nil
}

// safeTarget resolves an entry name under destDir, rejecting entries
// whose resolved path would escape the scratch root
func (l *Loader) safeTarget(destDir, name string) (string, bool) {
	target := filepath.Clean(filepath.Join(destDir, name))
	root := filepath.Clean(destDir)
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		l.logger.Warn().Str("entry", name).Msg("Skipping path-escaping archive entry")
		return "", false
	}
	return target, true
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	perm := mode.Perm()
	if perm == 0 {
		perm = 0644
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create file failed: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("copy failed: %w", err)
	}
	return f.Close()
}
