package archive

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kaikyMoura/sentinel-cli/internal/converter"
	"github.com/kaikyMoura/sentinel-cli/internal/domain"
	"github.com/kaikyMoura/sentinel-cli/internal/utils"
)

// collect walks the extracted tree, pruning deny-listed directories and
// keeping allow-listed extensions. WalkDir visits entries in lexical
// order, so the resulting map order is deterministic.
func (l *Loader) collect(root string) (*domain.ContextMap, error) {
	var candidates []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if l.ignoreDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if l.allowExts[ext] {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var bar interface{ Add(int) error }
	if l.progress && len(candidates) > 0 {
		bar = utils.NewProgressBar(len(candidates), utils.DescReading)
	}

	files := domain.NewContextMap()
	for _, path := range candidates {
		if bar != nil {
			_ = bar.Add(1)
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, err
		}
		rel = filepath.ToSlash(rel)

		raw, err := os.ReadFile(path)
		if err != nil {
			l.logger.Warn().Err(err).Str("path", rel).Msg("Skipping unreadable file")
			continue
		}

		text, err := converter.DecodeText(rel, raw)
		if err != nil {
			l.logger.Warn().Err(err).Str("path", rel).Msg("Skipping undecodable file")
			continue
		}
		files.Set(rel, text)
	}

	l.logger.Debug().Int("files", files.Len()).Msg("Archive walk completed")
	return files, nil
}
