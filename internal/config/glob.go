package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var ErrNoMatches = errors.New("pattern matched no files")

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// ExpandGlobs replaces every glob pattern in files with the files it matches
// under dir, sorted. Plain paths pass through untouched and order is kept.
func ExpandGlobs(dir string, files []string) ([]string, error) {
	var out []string
	fsys := os.DirFS(dir)

	for _, pat := range files {
		if !isPattern(pat) {
			out = append(out, pat)
			continue
		}

		var (
			matches []string
			err     error
		)
		if filepath.IsAbs(pat) {
			matches, err = doublestar.FilepathGlob(pat, doublestar.WithFilesOnly())
		} else {
			matches, err = doublestar.Glob(fsys, filepath.ToSlash(pat), doublestar.WithFilesOnly())
		}
		if err != nil {
			return nil, fmt.Errorf("while globbing %s: %w", pat, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatches, pat)
		}
		slices.Sort(matches)
		out = append(out, matches...)
	}

	return out, nil
}

// ExpandGlobs expands the source patterns of every artifact in place
func (p *Project) ExpandGlobs(dir string) error {
	for i := range p.Artifacts {
		files, err := ExpandGlobs(dir, p.Artifacts[i].Files)
		if err != nil {
			return fmt.Errorf("artifact %q: %w", p.Artifacts[i].Title, err)
		}
		p.Artifacts[i].Files = files
	}
	return nil
}
