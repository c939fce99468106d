package builder

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Stale describes a script on disk that differs from what would be
// generated now
type Stale struct {
	File    string
	Missing bool
	// Diff holds the changed lines prefixed with '-' (on disk) or '+'
	// (generated), with unchanged lines prefixed with ' '
	Diff string
}

// Check compares scripts against the files on disk
func (b *Builder) Check(scripts []Script) ([]Stale, error) {
	var stale []Stale
	for _, s := range scripts {
		data, err := os.ReadFile(filepath.Join(b.basedir, s.File))
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, Stale{File: s.File, Missing: true})
			continue
		}
		if err != nil {
			return nil, err
		}
		if string(data) == s.Text {
			continue
		}
		stale = append(stale, Stale{File: s.File, Diff: lineDiff(string(data), s.Text)})
	}
	return stale, nil
}

// lineDiff diffs two texts line by line
func lineDiff(have, want string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(have, want)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
