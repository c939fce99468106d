package builder

import (
	"github.com/go-git/go-git/v6"
)

// gitRevision returns the abbreviated HEAD commit of the work tree holding
// dir, with the branch name when one is checked out
func gitRevision(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}

	ref, err := repo.Head()
	if err != nil {
		return "", false // no commits yet
	}

	rev := ref.Hash().String()
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if ref.Name().IsBranch() {
		rev += " (" + ref.Name().Short() + ")"
	}
	return rev, true
}
