package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/strand/pkg"
)

// PathVar returns the environment variable listing extra script directories.
func PathVar() string { return pkg.EnvVar("path") }

// SearchPath returns the directories searched for scripts: the given dirs
// followed by the entries of [PathVar], skipping any that are not
// existing directories.
func SearchPath(dir ...string) []string {
	list := mung.Make(
		mung.WithSubjectItems(PathVar()),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dir...),
		mung.WithFilter(isDir),
	).String()

	var dirs []string

	for d := range strings.SplitSeq(list, string(os.PathListSeparator)) {
		if d != "" && isDir(d) {
			dirs = append(dirs, d)
		}
	}

	return dirs
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// Resolve returns the path of the script name. Absolute names and names
// found relative to the working directory are used as given; otherwise each
// search directory is tried in order.
func (s *Session) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) || exists(name) {
		return name, nil
	}

	for _, dir := range s.search {
		if p := filepath.Join(dir, name); exists(p) {
			return p, nil
		}
	}

	return "", ErrNotFound.Wrap(os.ErrNotExist)
}

func exists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
