package cmd

import (
	"bufio"
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/strand/pkg"
	"github.com/ardnew/strand/session"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type sessionKey struct{}

// WithSessionOptions returns a new context.Context carrying the options
// applied to every [session.Session] a command creates.
func WithSessionOptions(
	ctx context.Context,
	opts ...session.Option,
) context.Context {
	return context.WithValue(ctx, sessionKey{}, opts)
}

// sessionOptions returns a copy of the options stored in ctx followed by
// the given options.
func sessionOptions(ctx context.Context, opts ...session.Option) []session.Option {
	base, _ := ctx.Value(sessionKey{}).([]session.Option)

	return append(append([]session.Option(nil), base...), opts...)
}

// newSession creates a session from the options stored in ctx followed by
// the given options.
func newSession(ctx context.Context, opts ...session.Option) *session.Session {
	return session.New(sessionOptions(ctx, opts...)...)
}

// cacheDir returns the cache directory named by the kong variables in ctx,
// or the default cache directory when ctx carries none.
func cacheDir(ctx context.Context) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok && dir != "" {
			return dir
		}
	}

	return pkg.CacheDir()
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// SourceFiles reads the named source files in order, followed by stdin if
// it was named. Each yields the sources one at a time instead, paired with
// the name they were given by, so that line numbers can restart per source.
type SourceFiles interface {
	io.ReadCloser
	HasStdin() bool
	Each() iter.Seq2[string, io.Reader]
}

type sourceFiles struct {
	files    []*os.File
	names    []string
	hasStdin bool
	reader   io.Reader
}

func (s *sourceFiles) HasStdin() bool { return s.hasStdin }

func (s *sourceFiles) Each() iter.Seq2[string, io.Reader] {
	return func(yield func(string, io.Reader) bool) {
		for i, f := range s.files {
			if !yield(s.names[i], f) {
				return
			}
		}

		if s.hasStdin {
			yield(stdinSource, os.Stdin)
		}
	}
}

func (s *sourceFiles) Read(p []byte) (int, error) { return s.reader.Read(p) }

// Close closes every opened file. Stdin is left open.
func (s *sourceFiles) Close() error {
	var first error

	for _, f := range s.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens the given source paths for reading as one stream.
//
// Readers are deduplicated by resolving symlinks and comparing device/inode
// pairs. Every "-" is replaced with a single stdin reader placed last. A path
// that cannot be opened is returned as an error.
func openSources(sources []string) (SourceFiles, error) {
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	var srcs sourceFiles

	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		file, err := openUniqueFile(src, seen)
		if err != nil {
			_ = srcs.Close()

			return nil, ErrReadSource.Wrap(err)
		}

		if file != nil {
			srcs.files = append(srcs.files, file)
			srcs.names = append(srcs.names, src)
		}
	}

	_, srcs.hasStdin = seen[stdinKey]

	// Each file is followed by a line break so that a file without a final
	// newline does not join its last line to the next file's first.
	readers := make([]io.Reader, 0, 2*len(srcs.files)+1)
	for _, f := range srcs.files {
		readers = append(readers, f, strings.NewReader("\n"))
	}

	if srcs.hasStdin {
		readers = append(readers, os.Stdin)
	}

	srcs.reader = io.MultiReader(readers...)

	return &srcs, nil
}

// openUniqueFile opens the file at path unless a file with the same identity
// was already seen, in which case it returns nil and no error.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, nil
		}

		seen[key] = struct{}{}
	}

	return os.Open(resolved)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// eachLine calls fn with the 1-based number and text of every line of r.
func eachLine(r io.Reader, fn func(number int, line string)) error {
	scan := bufio.NewScanner(r)

	for n := 1; scan.Scan(); n++ {
		fn(n, scan.Text())
	}

	return scan.Err()
}
