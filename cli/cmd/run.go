package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/strand/lang"
	"github.com/ardnew/strand/log"
	"github.com/ardnew/strand/session"
)

// Run interprets script files in a single session.
type Run struct {
	Scripts []string `arg:"" help:"Script file(s) run in order; variables carry across files." name:"script"`

	Assert []string `help:"Boolean expression over the variables checked after the run (repeatable)." placeholder:"EXPR" short:"a"`
	Strict bool     `help:"Fail if any line reports an error."`
	Watch  bool     `help:"Run again with fresh variables whenever a script changes." short:"w"`

	out io.Writer
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := r.once(ctx)
	if !r.Watch {
		return err
	}

	if err != nil {
		log.ErrorContext(ctx, "run failed", slog.Any("error", err))
	}

	return r.watch(ctx, s)
}

// once runs every script in a new session and checks the assertions.
func (r *Run) once(ctx context.Context) (*session.Session, error) {
	s := newSession(ctx, session.WithConsole(writer(r.out)))

	var res lang.Result

	for _, script := range r.Scripts {
		fr, err := s.File(ctx, script)
		if err != nil {
			return s, err
		}

		res = res.Merge(fr)
		if res.Exited() {
			break
		}
	}

	log.DebugContext(ctx, "run complete",
		slog.Int("scripts", len(r.Scripts)),
		slog.Int("variables", s.Store().Len()),
		slog.Bool("ok", res.OK()),
	)

	for _, expr := range r.Assert {
		ok, err := s.Assert(expr)
		if err != nil {
			return s, err
		}

		if !ok {
			return s, ErrAssertFailed.With(slog.String("expr", expr))
		}
	}

	if r.Strict && !res.OK() {
		return s, ErrScriptFailed.Wrap(res.Err())
	}

	return s, nil
}

// watch runs the scripts again whenever one of them is written, until ctx
// is done. Directories are watched rather than files so that editors
// replacing a file on save are noticed. Events that leave a script's
// content unchanged since the last run it triggered are ignored.
func (r *Run) watch(ctx context.Context, s *session.Session) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer w.Close()

	// Content digest of each script as of the last re-run, zero until then.
	targets := make(map[string]uint64, len(r.Scripts))

	for _, script := range r.Scripts {
		path, err := s.Resolve(script)
		if err != nil {
			return ErrWatch.Wrap(err)
		}

		if path, err = filepath.Abs(path); err != nil {
			return ErrWatch.Wrap(err)
		}

		targets[path] = 0

		if err := w.Add(filepath.Dir(path)); err != nil {
			return ErrWatch.Wrap(err).With(slog.String("dir", filepath.Dir(path)))
		}
	}

	log.InfoContext(ctx, "watching scripts", slog.Int("count", len(targets)))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			name := filepath.Clean(event.Name)

			last, ok := targets[name]
			if !ok {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			data, err := os.ReadFile(name)
			if err != nil {
				log.WarnContext(ctx, "watch", slog.Any("error", ErrWatch.Wrap(err)))

				continue
			}

			sum := xxh3.Hash(data)
			if sum == last {
				continue
			}

			targets[name] = sum

			log.InfoContext(ctx, "script changed", slog.String("file", event.Name))

			if _, err := r.once(ctx); err != nil {
				log.ErrorContext(ctx, "run failed", slog.Any("error", err))
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "watch", slog.Any("error", ErrWatch.Wrap(err)))
		}
	}
}
