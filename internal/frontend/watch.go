package frontend

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-parses source files when they change on disk. Parent
// directories are watched rather than the files themselves, so files that
// editors replace by rename are still seen.
type Watcher struct {
	d       *Driver
	w       *fsnotify.Watcher
	files   map[string]bool
	results chan Result
	errs    chan error
}

// Watch starts watching paths. Call Run to process events and Close to
// release the underlying watcher.
func (d *Driver) Watch(paths []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		d:       d,
		w:       fw,
		files:   make(map[string]bool),
		results: make(chan Result, 16),
		errs:    make(chan error, 1),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}

	return w, nil
}

// Results delivers a fresh Result each time a watched file is written or
// recreated.
func (w *Watcher) Results() <-chan Result { return w.results }

// Errors delivers watcher and read errors. Errors are dropped when nobody
// is receiving.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Run processes file system events until ctx is done or the watcher is
// closed. It closes the Results channel on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.results)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path, err := filepath.Abs(ev.Name)
			if err != nil || !w.files[path] {
				continue
			}

			w.d.log.Info().Str("path", path).Str("op", ev.Op.String()).Msg("source changed")

			res, err := w.d.ParseFile(path)
			if err != nil {
				w.report(err)
				continue
			}

			select {
			case w.results <- res:
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		}
	}
}

func (w *Watcher) report(err error) {
	w.d.log.Warn().Err(err).Msg("watch error")
	select {
	case w.errs <- err:
	default:
	}
}

// Close stops the underlying file system watcher.
func (w *Watcher) Close() error {
	return w.w.Close()
}
