// Package frontend loads source files and runs the parser over them. Files
// are independent units, so they are parsed concurrently, each by its own
// parser instance.
package frontend

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/semlang/semlang/internal/ast"
	"github.com/semlang/semlang/internal/config"
	"github.com/semlang/semlang/internal/diag"
	"github.com/semlang/semlang/internal/parser"
)

// Options configures a Driver.
type Options struct {
	Workers   int
	MaxErrors int
	Normalize bool
	Logger    zerolog.Logger
}

// OptionsFromConfig maps the tool configuration onto driver options.
func OptionsFromConfig(cfg *config.Config, logger zerolog.Logger) Options {
	return Options{
		Workers:   cfg.Workers,
		MaxErrors: cfg.MaxErrors,
		Normalize: cfg.Normalize,
		Logger:    logger,
	}
}

// Result is the outcome of parsing one source unit.
type Result struct {
	Path        string
	Source      string // text as lexed, after normalization
	Program     *ast.Program
	Diagnostics []diag.Diagnostic
	Fatal       bool
	Duration    time.Duration
}

// HasErrors reports whether the result carries an error diagnostic.
func (r Result) HasErrors() bool {
	return diag.HasErrors(r.Diagnostics)
}

// Driver parses source units.
type Driver struct {
	opts Options
	log  zerolog.Logger
}

// New creates a driver. A non-positive worker count means one.
func New(opts Options) *Driver {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Driver{opts: opts, log: opts.Logger}
}

// Normalize returns text in Unicode normalization form C, so that
// identifiers spelled with combining marks lex the same as their
// precomposed forms.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// ParseSource parses text attributed to path.
func (d *Driver) ParseSource(path, text string) Result {
	if d.opts.Normalize {
		text = Normalize(text)
	}

	start := time.Now()

	p := parser.New(text,
		parser.WithFilename(path),
		parser.WithLogger(d.log),
		parser.WithMaxErrors(d.opts.MaxErrors),
	)
	prog := p.ParseProgram()

	res := Result{
		Path:        path,
		Source:      text,
		Program:     prog,
		Diagnostics: p.Diagnostics(),
		Fatal:       p.Fatal(),
		Duration:    time.Since(start),
	}

	d.log.Debug().
		Str("path", path).
		Dur("duration", res.Duration).
		Int("diagnostics", len(res.Diagnostics)).
		Bool("fatal", res.Fatal).
		Msg("parsed")

	return res
}

// ParseFile reads and parses one file.
func (d *Driver) ParseFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return d.ParseSource(path, string(data)), nil
}

// ParseFiles parses paths concurrently, at most Workers at a time, and
// returns the results in input order. Diagnostics never fail the call; a
// file that cannot be read cancels the remaining work and is returned as
// the error.
func (d *Driver) ParseFiles(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := d.ParseFile(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// HasErrors reports whether any result carries an error diagnostic.
func HasErrors(results []Result) bool {
	for _, r := range results {
		if r.HasErrors() {
			return true
		}
	}
	return false
}

// Expand resolves command-line paths into source files. Files are kept as
// given; directories are walked and their entries filtered by base name
// against include and exclude patterns (filepath.Match syntax).
func Expand(paths, include, exclude []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)

	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			ok, err := matchName(entry.Name(), include, exclude)
			if err != nil {
				return err
			}
			if ok {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func matchName(name string, include, exclude []string) (bool, error) {
	for _, pattern := range exclude {
		ok, err := filepath.Match(pattern, name)
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}
	for _, pattern := range include {
		ok, err := filepath.Match(pattern, name)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
