// Package codegen drives whole generator runs: load the package once, fan the
// requested types out to the synthesizer, write what succeeded and report
// what did not.
package codegen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/kwyse/specified-default-derive/internal/parser"
	"github.com/kwyse/specified-default-derive/internal/synthesizer"
	"github.com/kwyse/specified-default-derive/pkg/logger"
)

// Options configure one generator run.
type Options struct {
	// Dir is the package directory to read. Defaults to ".".
	Dir string
	// Types are the declarations to process, in the order given.
	Types []string
	// Output, when set, merges everything into this single file (relative
	// to Dir unless absolute) instead of one file per type.
	Output string
	// DryRun prints the rendered source instead of writing it.
	DryRun bool
	// Fs is the filesystem outputs are written to. Defaults to the OS
	// filesystem. Inputs are always read from the OS filesystem.
	Fs afero.Fs
	// Out receives dry-run output. Defaults to stdout.
	Out io.Writer
}

// Generator runs the parse/synthesize/write pipeline for one package.
type Generator struct {
	opts Options
	fs   afero.Fs
	out  io.Writer
}

func New(opts Options) *Generator {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	seen := make(map[string]struct{}, len(opts.Types))
	types := make([]string, 0, len(opts.Types))
	for _, t := range opts.Types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	opts.Types = types
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Generator{opts: opts, fs: fs, out: out}
}

// Generate synthesizes defaults for every requested type and writes the
// results. Declarations fail independently: every processable type is still
// written when a sibling fails, and the failures come back joined.
func (g *Generator) Generate(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if len(g.opts.Types) == 0 {
		return NewNoTypesError()
	}
	pkg, err := parser.Load(g.opts.Dir)
	if err != nil {
		return err
	}
	log.Info("Synthesizing default clauses", "package", pkg.Name, "dir", g.opts.Dir, "types", len(g.opts.Types))

	impls := make([]*synthesizer.Implementation, len(g.opts.Types))
	failures := make([]error, len(g.opts.Types))
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, typeName := range g.opts.Types {
		group.Go(func() error {
			impl, err := synthesizeOne(pkg, typeName)
			if err != nil {
				failures[i] = err
				return nil
			}
			impls[i] = impl
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	generated := make([]*synthesizer.Implementation, 0, len(impls))
	for _, impl := range impls {
		if impl != nil {
			generated = append(generated, impl)
		}
	}
	if g.opts.Output != "" {
		if err := g.writeMerged(ctx, pkg.Name, generated); err != nil {
			failures = append(failures, err)
		}
	} else {
		for _, impl := range generated {
			if err := g.writeOne(ctx, impl); err != nil {
				failures = append(failures, err)
			}
		}
	}
	return errors.Join(failures...)
}

func synthesizeOne(pkg *parser.Package, typeName string) (*synthesizer.Implementation, error) {
	decl, err := pkg.Extract(typeName)
	if err != nil {
		return nil, err
	}
	return synthesizer.Synthesize(decl)
}

func (g *Generator) writeOne(ctx context.Context, impl *synthesizer.Implementation) error {
	log := logger.FromContext(ctx)
	src, err := impl.Source()
	if err != nil {
		return err
	}
	path := filepath.Join(g.opts.Dir, impl.Filename())
	if g.opts.DryRun {
		log.Info("Would write generated defaults", "type", impl.TypeName, "file", path)
		fmt.Fprint(g.out, src)
		return nil
	}
	if err := afero.WriteFile(g.fs, path, []byte(src), 0o600); err != nil {
		return NewWriteError(path, err)
	}
	log.Info("Wrote generated defaults", "type", impl.TypeName, "file", path)
	return nil
}

func (g *Generator) writeMerged(ctx context.Context, pkgName string, impls []*synthesizer.Implementation) error {
	log := logger.FromContext(ctx)
	if len(impls) == 0 {
		log.Warn("Nothing to write", "output", g.opts.Output)
		return nil
	}
	src, err := synthesizer.RenderFile(pkgName, impls...)
	if err != nil {
		return err
	}
	path := g.opts.Output
	if !filepath.IsAbs(path) {
		path = filepath.Join(g.opts.Dir, path)
	}
	if g.opts.DryRun {
		log.Info("Would write generated defaults", "file", path, "types", len(impls))
		fmt.Fprint(g.out, src)
		return nil
	}
	if err := afero.WriteFile(g.fs, path, []byte(src), 0o600); err != nil {
		return NewWriteError(path, err)
	}
	log.Info("Wrote generated defaults", "file", path, "types", len(impls))
	return nil
}
