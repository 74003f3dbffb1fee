// Package driver runs the compilation pipeline: lex, parse/build,
// global iterate, validate. Each unit gets an isolated graph and
// builder; internal faults are recovered per unit and surfaced as
// errors instead of taking down sibling compilations.
package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"riptide/internal/diag"
	"riptide/internal/dotvis"
	"riptide/internal/ir"
	"riptide/internal/lexer"
	"riptide/internal/observ"
	"riptide/internal/parser"
	"riptide/internal/project"
	"riptide/internal/source"
	"riptide/internal/token"
)

type Options struct {
	// Optimize toggles peephole rewriting during construction.
	Optimize bool
	// Iterate toggles the global fixpoint pass after parsing.
	Iterate bool
	// MaxDiagnostics caps reported diagnostics per file.
	MaxDiagnostics int
	// Jobs bounds CompileAll concurrency; 0 means NumCPU.
	Jobs int
}

func DefaultOptions() Options {
	return Options{Optimize: true, Iterate: true, MaxDiagnostics: 100}
}

// FromManifest derives options from a project manifest.
func FromManifest(m *project.Manifest) Options {
	return Options{
		Optimize:       m.Config.Build.OptimizeOn(),
		Iterate:        m.Config.Build.IterateOn(),
		MaxDiagnostics: m.Config.Build.DiagLimit(),
	}
}

// Result is the outcome of compiling one unit.
type Result struct {
	Path    string
	Files   *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Builder *ir.Builder
	// Returns holds the printed form of every Return, in source order.
	Returns []string
	// DotDumps collects one render per '#showGraph' directive.
	DotDumps []string
	Timing   observ.Report
	// Err reports I/O failures and recovered internal faults; user
	// program errors land in Bag instead.
	Err error
}

// Ok reports whether the unit compiled without faults or user errors.
func (r *Result) Ok() bool { return r.Err == nil && !r.Bag.HasErrors() }

// CompileFile loads path and compiles it.
func CompileFile(path string, opts Options) *Result {
	fset := source.NewFileSet()
	res := &Result{Path: path, Files: fset, Bag: diag.NewBag(diagLimit(opts))}
	f, err := fset.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	compile(res, f, opts)
	return res
}

// CompileSource compiles in-memory content under the given name.
func CompileSource(name string, content []byte, opts Options) *Result {
	fset := source.NewFileSet()
	res := &Result{Path: name, Files: fset, Bag: diag.NewBag(diagLimit(opts))}
	f, err := fset.AddVirtual(name, content)
	if err != nil {
		res.Err = err
		return res
	}
	compile(res, f, opts)
	return res
}

// CompileAll fans units out over an errgroup, one isolated builder per
// file. Results line up with paths; the error only reports context
// cancellation, per-unit failures stay in their Result.
func CompileAll(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	results := make([]*Result, len(paths))
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = CompileFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func compile(res *Result, f *source.File, opts Options) {
	defer func() {
		// Contract and lattice violations are compiler bugs; convert
		// them to unit failures so sibling units keep compiling.
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("internal fault compiling %s: %v", res.Path, r)
		}
	}()

	res.File = f
	timer := observ.NewTimer()

	var toks []token.Token
	timer.Time("lex", func() string {
		toks = lexer.Tokenize(f, res.Bag)
		return fmt.Sprintf("%d tokens", len(toks))
	})

	b := ir.NewBuilder()
	b.Optimize = opts.Optimize
	res.Builder = b

	var rets []ir.NodeID
	timer.Time("parse", func() string {
		p := parser.New(toks, res.Bag, b)
		p.ShowGraph = func(g *ir.Graph) {
			res.DotDumps = append(res.DotDumps, dotvis.Render(g, string(f.Content)))
		}
		rets = p.ParseProgram()
		return fmt.Sprintf("%d nodes", b.Graph().NumLive())
	})

	if opts.Iterate && opts.Optimize {
		timer.Time("iterate", func() string {
			b.Iterate()
			return fmt.Sprintf("%d nodes", b.Graph().NumLive())
		})
	}

	timer.Time("validate", func() string {
		if err := ir.Validate(b.Graph()); err != nil {
			panic(err)
		}
		return ""
	})

	for _, ret := range rets {
		if b.Graph().Live(ret) {
			res.Returns = append(res.Returns, ir.Print(b.Graph(), ret))
		}
	}
	res.Timing = timer.Report()
}

func diagLimit(opts Options) int {
	if opts.MaxDiagnostics <= 0 {
		return 100
	}
	return opts.MaxDiagnostics
}
