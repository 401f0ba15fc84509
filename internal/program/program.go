// Package program implements the top-level load(source, asMain) orchestration
// of spec.md §2: parse, then (if parsing produced no error) scope, lower, and
// run the IR analyses, accumulating diagnostics at every stage. It also
// drives the cycle-detecting import walk of §9 Open Question 1: imports are
// followed and compiled so that a cycle or a missing file is diagnosed, but
// an imported module's declarations never feed back into the importer's
// scoping, which spec.md leaves unspecified.
package program

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"dyva/internal/analysis"
	"dyva/internal/ast"
	"dyva/internal/diag"
	"dyva/internal/ir"
	"dyva/internal/lexer"
	"dyva/internal/lower"
	"dyva/internal/observ"
	"dyva/internal/parser"
	"dyva/internal/scope"
	"dyva/internal/source"
	"dyva/internal/trace"
)

// Unit describes one compilation: an entry file plus the settings load
// needs. This is the plain Go struct spec.md's core takes; any file-format
// concern (dyva.toml) is internal/config's job, not this package's.
type Unit struct {
	EntryPath      string
	AsMain         bool
	SearchPaths    []string
	MaxDiagnostics int
	Jobs           int // concurrent loads of one module's imports; <= 0 allows one per import

	Tracer trace.Tracer // nil is fine; defaults to a no-op
	Cache  *DiskCache   // nil disables the incremental cache
}

// ModuleResult is one loaded module's pipeline output.
type ModuleResult struct {
	Path       string
	FileID     source.FileID
	Module     *ast.Module
	IR         *ir.Module // nil if parsing failed
	Bag        *diag.Bag
	FromImport bool // true for every module reached only via import

	// Timings holds this module's own lex/parse/scope/lower/analysis phase
	// durations, independent of unit.Tracer's span stream. A cache hit or
	// an I/O failure records no phases, so Timings.Phases is nil.
	Timings observ.Report
}

// Program is the result of a full load: the entry module plus every module
// transitively reachable from it via import, keyed by canonical path.
type Program struct {
	Entry   *ModuleResult
	Modules map[string]*ModuleResult
	Order   []string // canonical paths in first-discovered order, entry first

	FileSet *source.FileSet
}

// ContainsError reports whether any module in the program accumulated an
// error-severity diagnostic.
func (p *Program) ContainsError() bool {
	for _, path := range p.Order {
		if m := p.Modules[path]; m != nil && m.Bag.ContainsError() {
			return true
		}
	}
	return false
}

// Sorted returns every module's diagnostics in Order, each individually
// sorted per diag.Bag.Sorted's §3.5 total order.
func (p *Program) Sorted() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, path := range p.Order {
		m := p.Modules[path]
		if m == nil {
			continue
		}
		out = append(out, m.Bag.Sorted(p.FileSet)...)
	}
	return out
}

// loader carries the state shared across one Load call's recursive walk:
// the file set, the interner shared by every parsed module (library
// modules may be inspected together even though scoping never crosses
// module boundaries), and the cycle/visited bookkeeping of §6.1's
// "canonicalized file names" rule.
type loader struct {
	unit     Unit
	fs       *source.FileSet
	interner *source.Interner

	mu        sync.Mutex
	visiting  map[string]bool // canonical path -> currently on the recursion stack
	done      map[string]*ModuleResult
	order     []string
	nextIndex uint32 // next arena module index (§3.3: identities pack a module index)
}

func (l *loader) allocIndex() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.nextIndex
	l.nextIndex++
	return idx
}

// Load runs the full pipeline over unit.EntryPath and every module it
// transitively imports, per spec.md §5's "multiple modules may be compiled
// in parallel" and §9 Open Question 1's cycle-detecting walk.
func Load(ctx context.Context, unit Unit) (*Program, error) {
	if unit.Tracer == nil {
		unit.Tracer = trace.Nop
	}
	if unit.MaxDiagnostics <= 0 {
		unit.MaxDiagnostics = 200
	}

	entry, err := filepath.Abs(unit.EntryPath)
	if err != nil {
		return nil, fmt.Errorf("resolving entry path: %w", err)
	}

	l := &loader{
		unit:     unit,
		fs:       source.NewFileSetWithBase(filepath.Dir(entry)),
		interner: source.NewInterner(),
		visiting: make(map[string]bool),
		done:     make(map[string]*ModuleResult),
	}

	sp := trace.Begin(unit.Tracer, trace.ScopeDriver, "load", 0)
	defer sp.End("")

	result, err := l.load(ctx, entry, unit.AsMain, false, sp.ID())
	if err != nil {
		return nil, err
	}

	prog := &Program{
		Entry:   result,
		Modules: l.done,
		Order:   l.order,
		FileSet: l.fs,
	}
	return prog, nil
}

// load runs the pipeline for one canonical path, memoizing by path per
// §5's "not re-entrant on the same file name" rule, and recurses into its
// imports.
func (l *loader) load(ctx context.Context, canonical string, asMain, fromImport bool, parentSpan uint64) (*ModuleResult, error) {
	l.mu.Lock()
	if r, ok := l.done[canonical]; ok {
		l.mu.Unlock()
		return r, nil
	}
	if l.visiting[canonical] {
		l.mu.Unlock()
		return l.cycleResult(canonical), nil
	}
	l.visiting[canonical] = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		delete(l.visiting, canonical)
		l.mu.Unlock()
	}()

	result, err := l.compileOne(canonical, asMain, parentSpan)
	if err != nil {
		return nil, err
	}
	result.FromImport = fromImport

	imports := collectImportPaths(result.Module)
	if len(imports) > 0 {
		if err := l.loadImports(ctx, canonical, imports, result, parentSpan); err != nil {
			return nil, err
		}
	}

	l.mu.Lock()
	l.done[canonical] = result
	l.order = append(l.order, canonical)
	l.mu.Unlock()
	return result, nil
}

// cycleResult synthesizes a diagnostic-only result for an import that
// points back at a module currently being loaded, per §6.1: "file names
// are canonicalized when comparing to detect import cycles."
func (l *loader) cycleResult(canonical string) *ModuleResult {
	bag := diag.NewBag()
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.ProgramImportCycle, source.Span{},
		"import cycle detected at "+canonical).Emit()
	return &ModuleResult{Path: canonical, Bag: bag, FromImport: true}
}

func (l *loader) loadImports(ctx context.Context, from string, imports []importRef, into *ModuleResult, parentSpan uint64) error {
	g, gctx := errgroup.WithContext(ctx)
	jobs := l.unit.Jobs
	if jobs <= 0 {
		jobs = len(imports)
	}
	g.SetLimit(max(1, jobs))

	for _, ref := range imports {
		ref := ref
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			resolved, ok := resolvePath(from, l.unit.SearchPaths, ref.text)
			if !ok {
				diag.ReportError(diag.BagReporter{Bag: into.Bag}, diag.ProgramImportMissing, ref.site,
					fmt.Sprintf("could not resolve import %q to a file or directory", ref.text)).Emit()
				return nil
			}
			if _, err := l.load(ctx, resolved, false, true, parentSpan); err != nil {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// compileOne runs parse -> scope -> lower -> analysis over a single file,
// consulting the disk cache first when one is configured.
func (l *loader) compileOne(canonical string, asMain bool, parentSpan uint64) (*ModuleResult, error) {
	sp := trace.Begin(l.unit.Tracer, trace.ScopePass, "load:"+canonical, parentSpan)
	defer sp.End("")

	content, err := os.ReadFile(canonical) // #nosec G304 -- canonical comes from the resolved import graph
	if err != nil {
		bag := diag.NewBag()
		diag.ReportError(diag.BagReporter{Bag: bag}, diag.ProgramIOError, source.Span{},
			"failed to load file: "+err.Error()).Emit()
		return &ModuleResult{Path: canonical, Bag: bag}, nil
	}

	fileID := l.fs.Add(canonical, content, 0)
	file := l.fs.Get(fileID)

	if l.unit.Cache != nil && IsSHA256(file.Hash) {
		if cached, ok := l.unit.Cache.Get(file.Hash); ok {
			return l.replayCache(canonical, fileID, cached), nil
		}
	}

	bag := diag.NewBag()
	reporter := diag.BagReporter{Bag: bag}
	tm := observ.NewTimer() // per-module timer; compileOne may run concurrently across modules

	lexSp := trace.Begin(l.unit.Tracer, trace.ScopeModule, "lex", sp.ID())
	lexPh := tm.Begin("lex")
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	tm.End(lexPh, "")
	lexSp.End("")

	module := ast.NewModule(l.allocIndex(), file, asMain, l.interner)

	maxErrors, convErr := safecast.Conv[uint](l.unit.MaxDiagnostics)
	if convErr != nil {
		return nil, fmt.Errorf("maxDiagnostics overflow: %w", convErr)
	}

	parseSp := trace.Begin(l.unit.Tracer, trace.ScopeModule, "parse", sp.ID())
	parsePh := tm.Begin("parse")
	parser.ParseFile(lx, module, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
	tm.End(parsePh, "")
	parseSp.End("")

	result := &ModuleResult{Path: canonical, FileID: fileID, Module: module, Bag: bag}

	if bag.ContainsError() {
		result.Timings = tm.Report()
		l.storeCache(file.Hash, result)
		return result, nil
	}

	scopeSp := trace.Begin(l.unit.Tracer, trace.ScopeModule, "scope", sp.ID())
	scopePh := tm.Begin("scope")
	scope.Run(module)
	tm.End(scopePh, "")
	scopeSp.End("")

	lowerSp := trace.Begin(l.unit.Tracer, trace.ScopeModule, "lower", sp.ID())
	lowerPh := tm.Begin("lower")
	mod := lower.New(module, reporter).Run()
	tm.End(lowerPh, "")
	lowerSp.End("")
	result.IR = mod

	analysisSp := trace.Begin(l.unit.Tracer, trace.ScopeModule, "analysis", sp.ID())
	analysisPh := tm.Begin("analysis")
	analysis.Run(mod, reporter)
	tm.End(analysisPh, "")
	analysisSp.End("")

	result.Timings = tm.Report()
	l.storeCache(file.Hash, result)
	return result, nil
}

// importRef is one import declaration's literal text plus its site, used
// only for diagnostics; the declaration's semantic effect on scoping is
// out of scope per §9 Open Question 1.
type importRef struct {
	text string
	site source.Span
}

func collectImportPaths(m *ast.Module) []importRef {
	if m == nil {
		return nil
	}
	var refs []importRef
	add := func(id ast.DeclarationID) {
		imp, ok := m.Arena.AsImport(id.NodeID())
		if !ok {
			return
		}
		text, ok := m.Interner.Lookup(imp.Path)
		if !ok {
			return
		}
		refs = append(refs, importRef{text: text, site: imp.Site})
	}
	if m.AsMain {
		// Top-level statements can themselves be declarations (§3.3); walk
		// only the ones that are import declarations.
		for _, s := range m.Stmts {
			add(ast.DeclarationID(s.NodeID()))
		}
	} else {
		for _, d := range m.Decls {
			add(d)
		}
	}
	return refs
}

// resolvePath resolves a dotted import path (e.g. "foo.bar") relative to
// the importing file's directory and every configured search path. A
// directory import resolves to index.dyva within it, per §6.1.
func resolvePath(fromFile string, searchPaths []string, dotted string) (string, bool) {
	segments := strings.Split(dotted, ".")
	rel := filepath.Join(segments...)

	bases := make([]string, 0, len(searchPaths)+1)
	bases = append(bases, filepath.Dir(fromFile))
	bases = append(bases, searchPaths...)

	for _, base := range bases {
		asFile := filepath.Join(base, rel+".dyva")
		if fileExists(asFile) {
			abs, err := filepath.Abs(asFile)
			if err == nil {
				return abs, true
			}
		}
		asDir := filepath.Join(base, rel, "index.dyva")
		if fileExists(asDir) {
			abs, err := filepath.Abs(asDir)
			if err == nil {
				return abs, true
			}
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
