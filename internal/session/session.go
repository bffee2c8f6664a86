// Package session schedules dispatch passes across many files. The
// registration table and suppression configuration are immutable and
// shared by reference; each pass owns its diagnostic bag, so workers
// need no locks. Trees are analyzed in parallel, never nodes of one
// tree.
package session

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"verdict/internal/diag"
	"verdict/internal/engine"
	"verdict/internal/source"
	"verdict/internal/suppress"
	"verdict/internal/syntax"
)

// Options tunes a session.
type Options struct {
	// Jobs caps concurrent passes; 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics bounds each file's bag.
	MaxDiagnostics int
	// Sink receives progress events; nil disables reporting.
	Sink ProgressSink
	// Cache, when non-nil, short-circuits passes whose inputs match a
	// previous run. Faulting and cancelled passes are never cached.
	Cache *DiskCache
}

// Result is the outcome for one file. Bag holds final (suppressed,
// sorted, deduplicated) diagnostics, or the partial raw list when
// Cancelled is set.
type Result struct {
	Path      string
	File      source.FileID
	Bag       *diag.Bag
	Stats     engine.Stats
	Cancelled bool
	CacheHit  bool
}

// Session ties one rule-set to a suppression policy and analyzes any
// number of trees with it.
type Session struct {
	table   *engine.Table
	cfg     *suppress.Config
	regions *suppress.Regions
	opts    Options
}

// New creates a session. cfg and regions may be nil for "no policy".
func New(table *engine.Table, cfg *suppress.Config, regions *suppress.Regions, opts Options) *Session {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 200
	}
	if cfg == nil {
		cfg = suppress.NewConfig()
	}
	return &Session{
		table:   table,
		cfg:     cfg,
		regions: regions,
		opts:    opts,
	}
}

// Table returns the session's registration table.
func (s *Session) Table() *engine.Table {
	return s.table
}

func (s *Session) emit(evt Event) {
	if s.opts.Sink != nil {
		s.opts.Sink.OnEvent(evt)
	}
}

// Analyze dispatches every tree and returns one result per tree, in
// input order. Cancellation stops in-flight and queued passes; results
// already completed are returned untouched, with the interrupted ones
// tagged Cancelled.
func (s *Session) Analyze(ctx context.Context, fs *source.FileSet, trees []*syntax.Tree) []Result {
	results := make([]Result, len(trees))

	jobs := s.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for i, tree := range trees {
		s.emit(Event{Index: i, Path: fs.Get(tree.File()).Path, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(trees), 1)))

	for i, tree := range trees {
		i, tree := i, tree
		g.Go(func() error {
			// result slots are per-index: no mutex needed
			results[i] = s.analyzeOne(gctx, fs, tree, i)
			return nil
		})
	}

	// workers never return errors; Wait only synchronizes
	_ = g.Wait()
	return results
}

func (s *Session) analyzeOne(ctx context.Context, fs *source.FileSet, tree *syntax.Tree, idx int) Result {
	file := fs.Get(tree.File())
	started := time.Now()
	s.emit(Event{Index: idx, Path: file.Path, Status: StatusWorking})

	res := Result{
		Path: file.Path,
		File: tree.File(),
	}

	// queued passes cut short by cancellation never run at all
	if err := ctx.Err(); err != nil {
		res.Bag = diag.NewBag(s.opts.MaxDiagnostics)
		res.Cancelled = true
		s.emit(Event{Index: idx, Path: file.Path, Status: StatusCancelled, Elapsed: time.Since(started)})
		return res
	}

	key := CacheKey(file.Hash, s.table.Fingerprint(), s.cfg.Fingerprint())
	if cached, ok := s.opts.Cache.Get(key, tree.File()); ok {
		bag := diag.NewBag(s.opts.MaxDiagnostics)
		for _, d := range cached {
			if !bag.Add(d) {
				res.Stats.Dropped++
			}
		}
		res.Bag = bag
		res.CacheHit = true
		s.emit(Event{Index: idx, Path: file.Path, Status: StatusDone, Diagnostics: bag.Len(), CacheHit: true, Elapsed: time.Since(started)})
		return res
	}

	bag := diag.NewBag(s.opts.MaxDiagnostics)
	stats, err := s.table.Analyze(ctx, tree, bag)
	res.Stats = stats
	res.Bag = bag

	if err != nil {
		res.Cancelled = true
		s.emit(Event{Index: idx, Path: file.Path, Status: StatusCancelled, Diagnostics: bag.Len(), Elapsed: time.Since(started)})
		return res
	}

	bag.Replace(suppress.Apply(bag.Items(), s.cfg, s.regions, s.table))
	bag.Sort()
	bag.Dedup()

	if stats.Faults == 0 {
		// best effort: a failed store only costs a future recompute
		_ = s.opts.Cache.Put(key, bag.Items())
	}

	s.emit(Event{Index: idx, Path: file.Path, Status: StatusDone, Diagnostics: bag.Len(), Elapsed: time.Since(started)})
	return res
}

// Combined merges all per-file bags into one sorted bag.
func Combined(results []Result) *diag.Bag {
	total := 0
	for _, r := range results {
		if r.Bag != nil {
			total += r.Bag.Len()
		}
	}
	out := diag.NewBag(max(total, 1))
	for _, r := range results {
		if r.Bag != nil {
			out.Merge(r.Bag)
		}
	}
	out.Sort()
	return out
}
