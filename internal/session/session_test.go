package session

import (
	"context"
	"sync"
	"testing"

	"verdict/internal/diag"
	"verdict/internal/engine"
	"verdict/internal/rule"
	"verdict/internal/source"
	"verdict/internal/suppress"
	"verdict/internal/syntax"
)

func methodDescriptor() diag.Descriptor {
	return diag.MustDescriptor("AC9100", "Method found", "method '{0}'", "Test", diag.SevWarning, true)
}

// methodReporter emits one diagnostic per method node.
func methodReporter() rule.Rule {
	return rule.New("method-reporter", []diag.Descriptor{methodDescriptor()}, func(reg rule.Registrar) {
		reg.OnNode(syntax.KindMethod, func(ctx *rule.Context, emit rule.Sink) {
			emit.Emit("AC9100", ctx.Node.Span, ctx.Node.Text)
		})
	})
}

func addTree(t *testing.T, fs *source.FileSet, path string, methods int) *syntax.Tree {
	t.Helper()

	content := make([]byte, 0, methods*10+10)
	for i := 0; i < methods+1; i++ {
		content = append(content, []byte("line....\n")...)
	}
	id := fs.Add(path, content, 0)

	b := syntax.NewBuilder(id)
	file := b.Add(syntax.NoNodeID, syntax.KindFile, source.Span{Start: 0, End: uint32(len(content))}, "")
	class := b.Add(file, syntax.KindClass, source.Span{Start: 0, End: uint32(len(content))}, "C")
	for i := 0; i < methods; i++ {
		off := uint32(i * 9)
		b.Add(class, syntax.KindMethod, source.Span{Start: off, End: off + 8}, "m")
	}
	tree, err := b.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return tree
}

func mustTable(t *testing.T, rules ...rule.Rule) *engine.Table {
	t.Helper()
	table, err := engine.NewTable(rules)
	if err != nil {
		t.Fatalf("NewTable returned error: %v", err)
	}
	return table
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func TestAnalyzeManyFiles(t *testing.T) {
	fs := source.NewFileSet()
	trees := []*syntax.Tree{
		addTree(t, fs, "a.tree", 2),
		addTree(t, fs, "b.tree", 3),
		addTree(t, fs, "c.tree", 1),
	}

	sink := &recordingSink{}
	s := New(mustTable(t, methodReporter()), nil, nil, Options{Jobs: 3, MaxDiagnostics: 50, Sink: sink})
	results := s.Analyze(context.Background(), fs, trees)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	wantCounts := []int{2, 3, 1}
	for i, r := range results {
		if r.Cancelled {
			t.Errorf("result %d unexpectedly cancelled", i)
		}
		if r.Bag.Len() != wantCounts[i] {
			t.Errorf("result %d has %d diagnostics, want %d", i, r.Bag.Len(), wantCounts[i])
		}
	}
	if results[0].Path != "a.tree" || results[2].Path != "c.tree" {
		t.Errorf("results out of input order: %s, %s", results[0].Path, results[2].Path)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	var done int
	for _, evt := range sink.events {
		if evt.Status == StatusDone {
			done++
		}
	}
	if done != 3 {
		t.Errorf("got %d done events, want 3", done)
	}
}

func TestEventsCarryInputIndex(t *testing.T) {
	fs := source.NewFileSet()
	// two inputs declaring the same path stay distinguishable by index
	trees := []*syntax.Tree{
		addTree(t, fs, "dup.tree", 1),
		addTree(t, fs, "dup.tree", 2),
	}

	sink := &recordingSink{}
	s := New(mustTable(t, methodReporter()), nil, nil, Options{Jobs: 1, Sink: sink})
	results := s.Analyze(context.Background(), fs, trees)

	if results[0].Bag.Len() != 1 || results[1].Bag.Len() != 2 {
		t.Fatalf("got %d and %d diagnostics, want 1 and 2",
			results[0].Bag.Len(), results[1].Bag.Len())
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	done := make(map[int]int)
	for _, evt := range sink.events {
		if evt.Status == StatusDone {
			done[evt.Index] = evt.Diagnostics
		}
	}
	if len(done) != 2 || done[0] != 1 || done[1] != 2 {
		t.Errorf("done events by index = %v, want {0:1 1:2}", done)
	}
}

func TestAnalyzeAppliesSuppression(t *testing.T) {
	fs := source.NewFileSet()
	trees := []*syntax.Tree{addTree(t, fs, "a.tree", 5)}

	cfg := suppress.NewConfig()
	cfg.Disable("AC9100")

	s := New(mustTable(t, methodReporter()), cfg, nil, Options{})
	results := s.Analyze(context.Background(), fs, trees)

	if got := results[0].Bag.Len(); got != 0 {
		t.Errorf("disabled descriptor leaked %d diagnostics into output", got)
	}
}

func TestCancellationLeavesOtherFilesIntact(t *testing.T) {
	fs := source.NewFileSet()
	healthy := addTree(t, fs, "healthy.tree", 4)

	// second file carries the only loop node; the rule cancels there
	content := []byte("loop file\n")
	loopFileID := fs.Add("cancelled.tree", content, 0)
	b := syntax.NewBuilder(loopFileID)
	file := b.Add(syntax.NoNodeID, syntax.KindFile, source.Span{Start: 0, End: 10}, "")
	loop := b.Add(file, syntax.KindLoop, source.Span{Start: 0, End: 9}, "")
	for i := 0; i < 600; i++ {
		b.Add(loop, syntax.KindLiteral, source.Span{Start: 1, End: 2}, "")
	}
	loopTree, err := b.Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	canceller := rule.New("canceller", []diag.Descriptor{
		diag.MustDescriptor("AC9200", "t", "m", "Test", diag.SevWarning, true),
	}, func(reg rule.Registrar) {
		reg.OnNode(syntax.KindLoop, func(_ *rule.Context, _ rule.Sink) {
			cancel()
		})
	})

	// Jobs=1 runs files in input order: healthy completes first
	s := New(mustTable(t, methodReporter(), canceller), nil, nil, Options{Jobs: 1, MaxDiagnostics: 1000})
	results := s.Analyze(ctx, fs, []*syntax.Tree{healthy, loopTree})

	if results[0].Cancelled {
		t.Fatal("first file must complete before cancellation")
	}
	if got := results[0].Bag.Len(); got != 4 {
		t.Errorf("first file has %d diagnostics, want 4", got)
	}
	if !results[1].Cancelled {
		t.Error("second file must be tagged cancelled")
	}
}

func TestCombined(t *testing.T) {
	fs := source.NewFileSet()
	trees := []*syntax.Tree{
		addTree(t, fs, "b.tree", 1),
		addTree(t, fs, "a.tree", 1),
	}

	s := New(mustTable(t, methodReporter()), nil, nil, Options{})
	results := s.Analyze(context.Background(), fs, trees)

	combined := Combined(results)
	if combined.Len() != 2 {
		t.Fatalf("combined has %d diagnostics, want 2", combined.Len())
	}
	// sorted by file id, i.e. load order
	if combined.Items()[0].Primary.File != trees[0].File() {
		t.Error("combined output must be sorted")
	}
}
