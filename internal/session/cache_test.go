package session

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"verdict/internal/diag"
	"verdict/internal/rule"
	"verdict/internal/source"
	"verdict/internal/syntax"
)

func digestOf(s string) Digest {
	return sha256.Sum256([]byte(s))
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt returned error: %v", err)
	}

	key := CacheKey(digestOf("content"), digestOf("table"), digestOf("config"))
	items := []diag.Diagnostic{
		{
			Descriptor: "AC1001",
			Rule:       "class-complexity",
			Severity:   diag.SevWarning,
			Message:    "class 'C' has 16 methods",
			Primary:    source.Span{File: 7, Start: 10, End: 20},
		},
		{
			Descriptor: "AC3001",
			Rule:       "string-concat-in-loop",
			Severity:   diag.SevInfo,
			Message:    "string concatenation inside loop",
			Primary:    source.Span{File: 7, Start: 40, End: 45},
		},
	}

	if err := cache.Put(key, items); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	// rebound to a different file id than the one stored
	got, ok := cache.Get(key, 3)
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(got) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(got))
	}
	for i, d := range got {
		if d.Primary.File != 3 {
			t.Errorf("diagnostic %d bound to file %d, want 3", i, d.Primary.File)
		}
		if d.Descriptor != items[i].Descriptor || d.Message != items[i].Message ||
			d.Severity != items[i].Severity || d.Primary.Start != items[i].Primary.Start {
			t.Errorf("diagnostic %d = %+v, want %+v", i, d, items[i])
		}
	}
}

func TestDiskCacheMisses(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt returned error: %v", err)
	}

	if _, ok := cache.Get(digestOf("absent"), 1); ok {
		t.Error("unknown key must miss")
	}

	// corrupted payloads read as misses, never errors
	key := digestOf("corrupt")
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Get(key, 1); ok {
		t.Error("corrupt entry must miss")
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(digestOf("k"), nil); err != nil {
		t.Errorf("nil cache Put returned error: %v", err)
	}
	if _, ok := cache.Get(digestOf("k"), 1); ok {
		t.Error("nil cache must always miss")
	}
}

func TestCacheKeyDependsOnAllInputs(t *testing.T) {
	base := CacheKey(digestOf("c"), digestOf("t"), digestOf("s"))
	variants := []Digest{
		CacheKey(digestOf("c2"), digestOf("t"), digestOf("s")),
		CacheKey(digestOf("c"), digestOf("t2"), digestOf("s")),
		CacheKey(digestOf("c"), digestOf("t"), digestOf("s2")),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collides with base key", i)
		}
	}
}

// classPanicker panics on every class node, forcing a fault diagnostic.
func classPanicker() rule.Rule {
	return rule.New("class-panicker", []diag.Descriptor{
		diag.MustDescriptor("AC9300", "t", "m", "Test", diag.SevWarning, true),
	}, func(reg rule.Registrar) {
		reg.OnNode(syntax.KindClass, func(_ *rule.Context, _ rule.Sink) {
			panic("boom")
		})
	})
}

func TestSessionUsesCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(dir)
	if err != nil {
		t.Fatalf("OpenDiskCacheAt returned error: %v", err)
	}

	table := mustTable(t, methodReporter())

	fs := source.NewFileSet()
	trees := []*syntax.Tree{addTree(t, fs, "a.tree", 3)}
	s := New(table, nil, nil, Options{Cache: cache})

	first := s.Analyze(context.Background(), fs, trees)
	if first[0].CacheHit {
		t.Fatal("first pass must not hit the cache")
	}
	if first[0].Bag.Len() != 3 {
		t.Fatalf("first pass has %d diagnostics, want 3", first[0].Bag.Len())
	}

	// same content in a fresh file set: the key matches, results rebind
	fs2 := source.NewFileSet()
	trees2 := []*syntax.Tree{addTree(t, fs2, "a.tree", 3)}
	second := s.Analyze(context.Background(), fs2, trees2)
	if !second[0].CacheHit {
		t.Fatal("second pass must hit the cache")
	}
	if second[0].Bag.Len() != 3 {
		t.Fatalf("cached pass has %d diagnostics, want 3", second[0].Bag.Len())
	}
	for i, d := range second[0].Bag.Items() {
		if d.Primary.File != trees2[0].File() {
			t.Errorf("cached diagnostic %d bound to file %d, want %d", i, d.Primary.File, trees2[0].File())
		}
	}
}

func TestFaultingPassNotCached(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt returned error: %v", err)
	}

	table := mustTable(t, classPanicker())

	fs := source.NewFileSet()
	trees := []*syntax.Tree{addTree(t, fs, "a.tree", 1)}
	s := New(table, nil, nil, Options{Cache: cache})

	first := s.Analyze(context.Background(), fs, trees)
	if first[0].Stats.Faults != 1 {
		t.Fatalf("stats.Faults = %d, want 1", first[0].Stats.Faults)
	}

	fs2 := source.NewFileSet()
	trees2 := []*syntax.Tree{addTree(t, fs2, "a.tree", 1)}
	second := s.Analyze(context.Background(), fs2, trees2)
	if second[0].CacheHit {
		t.Error("faulting results must never be served from cache")
	}
}
