package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	errs "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/graph"
)

func sample() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: 1, Name: "index", Kind: graph.KindFile, Val: 4},
			{ID: 2, Name: "todo", Kind: graph.KindTag, Val: 3},
		},
		Links: []graph.Link{{Source: 1, Target: 2}},
	}
}

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "graphs"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	var s Store = newFileStore(t)

	if err := s.Save(ctx, "notes", sample()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	g, err := s.Load(ctx, "notes")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(g.Nodes) != 2 || len(g.Links) != 1 {
		t.Fatalf("got %d nodes, %d links", len(g.Nodes), len(g.Links))
	}
	if g.Nodes[1].Kind != graph.KindTag || g.Nodes[0].Val != 4 {
		t.Errorf("nodes = %+v", g.Nodes)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	_ = s.Save(ctx, "notes", sample())
	_ = s.Save(ctx, "notes", graph.NewGraph())

	g, err := s.Load(ctx, "notes")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(g.Nodes) != 0 {
		t.Errorf("overwrite kept %d nodes", len(g.Nodes))
	}

	entries, _ := os.ReadDir(s.Path())
	if len(entries) != 1 {
		t.Errorf("store dir has %d entries, want 1 (no temp files left)", len(entries))
	}
}

func TestFileStoreNotFound(t *testing.T) {
	s := newFileStore(t)
	_, err := s.Load(context.Background(), "missing")
	if !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestFileStoreRejectsBadNames(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	tests := []struct {
		name  string
		graph string
	}{
		{"Empty", ""},
		{"Traversal", "../etc/passwd"},
		{"Hidden", ".secret"},
		{"Slash", "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Save(ctx, tt.graph, sample()); !errs.Is(err, errs.ErrCodeInvalidName) {
				t.Errorf("Save(%q) = %v, want INVALID_NAME", tt.graph, err)
			}
			if _, err := s.Load(ctx, tt.graph); !errs.Is(err, errs.ErrCodeInvalidName) {
				t.Errorf("Load(%q) = %v, want INVALID_NAME", tt.graph, err)
			}
		})
	}
}

func TestFileStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Save(ctx, name, sample()); err != nil {
			t.Fatal(err)
		}
	}
	_ = os.WriteFile(filepath.Join(s.Path(), "README.txt"), []byte("x"), 0644)

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("List = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	if err := s.Delete(ctx, "mid"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "mid"); err != nil {
		t.Errorf("deleting a missing graph should succeed: %v", err)
	}
	if names, _ := s.List(ctx); len(names) != 2 {
		t.Errorf("List after delete = %v", names)
	}
}

func TestNewMongoStoreRequiresURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), MongoConfig{})
	if !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestDefaultDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "spiderweb", "graphs") {
		t.Errorf("DefaultDir = %q", dir)
	}
}
