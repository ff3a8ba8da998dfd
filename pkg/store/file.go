package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	errs "github.com/matzehuels/spiderweb/pkg/errors"
	"github.com/matzehuels/spiderweb/pkg/graph"
)

// FileStore keeps each graph in <dir>/<name>.json.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file store rooted at baseDir, creating it if needed.
// If baseDir is empty, defaults to [DefaultDir].
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "create store dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

// DefaultDir returns ~/.local/share/spiderweb/graphs, honouring XDG_DATA_HOME.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "spiderweb", "graphs"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "spiderweb", "graphs"), nil
}

func (s *FileStore) graphPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

func (s *FileStore) Load(ctx context.Context, name string) (graph.Graph, error) {
	if err := errs.ValidateName(name); err != nil {
		return graph.Graph{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := graph.ReadGraphFile(s.graphPath(name))
	if errs.Is(err, errs.ErrCodeFileNotFound) {
		return graph.Graph{}, errs.New(errs.ErrCodeNotFound, "graph %q not found", name)
	}
	return g, err
}

func (s *FileStore) Save(ctx context.Context, name string, g graph.Graph) error {
	if err := errs.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Write to a temp file and rename so readers never see a partial graph.
	tmp, err := os.CreateTemp(s.baseDir, name+".*.tmp")
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "save %s", name)
	}
	defer os.Remove(tmp.Name())
	if err := graph.WriteGraph(g, tmp); err != nil {
		tmp.Close()
		return errs.Wrap(errs.ErrCodeStorage, err, "save %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "save %s", name)
	}
	if err := os.Rename(tmp.Name(), s.graphPath(name)); err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "save %s", name)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errs.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.graphPath(name)); err != nil && !os.IsNotExist(err) {
		return errs.Wrap(errs.ErrCodeStorage, err, "delete %s", name)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "read store dir")
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for graph files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
