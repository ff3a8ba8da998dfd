// Package store persists named graphs for the graph server.
//
// Two backends implement [Store]:
//   - [FileStore]: one JSON file per graph under a directory (default
//     ~/.local/share/spiderweb/graphs)
//   - [MongoStore]: one document per graph in a MongoDB collection
//
// Graph names are validated with [errors.ValidateName] before they reach a
// backend, so they are safe as file names and document ids. Only the wire
// fields of a graph are stored; simulation state never leaves the process.
package store

import (
	"context"

	"github.com/matzehuels/spiderweb/pkg/graph"
)

// DefaultName is the graph served when no name is given.
const DefaultName = "default"

// Store loads and saves named graphs.
//
// Load returns an error with code NOT_FOUND when the graph does not exist.
type Store interface {
	Load(ctx context.Context, name string) (graph.Graph, error)
	Save(ctx context.Context, name string, g graph.Graph) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
	Close() error
}
