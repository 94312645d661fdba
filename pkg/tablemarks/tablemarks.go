// Package tablemarks is the public entry point: it picks the persistence
// backend named by a Config and opens a highlight store on it.
//
// Example:
//
//	store, err := tablemarks.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "/home/me/.local/share/tablemarks",
//	}, nil)
package tablemarks

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/tablemarks/internal/highlight"
	"github.com/mesh-intelligence/tablemarks/internal/paths"
	"github.com/mesh-intelligence/tablemarks/internal/persist"
	"github.com/mesh-intelligence/tablemarks/internal/sqlite"
	"github.com/mesh-intelligence/tablemarks/pkg/types"
)

// Version is the release version of tablemarks.
const Version = "0.1.0"

// NewPersister returns the persister selected by cfg.Backend. Zero fields
// of cfg take their defaults first.
func NewPersister(cfg types.Config) (types.Persister, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %q", err, cfg.Backend)
	}
	switch cfg.Backend {
	case types.BackendSQLite:
		return sqlite.NewPersister(cfg.DataDir), nil
	default:
		return persist.NewFile(paths.ResolveStoreFile(cfg.DataDir, cfg.StoreFile)), nil
	}
}

// Open creates a highlight store backed by the persister cfg selects and
// loads it. A nil logger discards log output.
func Open(cfg types.Config, logger *log.Logger) (*highlight.Store, error) {
	p, err := NewPersister(cfg)
	if err != nil {
		return nil, err
	}
	s := highlight.New(p, logger)
	s.Load()
	return s, nil
}
