package app

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/persist"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/filestore"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

// OpenStore returns the backend named by cfg. Callers close it.
func OpenStore(cfg config.StorageConfig) (store.KV, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return filestore.New(cfg.Dir)
	case config.BackendSQLite:
		return sqlitestore.Open(cfg.Path)
	case config.BackendMemory:
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Session bundles a controller with the store behind it.
type Session struct {
	*Controller
	Bridge *persist.Bridge
	KV     store.KV
}

// Start validates cfg, opens the store and hydrates a controller.
func Start(cfg *config.Config, logger *log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kv, err := OpenStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	bridge := persist.NewBridge(kv,
		persist.WithKey(cfg.Storage.Key),
		persist.WithOnCorrupt(persist.OnCorrupt(cfg.Storage.OnCorrupt)),
		persist.WithLogger(logger),
	)
	ctl, err := Open(bridge, nil)
	if err != nil {
		kv.Close()
		return nil, err
	}
	logger.Debug("session started", "backend", cfg.Storage.Backend, "key", bridge.Key(), "tasks", len(ctl.Tasks()))
	return &Session{Controller: ctl, Bridge: bridge, KV: kv}, nil
}

func (s *Session) Close() error { return s.KV.Close() }
