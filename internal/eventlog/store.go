package eventlog

import (
	"fmt"
	"path/filepath"

	"github.com/Mavwarf/mkicon/internal/paths"
)

// Store abstracts run history storage: FileStore (flat log file) or
// SQLiteStore.
type Store interface {
	// LogRun appends one build run.
	LogRun(r Run) error
	// Runs returns up to limit runs, newest first. 0 = all.
	Runs(limit int) ([]Run, error)
	// Clear deletes all history.
	Clear() error
	Path() string
	Close() error
}

// Backend names accepted by Open.
const (
	BackendOff    = "off"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open returns the store for backend, keeping its data in dir.
// BackendOff (or "") returns a nil Store and no error.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", BackendOff:
		return nil, nil
	case BackendFile:
		return NewFileStore(filepath.Join(dir, paths.LogFileName)), nil
	case BackendSQLite:
		s, err := NewSQLiteStore(filepath.Join(dir, paths.DBFileName))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown history backend %q (want off, file or sqlite)", backend)
	}
}
