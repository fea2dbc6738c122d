// Package store persists whole documents: the products array and the settings
// record. Every Save replaces the prior document; there are no partial writes.
package store

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
)

// Kind names one persisted document.
type Kind string

const (
	KindProducts Kind = "products"
	KindSettings Kind = "settings"
)

// Backend loads and saves whole documents.
//
// Load never reports a missing document: it creates the default for the kind
// and returns it. Anything else that goes wrong is a *StorageFailure.
type Backend interface {
	Load(ctx context.Context, kind Kind) ([]byte, error)
	Save(ctx context.Context, kind Kind, doc []byte) error
	Close() error
}

// DefaultDocument is what Load self-heals a missing document to.
func DefaultDocument(kind Kind) []byte {
	if kind == KindProducts {
		return []byte("[]")
	}
	return []byte("{}")
}

// Open selects a backend by driver name.
func Open(driver, dsn string) (Backend, error) {
	switch driver {
	case "", "file":
		return NewFileBackend(dsn), nil
	case "bolt":
		return OpenBolt(dsn)
	case "sqlite":
		return OpenSQLite(dsn)
	case "memory":
		return NewMemoryBackend(), nil
	default:
		return nil, errors.Errorf("unknown store driver %q", driver)
	}
}

func blank(b []byte) bool {
	return len(bytes.TrimSpace(b)) == 0
}
