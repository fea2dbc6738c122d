package store

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	applog "shelflife/internal/log"
)

// FileBackend keeps each document as <dir>/<kind>.json.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) *FileBackend { return &FileBackend{dir: dir} }

func (b *FileBackend) path(kind Kind) string {
	return filepath.Join(b.dir, string(kind)+".json")
}

func (b *FileBackend) Load(_ context.Context, kind Kind) ([]byte, error) {
	data, err := os.ReadFile(b.path(kind))
	if errors.Is(err, fs.ErrNotExist) {
		def := DefaultDocument(kind)
		if werr := b.write(kind, def); werr != nil {
			applog.Error(nil, "store.file.create.fail", werr, map[string]any{"kind": string(kind)})
		}
		return def, nil
	}
	if err != nil {
		return nil, fail("load", kind, err, "read "+b.path(kind))
	}
	if blank(data) {
		return DefaultDocument(kind), nil
	}
	return data, nil
}

func (b *FileBackend) Save(_ context.Context, kind Kind, doc []byte) error {
	if err := b.write(kind, doc); err != nil {
		return fail("save", kind, err, "write "+b.path(kind))
	}
	return nil
}

// write replaces the document through a temp file so readers never see a
// half-written file.
func (b *FileBackend) write(kind Kind, doc []byte) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(b.dir, "."+string(kind)+"-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path(kind))
}

func (b *FileBackend) Close() error { return nil }
