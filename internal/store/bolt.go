package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var bucketDocuments = []byte("documents")

// BoltBackend keeps every document in one bbolt bucket keyed by kind.
type BoltBackend struct {
	db *bolt.DB
}

func OpenBolt(path string) (*BoltBackend, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create bolt dir")
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create documents bucket")
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Load(_ context.Context, kind Kind) ([]byte, error) {
	var out []byte
	err := b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketDocuments)
		v := bk.Get([]byte(kind))
		if v == nil {
			out = DefaultDocument(kind)
			return bk.Put([]byte(kind), out)
		}
		// v is only valid inside the transaction.
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, fail("load", kind, err, "bolt get")
	}
	return out, nil
}

func (b *BoltBackend) Save(_ context.Context, kind Kind, doc []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDocuments).Put([]byte(kind), doc)
	})
	if err != nil {
		return fail("save", kind, err, "bolt put")
	}
	return nil
}

func (b *BoltBackend) Close() error { return b.db.Close() }
