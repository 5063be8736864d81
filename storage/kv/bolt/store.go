package boltkv

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/trezcool/studytrack/core"
)

var bucket = []byte("kv_store")

// Store is a KVStore backed by a single bbolt bucket.
type Store struct {
	db *bbolt.DB
}

var _ core.KVStore = (*Store)(nil)

// Open opens (or creates) the database file at `path`.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrap(err, "creating data directory")
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "opening bolt database")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating bucket")
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(key))
		if v == nil {
			return core.ErrKeyNotFound
		}
		// v is only valid for the life of the transaction
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), value)
	})
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(key))
	})
}

func (s *Store) Scan(ctx context.Context, prefix string) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vals := make([][]byte, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucket).Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			vals = append(vals, append([]byte(nil), v...))
		}
		return nil
	})
	return vals, err
}

func (s *Store) Close() error {
	return s.db.Close()
}
