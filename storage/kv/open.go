package kv

import (
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core"
	boltkv "github.com/trezcool/studytrack/storage/kv/bolt"
	inmemkv "github.com/trezcool/studytrack/storage/kv/inmem"
	pgkv "github.com/trezcool/studytrack/storage/kv/postgres"
)

// Open returns the KVStore selected by `conf.Store.Driver`.
func Open(conf *core.Config) (core.KVStore, error) {
	switch conf.Store.Driver {
	case core.StoreMemory, "":
		return inmemkv.New(), nil
	case core.StoreBolt:
		store, err := boltkv.Open(conf.Store.BoltPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case core.StorePostgres:
		if conf.Store.PostgresDSN == "" {
			return nil, errors.New("store.postgresDSN is required by the postgres driver")
		}
		store, err := pgkv.Open(conf.Store.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, errors.Errorf("unknown store driver %q", conf.Store.Driver)
	}
}
