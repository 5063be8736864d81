package kvrepo

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core"
)

// key namespaces
const (
	subjectNS = "subject"
	taskNS    = "task"
	profileNS = "user"
)

var errInvalidTenant = core.NewValidationError(errors.New("invalid tenant id"))

// Repository scopes every entity to its tenant by namespacing keys as `entity:tenant:id`.
type Repository struct {
	kv     core.KVStore
	idFunc func() string
}

func New(kv core.KVStore) *Repository {
	vala.BeginValidation().Validate(vala.IsNotNil(kv, "kv")).CheckAndPanic()
	return &Repository{
		kv:     kv,
		idFunc: func() string { return uuid.New().String() },
	}
}

func entityKey(ns, tenant, id string) string { return ns + ":" + tenant + ":" + id }
func tenantPrefix(ns, tenant string) string  { return ns + ":" + tenant + ":" }
func profileKey(tenant string) string         { return profileNS + ":" + tenant }

// checkTenant rejects tenants that could escape their key prefix.
func checkTenant(tenant string) error {
	if tenant == "" || strings.Contains(tenant, ":") {
		return errInvalidTenant
	}
	return nil
}

func get[T any](ctx context.Context, kv core.KVStore, key string, notFound error) (T, error) {
	var out T
	data, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return out, notFound
		}
		return out, core.NewStoreError("get", key, err)
	}
	if err = json.Unmarshal(data, &out); err != nil {
		return out, core.NewStoreError("decode", key, err)
	}
	return out, nil
}

func put(ctx context.Context, kv core.KVStore, key string, val interface{}) error {
	data, err := json.Marshal(val)
	if err != nil {
		return core.NewStoreError("encode", key, err)
	}
	if err = kv.Set(ctx, key, data); err != nil {
		return core.NewStoreError("set", key, err)
	}
	return nil
}

func del(ctx context.Context, kv core.KVStore, key string) error {
	if err := kv.Delete(ctx, key); err != nil {
		return core.NewStoreError("delete", key, err)
	}
	return nil
}

// scan decodes every value under `prefix`, ordered by creation time then id. Never returns a nil slice.
func scan[T any](ctx context.Context, kv core.KVStore, prefix string, sortKey func(T) (time.Time, string)) ([]T, error) {
	vals, err := kv.Scan(ctx, prefix)
	if err != nil {
		return nil, core.NewStoreError("scan", prefix, err)
	}

	out := make([]T, 0, len(vals))
	for _, data := range vals {
		var v T
		if err = json.Unmarshal(data, &v); err != nil {
			return nil, core.NewStoreError("decode", prefix, err)
		}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, idi := sortKey(out[i])
		tj, idj := sortKey(out[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return idi < idj
	})
	return out, nil
}
