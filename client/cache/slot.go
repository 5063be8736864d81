package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// State of a Slot.
type State int

const (
	Empty State = iota
	Loading
	Fresh
	Stale
	Error
)

func (s State) String() string {
	switch s {
	case Empty:
		return "EMPTY"
	case Loading:
		return "LOADING"
	case Fresh:
		return "FRESH"
	case Stale:
		return "STALE"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Fetcher loads the authoritative value of a slot.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Slot caches a single value.
//
// epoch changes on reset only: fetches started in another epoch are neither joined nor committed.
// version changes on reset and on every local write: a fetch that started before a local write
// is neither joined nor allowed to overwrite it.
type Slot[T any] struct {
	store *Store
	key   string
	fetch Fetcher[T]

	mu         sync.Mutex
	value      T
	hasValue   bool
	fetchedAt  time.Time
	err        error
	loading    bool // foreground fetch: exposed as Loading
	refreshing bool // background refresh of a stale value: not exposed
	loadingAt  uint64 // version the latest foreground fetch started at
	refreshAt  uint64 // version the latest background refresh started at
	epoch      uint64
	version    uint64
	subs       map[int]func(T)
	nextSub    int
}

// NewSlot registers a slot named `key` in `store`. Keys must be unique per store.
func NewSlot[T any](store *Store, key string, fetch Fetcher[T]) *Slot[T] {
	s := &Slot[T]{
		store: store,
		key:   key,
		fetch: fetch,
		subs:  make(map[int]func(T)),
	}
	store.register(s)
	return s
}

// Read returns the cached value when there is one, unless `force` is set.
// A stale value is still returned immediately, and a single background refresh is started.
// Otherwise Read waits for a fetch, joining the one in flight if any. On failure the prior
// value, if any, is returned along with the error and stays cached.
// Cancelling `ctx` only stops waiting: the fetch completes and updates the slot.
func (s *Slot[T]) Read(ctx context.Context, force bool) (T, error) {
	s.mu.Lock()
	if !force && s.hasValue {
		v := s.value
		if s.isStale() && !s.loading && !s.refreshing {
			s.refreshing = true
			s.refreshAt = s.version
			s.begin(ctx)
		}
		s.mu.Unlock()
		return v, nil
	}
	s.loading = true
	s.loadingAt = s.version
	ch := s.begin(ctx)
	s.mu.Unlock()

	select {
	case res := <-ch:
		if res.Err != nil {
			prior, _ := s.Peek()
			return prior, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// begin starts, or joins, the fetch of the current epoch and version. Must be called with s.mu held.
func (s *Slot[T]) begin(ctx context.Context) <-chan singleflight.Result {
	epoch, version := s.epoch, s.version
	fetchCtx := context.WithoutCancel(ctx)
	return s.store.group.DoChan(fmt.Sprintf("%s#%d.%d", s.key, epoch, version), func() (interface{}, error) {
		v, err := s.fetch(fetchCtx)
		s.commit(epoch, version, v, err)
		return v, err
	})
}

func (s *Slot[T]) commit(epoch, version uint64, v T, err error) {
	s.mu.Lock()
	if epoch != s.epoch { // reset while fetching
		s.mu.Unlock()
		return
	}
	// a newer fetch may still be in flight
	if version == s.loadingAt {
		s.loading = false
	}
	if version == s.refreshAt {
		s.refreshing = false
	}
	if version != s.version { // written locally while fetching
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.err = err
		s.mu.Unlock()
		return
	}
	s.value = v
	s.hasValue = true
	s.fetchedAt = s.store.now()
	s.err = nil
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, v)
}

// Refresh force-fetches the slot if it holds a value; an empty slot is left to its next Read.
func (s *Slot[T]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	has := s.hasValue
	s.mu.Unlock()
	if !has {
		return nil
	}
	_, err := s.Read(ctx, true)
	return err
}

// Update replaces the cached value with fn(value) and returns a function restoring the prior one.
// It is a no-op returning ok=false when the slot holds no value.
func (s *Slot[T]) Update(fn func(T) T) (undo func(), ok bool) {
	s.mu.Lock()
	if !s.hasValue {
		s.mu.Unlock()
		return func() {}, false
	}
	prev, epoch := s.value, s.epoch
	s.value = fn(prev)
	s.version++
	v, subs := s.value, s.subscribers()
	s.mu.Unlock()

	notify(subs, v)
	return func() { s.restore(epoch, prev) }, true
}

func (s *Slot[T]) restore(epoch uint64, prev T) {
	s.mu.Lock()
	if epoch != s.epoch || !s.hasValue {
		s.mu.Unlock()
		return
	}
	s.value = prev
	s.version++
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, prev)
}

func (s *Slot[T]) reset() {
	s.mu.Lock()
	var zero T
	s.value = zero
	s.hasValue = false
	s.fetchedAt = time.Time{}
	s.err = nil
	s.loading = false
	s.refreshing = false
	s.epoch++
	s.version++
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, zero)
}

// Subscribe calls fn with every new visible value until cancel is called.
func (s *Slot[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Slot[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.loading:
		return Loading
	case s.err != nil:
		return Error
	case !s.hasValue:
		return Empty
	case s.isStale():
		return Stale
	default:
		return Fresh
	}
}

// Peek returns the cached value without fetching.
func (s *Slot[T]) Peek() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.hasValue
}

// Err returns the error of the last failed fetch, cleared by the next successful one.
func (s *Slot[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Slot[T]) isStale() bool {
	return s.store.now().Sub(s.fetchedAt) >= s.store.ttl
}

func (s *Slot[T]) subscribers() []func(T) {
	subs := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify[T any](subs []func(T), v T) {
	for _, fn := range subs {
		fn(v)
	}
}
