package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the staleness window used when Options.TTL is not set.
const DefaultTTL = 30 * time.Second

type (
	Options struct {
		// TTL is how long a fetched value is served without a new fetch.
		TTL time.Duration
		Now func() time.Time // mockable

		// InvalidateTasksOnSubjectDelete force-refreshes the cached tasks and analytics
		// after a successful subject delete, since the gateway deletes the subject's tasks too.
		InvalidateTasksOnSubjectDelete bool
	}

	// Store owns every slot of a client process and coalesces their fetches.
	Store struct {
		ttl   time.Duration
		now   func() time.Time
		group singleflight.Group

		mu    sync.Mutex
		slots []resetter
	}

	resetter interface {
		reset()
	}
)

func NewStore(opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{ttl: opts.TTL, now: opts.Now}
}

func (s *Store) register(r resetter) {
	s.mu.Lock()
	s.slots = append(s.slots, r)
	s.mu.Unlock()
}

// Reset empties every slot, whatever its state. Fetches in flight when Reset is called
// still complete, but their results are dropped.
func (s *Store) Reset() {
	s.mu.Lock()
	slots := append([]resetter(nil), s.slots...)
	s.mu.Unlock()

	for _, r := range slots {
		r.reset()
	}
}
