package cache

import (
	"context"
)

// entityOps binds a Collection to one entity type of the gateway.
type entityOps[T, N, U any] struct {
	id     func(T) string
	apply  func(T, U) T
	list   Fetcher[[]T]
	create func(ctx context.Context, draft N) (T, error)
	update func(ctx context.Context, id string, patch U) (T, error)
	delete func(ctx context.Context, id string) error
}

// Collection caches the list of one entity type and coordinates its mutations.
// T is the entity, N its draft and U its partial update.
type Collection[T, N, U any] struct {
	slot *Slot[[]T]
	ops  entityOps[T, N, U]

	afterDelete  func(ctx context.Context, id string)
	deleteFailed func(ctx context.Context, id string) // after the resync of a failed delete
}

func newCollection[T, N, U any](store *Store, key string, ops entityOps[T, N, U]) *Collection[T, N, U] {
	return &Collection[T, N, U]{
		slot: NewSlot(store, key, ops.list),
		ops:  ops,
	}
}

func (c *Collection[T, N, U]) Read(ctx context.Context, force bool) ([]T, error) {
	return c.slot.Read(ctx, force)
}

// Slot exposes the underlying slot to views (state, subscriptions).
func (c *Collection[T, N, U]) Slot() *Slot[[]T] { return c.slot }

// Create is not optimistic: the server-confirmed entity is appended once the gateway returns it.
func (c *Collection[T, N, U]) Create(ctx context.Context, draft N) (T, error) {
	item, err := c.ops.create(ctx, draft)
	if err != nil {
		c.resync(ctx)
		var zero T
		return zero, err
	}
	c.slot.Update(func(items []T) []T {
		out := make([]T, 0, len(items)+1)
		out = append(out, items...)
		return append(out, item)
	})
	return item, nil
}

// Update applies `patch` to the cached entity before calling the gateway.
// On failure the optimistic change is rolled back, the list is force-refreshed and the gateway error returned.
func (c *Collection[T, N, U]) Update(ctx context.Context, id string, patch U) (T, error) {
	undo, _ := c.slot.Update(c.replace(id, func(item T) T { return c.ops.apply(item, patch) }))

	item, err := c.ops.update(ctx, id, patch)
	if err != nil {
		undo()
		c.resync(ctx)
		var zero T
		return zero, err
	}
	c.slot.Update(c.replace(id, func(T) T { return item }))
	return item, nil
}

// Delete removes the cached entity before calling the gateway; failures are handled as in Update.
func (c *Collection[T, N, U]) Delete(ctx context.Context, id string) error {
	undo, _ := c.slot.Update(func(items []T) []T {
		out := make([]T, 0, len(items))
		for _, item := range items {
			if c.ops.id(item) != id {
				out = append(out, item)
			}
		}
		return out
	})

	if err := c.ops.delete(ctx, id); err != nil {
		undo()
		c.resync(ctx)
		if c.deleteFailed != nil {
			c.deleteFailed(ctx, id)
		}
		return err
	}
	if c.afterDelete != nil {
		c.afterDelete(ctx, id)
	}
	return nil
}

func (c *Collection[T, N, U]) replace(id string, fn func(T) T) func([]T) []T {
	return func(items []T) []T {
		out := make([]T, len(items))
		for i, item := range items {
			if c.ops.id(item) == id {
				item = fn(item)
			}
			out[i] = item
		}
		return out
	}
}

// resync reloads server truth after a failed mutation; its own error is not reported.
func (c *Collection[T, N, U]) resync(ctx context.Context) {
	_, _ = c.slot.Read(ctx, true)
}
