package kvrepo

import (
	"context"
	"time"

	"github.com/trezcool/studytrack/core/task"
)

func taskSortKey(t task.Task) (time.Time, string) { return t.CreatedAt, t.ID }

func (repo *Repository) ListTasks(ctx context.Context, tenant string) ([]task.Task, error) {
	if err := checkTenant(tenant); err != nil {
		return nil, err
	}
	return scan(ctx, repo.kv, tenantPrefix(taskNS, tenant), taskSortKey)
}

func (repo *Repository) GetTask(ctx context.Context, tenant, id string) (task.Task, error) {
	if err := checkTenant(tenant); err != nil {
		return task.Task{}, err
	}
	return get[task.Task](ctx, repo.kv, entityKey(taskNS, tenant, id), task.ErrNotFound)
}

func (repo *Repository) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	if err := checkTenant(t.Owner); err != nil {
		return task.Task{}, err
	}
	t.ID = repo.idFunc()
	if err := put(ctx, repo.kv, entityKey(taskNS, t.Owner, t.ID), t); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (repo *Repository) UpdateTask(ctx context.Context, tenant, id string, ut task.UpdateTask) (task.Task, error) {
	t, err := repo.GetTask(ctx, tenant, id)
	if err != nil {
		return task.Task{}, err
	}
	t = t.Apply(ut)
	if err = put(ctx, repo.kv, entityKey(taskNS, tenant, id), t); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (repo *Repository) DeleteTask(ctx context.Context, tenant, id string) error {
	if err := checkTenant(tenant); err != nil {
		return err
	}
	return del(ctx, repo.kv, entityKey(taskNS, tenant, id))
}
