package kvrepo

import (
	"context"
	"time"

	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
)

var (
	_ subject.Repository = (*Repository)(nil)
	_ task.Repository    = (*Repository)(nil)
)

func subjectSortKey(s subject.Subject) (time.Time, string) { return s.CreatedAt, s.ID }

func (repo *Repository) ListSubjects(ctx context.Context, tenant string) ([]subject.Subject, error) {
	if err := checkTenant(tenant); err != nil {
		return nil, err
	}
	return scan(ctx, repo.kv, tenantPrefix(subjectNS, tenant), subjectSortKey)
}

func (repo *Repository) GetSubject(ctx context.Context, tenant, id string) (subject.Subject, error) {
	if err := checkTenant(tenant); err != nil {
		return subject.Subject{}, err
	}
	return get[subject.Subject](ctx, repo.kv, entityKey(subjectNS, tenant, id), subject.ErrNotFound)
}

func (repo *Repository) CreateSubject(ctx context.Context, subj subject.Subject) (subject.Subject, error) {
	if err := checkTenant(subj.Owner); err != nil {
		return subject.Subject{}, err
	}
	subj.ID = repo.idFunc()
	if subj.SharedUsers == nil {
		subj.SharedUsers = []string{}
	}
	if err := put(ctx, repo.kv, entityKey(subjectNS, subj.Owner, subj.ID), subj); err != nil {
		return subject.Subject{}, err
	}
	return subj, nil
}

func (repo *Repository) UpdateSubject(ctx context.Context, tenant, id string, us subject.UpdateSubject) (subject.Subject, error) {
	subj, err := repo.GetSubject(ctx, tenant, id)
	if err != nil {
		return subject.Subject{}, err
	}
	subj = subj.Apply(us)
	if err = put(ctx, repo.kv, entityKey(subjectNS, tenant, id), subj); err != nil {
		return subject.Subject{}, err
	}
	return subj, nil
}

// DeleteSubject deletes the tasks referencing the subject one by one, then the subject itself.
// It is not atomic: the first failure aborts, leaving the remaining keys in place; retrying is safe.
func (repo *Repository) DeleteSubject(ctx context.Context, tenant, id string) error {
	if err := checkTenant(tenant); err != nil {
		return err
	}

	tasks, err := repo.ListTasks(ctx, tenant)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.SubjectID != id {
			continue
		}
		if err = del(ctx, repo.kv, entityKey(taskNS, tenant, t.ID)); err != nil {
			return err
		}
	}
	return del(ctx, repo.kv, entityKey(subjectNS, tenant, id))
}

