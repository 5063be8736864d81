package analytics

import (
	"context"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
)

var nowFunc = time.Now // mockable

type (
	SubjectLister interface {
		ListSubjects(ctx context.Context, tenant string) ([]subject.Subject, error)
	}

	TaskLister interface {
		ListTasks(ctx context.Context, tenant string) ([]task.Task, error)
	}

	Service struct {
		subjects SubjectLister
		tasks    TaskLister
	}
)

func NewService(subjects SubjectLister, tasks TaskLister) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(subjects, "subjects"),
		vala.IsNotNil(tasks, "tasks"),
	).CheckAndPanic()

	return &Service{subjects: subjects, tasks: tasks}
}

// Snapshot aggregates the tenant's current subjects and tasks.
func (svc *Service) Snapshot(ctx context.Context, tenant string) (Snapshot, error) {
	subjs, err := svc.subjects.ListSubjects(ctx, tenant)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "listing subjects")
	}
	tasks, err := svc.tasks.ListTasks(ctx, tenant)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "listing tasks")
	}
	return Aggregate(subjs, tasks, nowFunc()), nil
}
