package task

import (
	"context"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("task")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		ListTasks(ctx context.Context, tenant string) ([]Task, error)
		GetTask(ctx context.Context, tenant, id string) (Task, error)
		CreateTask(ctx context.Context, t Task) (Task, error)
		UpdateTask(ctx context.Context, tenant, id string, ut UpdateTask) (Task, error)
		DeleteTask(ctx context.Context, tenant, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) List(ctx context.Context, tenant string) ([]Task, error) {
	return svc.repo.ListTasks(ctx, tenant)
}

func (svc *Service) Get(ctx context.Context, tenant, id string) (Task, error) {
	return svc.repo.GetTask(ctx, tenant, id)
}

// Create does not check that SubjectID references an existing Subject.
func (svc *Service) Create(ctx context.Context, tenant string, nt NewTask) (Task, error) {
	if err := nt.Validate(); err != nil {
		return Task{}, err
	}
	t, err := svc.repo.CreateTask(ctx, Task{
		Owner:       tenant,
		SubjectID:   nt.SubjectID,
		Title:       nt.Title,
		Description: nt.Description,
		Type:        nt.Type,
		Priority:    nt.Priority,
		DueDate:     nt.DueDate,
		Status:      nt.Status,
		CreatedAt:   nowFunc().UTC(),
	})
	return t, errors.Wrap(err, "creating task")
}

func (svc *Service) Update(ctx context.Context, tenant, id string, ut UpdateTask) (Task, error) {
	if err := ut.Validate(); err != nil {
		return Task{}, err
	}
	t, err := svc.repo.UpdateTask(ctx, tenant, id, ut)
	return t, errors.Wrap(err, "updating task")
}

func (svc *Service) Delete(ctx context.Context, tenant, id string) error {
	return errors.Wrap(svc.repo.DeleteTask(ctx, tenant, id), "deleting task")
}
