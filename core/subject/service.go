package subject

import (
	"context"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("subject")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		ListSubjects(ctx context.Context, tenant string) ([]Subject, error)
		GetSubject(ctx context.Context, tenant, id string) (Subject, error)
		CreateSubject(ctx context.Context, subj Subject) (Subject, error)
		UpdateSubject(ctx context.Context, tenant, id string, us UpdateSubject) (Subject, error)
		// DeleteSubject deletes the subject and every task referencing it.
		DeleteSubject(ctx context.Context, tenant, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo}
}

func (svc *Service) List(ctx context.Context, tenant string) ([]Subject, error) {
	return svc.repo.ListSubjects(ctx, tenant)
}

func (svc *Service) Get(ctx context.Context, tenant, id string) (Subject, error) {
	return svc.repo.GetSubject(ctx, tenant, id)
}

func (svc *Service) Create(ctx context.Context, tenant string, ns NewSubject) (Subject, error) {
	if err := ns.Validate(); err != nil {
		return Subject{}, err
	}
	subj, err := svc.repo.CreateSubject(ctx, Subject{
		Owner:       tenant,
		Name:        ns.Name,
		ColorTag:    ns.ColorTag,
		SharedUsers: ns.SharedUsers,
		CreatedAt:   nowFunc().UTC(),
	})
	return subj, errors.Wrap(err, "creating subject")
}

func (svc *Service) Update(ctx context.Context, tenant, id string, us UpdateSubject) (Subject, error) {
	if err := us.Validate(); err != nil {
		return Subject{}, err
	}
	subj, err := svc.repo.UpdateSubject(ctx, tenant, id, us)
	return subj, errors.Wrap(err, "updating subject")
}

// Delete is idempotent; tasks of the subject are deleted first.
func (svc *Service) Delete(ctx context.Context, tenant, id string) error {
	return errors.Wrap(svc.repo.DeleteSubject(ctx, tenant, id), "deleting subject")
}
