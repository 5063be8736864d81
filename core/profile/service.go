package profile

import (
	"context"
	"net/mail"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/studytrack/core"
	"github.com/trezcool/studytrack/core/auth"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("profile")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		GetProfile(ctx context.Context, tenant string) (Profile, error)
		CreateProfile(ctx context.Context, p Profile) (Profile, error)
		UpdateProfile(ctx context.Context, tenant string, up UpdateProfile) (Profile, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

// NewService panics without a repository; a nil mailSvc disables the welcome email.
func NewService(repo Repository, mailSvc core.EmailService) *Service {
	vala.BeginValidation().Validate(vala.IsNotNil(repo, "repo")).CheckAndPanic()
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) Get(ctx context.Context, tenant string) (Profile, error) {
	return svc.repo.GetProfile(ctx, tenant)
}

// Create stores the profile of a freshly signed up identity and sends the welcome email.
func (svc *Service) Create(ctx context.Context, id auth.Identity) (Profile, error) {
	p, err := svc.repo.CreateProfile(ctx, Profile{
		ID:        id.ID,
		Email:     id.Email,
		Name:      id.Name,
		CreatedAt: nowFunc().UTC(),
	})
	if err != nil {
		return Profile{}, errors.Wrap(err, "creating profile")
	}
	if svc.mailSvc != nil {
		svc.mailSvc.SendMessages(WelcomeMessage(p))
	}
	return p, nil
}

func (svc *Service) Update(ctx context.Context, tenant string, up UpdateProfile) (Profile, error) {
	if err := up.Validate(); err != nil {
		return Profile{}, err
	}
	p, err := svc.repo.UpdateProfile(ctx, tenant, up)
	return p, errors.Wrap(err, "updating profile")
}

// WelcomeMessage builds the email sent right after signup.
func WelcomeMessage(p Profile) *core.EmailMessage {
	return &core.EmailMessage{
		To:           []mail.Address{{Name: p.Name, Address: p.Email}},
		Subject:      "Welcome to " + core.Conf.AppName,
		TextTemplate: welcomeTextTmpl,
		HTMLTemplate: welcomeHTMLTmpl,
		TemplateData: p,
	}
}
