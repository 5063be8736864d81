package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trezcool/studytrack/core/analytics"
	"github.com/trezcool/studytrack/core/auth"
	"github.com/trezcool/studytrack/core/profile"
	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
)

func (c *Client) SignUp(ctx context.Context, na auth.NewAccount) (auth.Identity, error) {
	var resp struct {
		User auth.Identity `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/signup", na, &resp)
	return resp.User, err
}

// SignIn exchanges credentials for a token and starts sending it with every request.
func (c *Client) SignIn(ctx context.Context, creds auth.Credentials) (string, auth.Identity, error) {
	var resp struct {
		AccessToken string        `json:"access_token"`
		User        auth.Identity `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", creds, &resp); err != nil {
		return "", auth.Identity{}, err
	}
	c.SetToken(resp.AccessToken)
	return resp.AccessToken, resp.User, nil
}

func (c *Client) GetProfile(ctx context.Context) (profile.Profile, error) {
	var resp struct {
		Profile profile.Profile `json:"profile"`
	}
	err := c.do(ctx, http.MethodGet, "/user/profile", nil, &resp)
	return resp.Profile, err
}

func (c *Client) UpdateProfile(ctx context.Context, up profile.UpdateProfile) (profile.Profile, error) {
	var resp struct {
		Profile profile.Profile `json:"profile"`
	}
	err := c.do(ctx, http.MethodPut, "/user/profile", up, &resp)
	return resp.Profile, err
}

func (c *Client) ListSubjects(ctx context.Context) ([]subject.Subject, error) {
	var resp struct {
		Subjects []subject.Subject `json:"subjects"`
	}
	err := c.do(ctx, http.MethodGet, "/subjects", nil, &resp)
	return resp.Subjects, err
}

func (c *Client) CreateSubject(ctx context.Context, ns subject.NewSubject) (subject.Subject, error) {
	var resp struct {
		Subject subject.Subject `json:"subject"`
	}
	err := c.do(ctx, http.MethodPost, "/subjects", ns, &resp)
	return resp.Subject, err
}

func (c *Client) UpdateSubject(ctx context.Context, id string, us subject.UpdateSubject) (subject.Subject, error) {
	var resp struct {
		Subject subject.Subject `json:"subject"`
	}
	err := c.do(ctx, http.MethodPut, "/subjects/"+url.PathEscape(id), us, &resp)
	return resp.Subject, err
}

func (c *Client) DeleteSubject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/subjects/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	var resp struct {
		Tasks []task.Task `json:"tasks"`
	}
	err := c.do(ctx, http.MethodGet, "/tasks", nil, &resp)
	return resp.Tasks, err
}

func (c *Client) CreateTask(ctx context.Context, nt task.NewTask) (task.Task, error) {
	var resp struct {
		Task task.Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPost, "/tasks", nt, &resp)
	return resp.Task, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, ut task.UpdateTask) (task.Task, error) {
	var resp struct {
		Task task.Task `json:"task"`
	}
	err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), ut, &resp)
	return resp.Task, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) GetAnalytics(ctx context.Context) (analytics.Snapshot, error) {
	var snap analytics.Snapshot
	err := c.do(ctx, http.MethodGet, "/analytics", nil, &snap)
	return snap, err
}
