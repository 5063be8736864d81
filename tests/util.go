package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/trezcool/studytrack/core/profile"
	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
	inmemkv "github.com/trezcool/studytrack/storage/kv/inmem"
	"github.com/trezcool/studytrack/storage/kvrepo"
)

// NewRepository returns a repository over a fresh in-memory store.
func NewRepository() (*kvrepo.Repository, *inmemkv.Store) {
	store := inmemkv.New()
	return kvrepo.New(store), store
}

func CreateSubject(t *testing.T, repo subject.Repository, tenant, name, color string, createdAt ...time.Time) subject.Subject {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	subj, err := repo.CreateSubject(context.Background(), subject.Subject{
		Owner:       tenant,
		Name:        name,
		ColorTag:    color,
		SharedUsers: []string{},
		CreatedAt:   tstamp,
	})
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return subj
}

func CreateTask(t *testing.T, repo task.Repository, tenant, subjectID, title, status string, createdAt ...time.Time) task.Task {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	tsk, err := repo.CreateTask(context.Background(), task.Task{
		Owner:     tenant,
		SubjectID: subjectID,
		Title:     title,
		Type:      task.TypeAssignment,
		Priority:  task.PriorityMedium,
		DueDate:   tstamp.Format("2006-01-02"),
		Status:    status,
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateTask() failed: %v", err)
	}
	return tsk
}

func CreateProfile(t *testing.T, repo profile.Repository, tenant, email, name string) profile.Profile {
	p, err := repo.CreateProfile(context.Background(), profile.Profile{
		ID:        tenant,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateProfile() failed: %v", err)
	}
	return p
}

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
