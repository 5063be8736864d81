package cache

import (
	"context"

	"github.com/trezcool/studytrack/core/analytics"
	"github.com/trezcool/studytrack/core/profile"
	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
)

// slot keys
const (
	subjectsKey  = "subjects"
	tasksKey     = "tasks"
	profileKey   = "profile"
	analyticsKey = "analytics"
)

// Gateway is the remote side of the cache. *client.Client implements it.
type Gateway interface {
	ListSubjects(ctx context.Context) ([]subject.Subject, error)
	CreateSubject(ctx context.Context, ns subject.NewSubject) (subject.Subject, error)
	UpdateSubject(ctx context.Context, id string, us subject.UpdateSubject) (subject.Subject, error)
	DeleteSubject(ctx context.Context, id string) error

	ListTasks(ctx context.Context) ([]task.Task, error)
	CreateTask(ctx context.Context, nt task.NewTask) (task.Task, error)
	UpdateTask(ctx context.Context, id string, ut task.UpdateTask) (task.Task, error)
	DeleteTask(ctx context.Context, id string) error

	GetProfile(ctx context.Context) (profile.Profile, error)
	UpdateProfile(ctx context.Context, up profile.UpdateProfile) (profile.Profile, error)

	GetAnalytics(ctx context.Context) (analytics.Snapshot, error)
}

type (
	SubjectCollection = Collection[subject.Subject, subject.NewSubject, subject.UpdateSubject]
	TaskCollection    = Collection[task.Task, task.NewTask, task.UpdateTask]

	// Cache is the single mediator between views and the gateway.
	Cache struct {
		Subjects  *SubjectCollection
		Tasks     *TaskCollection
		Profile   *ProfileCache
		Analytics *Slot[analytics.Snapshot]

		store *Store
	}
)

func New(gw Gateway, opts Options) *Cache {
	store := NewStore(opts)
	c := &Cache{
		store: store,
		Subjects: newCollection(store, subjectsKey, entityOps[subject.Subject, subject.NewSubject, subject.UpdateSubject]{
			id:     func(s subject.Subject) string { return s.ID },
			apply:  subject.Subject.Apply,
			list:   gw.ListSubjects,
			create: gw.CreateSubject,
			update: gw.UpdateSubject,
			delete: gw.DeleteSubject,
		}),
		Tasks: newCollection(store, tasksKey, entityOps[task.Task, task.NewTask, task.UpdateTask]{
			id:     func(t task.Task) string { return t.ID },
			apply:  task.Task.Apply,
			list:   gw.ListTasks,
			create: gw.CreateTask,
			update: gw.UpdateTask,
			delete: gw.DeleteTask,
		}),
		Profile:   newProfileCache(store, gw),
		Analytics: NewSlot[analytics.Snapshot](store, analyticsKey, gw.GetAnalytics),
	}

	// a failed subject delete may have cascaded part way: nothing dependent can be trusted
	c.Subjects.deleteFailed = func(ctx context.Context, _ string) { c.refreshDependents(ctx) }
	if opts.InvalidateTasksOnSubjectDelete {
		c.Subjects.afterDelete = func(ctx context.Context, _ string) { c.refreshDependents(ctx) }
	}
	return c
}

// refreshDependents force-refreshes what a subject delete can change besides the subject list.
func (c *Cache) refreshDependents(ctx context.Context) {
	_ = c.Tasks.Slot().Refresh(ctx)
	_ = c.Analytics.Refresh(ctx)
}

// SignOut empties every slot so that nothing cached for one tenant is served to the next.
func (c *Cache) SignOut() {
	c.store.Reset()
}

// ProfileCache caches the tenant's profile.
type ProfileCache struct {
	slot   *Slot[profile.Profile]
	update func(ctx context.Context, up profile.UpdateProfile) (profile.Profile, error)
}

func newProfileCache(store *Store, gw Gateway) *ProfileCache {
	return &ProfileCache{
		slot:   NewSlot[profile.Profile](store, profileKey, gw.GetProfile),
		update: gw.UpdateProfile,
	}
}

func (pc *ProfileCache) Read(ctx context.Context, force bool) (profile.Profile, error) {
	return pc.slot.Read(ctx, force)
}

func (pc *ProfileCache) Slot() *Slot[profile.Profile] { return pc.slot }

// Update is optimistic, see Collection.Update.
func (pc *ProfileCache) Update(ctx context.Context, up profile.UpdateProfile) (profile.Profile, error) {
	undo, _ := pc.slot.Update(func(p profile.Profile) profile.Profile { return p.Apply(up) })

	p, err := pc.update(ctx, up)
	if err != nil {
		undo()
		_, _ = pc.slot.Read(ctx, true)
		return profile.Profile{}, err
	}
	pc.slot.Update(func(profile.Profile) profile.Profile { return p })
	return p, nil
}
