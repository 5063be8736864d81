package kvrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studytrack/core"
	"github.com/trezcool/studytrack/core/profile"
	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
	inmemkv "github.com/trezcool/studytrack/storage/kv/inmem"
	"github.com/trezcool/studytrack/storage/kvrepo"
	testutil "github.com/trezcool/studytrack/tests"
)

var (
	ctx = context.Background()
	t0  = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
)

func strPtr(s string) *string { return &s }

func TestRepository_subjects(t *testing.T) {
	repo, store := testutil.NewRepository()

	calc := testutil.CreateSubject(t, repo, "u1", "Calculus", "#3B82F6", t0.Add(time.Hour))
	phys := testutil.CreateSubject(t, repo, "u1", "Physics", "#EF4444", t0)
	testutil.CreateSubject(t, repo, "u2", "Chemistry", "#10B981", t0)

	assert.NotEmpty(t, calc.ID)
	assert.NotEqual(t, calc.ID, phys.ID)
	assert.Contains(t, store.Keys(), "subject:u1:"+calc.ID)

	t.Run("list is tenant scoped and ordered by creation", func(t *testing.T) {
		subjs, err := repo.ListSubjects(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []subject.Subject{phys, calc}, subjs)
	})

	t.Run("list of unknown tenant is empty", func(t *testing.T) {
		subjs, err := repo.ListSubjects(ctx, "u3")
		require.NoError(t, err)
		assert.NotNil(t, subjs)
		assert.Empty(t, subjs)
	})

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetSubject(ctx, "u1", calc.ID)
		require.NoError(t, err)
		assert.Equal(t, calc, got)
	})

	t.Run("get from another tenant", func(t *testing.T) {
		_, err := repo.GetSubject(ctx, "u2", calc.ID)
		assert.Equal(t, subject.ErrNotFound, err)
	})

	t.Run("update", func(t *testing.T) {
		got, err := repo.UpdateSubject(ctx, "u1", calc.ID, subject.UpdateSubject{ColorTag: strPtr("#000000")})
		require.NoError(t, err)
		assert.Equal(t, "Calculus", got.Name)
		assert.Equal(t, "#000000", got.ColorTag)
		assert.Equal(t, calc.CreatedAt, got.CreatedAt)

		stored, err := repo.GetSubject(ctx, "u1", calc.ID)
		require.NoError(t, err)
		assert.Equal(t, got, stored)
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		before, err := repo.GetSubject(ctx, "u1", phys.ID)
		require.NoError(t, err)
		after, err := repo.UpdateSubject(ctx, "u1", phys.ID, subject.UpdateSubject{})
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := repo.UpdateSubject(ctx, "u1", "nope", subject.UpdateSubject{Name: strPtr("x")})
		assert.True(t, core.IsNotFound(err))
	})
}

func TestRepository_DeleteSubject(t *testing.T) {
	repo, store := testutil.NewRepository()

	calc := testutil.CreateSubject(t, repo, "u1", "Calculus", "blue")
	phys := testutil.CreateSubject(t, repo, "u1", "Physics", "red")
	other := testutil.CreateSubject(t, repo, "u2", "Calculus", "blue")

	testutil.CreateTask(t, repo, "u1", calc.ID, "HW1", task.StatusTodo, t0)
	testutil.CreateTask(t, repo, "u1", calc.ID, "HW2", task.StatusDone, t0.Add(time.Minute))
	keep := testutil.CreateTask(t, repo, "u1", phys.ID, "Lab", task.StatusTodo, t0)
	loose := testutil.CreateTask(t, repo, "u1", "", "Read", task.StatusTodo, t0.Add(time.Hour))
	foreign := testutil.CreateTask(t, repo, "u2", other.ID, "HW1", task.StatusTodo, t0)

	require.NoError(t, repo.DeleteSubject(ctx, "u1", calc.ID))

	_, err := repo.GetSubject(ctx, "u1", calc.ID)
	assert.Equal(t, subject.ErrNotFound, err)

	tasks, err := repo.ListTasks(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []task.Task{keep, loose}, tasks)

	foreignTasks, err := repo.ListTasks(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []task.Task{foreign}, foreignTasks)

	keysBefore := store.Keys()
	assert.NoError(t, repo.DeleteSubject(ctx, "u1", calc.ID), "deleting twice is not an error")
	assert.Equal(t, keysBefore, store.Keys())
}

func TestRepository_tasks(t *testing.T) {
	repo, _ := testutil.NewRepository()

	t2 := testutil.CreateTask(t, repo, "u1", "", "B", task.StatusTodo, t0.Add(time.Hour))
	t1 := testutil.CreateTask(t, repo, "u1", "", "A", task.StatusInProgress, t0)

	tasks, err := repo.ListTasks(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []task.Task{t1, t2}, tasks)

	updated, err := repo.UpdateTask(ctx, "u1", t1.ID, task.UpdateTask{Status: strPtr(task.StatusDone)})
	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, updated.Status)
	assert.Equal(t, "A", updated.Title)
	assert.Equal(t, t1.CreatedAt, updated.CreatedAt)

	_, err = repo.UpdateTask(ctx, "u2", t1.ID, task.UpdateTask{Status: strPtr(task.StatusDone)})
	assert.Equal(t, task.ErrNotFound, err)

	require.NoError(t, repo.DeleteTask(ctx, "u1", t1.ID))
	_, err = repo.GetTask(ctx, "u1", t1.ID)
	assert.Equal(t, task.ErrNotFound, err)
	assert.NoError(t, repo.DeleteTask(ctx, "u1", t1.ID))
}

func TestRepository_profiles(t *testing.T) {
	repo, store := testutil.NewRepository()
	p := testutil.CreateProfile(t, repo, "u1", "amy@test.cd", "Amy")
	assert.Contains(t, store.Keys(), "user:u1")

	got, err := repo.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	got, err = repo.UpdateProfile(ctx, "u1", profile.UpdateProfile{Avatar: strPtr("https://cdn.test.cd/a.png")})
	require.NoError(t, err)
	assert.Equal(t, "Amy", got.Name)
	require.NotNil(t, got.Avatar)
	assert.Equal(t, "https://cdn.test.cd/a.png", *got.Avatar)

	_, err = repo.GetProfile(ctx, "u2")
	assert.Equal(t, profile.ErrNotFound, err)
}

func TestRepository_invalidTenant(t *testing.T) {
	repo, store := testutil.NewRepository()

	for _, tenant := range []string{"", "u1:evil"} {
		_, err := repo.ListSubjects(ctx, tenant)
		assert.True(t, core.IsValidation(err), "ListSubjects(%q)", tenant)
		_, err = repo.ListTasks(ctx, tenant)
		assert.True(t, core.IsValidation(err), "ListTasks(%q)", tenant)
		_, err = repo.CreateSubject(ctx, subject.Subject{Owner: tenant, Name: "x"})
		assert.True(t, core.IsValidation(err), "CreateSubject(%q)", tenant)
		_, err = repo.GetProfile(ctx, tenant)
		assert.True(t, core.IsValidation(err), "GetProfile(%q)", tenant)
	}
	assert.Empty(t, store.Keys())
}

// failingKV fails every call once `fail` is set.
type failingKV struct {
	*inmemkv.Store
	fail bool
}

var errBoom = errors.New("disk on fire")

func (f *failingKV) Get(c context.Context, key string) ([]byte, error) {
	if f.fail {
		return nil, errBoom
	}
	return f.Store.Get(c, key)
}

func (f *failingKV) Set(c context.Context, key string, value []byte) error {
	if f.fail {
		return errBoom
	}
	return f.Store.Set(c, key, value)
}

func (f *failingKV) Scan(c context.Context, prefix string) ([][]byte, error) {
	if f.fail {
		return nil, errBoom
	}
	return f.Store.Scan(c, prefix)
}

func TestRepository_storeErrors(t *testing.T) {
	kv := &failingKV{Store: inmemkv.New()}
	repo := kvrepo.New(kv)
	subj := testutil.CreateSubject(t, repo, "u1", "Calculus", "blue")
	kv.fail = true

	_, err := repo.GetSubject(ctx, "u1", subj.ID)
	var storeErr *core.StoreError
	require.True(t, errors.As(err, &storeErr), "got %v", err)
	assert.Equal(t, "get", storeErr.Op)
	assert.True(t, errors.Is(err, errBoom))
	assert.False(t, core.IsNotFound(err))

	_, err = repo.ListTasks(ctx, "u1")
	require.True(t, errors.As(err, &storeErr), "got %v", err)
	assert.Equal(t, "scan", storeErr.Op)

	err = repo.DeleteSubject(ctx, "u1", subj.ID)
	assert.True(t, errors.Is(err, errBoom))
}

func TestRepository_corruptValue(t *testing.T) {
	repo, store := testutil.NewRepository()
	require.NoError(t, store.Set(ctx, "task:u1:t1", []byte("not json")))

	_, err := repo.GetTask(ctx, "u1", "t1")
	var storeErr *core.StoreError
	require.True(t, errors.As(err, &storeErr), "got %v", err)
	assert.Equal(t, "decode", storeErr.Op)
}

func TestNew_requiresStore(t *testing.T) {
	assert.Panics(t, func() { kvrepo.New(nil) })
}
