package commands

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studytrack/core/task"
	"github.com/trezcool/studytrack/tests/apitest"
)

const pwd = "s3cret-Pa55"

type cli struct {
	gw     *apitest.Gateway
	config string
}

func newCLI(t *testing.T) *cli {
	t.Setenv("STUDYTRACK_TOKEN", "")
	return &cli{gw: apitest.NewGateway(t), config: filepath.Join(t.TempDir(), "config.yaml")}
}

func (c *cli) run(args ...string) (string, error) {
	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append(args, "--api-url", c.gw.URL, "--config", c.config))
	err := cmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := c.run(args...)
	require.NoError(t, err, out)
	return out
}

func TestCommands_session(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("subjects", "list")
	assert.EqualError(t, err, "not signed in: run `studytrack signin` or set STUDYTRACK_TOKEN")

	out := c.mustRun(t, "signup", "--email", "amy@test.cd", "--name", "Amy", "--password", pwd)
	assert.Contains(t, out, "Account created for Amy <amy@test.cd>.")

	_, err = c.run("signin", "--email", "amy@test.cd", "--password", "wrong-pa55")
	assert.EqualError(t, err, "API error (status 401): invalid email or password")

	out = c.mustRun(t, "signin", "--email", "amy@test.cd", "--password", pwd)
	assert.Contains(t, out, "Signed in as Amy <amy@test.cd>.")

	out = c.mustRun(t, "profile", "show")
	assert.Contains(t, out, "Name:    Amy")
	assert.Contains(t, out, "Email:   amy@test.cd")

	out = c.mustRun(t, "profile", "set", "--name", "Amy B.", "--avatar", "https://cdn.test.cd/amy.png")
	assert.Contains(t, out, "Name:    Amy B.")
	assert.Contains(t, out, "Avatar:  https://cdn.test.cd/amy.png")
}

func TestCommands_tracking(t *testing.T) {
	c := newCLI(t)
	c.mustRun(t, "signup", "--email", "amy@test.cd", "--name", "Amy", "--password", pwd)
	c.mustRun(t, "signin", "--email", "amy@test.cd", "--password", pwd)
	ctx := context.Background()
	amy, err := c.gw.Provider.Lookup(ctx, "amy@test.cd")
	require.NoError(t, err)

	assert.Contains(t, c.mustRun(t, "subjects", "list"), "No subjects yet.")
	assert.Contains(t, c.mustRun(t, "subjects", "add", "Calculus", "--color", "blue"), "Created subject Calculus")

	subjs, err := c.gw.Repo.ListSubjects(ctx, amy.ID)
	require.NoError(t, err)
	require.Len(t, subjs, 1)
	calc := subjs[0]

	c.mustRun(t, "subjects", "edit", calc.ID, "--share", "bob@test.cd")
	out := c.mustRun(t, "subjects", "list")
	assert.Contains(t, out, "Calculus")
	assert.Contains(t, out, "bob@test.cd")

	out = c.mustRun(t, "tasks", "add", "HW1", "--due", "2025-03-01", "--priority", "high", "--subject", calc.ID)
	assert.Contains(t, out, `Created task "HW1"`)
	c.mustRun(t, "tasks", "add", "Read ch. 1", "--due", "2025-03-02")

	_, err = c.run("tasks", "add", "Bad", "--due", "tomorrow")
	assert.EqualError(t, err, "API error (status 400): due_date: must be a calendar date (YYYY-MM-DD)")

	tasks, err := c.gw.Repo.ListTasks(ctx, amy.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	hw1 := tasks[0]
	if hw1.Title != "HW1" {
		hw1 = tasks[1]
	}

	assert.Contains(t, c.mustRun(t, "tasks", "move", hw1.ID, "done"), `Moved "HW1" to done.`)
	_, err = c.run("tasks", "move", "nope", "done")
	assert.EqualError(t, err, "API error (status 404): task not found")

	out = c.mustRun(t, "tasks", "list", "--status", "done")
	assert.Contains(t, out, "HW1")
	assert.NotContains(t, out, "Read ch. 1")

	out = c.mustRun(t, "board")
	assert.Contains(t, out, "! HW1")
	assert.Contains(t, out, "1 to-do, 0 in progress, 1 done")

	out = c.mustRun(t, "stats")
	assert.Contains(t, out, "Tasks: 2 total, 1 done, 0 in progress, 1 to-do")
	assert.Contains(t, out, "100%")

	assert.Contains(t, c.mustRun(t, "subjects", "rm", calc.ID), "Deleted subject "+calc.ID)
	out = c.mustRun(t, "tasks", "list")
	assert.NotContains(t, out, "HW1")
	assert.Contains(t, out, "Read ch. 1")
}

func TestCommands_promptsPassword(t *testing.T) {
	c := newCLI(t)
	orig := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = orig })

	out := c.mustRun(t, "signup", "--email", "amy@test.cd", "--name", "Amy")
	assert.Contains(t, out, "Password: ")
	out = c.mustRun(t, "signin", "--email", "amy@test.cd", "--save=false")
	assert.Contains(t, out, "export STUDYTRACK_TOKEN=")
}

func row(todo, inProgress, done string) string {
	return fmt.Sprintf("%-28s | %-28s | %-28s\n", todo, inProgress, done)
}

func Test_renderBoard(t *testing.T) {
	tasks := []task.Task{
		{ID: "t1", SubjectID: "s1", Title: "HW1", Priority: task.PriorityHigh, Status: task.StatusTodo},
		{ID: "t2", SubjectID: "s1", Title: "A very long title that does not fit in a column", Priority: task.PriorityLow, Status: task.StatusInProgress},
		{ID: "t3", SubjectID: "s2", Title: "Lab", Priority: task.PriorityMedium, Status: task.StatusDone},
		{ID: "t4", SubjectID: "s1", Title: "Quiz", Priority: task.PriorityMedium, Status: task.StatusTodo},
	}

	tests := []struct {
		name      string
		subjectID string
		wantLines []string
	}{
		{
			name: "all",
			wantLines: []string{
				row("TO-DO", "IN PROGRESS", "DONE"),
				row("! HW1", ". A very long title that ...", "~ Lab"),
				row("~ Quiz", "", ""),
				"\n2 to-do, 1 in progress, 1 done\n",
			},
		},
		{
			name:      "one subject",
			subjectID: "s2",
			wantLines: []string{
				row("", "", "~ Lab"),
				"\n0 to-do, 0 in progress, 1 done\n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := new(bytes.Buffer)
			renderBoard(out, tasks, tt.subjectID)
			for _, line := range tt.wantLines {
				assert.Contains(t, out.String(), line)
			}
		})
	}
}

func Test_truncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "too lon...", truncate("too long a title", 10))
	assert.Equal(t, "ééé...", truncate(strings.Repeat("é", 8), 6))
}
