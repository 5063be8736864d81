package analytics

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
)

var today = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return today.AddDate(0, 0, -n) }

func newTask(id, subjectID, status string, createdAt time.Time) task.Task {
	return task.Task{ID: id, SubjectID: subjectID, Status: status, CreatedAt: createdAt}
}

func TestAggregate(t *testing.T) {
	calc := subject.Subject{ID: "s1", Name: "Calculus", ColorTag: "#3B82F6"}
	phys := subject.Subject{ID: "s2", Name: "Physics", ColorTag: "#EF4444"}
	chem := subject.Subject{ID: "s3", Name: "Chemistry", ColorTag: "#10B981"}

	tasks := []task.Task{
		newTask("t1", "s1", task.StatusDone, daysAgo(0)),
		newTask("t2", "s1", task.StatusDone, daysAgo(2)),
		newTask("t3", "s1", task.StatusTodo, daysAgo(1)),
		newTask("t4", "s1", task.StatusInProgress, daysAgo(1)),
		newTask("t5", "s2", task.StatusDone, daysAgo(6)),
		newTask("t6", "s2", task.StatusDone, daysAgo(7)), // outside the week
		newTask("t7", "", task.StatusDone, daysAgo(2)),   // no subject
	}

	snap := Aggregate([]subject.Subject{calc, phys, chem}, tasks, today)

	assert.Equal(t, []SubjectStat{
		{SubjectID: "s1", SubjectName: "Calculus", ColorTag: "#3B82F6", TotalTasks: 4, CompletedTasks: 2, CompletionRate: 50},
		{SubjectID: "s2", SubjectName: "Physics", ColorTag: "#EF4444", TotalTasks: 2, CompletedTasks: 2, CompletionRate: 100},
		{SubjectID: "s3", SubjectName: "Chemistry", ColorTag: "#10B981", TotalTasks: 0, CompletedTasks: 0, CompletionRate: 0},
	}, snap.SubjectStats)

	assert.Equal(t, []DayCount{
		{Date: "2025-03-04", Completed: 1},
		{Date: "2025-03-05", Completed: 0},
		{Date: "2025-03-06", Completed: 0},
		{Date: "2025-03-07", Completed: 0},
		{Date: "2025-03-08", Completed: 2},
		{Date: "2025-03-09", Completed: 0},
		{Date: "2025-03-10", Completed: 1},
	}, snap.WeekData)

	assert.Equal(t, Overall{Total: 7, Completed: 5, InProgress: 1, Todo: 1}, snap.Overall)
}

func TestAggregate_empty(t *testing.T) {
	snap := Aggregate(nil, nil, today)

	assert.NotNil(t, snap.SubjectStats)
	assert.Empty(t, snap.SubjectStats)
	require.Len(t, snap.WeekData, WeekDays)
	assert.Equal(t, "2025-03-04", snap.WeekData[0].Date)
	assert.Equal(t, "2025-03-10", snap.WeekData[WeekDays-1].Date)
	assert.Equal(t, Overall{}, snap.Overall)
}

func TestAggregate_completionRateNeverNaN(t *testing.T) {
	subjs := []subject.Subject{{ID: "s1"}, {ID: "s2"}}
	snap := Aggregate(subjs, []task.Task{newTask("t1", "s2", task.StatusTodo, today)}, today)

	for _, stat := range snap.SubjectStats {
		assert.False(t, math.IsNaN(stat.CompletionRate), stat.SubjectID)
		assert.Zero(t, stat.CompletionRate, stat.SubjectID)
	}
}

func TestAggregate_weekSeries(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		wantFirst string
		wantLast  string
	}{
		{name: "midday", today: today, wantFirst: "2025-03-04", wantLast: "2025-03-10"},
		{name: "month boundary", today: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), wantFirst: "2025-02-24", wantLast: "2025-03-02"},
		{name: "year boundary", today: time.Date(2025, 1, 3, 23, 59, 59, 0, time.UTC), wantFirst: "2024-12-28", wantLast: "2025-01-03"},
		{
			name:      "non-UTC today",
			today:     time.Date(2025, 3, 11, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*60*60)), // 2025-03-10 22:00 UTC
			wantFirst: "2025-03-04", wantLast: "2025-03-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := Aggregate(nil, nil, tt.today).WeekData
			require.Len(t, week, WeekDays)
			assert.Equal(t, tt.wantFirst, week[0].Date)
			assert.Equal(t, tt.wantLast, week[WeekDays-1].Date)
			for i := 1; i < len(week); i++ {
				assert.Less(t, week[i-1].Date, week[i].Date)
			}
		})
	}
}

func TestAggregate_isDeterministic(t *testing.T) {
	subjs := []subject.Subject{{ID: "s1", Name: "Calculus"}, {ID: "s2", Name: "Physics"}}
	tasks := []task.Task{
		newTask("t1", "s1", task.StatusDone, daysAgo(1)),
		newTask("t2", "s2", task.StatusInProgress, daysAgo(3)),
		newTask("t3", "s2", task.StatusDone, daysAgo(3)),
	}

	assert.Equal(t, Aggregate(subjs, tasks, today), Aggregate(subjs, tasks, today))
}

type listers struct {
	subjects []subject.Subject
	tasks    []task.Task
	tenants  []string
}

func (l *listers) ListSubjects(_ context.Context, tenant string) ([]subject.Subject, error) {
	l.tenants = append(l.tenants, tenant)
	return l.subjects, nil
}

func (l *listers) ListTasks(_ context.Context, tenant string) ([]task.Task, error) {
	l.tenants = append(l.tenants, tenant)
	return l.tasks, nil
}

func TestService_Snapshot(t *testing.T) {
	nowFunc = func() time.Time { return today }
	defer func() { nowFunc = time.Now }()

	l := &listers{
		subjects: []subject.Subject{{ID: "s1", Name: "Calculus"}},
		tasks:    []task.Task{newTask("t1", "s1", task.StatusDone, today)},
	}
	snap, err := NewService(l, l).Snapshot(context.Background(), "tenant-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"tenant-1", "tenant-1"}, l.tenants)
	assert.Equal(t, 100.0, snap.SubjectStats[0].CompletionRate)
	assert.Equal(t, 1, snap.WeekData[WeekDays-1].Completed)
}
