package analytics

import (
	"time"

	"github.com/trezcool/studytrack/core"
	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
)

// WeekDays is the length of the completed-task series.
const WeekDays = 7

type (
	// Snapshot is derived from a tenant's subjects and tasks on every request; it is never stored.
	Snapshot struct {
		SubjectStats []SubjectStat `json:"subjectStats"`
		WeekData     []DayCount    `json:"weekData"`
		Overall      Overall       `json:"overall"`
	}

	SubjectStat struct {
		SubjectID      string  `json:"subject_id"`
		SubjectName    string  `json:"subject_name"`
		ColorTag       string  `json:"color_tag"`
		TotalTasks     int     `json:"total_tasks"`
		CompletedTasks int     `json:"completed_tasks"`
		CompletionRate float64 `json:"completion_rate"` // percent
	}

	DayCount struct {
		Date      string `json:"date"` // YYYY-MM-DD
		Completed int    `json:"completed"`
	}

	Overall struct {
		Total      int `json:"total"`
		Completed  int `json:"completed"`
		InProgress int `json:"inProgress"`
		Todo       int `json:"todo"`
	}
)

// Aggregate computes the snapshot of `subjects` and `tasks` as of `today`.
// Subject stats follow the order of `subjects`. The week series runs from today-6 to today
// and counts done tasks by the UTC calendar date they were created on.
func Aggregate(subjects []subject.Subject, tasks []task.Task, today time.Time) Snapshot {
	snap := Snapshot{
		SubjectStats: make([]SubjectStat, 0, len(subjects)),
		WeekData:     make([]DayCount, 0, WeekDays),
	}

	type counts struct{ total, completed int }
	bySubject := make(map[string]counts, len(subjects))
	doneByDate := make(map[string]int)

	for _, t := range tasks {
		done := t.Status == task.StatusDone

		c := bySubject[t.SubjectID]
		c.total++
		if done {
			c.completed++
		}
		bySubject[t.SubjectID] = c

		snap.Overall.Total++
		switch t.Status {
		case task.StatusDone:
			snap.Overall.Completed++
			doneByDate[core.DateOf(t.CreatedAt)]++
		case task.StatusInProgress:
			snap.Overall.InProgress++
		case task.StatusTodo:
			snap.Overall.Todo++
		}
	}

	for _, s := range subjects {
		c := bySubject[s.ID]
		stat := SubjectStat{
			SubjectID:      s.ID,
			SubjectName:    s.Name,
			ColorTag:       s.ColorTag,
			TotalTasks:     c.total,
			CompletedTasks: c.completed,
		}
		if c.total > 0 {
			stat.CompletionRate = float64(c.completed) / float64(c.total) * 100
		}
		snap.SubjectStats = append(snap.SubjectStats, stat)
	}

	y, m, d := today.UTC().Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	for offset := WeekDays - 1; offset >= 0; offset-- {
		date := core.DateOf(midnight.AddDate(0, 0, -offset))
		snap.WeekData = append(snap.WeekData, DayCount{Date: date, Completed: doneByDate[date]})
	}

	return snap
}
