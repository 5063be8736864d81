package task

import (
	"time"

	"github.com/trezcool/studytrack/core"
)

// Types
const (
	TypeAssignment = "assignment"
	TypeQuiz       = "quiz"
	TypeProject    = "project"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Statuses
const (
	StatusTodo       = "to-do"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

var (
	Types      = []string{TypeAssignment, TypeQuiz, TypeProject}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
	Statuses   = []string{StatusTodo, StatusInProgress, StatusDone}
)

// Task is an assignment, quiz or project, optionally attached to a Subject of the same owner.
type Task struct {
	ID          string    `json:"id"`
	Owner       string    `json:"user_id"`
	SubjectID   string    `json:"subject_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Priority    string    `json:"priority"`
	DueDate     string    `json:"due_date"` // YYYY-MM-DD
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// Apply merges the provided fields of `ut` over `t`.
// ID, Owner and CreatedAt are not part of UpdateTask and therefore immutable.
func (t Task) Apply(ut UpdateTask) Task {
	if ut.SubjectID != nil {
		t.SubjectID = *ut.SubjectID
	}
	if ut.Title != nil && *ut.Title != "" {
		t.Title = *ut.Title
	}
	if ut.Description != nil {
		t.Description = *ut.Description
	}
	if ut.Type != nil && *ut.Type != "" {
		t.Type = *ut.Type
	}
	if ut.Priority != nil && *ut.Priority != "" {
		t.Priority = *ut.Priority
	}
	if ut.DueDate != nil && *ut.DueDate != "" {
		t.DueDate = *ut.DueDate
	}
	if ut.Status != nil && *ut.Status != "" {
		t.Status = *ut.Status
	}
	return t
}

// NewTask contains information needed to create a new Task.
type NewTask struct {
	SubjectID   string `json:"subject_id,omitempty"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type" validate:"required,oneof=assignment quiz project"`
	Priority    string `json:"priority" validate:"required,oneof=low medium high"`
	DueDate     string `json:"due_date" validate:"required,calendardate"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=to-do in-progress done"`
}

func (nt *NewTask) Validate() error {
	nt.SubjectID = core.CleanString(nt.SubjectID)
	nt.Title = core.CleanString(nt.Title)
	nt.Description = core.CleanString(nt.Description)
	nt.Type = core.CleanString(nt.Type, true /* lower */)
	nt.Priority = core.CleanString(nt.Priority, true /* lower */)
	nt.DueDate = core.CleanString(nt.DueDate)
	nt.Status = core.CleanString(nt.Status, true /* lower */)
	if nt.Status == "" {
		nt.Status = StatusTodo
	}
	return core.ValidateStruct(nt)
}

// UpdateTask defines what information may be provided to modify an existing Task.
type UpdateTask struct {
	SubjectID   *string `json:"subject_id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty" validate:"omitempty,oneof=assignment quiz project"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,calendardate"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=to-do in-progress done"`
}

func (ut *UpdateTask) Validate() error {
	if ut.SubjectID != nil {
		sid := core.CleanString(*ut.SubjectID)
		ut.SubjectID = &sid
	}
	if ut.Description != nil {
		desc := core.CleanString(*ut.Description)
		ut.Description = &desc
	}
	ut.Title = core.CleanStringPtr(ut.Title)
	ut.Type = core.CleanStringPtr(ut.Type, true /* lower */)
	ut.Priority = core.CleanStringPtr(ut.Priority, true /* lower */)
	ut.DueDate = core.CleanStringPtr(ut.DueDate)
	ut.Status = core.CleanStringPtr(ut.Status, true /* lower */)
	return core.ValidateStruct(ut)
}
