package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studytrack/core"
)

func strPtr(s string) *string { return &s }

func TestNewTask_Validate(t *testing.T) {
	valid := func() NewTask {
		return NewTask{Title: " HW1 ", Type: "Assignment", Priority: "high", DueDate: "2025-03-01"}
	}

	tests := []struct {
		name       string
		modify     func(nt *NewTask)
		wantFields []string
	}{
		{name: "valid", modify: func(*NewTask) {}},
		{name: "missing title", modify: func(nt *NewTask) { nt.Title = "  " }, wantFields: []string{"title"}},
		{name: "missing type", modify: func(nt *NewTask) { nt.Type = "" }, wantFields: []string{"type"}},
		{name: "unknown type", modify: func(nt *NewTask) { nt.Type = "exam" }, wantFields: []string{"type"}},
		{name: "unknown priority", modify: func(nt *NewTask) { nt.Priority = "urgent" }, wantFields: []string{"priority"}},
		{name: "missing due date", modify: func(nt *NewTask) { nt.DueDate = "" }, wantFields: []string{"due_date"}},
		{name: "bad due date", modify: func(nt *NewTask) { nt.DueDate = "01/03/2025" }, wantFields: []string{"due_date"}},
		{name: "unknown status", modify: func(nt *NewTask) { nt.Status = "blocked" }, wantFields: []string{"status"}},
		{
			name:       "all missing",
			modify:     func(nt *NewTask) { *nt = NewTask{} },
			wantFields: []string{"title", "type", "priority", "due_date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nt := valid()
			tt.modify(&nt)
			err := nt.Validate()

			if tt.wantFields == nil {
				require.NoError(t, err)
				return
			}
			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			fields := make([]string, 0, len(vErr.Fields))
			for _, f := range vErr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestNewTask_Validate_cleansAndDefaults(t *testing.T) {
	nt := NewTask{Title: " HW1 ", Type: " Quiz", Priority: "LOW ", DueDate: "2025-03-01", Description: "  "}
	require.NoError(t, nt.Validate())

	assert.Equal(t, "HW1", nt.Title)
	assert.Equal(t, TypeQuiz, nt.Type)
	assert.Equal(t, PriorityLow, nt.Priority)
	assert.Equal(t, StatusTodo, nt.Status)
	assert.Equal(t, "", nt.Description)
}

func TestUpdateTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ut      UpdateTask
		wantErr bool
	}{
		{name: "empty", ut: UpdateTask{}},
		{name: "status", ut: UpdateTask{Status: strPtr("done")}},
		{name: "blank fields are ignored", ut: UpdateTask{Title: strPtr(" "), Status: strPtr("")}},
		{name: "bad status", ut: UpdateTask{Status: strPtr("finished")}, wantErr: true},
		{name: "bad type", ut: UpdateTask{Type: strPtr("exam")}, wantErr: true},
		{name: "bad due date", ut: UpdateTask{DueDate: strPtr("2025-02-30")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ut.Validate()
			if tt.wantErr {
				assert.True(t, core.IsValidation(err), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTask_Apply(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	orig := Task{
		ID: "t1", Owner: "u1", SubjectID: "s1", Title: "HW1", Description: "desc",
		Type: TypeAssignment, Priority: PriorityHigh, DueDate: "2025-03-01", Status: StatusTodo, CreatedAt: created,
	}

	t.Run("empty update changes nothing", func(t *testing.T) {
		assert.Equal(t, orig, orig.Apply(UpdateTask{}))
	})

	t.Run("provided fields overwrite", func(t *testing.T) {
		got := orig.Apply(UpdateTask{Status: strPtr(StatusDone), Title: strPtr("HW 1"), SubjectID: strPtr("")})

		want := orig
		want.Status = StatusDone
		want.Title = "HW 1"
		want.SubjectID = ""
		assert.Equal(t, want, got)
	})

	t.Run("description can be cleared", func(t *testing.T) {
		assert.Equal(t, "", orig.Apply(UpdateTask{Description: strPtr("")}).Description)
	})
}
