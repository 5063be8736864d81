package echoapi

import (
	"github.com/trezcool/studytrack/core/auth"
	"github.com/trezcool/studytrack/core/profile"
	"github.com/trezcool/studytrack/core/subject"
	"github.com/trezcool/studytrack/core/task"
)

type (
	errorResponse struct {
		Error string `json:"error"`
	}

	successResponse struct {
		Success bool `json:"success"`
	}

	userResponse struct {
		User auth.Identity `json:"user"`
	}

	signInResponse struct {
		AccessToken string        `json:"access_token"`
		User        auth.Identity `json:"user"`
	}

	profileResponse struct {
		Profile profile.Profile `json:"profile"`
	}

	subjectResponse struct {
		Subject subject.Subject `json:"subject"`
	}

	subjectsResponse struct {
		Subjects []subject.Subject `json:"subjects"`
	}

	taskResponse struct {
		Task task.Task `json:"task"`
	}

	tasksResponse struct {
		Tasks []task.Task `json:"tasks"`
	}
)
