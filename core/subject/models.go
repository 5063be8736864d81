package subject

import (
	"time"

	"github.com/trezcool/studytrack/core"
)

// Subject is a course owned by a single tenant.
type Subject struct {
	ID          string    `json:"id"`
	Owner       string    `json:"user_id"`
	Name        string    `json:"name"`
	ColorTag    string    `json:"color_tag"`
	SharedUsers []string  `json:"shared_users"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// Apply merges the provided fields of `us` over `s`.
// ID, Owner and CreatedAt are never touched.
func (s Subject) Apply(us UpdateSubject) Subject {
	if us.Name != nil && *us.Name != "" {
		s.Name = *us.Name
	}
	if us.ColorTag != nil && *us.ColorTag != "" {
		s.ColorTag = *us.ColorTag
	}
	if us.SharedUsers != nil {
		s.SharedUsers = cleanUsers(*us.SharedUsers)
	}
	return s
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name        string   `json:"name" validate:"required"`
	ColorTag    string   `json:"color_tag" validate:"required"`
	SharedUsers []string `json:"shared_users,omitempty"`
}

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.ColorTag = core.CleanString(ns.ColorTag)
	ns.SharedUsers = cleanUsers(ns.SharedUsers)
	return core.ValidateStruct(ns)
}

// UpdateSubject defines what information may be provided to modify an existing Subject.
type UpdateSubject struct {
	Name        *string   `json:"name,omitempty"`
	ColorTag    *string   `json:"color_tag,omitempty"`
	SharedUsers *[]string `json:"shared_users,omitempty"`
}

func (us *UpdateSubject) Validate() error {
	us.Name = core.CleanStringPtr(us.Name)
	us.ColorTag = core.CleanStringPtr(us.ColorTag)
	return nil
}

// cleanUsers trims and de-duplicates shared identities; never returns nil.
func cleanUsers(users []string) []string {
	cleaned := make([]string, 0, len(users))
	seen := make(map[string]struct{}, len(users))
	for _, u := range users {
		u = core.CleanString(u, true /* lower */)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		cleaned = append(cleaned, u)
	}
	return cleaned
}
