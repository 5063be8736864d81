package profile

import (
	"time"

	"github.com/trezcool/studytrack/core"
)

// Profile holds the display attributes of a tenant. ID is the tenant itself.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// Apply merges the provided fields of `up` over `p`. An empty avatar clears it.
func (p Profile) Apply(up UpdateProfile) Profile {
	if up.Name != nil && *up.Name != "" {
		p.Name = *up.Name
	}
	if up.Avatar != nil {
		if *up.Avatar == "" {
			p.Avatar = nil
		} else {
			avatar := *up.Avatar
			p.Avatar = &avatar
		}
	}
	return p
}

// UpdateProfile defines what information may be provided to modify a Profile.
// Email is not part of it: it never changes after signup.
type UpdateProfile struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

func (up *UpdateProfile) Validate() error {
	up.Name = core.CleanStringPtr(up.Name)
	if up.Avatar != nil {
		avatar := core.CleanString(*up.Avatar)
		up.Avatar = &avatar
	}
	return core.ValidateStruct(up)
}
