package models

import "time"

type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleITSupport Role = "IT_Support"
	RoleManager   Role = "Manager"
	RoleUser      Role = "User"
)

var Roles = []Role{RoleAdmin, RoleITSupport, RoleManager, RoleUser}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// Support reports whether the role may triage tickets and run reports.
func (r Role) Support() bool { return r == RoleAdmin || r == RoleITSupport || r == RoleManager }

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	BusinessUnit string    `json:"businessUnit,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
