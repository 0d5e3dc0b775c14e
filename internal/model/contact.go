package model

import "time"

// Role classifies a contact within the duty roster. Only duty-eligible
// roles may issue chat commands.
type Role string

const (
	RoleImam  Role = "imam"
	RoleBilal Role = "bilal"
	RoleOther Role = "other"
)

// DutyEligible reports whether the role may mutate or query duty records.
func (r Role) DutyEligible() bool {
	return r == RoleImam || r == RoleBilal
}

// Contact is a registered duty person. The record is owned by the
// administrative side of the application; the gateway only reads it.
type Contact struct {
	ID          int       `db:"id"           json:"id"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Role        Role      `db:"role"         json:"role"`
	Phone       string    `db:"phone"        json:"phone"`
	Active      bool      `db:"active"       json:"active"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}
