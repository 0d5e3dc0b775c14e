package model

import "time"

// AvailabilityRecord marks a contact as unavailable for one slot on one
// date. At most one record exists per (contact_id, date, slot); the absence
// of a record means the contact is available.
type AvailabilityRecord struct {
	ID          int       `db:"id"           json:"id"`
	ContactID   int       `db:"contact_id"   json:"contact_id"`
	Date        time.Time `db:"date"         json:"date"`
	Slot        string    `db:"slot"         json:"slot"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
	Reason      *string   `db:"reason"       json:"reason"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}

// DutyAssignment is one row of the duty roster: who covers which slot-role
// on a date. The roster is maintained by the administrative side; the
// gateway reads it for duty lookups and reminders.
type DutyAssignment struct {
	ID        int       `db:"id"         json:"id"`
	ContactID int       `db:"contact_id" json:"contact_id"`
	Date      time.Time `db:"date"       json:"date"`
	SlotRole  string    `db:"slot_role"  json:"slot_role"`
}
