// exposes a Store interface that is passed to the chat interpreter and
// reminder job w/ param requirements
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/emasjid/gateway/internal/model"
)

type Store interface {
	// contact functions
	FindActiveContactByAnyPhone(candidates []string) (*model.Contact, error)
	FindContactsByRole(roles []model.Role) ([]model.Contact, error)

	// availability functions
	UpsertUnavailability(contactID int, date time.Time, slot string, reason *string) error
	DeleteUnavailability(contactID int, date time.Time, slot string) (bool, error)
	ListUnavailability(contactID int, from time.Time, limit int) ([]model.AvailabilityRecord, error)

	// duty roster functions (read-only projection)
	ListDutyAssignments(contactID int, from time.Time, limit int) ([]model.DutyAssignment, error)
	ListDutyAssignmentsOn(date time.Time) ([]model.DutyAssignment, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
// required so linter doesn't complain
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}
