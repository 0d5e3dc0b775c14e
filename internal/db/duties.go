package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/emasjid/gateway/internal/model"
)

func (s *pgStore) ListDutyAssignments(contactID int, from time.Time, limit int) ([]model.DutyAssignment, error) {
	var duties []model.DutyAssignment
	err := s.db.Select(&duties, `
		SELECT id, contact_id, date, slot_role
		FROM duty_assignments
		WHERE contact_id = $1 AND date >= $2
		ORDER BY date, slot_role
		LIMIT $3
		`, contactID, from, limit)
	if err != nil {
		log.Error().Err(err).Int("contact_id", contactID).Msg("failed to list duty assignments")
		return nil, err
	}
	return duties, nil
}

func (s *pgStore) ListDutyAssignmentsOn(date time.Time) ([]model.DutyAssignment, error) {
	var duties []model.DutyAssignment
	err := s.db.Select(&duties, `
		SELECT id, contact_id, date, slot_role
		FROM duty_assignments
		WHERE date = $1
		ORDER BY contact_id, slot_role
		`, date)
	if err != nil {
		log.Error().Err(err).Msg("failed to list duty assignments for date")
		return nil, err
	}
	return duties, nil
}
